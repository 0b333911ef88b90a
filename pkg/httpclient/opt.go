package httpclient

import (
	// Packages
	opt "github.com/mutablelogic/go-arcade/pkg/opt"
)

///////////////////////////////////////////////////////////////////////////////
// OPTIONS

// WithToolkit filters results by toolkit name.
func WithToolkit(toolkit string) opt.Opt {
	return opt.SetString(opt.ToolkitKey, toolkit)
}

// WithFormat sets the tool format for formatted listings.
func WithFormat(format string) opt.Opt {
	return opt.SetString(opt.FormatKey, format)
}

// WithLimit sets the maximum number of results to return.
// If limit is nil, any existing limit is removed.
func WithLimit(limit *uint) opt.Opt {
	if limit == nil {
		return opt.Del(opt.LimitKey)
	}
	return opt.SetUint(opt.LimitKey, *limit)
}

// WithOffset sets the pagination offset.
// If offset is 0, any existing offset is removed.
func WithOffset(offset uint) opt.Opt {
	if offset == 0 {
		return opt.Del(opt.OffsetKey)
	}
	return opt.SetUint(opt.OffsetKey, offset)
}
