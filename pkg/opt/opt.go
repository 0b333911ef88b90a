package opt

import (
	"fmt"
	"net/url"
	"strings"
)

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	ToolkitKey = "toolkit"
	FormatKey  = "format"
	LimitKey   = "limit"
	OffsetKey  = "offset"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// A generic option type, which can set options on a request
type Opt func(*opts) error

// set of options
type opts struct {
	url.Values
}

////////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// Apply returns a structure of applied options
func Apply(o ...Opt) (*opts, error) {
	opts := &opts{Values: make(url.Values)}
	for _, opt := range o {
		if opt == nil {
			continue
		}
		if err := opt(opts); err != nil {
			return nil, err
		}
	}
	return opts, nil
}

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Query returns the values for the given keys, suitable for a URL query
func (o *opts) Query(keys ...string) url.Values {
	query := make(url.Values)
	for _, key := range keys {
		if value, ok := o.Values[key]; ok {
			query[key] = value
		}
	}
	return query
}

// GetString returns the trimmed value for key, or empty string if not set
func (o *opts) GetString(key string) string {
	if values, ok := o.Values[key]; ok && len(values) > 0 {
		return strings.TrimSpace(values[0])
	}
	return ""
}

// Has returns true if the key exists
func (o *opts) Has(key string) bool {
	_, ok := o.Values[key]
	return ok
}

////////////////////////////////////////////////////////////////////////////////
// OPTIONS

// SetString replaces the value for key, or removes it when value is empty
func SetString(key, value string) Opt {
	return func(o *opts) error {
		if value = strings.TrimSpace(value); value == "" {
			o.Values.Del(key)
		} else {
			o.Values.Set(key, value)
		}
		return nil
	}
}

// SetUint replaces the value for key
func SetUint(key string, value uint) Opt {
	return func(o *opts) error {
		o.Values.Set(key, fmt.Sprint(value))
		return nil
	}
}

// Del removes the key
func Del(key string) Opt {
	return func(o *opts) error {
		o.Values.Del(key)
		return nil
	}
}
