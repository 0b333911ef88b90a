package version

import (
	"runtime"
	"testing"

	// Packages
	assert "github.com/stretchr/testify/assert"
)

func TestVersion(t *testing.T) {
	assert := assert.New(t)

	GitTag, GitBranch = "v1.2.3", "main"
	defer func() { GitTag, GitBranch = "", "" }()
	assert.Equal("v1.2.3", Version())

	GitTag = ""
	assert.Equal("main", Version())

	info := Get("arcade")
	assert.Equal("arcade", info.Name)
	assert.Equal("main", info.Version)
	assert.Equal("main", info.Branch)
	assert.Equal(runtime.Version(), info.Compiler)
}

func TestShort(t *testing.T) {
	assert.Equal(t, "0123456789ab", short("0123456789abcdef"))
	assert.Equal(t, "abc", short("abc"))
}
