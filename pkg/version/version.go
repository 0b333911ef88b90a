package version

import (
	"runtime"
	"runtime/debug"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Info describes the running binary
type Info struct {
	Name      string `json:"name" yaml:"name"`
	Version   string `json:"version" yaml:"version"`
	Compiler  string `json:"compiler" yaml:"compiler"`
	Tag       string `json:"tag,omitempty" yaml:"tag,omitempty"`
	Branch    string `json:"branch,omitempty" yaml:"branch,omitempty"`
	Source    string `json:"source,omitempty" yaml:"source,omitempty"`
	Hash      string `json:"hash,omitempty" yaml:"hash,omitempty"`
	BuildTime string `json:"build_time,omitempty" yaml:"build_time,omitempty"`
	Modified  bool   `json:"modified,omitempty" yaml:"modified,omitempty"`
	Platform  string `json:"platform,omitempty" yaml:"platform,omitempty"`
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

// Set with -ldflags at build time
var (
	GitTag    string
	GitBranch string
)

const (
	shortHash = 12
)

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Version returns the git tag or branch the binary was built from, the short
// vcs revision, or "dev"
func Version() string {
	if GitTag != "" {
		return GitTag
	}
	if GitBranch != "" {
		return GitBranch
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, s := range info.Settings {
			if s.Key == "vcs.revision" && s.Value != "" {
				return short(s.Value)
			}
		}
	}
	return "dev"
}

// Get returns the build metadata for the named executable
func Get(name string) Info {
	result := Info{
		Name:     name,
		Version:  Version(),
		Compiler: runtime.Version(),
		Tag:      GitTag,
		Branch:   GitBranch,
	}

	var goos, goarch string
	if info, ok := debug.ReadBuildInfo(); ok {
		result.Source = info.Main.Path
		for _, s := range info.Settings {
			switch s.Key {
			case "vcs.revision":
				result.Hash = s.Value
			case "vcs.time":
				result.BuildTime = s.Value
			case "vcs.modified":
				result.Modified = s.Value == "true"
			case "GOOS":
				goos = s.Value
			case "GOARCH":
				goarch = s.Value
			}
		}
	}
	if goos != "" && goarch != "" {
		result.Platform = goos + "/" + goarch
	}
	return result
}

////////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func short(hash string) string {
	if len(hash) > shortHash {
		return hash[:shortHash]
	}
	return hash
}
