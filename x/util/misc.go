package util

import (
	"runtime"
	"runtime/debug"
)

type BuildInfo struct {
	Version   string `json:"version"`
	GitHash   string `json:"gitHash"`
	GoVersion string `json:"goVersion"`
}

// GetGitHash returns the git hash of the current build.
func GetGitHash() string {
	hash := "unknown"
	if info, available := debug.ReadBuildInfo(); available {
		for _, setting := range info.Settings {
			if setting.Key == "vcs.revision" {
				hash = setting.Value
				break
			}
		}
	}
	return hash
}

// GetVersion returns the module version of the current build.
func GetVersion() string {
	version := "unknown"
	if info, available := debug.ReadBuildInfo(); available && info.Main.Version != "" {
		version = info.Main.Version
	}
	return version
}

// GetBuildInfo collects version details for the /health and CLI version outputs
func GetBuildInfo() BuildInfo {
	hash := GetGitHash()
	if len(hash) > 7 {
		hash = hash[:7]
	}
	return BuildInfo{
		Version:   GetVersion(),
		GitHash:   hash,
		GoVersion: runtime.Version(),
	}
}
