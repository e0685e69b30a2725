package utils

import (
	"runtime/debug"
)

// Version is the short VCS revision the binary was built from, "dev" for
// builds without VCS stamping.
var Version = func() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "dev"
	}
	return revision(info.Settings)
}()

func revision(settings []debug.BuildSetting) string {
	var rev string
	var modified bool
	for _, setting := range settings {
		switch setting.Key {
		case "vcs.revision":
			rev = setting.Value
		case "vcs.modified":
			modified = setting.Value == "true"
		}
	}
	if rev == "" {
		return "dev"
	}
	if len(rev) > 7 {
		rev = rev[:7]
	}
	if modified {
		rev += "-dirty"
	}
	return rev
}
