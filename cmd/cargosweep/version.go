package main

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// Release builds override these via -ldflags; everything else is
// recovered from the binary's embedded build info.
var (
	version = ""
	commit  = ""
	date    = ""
)

// buildDetails is the resolved version identity of the running binary.
type buildDetails struct {
	version string
	commit  string
	date    string
}

// resolveBuildDetails merges the ldflags values with debug.ReadBuildInfo
// in a single pass. Fields neither source can fill get placeholders,
// which is what a plain `go build` from a source tarball produces.
func resolveBuildDetails() buildDetails {
	d := buildDetails{version: version, commit: commit, date: date}

	if info, ok := debug.ReadBuildInfo(); ok {
		if d.version == "" && info.Main.Version != "" {
			d.version = info.Main.Version
		}
		for _, setting := range info.Settings {
			switch setting.Key {
			case "vcs.revision":
				if d.commit == "" {
					d.commit = shortRevision(setting.Value)
				}
			case "vcs.time":
				if d.date == "" {
					d.date = setting.Value
				}
			}
		}
	}

	if d.version == "" {
		d.version = "(devel)"
	}
	if d.commit == "" {
		d.commit = "unknown"
	}
	if d.date == "" {
		d.date = "unknown"
	}
	return d
}

// shortRevision trims a VCS revision to the familiar 7-character form.
func shortRevision(rev string) string {
	if len(rev) > 7 {
		return rev[:7]
	}
	return rev
}

// getVersion returns the version string shown by --version.
func getVersion() string {
	return resolveBuildDetails().version
}

// NewVersionCmd creates the version command.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print the version, commit hash, and build date of cargosweep.`,
		Run: func(cmd *cobra.Command, _ []string) {
			d := resolveBuildDetails()
			fmt.Fprintf(cmd.OutOrStdout(), "cargosweep %s (commit %s, built %s)\n",
				d.version, d.commit, d.date)
		},
	}
}
