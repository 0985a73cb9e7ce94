package cmd

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/abhisek/mockprep/internal/config"
	"github.com/abhisek/mockprep/internal/selfupdate"
)

// version is set with -ldflags "-X github.com/abhisek/mockprep/cmd.version=v1.2.3".
var version = selfupdate.DevVersion

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version and build details",
	Run: func(cmd *cobra.Command, args []string) {
		v, rev := buildVersion()
		fmt.Printf("%s %s (%s, %s/%s)\n", config.AppName, v, runtime.Version(), runtime.GOOS, runtime.GOARCH)
		if rev != "" {
			fmt.Println("commit", rev)
		}
	},
}

// buildVersion prefers the ldflags version. A `go install` build has none,
// so the module version and VCS revision are read from the build info.
func buildVersion() (string, string) {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return version, ""
	}
	v := version
	if v == selfupdate.DevVersion && info.Main.Version != "" && info.Main.Version != "(devel)" {
		v = info.Main.Version
	}
	var rev string
	for _, s := range info.Settings {
		if s.Key == "vcs.revision" && len(s.Value) >= 12 {
			rev = s.Value[:12]
		}
	}
	return v, rev
}
