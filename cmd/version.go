package cmd

import (
	"os"
	"runtime"
	"runtime/debug"
	"strings"
	"text/template"

	"github.com/myselfbbs/vodplay/color"
	"github.com/myselfbbs/vodplay/constant"
	"github.com/myselfbbs/vodplay/style"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.SetOut(os.Stdout)
	versionCmd.Flags().BoolP("short", "s", false, "Print only the version string")
}

// buildSetting reads a VCS value stamped by the go toolchain.
func buildSetting(name string) string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown"
	}

	setting, ok := lo.Find(info.Settings, func(s debug.BuildSetting) bool {
		return s.Key == name
	})
	if !ok || setting.Value == "" {
		return "unknown"
	}

	return setting.Value
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version and build information",
	Run: func(cmd *cobra.Command, args []string) {
		if lo.Must(cmd.Flags().GetBool("short")) {
			cmd.Println(constant.Version)
			return
		}

		versionInfo := struct {
			App      string
			Version  string
			OS       string
			Arch     string
			Go       string
			Revision string
			BuiltAt  string
		}{
			App:      constant.App,
			Version:  constant.Version,
			OS:       runtime.GOOS,
			Arch:     runtime.GOARCH,
			Go:       runtime.Version(),
			Revision: buildSetting("vcs.revision"),
			BuiltAt:  buildSetting("vcs.time"),
		}

		t, err := template.New("version").Funcs(map[string]any{
			"faint":   style.Faint,
			"bold":    style.Bold,
			"magenta": style.Fg(color.Purple),
			"repeat":  strings.Repeat,
		}).Parse(`{{ magenta "▇▇▇" }} {{ magenta .App }}

  {{ faint "Version" }}      {{ bold .Version }}
  {{ faint "Git Commit" }}   {{ bold .Revision }}
  {{ faint "Commit Date" }}  {{ bold .BuiltAt }}
  {{ faint "Go" }}           {{ bold .Go }}
  {{ faint "Platform" }}     {{ bold .OS }}/{{ bold .Arch }}
`)
		handleErr(err)
		handleErr(t.Execute(cmd.OutOrStdout(), versionInfo))
	},
}
