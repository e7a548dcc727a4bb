// Package cmd implements the command-line interface for vodplay.
package cmd

import (
	"fmt"
	"os"
	"strings"

	cc "github.com/ivanpirog/coloredcobra"
	"github.com/myselfbbs/vodplay/color"
	"github.com/myselfbbs/vodplay/constant"
	"github.com/myselfbbs/vodplay/icon"
	"github.com/myselfbbs/vodplay/key"
	"github.com/myselfbbs/vodplay/log"
	"github.com/myselfbbs/vodplay/style"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print the application version")

	rootCmd.PersistentFlags().StringP("icons", "I", "", "Set the icon variant (emoji, plain)")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("icons", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return icon.AvailableVariants(), cobra.ShellCompDirectiveDefault
	}))
	lo.Must0(viper.BindPFlag(key.IconsVariant, rootCmd.PersistentFlags().Lookup("icons")))

	rootCmd.PersistentFlags().Int("cache-size", 0, "Capacity of the format detection cache")
	lo.Must0(viper.BindPFlag(key.DetectCacheSize, rootCmd.PersistentFlags().Lookup("cache-size")))
}

// rootCmd defines the entry point for the vodplay application.
var rootCmd = &cobra.Command{
	Use:   constant.App,
	Short: "Turn scraped myself-bbs episode references into CMS10 playback strings",
	Long: style.Title(constant.App) + "\n" +
		style.New().Italic(true).Foreground(color.HiRed).Render("    - Classify episode tokens, derive manifest URLs and compose label$url#label$url playback strings"),
	Run: func(cmd *cobra.Command, args []string) {
		if lo.Must(cmd.Flags().GetBool("version")) {
			versionCmd.Run(versionCmd, args)
			return
		}

		handleErr(cmd.Help())
	},
}

// Execute initializes child command routing and processes the CLI entry point.
func Execute() {
	if viper.GetBool(key.CliColored) {
		cc.Init(&cc.Config{
			RootCmd:       rootCmd,
			Headings:      cc.HiCyan + cc.Bold + cc.Underline,
			Commands:      cc.HiYellow + cc.Bold,
			Example:       cc.Italic,
			ExecName:      cc.Bold,
			Flags:         cc.Bold,
			FlagsDataType: cc.Italic + cc.HiBlue,
		})
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func handleErr(err error) {
	if err != nil {
		log.Error(err)
		_, _ = fmt.Fprintf(os.Stderr, "%s %s\n", icon.Get(icon.Fail), strings.Trim(err.Error(), " \n"))
		os.Exit(1)
	}
}
