package cmd

import (
	"fmt"

	"github.com/myselfbbs/vodplay/icon"
	"github.com/myselfbbs/vodplay/metrics"
	"github.com/myselfbbs/vodplay/util"
	"github.com/myselfbbs/vodplay/where"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
)

// clearTarget is an artifact the clear command can remove.
type clearTarget struct {
	name     string
	argLong  string
	argShort mo.Option[string]
	clear    func() error
}

var clearTargets = []clearTarget{
	{"cache directory", "cache", mo.Some("c"), func() error { return util.Delete(where.Cache()) }},
	{"generation statistics", "stats", mo.Some("s"), func() error { return metrics.DefaultStore().Reset() }},
	{"logs directory", "logs", mo.Some("l"), func() error { return util.Delete(where.Logs()) }},
}

func init() {
	rootCmd.AddCommand(clearCmd)

	for _, target := range clearTargets {
		help := fmt.Sprintf("clear %s", target.name)
		if short, ok := target.argShort.Get(); ok {
			clearCmd.Flags().BoolP(target.argLong, short, false, help)
		} else {
			clearCmd.Flags().Bool(target.argLong, false, help)
		}
	}
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove cached data, statistics and logs",
	Run: func(cmd *cobra.Command, args []string) {
		selected := lo.Filter(clearTargets, func(target clearTarget, _ int) bool {
			return lo.Must(cmd.Flags().GetBool(target.argLong))
		})

		if len(selected) == 0 {
			handleErr(cmd.Help())
			return
		}

		for _, target := range selected {
			handleErr(target.clear())
			fmt.Printf("%s %s cleared\n", icon.Get(icon.Success), util.Capitalize(target.name))
		}
	},
}
