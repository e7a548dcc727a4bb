package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/myselfbbs/vodplay/color"
	"github.com/myselfbbs/vodplay/icon"
	"github.com/myselfbbs/vodplay/metrics"
	"github.com/myselfbbs/vodplay/style"
	"github.com/myselfbbs/vodplay/util"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"golang.org/x/exp/slices"
)

func init() {
	rootCmd.AddCommand(statsCmd)

	statsCmd.Flags().BoolP("json", "j", false, "Format the statistics as a JSON object")
	statsCmd.Flags().BoolP("reset", "r", false, "Reset the persisted statistics")
	statsCmd.MarkFlagsMutuallyExclusive("json", "reset")
	statsCmd.SetOut(os.Stdout)
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show cumulative URL generation statistics",
	Run: func(cmd *cobra.Command, args []string) {
		store := metrics.DefaultStore()

		if lo.Must(cmd.Flags().GetBool("reset")) {
			handleErr(store.Reset())
			cmd.Printf("%s statistics reset\n", style.Fg(color.Green)(icon.Get(icon.Success)))
			return
		}

		tally, err := store.Load()
		handleErr(err)

		if lo.Must(cmd.Flags().GetBool("json")) {
			handleErr(json.NewEncoder(cmd.OutOrStdout()).Encode(struct {
				metrics.Tally
				SuccessRate float64 `json:"success_rate"`
			}{tally, tally.SuccessRate()}))
			return
		}

		if tally.Total == 0 {
			cmd.Println(style.Faint("no playback URLs generated yet"))
			return
		}

		label := func(s string) string { return style.Fg(color.Purple)(fmt.Sprintf("%-12s", s)) }

		cmd.Println(style.Title("Statistics"))
		cmd.Println()
		cmd.Printf("%s %d\n", label("Titles"), tally.Titles)
		cmd.Printf("%s %d\n", label("Episodes"), tally.Total)
		cmd.Printf("%s %d %s\n", label("Resolved"), tally.Successful, style.Faint(util.Percent(tally.SuccessRate())))
		cmd.Printf("%s %d\n", label("Failed"), tally.Failed)
		cmd.Printf("%s %d\n", label("Fallbacks"), tally.Fallbacks)
		cmd.Printf("%s %d\n", label("Omitted"), tally.Omitted)

		shapes := lo.Keys(tally.ByShape)
		slices.SortFunc(shapes, strings.Compare)

		if len(shapes) > 0 {
			cmd.Println()
		}
		for _, name := range shapes {
			s := tally.ByShape[name]
			cmd.Printf(
				"%s %d/%d\n",
				style.Fg(color.ForShape(name))(fmt.Sprintf("%-12s", name)),
				s.Successful,
				s.Total,
			)
		}

		if !tally.UpdatedAt.IsZero() {
			cmd.Printf("\n%s\n", style.Faint("updated "+tally.UpdatedAt.Format("2006-01-02 15:04:05")))
		}
	},
}
