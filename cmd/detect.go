package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/myselfbbs/vodplay/color"
	"github.com/myselfbbs/vodplay/detect"
	"github.com/myselfbbs/vodplay/icon"
	"github.com/myselfbbs/vodplay/source"
	"github.com/myselfbbs/vodplay/style"
	"github.com/myselfbbs/vodplay/util"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(detectCmd)

	detectCmd.Flags().BoolP("json", "j", false, "Format the command output as a JSON array")
	detectCmd.Flags().BoolP("issues", "i", false, "Show only titles whose report has issues")
	detectCmd.SetOut(os.Stdout)
}

var detectCmd = &cobra.Command{
	Use:     "detect [files...]",
	Short:   "Diagnose the episode reference encodings of scraped titles",
	Example: "vodplay detect airing.json --issues",
	Run: func(cmd *cobra.Command, args []string) {
		titles, err := readTitles(args)
		handleErr(err)

		cache := newDetectionCache()
		reports := lo.Map(titles, func(t *source.Title, _ int) *titleReport {
			return &titleReport{
				ID:     int(t.ID),
				Name:   t.Name,
				Report: detect.NewReport(t.Episodes, cache.ClassifySet(t.Episodes)),
			}
		})

		if lo.Must(cmd.Flags().GetBool("issues")) {
			reports = lo.Filter(reports, func(r *titleReport, _ int) bool {
				return r.Report.Summary.HasIssues || len(r.Report.Recommendations) > 0
			})
		}

		if lo.Must(cmd.Flags().GetBool("json")) {
			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetEscapeHTML(false)
			handleErr(encoder.Encode(reports))
			return
		}

		for i, r := range reports {
			printReport(cmd, r)
			if i < len(reports)-1 {
				cmd.Println()
			}
		}
	},
}

func printReport(cmd *cobra.Command, r *titleReport) {
	summary := r.Report.Summary

	status := style.Fg(color.Green)(icon.Get(icon.Success))
	if !summary.Valid {
		status = style.Fg(color.Red)(icon.Get(icon.Fail))
	} else if summary.HasIssues {
		status = style.Fg(color.Yellow)(icon.Get(icon.Warn))
	}

	format := summary.Format.String()
	if summary.IsMixed {
		format = "mixed"
	}

	cmd.Printf("%s %s %s\n", status, style.Bold(r.Name), style.Faint(fmt.Sprintf("#%d", r.ID)))
	cmd.Printf(
		"  %s %s, %s of %s resolvable\n",
		style.Fg(color.ForShape(format))(format),
		style.Faint(util.Percent(summary.Confidence)),
		style.Fg(color.Yellow)(fmt.Sprint(summary.Resolvable)),
		util.Quantify(summary.Total, "episode", "episodes"),
	)

	for _, rec := range r.Report.Recommendations {
		var c = color.Blue
		switch rec.Level {
		case detect.LevelError:
			c = color.Red
		case detect.LevelWarning:
			c = color.Yellow
		}

		cmd.Printf("  %s %s\n", style.Fg(c)(string(rec.Level)), rec.Message)
		for _, detail := range rec.Details {
			cmd.Printf("    %s\n", style.Faint(detail))
		}
	}
}
