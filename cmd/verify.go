package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/myselfbbs/vodplay/color"
	"github.com/myselfbbs/vodplay/derive"
	"github.com/myselfbbs/vodplay/filesystem"
	"github.com/myselfbbs/vodplay/icon"
	"github.com/myselfbbs/vodplay/inline"
	"github.com/myselfbbs/vodplay/network"
	"github.com/myselfbbs/vodplay/playurl"
	"github.com/myselfbbs/vodplay/resolve"
	"github.com/myselfbbs/vodplay/style"
	"github.com/myselfbbs/vodplay/util"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(verifyCmd)

	verifyCmd.Flags().BoolP("json", "j", false, "Format the command output as a JSON array")
	verifyCmd.Flags().BoolP("probe", "p", false, "Send a HEAD request to every URL")
	verifyCmd.Flags().IntP("workers", "w", 4, "Number of concurrent probes")
	verifyCmd.SetOut(os.Stdout)
}

// urlReport pairs the static check of one episode URL with its probe.
type urlReport struct {
	ID    int                  `json:"vod_id"`
	Label string               `json:"label"`
	Check derive.URLCheck      `json:"check"`
	Probe *network.ProbeResult `json:"probe,omitempty"`
}

func decodeOutput(r io.Reader) (*inline.Output, error) {
	var output inline.Output
	if err := json.NewDecoder(r).Decode(&output); err != nil {
		return nil, fmt.Errorf("decode resolve output: %w", err)
	}
	return &output, nil
}

var verifyCmd = &cobra.Command{
	Use:   "verify [file]",
	Short: "Check the URLs of a resolve --json output",
	Long: `Check every URL in the vod_play_url fields of a resolve --json output.
URLs must use https, the expected host and one of the vpx, hls or m3u8 layouts.
With --probe each URL is also requested. Without a file, stdin is read.`,
	Example: "vodplay resolve titles.json -j | vodplay verify --probe",
	Args:    cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		path := filesystem.Stdin
		if len(args) == 1 {
			path = args[0]
		}

		output, err := readInput(path, decodeOutput)
		handleErr(err)

		deriver := resolve.OptionsFromConfig().Deriver()

		var reports []*urlReport
		for _, record := range output.Result {
			for _, source := range playurl.ParseSources(record.PlayURL) {
				for _, entry := range source {
					reports = append(reports, &urlReport{
						ID:    record.ID,
						Label: entry.Label,
						Check: deriver.Check(entry.URL),
					})
				}
			}
		}

		if lo.Must(cmd.Flags().GetBool("probe")) {
			ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
			defer cancel()

			urls := lo.Map(reports, func(r *urlReport, _ int) string { return r.Check.URL })
			probes := network.ProbeAll(ctx, urls, lo.Must(cmd.Flags().GetInt("workers")))
			for i := range probes {
				reports[i].Probe = &probes[i]
			}
		}

		invalid := lo.CountBy(reports, func(r *urlReport) bool {
			return !r.Check.Valid || (r.Probe != nil && !r.Probe.Reachable)
		})

		if lo.Must(cmd.Flags().GetBool("json")) {
			handleErr(json.NewEncoder(cmd.OutOrStdout()).Encode(reports))
		} else {
			for _, r := range reports {
				printURLReport(cmd, r)
			}
			cmd.Printf(
				"\n%s checked, %s\n",
				util.Quantify(len(reports), "url", "urls"),
				style.Fg(lo.Ternary(invalid == 0, color.Green, color.Red))(fmt.Sprintf("%d failed", invalid)),
			)
		}

		if invalid > 0 {
			handleErr(fmt.Errorf("%s failed verification", util.Quantify(invalid, "url", "urls")))
		}
	},
}

func printURLReport(cmd *cobra.Command, r *urlReport) {
	ok := r.Check.Valid && (r.Probe == nil || r.Probe.Reachable)

	status := style.Fg(color.Green)(icon.Get(icon.Success))
	if !ok {
		status = style.Fg(color.Red)(icon.Get(icon.Fail))
	}

	cmd.Printf(
		"%s %s %s %s\n",
		status,
		style.Faint(fmt.Sprintf("#%d", r.ID)),
		style.Bold(r.Label),
		style.Fg(color.Cyan)(string(r.Check.Layout)),
	)

	for _, e := range r.Check.Errors {
		cmd.Printf("    %s\n", style.Fg(color.Red)(e))
	}

	if p := r.Probe; p != nil {
		switch {
		case p.Error != "":
			cmd.Printf("    %s\n", style.Fg(color.Red)(p.Error))
		default:
			cmd.Printf("    %s\n", style.Faint(fmt.Sprintf("HTTP %d in %s", p.StatusCode, p.Elapsed.Round(time.Millisecond))))
		}
	}
}
