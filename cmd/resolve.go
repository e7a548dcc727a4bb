package cmd

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/invopop/jsonschema"
	"github.com/myselfbbs/vodplay/derive"
	"github.com/myselfbbs/vodplay/detect"
	"github.com/myselfbbs/vodplay/filesystem"
	"github.com/myselfbbs/vodplay/inline"
	"github.com/myselfbbs/vodplay/key"
	"github.com/myselfbbs/vodplay/log"
	"github.com/myselfbbs/vodplay/metrics"
	"github.com/myselfbbs/vodplay/playurl"
	"github.com/myselfbbs/vodplay/resolve"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(resolveCmd)

	resolveCmd.Flags().BoolP("json", "j", false, "Format the command output as a JSON object")
	resolveCmd.Flags().BoolP("diagnostics", "d", false, "Attach detection and resolution details to JSON records")
	resolveCmd.Flags().StringP("title", "t", "", "Criteria for selecting titles")
	resolveCmd.Flags().StringP("episodes", "e", "", "Criteria for selecting episodes of each title")
	resolveCmd.Flags().Bool("omit-empty", false, "Drop titles without playback data")
	resolveCmd.Flags().StringP("output", "o", "", "Specify a file path to write the command output")
	resolveCmd.Flags().BoolP("metrics", "m", false, "Print run metrics in the Prometheus text format to stderr")

	resolveCmd.Flags().StringP("quality", "q", "", "Manifest quality for path-reference episodes")
	lo.Must0(resolveCmd.RegisterFlagCompletionFunc("quality", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return lo.Map(derive.Qualities(), func(q derive.Quality, _ int) string { return q.String() }), cobra.ShellCompDirectiveNoFileComp
	}))
	lo.Must0(viper.BindPFlag(key.PlaybackQuality, resolveCmd.Flags().Lookup("quality")))

	resolveCmd.Flags().IntP("workers", "w", 0, "Number of episodes derived concurrently per title")
	lo.Must0(viper.BindPFlag(key.PlaybackWorkers, resolveCmd.Flags().Lookup("workers")))

	resolveCmd.Flags().Bool("no-fallback", false, "Omit failed episodes instead of synthesizing fallback URLs")
	resolveCmd.Flags().Bool("strict", false, "Fail titles whose tokens are all unrecognized instead of using the legacy scheme")
}

// resolveCmd converts scraped records into playback records.
var resolveCmd = &cobra.Command{
	Use:   "resolve [files...]",
	Short: "Build CMS10 playback strings from scraped title records",
	Long: `Read scraped title records and build the vod_play_url of every title.

Records may be a bare array or wrapped as {data:[...]}, {data:{data:[...]}} or {list:[...]}.
Several files are merged, keeping the first record of each id. Without files, stdin is read.

Title selectors:
  all - every title
  first - first title
  last - last title
  id:[id] - the title with the given id
  @[substring]@ - titles whose name contains the substring

Episode selectors:
  all - every episode
  first - first episode
  last - last episode
  [number] - select episode by index (starting from 0)
  [from]-[to] - select episodes by range
  @[substring]@ - select episodes by label substring`,
	Example: "vodplay resolve airing.json completed.json -j -d",
	Run: func(cmd *cobra.Command, args []string) {
		titles, err := readTitles(args)
		handleErr(err)

		options := resolve.OptionsFromConfig()
		if lo.Must(cmd.Flags().GetBool("no-fallback")) {
			options.EnableFallback = false
		}
		if lo.Must(cmd.Flags().GetBool("strict")) {
			options.LegacyOnUnrecognized = false
		}

		cache := newDetectionCache()
		registry := prometheus.NewRegistry()
		registry.MustRegister(metrics.NewCacheCollector(cache))
		recorder := &metrics.Recorder{}

		builder := playurl.NewBuilder(
			resolve.NewEngine(cache, options),
			playurl.NewComposer(options, metrics.New(registry), recorder),
		)

		var writer io.Writer = os.Stdout
		if output := lo.Must(cmd.Flags().GetString("output")); output != "" {
			file, err := filesystem.API().Create(output)
			handleErr(err)
			defer file.Close()
			writer = file
		}

		titlesPicker := mo.None[inline.TitlesPicker]()
		if flag := lo.Must(cmd.Flags().GetString("title")); flag != "" {
			fn, err := inline.ParseTitlesPicker(flag)
			handleErr(err)
			titlesPicker = mo.Some(fn)
		}

		episodesFilter := mo.None[inline.EpisodesFilter]()
		if flag := lo.Must(cmd.Flags().GetString("episodes")); flag != "" {
			fn, err := inline.ParseEpisodesFilter(flag)
			handleErr(err)
			episodesFilter = mo.Some(fn)
		}

		handleErr(inline.Run(&inline.Options{
			Out:            writer,
			Titles:         titles,
			Builder:        builder,
			PlayFrom:       viper.GetString(key.PlaybackPlayFrom),
			Json:           lo.Must(cmd.Flags().GetBool("json")),
			Diagnostics:    lo.Must(cmd.Flags().GetBool("diagnostics")),
			OmitEmpty:      lo.Must(cmd.Flags().GetBool("omit-empty")),
			TitlesPicker:   titlesPicker,
			EpisodesFilter: episodesFilter,
		}))

		if viper.GetBool(key.MetricsPersist) {
			if _, err := metrics.DefaultStore().Merge(recorder.Tally()); err != nil {
				log.Warnf("failed to persist statistics: %s", err)
			}
		}

		if lo.Must(cmd.Flags().GetBool("metrics")) {
			handleErr(metrics.Write(os.Stderr, registry))
		}
	},
}

func init() {
	resolveCmd.AddCommand(resolveSchemaCmd)

	resolveSchemaCmd.Flags().BoolP("report", "r", false, "Generate the JSON Schema for detection reports")
}

// resolveSchemaCmd generates JSON schemas for structured outputs.
var resolveSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Generate JSON schemas for structured outputs",
	Run: func(cmd *cobra.Command, args []string) {
		reflector := new(jsonschema.Reflector)
		reflector.Anonymous = true
		reflector.Namer = func(t reflect.Type) string {
			name := t.Name()
			switch strings.ToLower(name) {
			case "output", "record", "report", "result":
				return filepath.Base(t.PkgPath()) + "." + name
			}

			return name
		}

		var schema *jsonschema.Schema

		switch {
		case lo.Must(cmd.Flags().GetBool("report")):
			schema = reflector.Reflect([]*titleReport{})
		default:
			schema = reflector.Reflect(&inline.Output{})
		}

		handleErr(json.NewEncoder(os.Stdout).Encode(schema))
	},
}

// titleReport is one entry of the detect command output.
type titleReport struct {
	ID     int           `json:"vod_id"`
	Name   string        `json:"vod_name"`
	Report detect.Report `json:"report"`
}
