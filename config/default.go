package config

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
	"text/template"

	"github.com/myselfbbs/vodplay/color"
	"github.com/myselfbbs/vodplay/constant"
	"github.com/myselfbbs/vodplay/key"
	"github.com/myselfbbs/vodplay/style"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// Field is a registered setting with its default value.
type Field struct {
	Key         string
	Value       any
	Description string
}

// Pretty renders the field for `config info`.
func (f *Field) Pretty() string {
	var b strings.Builder
	lo.Must0(prettyTemplate.Execute(&b, f))
	return b.String()
}

// Env returns the environment variable that overrides the field.
func (f *Field) Env() string {
	return strings.ToUpper(constant.App + "_" + EnvKeyReplacer.Replace(f.Key))
}

// Type is the Go type of the default value.
func (f *Field) Type() string {
	if f.Value == nil {
		return "unknown"
	}
	return reflect.TypeOf(f.Value).String()
}

func (f *Field) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any{
		"key":         f.Key,
		"env":         f.Env(),
		"value":       viper.Get(f.Key),
		"default":     f.Value,
		"description": f.Description,
		"type":        f.Type(),
	})
}

// Default holds every registered field by key.
var Default = make(map[string]Field)

// EnvExposed lists the keys bound to environment variables.
var EnvExposed []string

// section registers fields sharing a key prefix.
type section []Field

func register(fields ...section) {
	for _, s := range fields {
		for _, f := range s {
			if _, exists := Default[f.Key]; exists {
				panic("duplicate config key: " + f.Key)
			}
			Default[f.Key] = f
			EnvExposed = append(EnvExposed, f.Key)
		}
	}
}

func init() {
	playback := section{
		{key.PlaybackQuality, "720p", "Manifest quality for path-reference episodes.\nAvailable options are: 720p, 1080p, 480p"},
		{key.PlaybackEnableFallback, true, "Synthesize a best-effort URL from the episode label when derivation fails.\nWhen disabled, failed episodes are omitted"},
		{key.PlaybackLegacyOnUnrecognized, true, "Resolve titles whose tokens match no known shape through the legacy /m3u8 scheme.\nRequires playback.enable_fallback"},
		{key.PlaybackBaseURL, constant.LegacyHost, "Host used for the legacy scheme and for fallback URLs"},
		{key.PlaybackManifestHost, constant.ManifestHost, "Host used for VPX and HLS manifests"},
		{key.PlaybackWorkers, 1, "Number of episodes derived concurrently per title.\n1 resolves sequentially"},
		{key.PlaybackPlayFrom, constant.PlayFrom, "Player identifier attached to every output record"},
	}

	detect := section{
		{key.DetectCacheSize, 100, "Capacity of the format detection LRU cache"},
	}

	metrics := section{
		{key.MetricsPersist, true, "Fold every run into the persisted generation statistics"},
	}

	logs := section{
		{key.LogsWrite, false, "Write logs"},
		{key.LogsLevel, "info", "Available options are: (from less to most verbose)\npanic, fatal, error, warn, info, debug, trace"},
		{key.LogsJson, false, "Use json format for logs"},
	}

	cli := section{
		{key.CliColored, true, "Enable colored CLI output"},
		{key.IconsVariant, "plain", "Icons variant.\nAvailable options are: emoji, plain"},
	}

	register(playback, detect, metrics, logs, cli)
}

// highlight colors a value by its kind.
func highlight(v any) string {
	switch value := v.(type) {
	case bool:
		return style.Fg(lo.Ternary(value, color.Green, color.Red))(fmt.Sprint(value))
	case string:
		return style.Fg(color.Yellow)(fmt.Sprintf("%q", value))
	case int:
		return style.Fg(color.Cyan)(fmt.Sprint(value))
	default:
		return fmt.Sprint(value)
	}
}

var prettyTemplate = lo.Must(template.New("pretty").Funcs(template.FuncMap{
	"faint":  style.Faint,
	"purple": style.Fg(color.Purple),
	"label":  func(s string) string { return style.Fg(color.Blue)(fmt.Sprintf("%-8s", s)) },
	"value":  viper.Get,
	"hl":     highlight,
}).Parse(`{{ purple .Key }} {{ faint (printf "(%s)" .Type) }}
{{ faint .Description }}
{{ label "Env" }} {{ .Env }}
{{ label "Value" }} {{ hl (value .Key) }}
{{ label "Default" }} {{ hl .Value }}`))
