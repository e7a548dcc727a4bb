package resolve

import (
	"github.com/myselfbbs/vodplay/constant"
	"github.com/myselfbbs/vodplay/derive"
	"github.com/myselfbbs/vodplay/key"
	"github.com/myselfbbs/vodplay/log"
	"github.com/spf13/viper"
)

// Options control how a title's episodes are resolved and composed.
type Options struct {
	// Quality of VPX manifests.
	Quality derive.Quality
	// EnableFallback synthesizes a URL for episodes that fail to derive.
	// When false those episodes are omitted.
	EnableFallback bool
	// LegacyOnUnrecognized sends sets whose string tokens are all
	// unrecognized through the legacy scheme instead of failing them.
	// It only applies when EnableFallback is set.
	LegacyOnUnrecognized bool
	// BaseURL is the host of the legacy scheme and of fallback URLs.
	BaseURL string
	// ManifestHost is the host of VPX and HLS manifests.
	ManifestHost string
	// Workers bounds parallel derivation per title; 1 or less is sequential.
	Workers int
}

// DefaultOptions returns the built-in defaults.
func DefaultOptions() Options {
	return Options{
		Quality:              derive.DefaultQuality,
		EnableFallback:       true,
		LegacyOnUnrecognized: true,
		BaseURL:              constant.LegacyHost,
		ManifestHost:         constant.ManifestHost,
		Workers:              1,
	}
}

// OptionsFromConfig reads options from the global configuration.
func OptionsFromConfig() Options {
	quality, ok := derive.ParseQuality(viper.GetString(key.PlaybackQuality))
	if !ok {
		log.Warnf("unsupported %s %q, using %s", key.PlaybackQuality, viper.GetString(key.PlaybackQuality), quality)
	}

	return Options{
		Quality:              quality,
		EnableFallback:       viper.GetBool(key.PlaybackEnableFallback),
		LegacyOnUnrecognized: viper.GetBool(key.PlaybackLegacyOnUnrecognized),
		BaseURL:              viper.GetString(key.PlaybackBaseURL),
		ManifestHost:         viper.GetString(key.PlaybackManifestHost),
		Workers:              viper.GetInt(key.PlaybackWorkers),
	}
}

// Deriver returns the URL deriver for these options.
func (o Options) Deriver() derive.Deriver {
	return derive.New(o.ManifestHost, o.BaseURL)
}
