package resolve

import (
	"testing"

	"github.com/myselfbbs/vodplay/derive"
	"github.com/myselfbbs/vodplay/key"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func TestOptionsFromConfig(t *testing.T) {
	Convey("OptionsFromConfig", t, func() {
		defer viper.Reset()

		viper.Set(key.PlaybackQuality, "1080p")
		viper.Set(key.PlaybackEnableFallback, false)
		viper.Set(key.PlaybackLegacyOnUnrecognized, true)
		viper.Set(key.PlaybackBaseURL, "https://legacy.example.com")
		viper.Set(key.PlaybackManifestHost, "https://manifest.example.com")
		viper.Set(key.PlaybackWorkers, 4)

		options := OptionsFromConfig()
		So(options.Quality, ShouldEqual, derive.Quality1080p)
		So(options.EnableFallback, ShouldBeFalse)
		So(options.Workers, ShouldEqual, 4)

		deriver := options.Deriver()
		So(deriver.LegacyHost, ShouldEqual, "https://legacy.example.com")
		So(deriver.ManifestHost, ShouldEqual, "https://manifest.example.com")

		Convey("An unsupported quality becomes the default", func() {
			viper.Set(key.PlaybackQuality, "4k")
			So(OptionsFromConfig().Quality, ShouldEqual, derive.DefaultQuality)
		})
	})
}
