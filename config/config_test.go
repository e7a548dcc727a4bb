package config

import (
	"encoding/json"
	"testing"

	"github.com/myselfbbs/vodplay/filesystem"
	"github.com/myselfbbs/vodplay/key"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestSetup(t *testing.T) {
	Convey("Config Setup", t, func() {
		Convey("Should initialize without error", func() {
			So(Setup(), ShouldBeNil)
		})

		Convey("Should have default values populated", func() {
			_ = Setup()
			for name := range Default {
				So(viper.Get(name), ShouldNotBeNil)
			}
			So(viper.GetString(key.PlaybackQuality), ShouldEqual, "720p")
			So(viper.GetInt(key.DetectCacheSize), ShouldEqual, 100)
			So(viper.GetBool(key.PlaybackEnableFallback), ShouldBeTrue)
		})

		Convey("EnvKeyReplacer should convert dots to underscores", func() {
			So(EnvKeyReplacer.Replace("playback.enable_fallback"), ShouldEqual, "playback_enable_fallback")
		})
	})
}

func TestField(t *testing.T) {
	Convey("Given a registered field", t, func() {
		f := Default[key.PlaybackQuality]

		Convey("Env is prefixed", func() {
			So(f.Env(), ShouldEqual, "VODPLAY_PLAYBACK_QUALITY")
		})

		Convey("JSON carries the type and default", func() {
			data, err := json.Marshal(&f)
			So(err, ShouldBeNil)

			var decoded map[string]any
			So(json.Unmarshal(data, &decoded), ShouldBeNil)
			So(decoded["type"], ShouldEqual, "string")
			So(decoded["default"], ShouldEqual, "720p")
		})

		Convey("Pretty renders the key", func() {
			So(f.Pretty(), ShouldContainSubstring, key.PlaybackQuality)
		})
	})
}
