package util

import (
	"math"
	"testing"

	"github.com/myselfbbs/vodplay/filesystem"
	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
)

func TestFirstDigits(t *testing.T) {
	Convey("FirstDigits", t, func() {
		Convey("Should find the first digit run", func() {
			d, ok := FirstDigits("第 05 話 第2部")
			So(ok, ShouldBeTrue)
			So(d, ShouldEqual, "05")
		})
		Convey("Should report absence", func() {
			_, ok := FirstDigits("特別篇")
			So(ok, ShouldBeFalse)
		})
	})
}

func TestEpisodeNumber(t *testing.T) {
	Convey("EpisodeNumber", t, func() {
		So(EpisodeNumber("第 01 話"), ShouldEqual, 1)
		So(EpisodeNumber("第 10 話 海的那邊"), ShouldEqual, 10)
		So(EpisodeNumber("OVA"), ShouldEqual, 0)
		So(EpisodeNumber(""), ShouldEqual, 0)
		So(EpisodeNumber("ep 99999999999999999999999"), ShouldEqual, math.MaxInt)
	})
}

func TestPadLeft(t *testing.T) {
	Convey("PadLeft", t, func() {
		So(PadLeft("5", 3), ShouldEqual, "005")
		So(PadLeft("05", 3), ShouldEqual, "005")
		So(PadLeft("1234", 3), ShouldEqual, "1234")
	})
}

func TestQuantify(t *testing.T) {
	Convey("Quantify", t, func() {
		So(Quantify(1, "episode", "episodes"), ShouldEqual, "1 episode")
		So(Quantify(2, "episode", "episodes"), ShouldEqual, "2 episodes")
	})
}

func TestCapitalize(t *testing.T) {
	Convey("Capitalize", t, func() {
		So(Capitalize("hello"), ShouldEqual, "Hello")
		So(Capitalize(""), ShouldEqual, "")
	})
}

func TestPercent(t *testing.T) {
	Convey("Percent", t, func() {
		So(Percent(0.5), ShouldEqual, "50.0%")
		So(Percent(1), ShouldEqual, "100.0%")
	})
}

func TestDelete(t *testing.T) {
	Convey("Delete", t, func() {
		filesystem.SetMemMapFs()
		lo.Must0(filesystem.API().MkdirAll("/tmp/vodplay/dir", 0o755))
		lo.Must0(filesystem.API().WriteFile("/tmp/vodplay/dir/a.json", []byte("{}"), 0o644))

		So(Delete("/tmp/vodplay/dir"), ShouldBeNil)
		exists, err := filesystem.API().Exists("/tmp/vodplay/dir")
		So(err, ShouldBeNil)
		So(exists, ShouldBeFalse)

		So(Delete("/tmp/vodplay/missing"), ShouldNotBeNil)
	})
}
