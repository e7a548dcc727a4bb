package derive

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestCheck(t *testing.T) {
	Convey("Check", t, func() {
		Convey("Accepts every derived layout", func() {
			vpx, _ := Default.PathReference("play/46442/001", Quality720p)
			hls, _ := Default.OpaqueIdentifier("AgADMg4AAvWkAVc")
			legacy, _ := Default.LegacyPair("46442", "001")

			for url, layout := range map[string]Layout{
				vpx:                          LayoutVPX,
				hls:                          LayoutHLS,
				legacy:                       LayoutLegacy,
				Default.Fallback("第 1 話", 9): LayoutLegacy,
			} {
				check := Default.Check(url)
				So(check.Valid, ShouldBeTrue)
				So(check.Layout, ShouldEqual, layout)
			}
		})

		Convey("Rejects bad urls", func() {
			check := Default.Check("http://vpx05.myself-bbs.com/vpx/1/2/4k.m3u8")
			So(check.Valid, ShouldBeFalse)
			So(check.Layout, ShouldEqual, LayoutVPX)
			So(check.Errors, ShouldHaveLength, 2)

			check = Default.Check("https://example.com/hls/Mg/4A/Av/AgADMg4AAvWkAVc/index.m3u8")
			So(check.Valid, ShouldBeFalse)
			So(check.Layout, ShouldEqual, LayoutHLS)

			check = Default.Check("https://vpx05.myself-bbs.com/other")
			So(check.Valid, ShouldBeFalse)
			So(check.Layout, ShouldEqual, LayoutUnknown)

			So(Default.Check("").Valid, ShouldBeFalse)
			So(Default.Check("://nope").Valid, ShouldBeFalse)
		})
	})
}
