package detect

import (
	"testing"

	"github.com/myselfbbs/vodplay/source"
	. "github.com/smartystreets/goconvey/convey"
)

func set(pairs ...string) *source.EpisodeSet {
	s := source.NewEpisodeSet()
	for i := 0; i+1 < len(pairs); i += 2 {
		s.Set(pairs[i], source.Text(pairs[i+1]))
	}
	return s
}

func TestClassifySet(t *testing.T) {
	Convey("ClassifySet", t, func() {
		Convey("Homogeneous path references", func() {
			result := ClassifySet(set("第 01 話", "play/1/001", "第 02 話", "play/1/002"))
			So(result.Dominant, ShouldEqual, PathReference)
			So(result.Confidence, ShouldEqual, 1.0)
			So(result.IsMixed, ShouldBeFalse)
			So(result.HasUnknown, ShouldBeFalse)
			So(result.Breakdown, ShouldHaveLength, 2)
			So(result.Homogeneous(), ShouldBeTrue)
		})

		Convey("Unknown tokens lower confidence without changing the dominant shape", func() {
			result := ClassifySet(set("1", "AgADMg4AAvWkAVc", "2", "AgADMg4AAvWkAVd", "3", "???", "4", "!!!"))
			So(result.Dominant, ShouldEqual, OpaqueIdentifier)
			So(result.Confidence, ShouldEqual, 0.5)
			So(result.HasUnknown, ShouldBeTrue)
			So(result.Valid, ShouldEqual, 2)
		})

		Convey("Mixed sets have no dominant shape", func() {
			result := ClassifySet(set("1", "play/1/001", "2", "AgADMg4AAvWkAVc"))
			So(result.Dominant, ShouldEqual, Unrecognized)
			So(result.IsMixed, ShouldBeTrue)
			So(result.Confidence, ShouldEqual, 0)
			So(result.Breakdown[0].Shape, ShouldEqual, PathReference)
			So(result.Breakdown[1].Shape, ShouldEqual, OpaqueIdentifier)
		})

		Convey("Only unrecognized tokens", func() {
			result := ClassifySet(set("1", "???"))
			So(result.Dominant, ShouldEqual, Unrecognized)
			So(result.IsMixed, ShouldBeFalse)
			So(result.Confidence, ShouldEqual, 0)
		})

		Convey("Legacy pairs are counted apart and never make a set mixed", func() {
			s := set("1", "play/1/001")
			s.Set("2", source.Pair("1", "002"))
			result := ClassifySet(s)
			So(result.Dominant, ShouldEqual, PathReference)
			So(result.Counts.LegacyPair, ShouldEqual, 1)
			So(result.Confidence, ShouldEqual, 0.5)
			So(result.IsMixed, ShouldBeFalse)
		})

		Convey("Empty and nil sets", func() {
			for _, s := range []*source.EpisodeSet{nil, source.NewEpisodeSet()} {
				result := ClassifySet(s)
				So(result.Dominant, ShouldEqual, Unrecognized)
				So(result.Total, ShouldEqual, 0)
				So(result.Confidence, ShouldEqual, 0)
			}
		})
	})
}
