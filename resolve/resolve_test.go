package resolve

import (
	"errors"
	"fmt"
	"testing"

	"github.com/myselfbbs/vodplay/derive"
	"github.com/myselfbbs/vodplay/detect"
	"github.com/myselfbbs/vodplay/source"
	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
)

func set(pairs ...string) *source.EpisodeSet {
	s := source.NewEpisodeSet()
	for i := 0; i+1 < len(pairs); i += 2 {
		s.Set(pairs[i], source.Text(pairs[i+1]))
	}
	return s
}

func urls(r *Resolution) []string {
	return lo.Map(r.Outcomes, func(o Outcome, _ int) string { return o.URL() })
}

func TestResolve(t *testing.T) {
	Convey("Given an engine with default options", t, func() {
		engine := NewEngine(nil, DefaultOptions())

		Convey("A homogeneous set takes the batch path", func() {
			r, err := engine.Resolve(set("第 01 話", "play/46442/001", "第 02 話", "play/46442/002"), 46442)
			So(err, ShouldBeNil)
			So(r.Path, ShouldEqual, PathBatch)
			So(r.Succeeded(), ShouldEqual, 2)
			So(urls(r), ShouldResemble, []string{
				"https://vpx05.myself-bbs.com/vpx/46442/001/720p.m3u8",
				"https://vpx05.myself-bbs.com/vpx/46442/002/720p.m3u8",
			})
		})

		Convey("A malformed token mid-batch fails alone", func() {
			r, err := engine.Resolve(set("1", "AgADMg4AAvWkAVc", "2", "???", "3", "AgADMg4AAvWkAVd"), 1)
			So(err, ShouldBeNil)
			So(r.Path, ShouldEqual, PathBatch)
			So(r.Succeeded(), ShouldEqual, 2)
			So(r.Outcomes[1].OK(), ShouldBeFalse)
			So(errors.Is(r.Outcomes[1].Err(), derive.ErrMalformedToken), ShouldBeTrue)
		})

		Convey("A mixed set resolves every token on its own", func() {
			r, err := engine.Resolve(set("1", "play/46442/001", "2", "AgADMg4AAvWkAVc"), 46442)
			So(err, ShouldBeNil)
			So(r.Detection.IsMixed, ShouldBeTrue)
			So(r.Path, ShouldEqual, PathPerToken)
			So(urls(r), ShouldResemble, []string{
				"https://vpx05.myself-bbs.com/vpx/46442/001/720p.m3u8",
				"https://vpx05.myself-bbs.com/hls/Mg/4A/Av/AgADMg4AAvWkAVc/index.m3u8",
			})
		})

		Convey("Legacy pairs always use the legacy scheme", func() {
			s := set("1", "play/46442/001")
			s.Set("2", source.Pair("46442", "002"))

			r, err := engine.Resolve(s, 46442)
			So(err, ShouldBeNil)
			So(r.Path, ShouldEqual, PathBatch)
			So(r.Outcomes[1].Shape, ShouldEqual, detect.LegacyPair)
			So(r.Outcomes[1].URL(), ShouldEqual, "https://myself-bbs.jacob.workers.dev/m3u8/46442/002")
		})

		Convey("A set of pairs only takes the legacy path", func() {
			s := source.NewEpisodeSet(source.Episode{Label: "1", Token: source.Pair("7", "001")})
			r, err := engine.Resolve(s, 7)
			So(err, ShouldBeNil)
			So(r.Path, ShouldEqual, PathLegacy)
			So(r.Succeeded(), ShouldEqual, 1)
		})

		Convey("Unrecognized tokens fall back to the legacy path", func() {
			r, err := engine.Resolve(set("第 05 話", "???"), 9)
			So(err, ShouldBeNil)
			So(r.Path, ShouldEqual, PathLegacy)
			So(r.FailClosed, ShouldBeFalse)
			So(r.Succeeded(), ShouldEqual, 0)
			So(errors.Is(r.Outcomes[0].Err(), derive.ErrUnrecognizedShape), ShouldBeTrue)
		})

		Convey("An empty set is an error", func() {
			r, err := engine.Resolve(source.NewEpisodeSet(), 1)
			So(errors.Is(err, ErrEmptyEpisodeSet), ShouldBeTrue)
			So(r.Outcomes, ShouldBeEmpty)

			_, err = engine.Resolve(nil, 1)
			So(errors.Is(err, ErrEmptyEpisodeSet), ShouldBeTrue)
		})
	})

	Convey("Given fallback is disabled", t, func() {
		options := DefaultOptions()
		options.EnableFallback = false
		engine := NewEngine(nil, options)

		Convey("An all-unrecognized set is unresolvable", func() {
			r, err := engine.Resolve(set("1", "???", "2", "!!!"), 1)
			So(errors.Is(err, ErrAllEpisodesUnresolvable), ShouldBeTrue)
			So(r.Outcomes, ShouldHaveLength, 2)
		})

		Convey("Partial failures are not a title-level error", func() {
			_, err := engine.Resolve(set("1", "play/1/001", "2", "play/x/002"), 1)
			So(err, ShouldBeNil)
		})
	})

	Convey("Given the legacy policy is switched off", t, func() {
		options := DefaultOptions()
		options.LegacyOnUnrecognized = false
		engine := NewEngine(nil, options)

		Convey("Unrecognized sets fail closed", func() {
			r, err := engine.Resolve(set("1", "???"), 1)
			So(errors.Is(err, ErrAllEpisodesUnresolvable), ShouldBeTrue)
			So(r.FailClosed, ShouldBeTrue)
			So(r.Path, ShouldEqual, PathPerToken)
		})

		Convey("Pairs alongside garbage still resolve", func() {
			s := set("1", "???")
			s.Set("2", source.Pair("1", "002"))

			r, err := engine.Resolve(s, 1)
			So(err, ShouldBeNil)
			So(r.FailClosed, ShouldBeTrue)
			So(r.Succeeded(), ShouldEqual, 1)
		})
	})

	Convey("Given a quality option", t, func() {
		options := DefaultOptions()
		options.Quality = derive.Quality1080p
		r, err := NewEngine(nil, options).Resolve(set("1", "play/1/001"), 1)
		So(err, ShouldBeNil)
		So(r.Outcomes[0].URL(), ShouldEqual, "https://vpx05.myself-bbs.com/vpx/1/001/1080p.m3u8")
	})

	Convey("Parallel dispatch keeps episode order", t, func() {
		s := source.NewEpisodeSet()
		for i := 1; i <= 50; i++ {
			s.Set(fmt.Sprintf("第 %02d 話", i), source.Text(fmt.Sprintf("play/1/%03d", i)))
		}

		sequential, err := NewEngine(nil, DefaultOptions()).Resolve(s, 1)
		So(err, ShouldBeNil)

		options := DefaultOptions()
		options.Workers = 8
		parallel, err := NewEngine(nil, options).Resolve(s, 1)
		So(err, ShouldBeNil)

		So(urls(parallel), ShouldResemble, urls(sequential))
	})

	Convey("A caching classifier is consulted", t, func() {
		cache, err := detect.NewCache(detect.DefaultCacheSize)
		So(err, ShouldBeNil)
		engine := NewEngine(cache, DefaultOptions())

		first, _ := engine.Resolve(set("1", "play/1/001"), 1)
		second, _ := engine.Resolve(set("1", "play/1/001"), 1)
		So(first.Detection.FromCache, ShouldBeFalse)
		So(second.Detection.FromCache, ShouldBeTrue)
		So(urls(second), ShouldResemble, urls(first))
	})
}
