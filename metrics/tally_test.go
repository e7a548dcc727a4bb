package metrics

import (
	"path/filepath"
	"testing"

	"github.com/myselfbbs/vodplay/filesystem"
	"github.com/myselfbbs/vodplay/resolve"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestRecorder(t *testing.T) {
	Convey("Given a recorder observing compositions", t, func() {
		rec := &Recorder{}
		b := builder(resolve.DefaultOptions(), rec)

		_, _ = b.Build(set("1", "play/1/001", "2", "AgADMg4AAvWkAVc"), 1)
		_, _ = b.Build(set("1", "???"), 2)

		tally := rec.Tally()

		Convey("Totals add up", func() {
			So(tally.Titles, ShouldEqual, 2)
			So(tally.Total, ShouldEqual, 3)
			So(tally.Successful, ShouldEqual, 2)
			So(tally.Failed, ShouldEqual, 1)
			So(tally.Fallbacks, ShouldEqual, 1)
		})

		Convey("Shapes are broken down", func() {
			So(tally.ByShape["play_path"], ShouldResemble, ShapeTally{Total: 1, Successful: 1})
			So(tally.ByShape["encoded_id"], ShouldResemble, ShapeTally{Total: 1, Successful: 1})
			So(tally.ByShape["legacy_pair"], ShouldResemble, ShapeTally{Total: 1})
		})

		Convey("The returned tally is a copy", func() {
			tally.ByShape["play_path"] = ShapeTally{}
			So(rec.Tally().ByShape["play_path"].Total, ShouldEqual, 1)
		})
	})
}

func TestStore(t *testing.T) {
	Convey("Given an empty store", t, func() {
		path := filepath.Join(t.TempDir(), "stats.json")
		store := NewStore(path)

		tally, err := store.Load()
		So(err, ShouldBeNil)
		So(tally.Total, ShouldEqual, 0)

		Convey("Merges accumulate across store instances", func() {
			_, err := store.Merge(Tally{Titles: 1, Total: 4, Successful: 3, Failed: 1,
				ByShape: map[string]ShapeTally{"play_path": {Total: 4, Successful: 3}}})
			So(err, ShouldBeNil)

			merged, err := NewStore(path).Merge(Tally{Titles: 1, Total: 1, Successful: 1,
				ByShape: map[string]ShapeTally{"play_path": {Total: 1, Successful: 1}}})
			So(err, ShouldBeNil)
			So(merged.Total, ShouldEqual, 5)
			So(merged.SuccessRate(), ShouldEqual, 0.8)
			So(merged.ByShape["play_path"].Successful, ShouldEqual, 4)

			Convey("Reset clears it", func() {
				So(store.Reset(), ShouldBeNil)
				tally, err := NewStore(path).Load()
				So(err, ShouldBeNil)
				So(tally.Total, ShouldEqual, 0)
			})
		})
	})
}
