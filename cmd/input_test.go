package cmd

import (
	"testing"

	"github.com/myselfbbs/vodplay/filesystem"
	"github.com/myselfbbs/vodplay/key"
	"github.com/myselfbbs/vodplay/source"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestReadTitles(t *testing.T) {
	Convey("Given two record files sharing a title id", t, func() {
		So(filesystem.API().WriteFile("/airing.json", []byte(`{"data":[
			{"id":46442,"title":"Airing","episodes":{"第 01 話":"play/46442/001"}},
			{"id":"7","title":"Seven","episodes":{}}
		]}`), 0o644), ShouldBeNil)
		So(filesystem.API().WriteFile("/completed.json", []byte(`[
			{"id":46442,"title":"Duplicate","episodes":{}},
			{"id":9,"title":"Nine","episodes":{"第 05 話":"???"}}
		]`), 0o644), ShouldBeNil)

		Convey("Records are merged keeping the first of each id", func() {
			titles, err := readTitles([]string{"/airing.json", "/completed.json"})
			So(err, ShouldBeNil)
			So(titles, ShouldHaveLength, 3)
			So(titles[0].Name, ShouldEqual, "Airing")
			So(titles[1].ID, ShouldEqual, source.ID(7))
			So(titles[2].Name, ShouldEqual, "Nine")
		})

		Convey("A missing file is reported with its path", func() {
			_, err := readTitles([]string{"/missing.json"})
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "/missing.json")
		})
	})
}

func TestParseValue(t *testing.T) {
	Convey("Values are converted to the type of the default", t, func() {
		v, err := parseValue(key.PlaybackWorkers, []string{"4"})
		So(err, ShouldBeNil)
		So(v, ShouldEqual, 4)

		v, err = parseValue(key.PlaybackEnableFallback, []string{"false"})
		So(err, ShouldBeNil)
		So(v, ShouldEqual, false)

		v, err = parseValue(key.PlaybackQuality, []string{"1080p"})
		So(err, ShouldBeNil)
		So(v, ShouldEqual, "1080p")

		_, err = parseValue(key.DetectCacheSize, []string{"many"})
		So(err, ShouldNotBeNil)
	})
}
