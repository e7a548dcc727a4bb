package source

import (
	"encoding/json"
	"testing"

	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
)

func labels(s *EpisodeSet) []string {
	return lo.Map(s.Episodes(), func(e Episode, _ int) string { return e.Label })
}

func TestEpisodeSet(t *testing.T) {
	Convey("Given an episode set", t, func() {
		set := NewEpisodeSet(
			Episode{Label: "第 02 話", Token: Text("play/1/002")},
			Episode{Label: "第 01 話", Token: Text("play/1/001")},
		)

		Convey("Insertion order is kept", func() {
			So(labels(set), ShouldResemble, []string{"第 02 話", "第 01 話"})
		})

		Convey("Replacing a label keeps its position", func() {
			set.Set("第 02 話", Text("play/1/999"))
			So(labels(set), ShouldResemble, []string{"第 02 話", "第 01 話"})

			token, ok := set.Get("第 02 話")
			So(ok, ShouldBeTrue)
			So(token.Text, ShouldEqual, "play/1/999")
		})
	})

	Convey("A nil set is empty", t, func() {
		var set *EpisodeSet
		So(set.Len(), ShouldEqual, 0)
		So(set.Episodes(), ShouldBeEmpty)
		So(set.Malformed(), ShouldBeFalse)
	})

	Convey("Decoding an episode set", t, func() {
		Convey("Object order is preserved", func() {
			var set EpisodeSet
			err := json.Unmarshal([]byte(`{"第 10 話":"a","第 02 話":["1","2"],"第 01 話":5}`), &set)
			So(err, ShouldBeNil)
			So(labels(&set), ShouldResemble, []string{"第 10 話", "第 02 話", "第 01 話"})

			kinds := lo.Map(set.Episodes(), func(e Episode, _ int) TokenKind { return e.Token.Kind })
			So(kinds, ShouldResemble, []TokenKind{KindText, KindPair, KindInvalid})
		})

		Convey("null is empty", func() {
			var set EpisodeSet
			So(json.Unmarshal([]byte(`null`), &set), ShouldBeNil)
			So(set.Len(), ShouldEqual, 0)
			So(set.Malformed(), ShouldBeFalse)
		})

		Convey("A non-object is empty and malformed", func() {
			var set EpisodeSet
			So(json.Unmarshal([]byte(`["play/1/1"]`), &set), ShouldBeNil)
			So(set.Len(), ShouldEqual, 0)
			So(set.Malformed(), ShouldBeTrue)
		})
	})

	Convey("Encoding keeps insertion order", t, func() {
		set := NewEpisodeSet(
			Episode{Label: "b", Token: Text("x")},
			Episode{Label: "a", Token: Pair("1", "2")},
		)
		data, err := json.Marshal(set)
		So(err, ShouldBeNil)
		So(string(data), ShouldEqual, `{"b":"x","a":["1","2"]}`)
	})
}
