package source

import (
	"encoding/json"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestToken(t *testing.T) {
	Convey("Decoding tokens", t, func() {
		decode := func(s string) Token {
			var token Token
			So(json.Unmarshal([]byte(s), &token), ShouldBeNil)
			return token
		}

		Convey("A string becomes a text token", func() {
			token := decode(`"play/46442/001"`)
			So(token.Kind, ShouldEqual, KindText)
			So(token.Text, ShouldEqual, "play/46442/001")
		})

		Convey("A two-element array becomes a pair", func() {
			token := decode(`["46442", "001"]`)
			So(token.Kind, ShouldEqual, KindPair)
			So(token.Pair, ShouldResemble, [2]string{"46442", "001"})
		})

		Convey("Numeric pair elements keep their digits", func() {
			token := decode(`[46442, 1]`)
			So(token.Kind, ShouldEqual, KindPair)
			So(token.Pair, ShouldResemble, [2]string{"46442", "1"})
		})

		Convey("Anything else is invalid but preserved", func() {
			for _, raw := range []string{`42`, `null`, `["only"]`, `{"a":1}`, `[{}, {}]`} {
				token := decode(raw)
				So(token.Kind, ShouldEqual, KindInvalid)
				So(token.String(), ShouldEqual, raw)
			}
		})
	})

	Convey("Encoding tokens", t, func() {
		data, err := json.Marshal(Pair("1", "2"))
		So(err, ShouldBeNil)
		So(string(data), ShouldEqual, `["1","2"]`)

		data, err = json.Marshal(Text("abc"))
		So(err, ShouldBeNil)
		So(string(data), ShouldEqual, `"abc"`)

		data, err = json.Marshal(Token{})
		So(err, ShouldBeNil)
		So(string(data), ShouldEqual, `null`)
	})
}
