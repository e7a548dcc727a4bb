package filesystem

import (
	"io"
	"os"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestApi(t *testing.T) {
	Convey("Filesystem API", t, func() {
		Convey("Should default to OsFs", func() {
			SetOsFs()
			So(API().Name(), ShouldEqual, "OsFs")
		})

		Convey("Should switch to MemMapFs", func() {
			SetMemMapFs()
			So(API().Name(), ShouldEqual, "MemMapFS")
		})
	})
}

func TestOpenInput(t *testing.T) {
	Convey("OpenInput", t, func() {
		SetMemMapFs()

		Convey("Should read files from the active backend", func() {
			So(API().WriteFile("/records.json", []byte(`[]`), 0o644), ShouldBeNil)

			r, err := OpenInput("/records.json")
			So(err, ShouldBeNil)
			defer r.Close()

			data, err := io.ReadAll(r)
			So(err, ShouldBeNil)
			So(string(data), ShouldEqual, "[]")
		})

		Convey("Should fail for missing files", func() {
			_, err := OpenInput("/missing.json")
			So(err, ShouldNotBeNil)
		})

		Convey("Should map the dash to stdin", func() {
			r, err := OpenInput(Stdin)
			So(err, ShouldBeNil)
			So(r, ShouldNotBeNil)
		})
	})
}

func TestGacheFs(t *testing.T) {
	Convey("GacheFs", t, func() {
		SetMemMapFs()
		var fs GacheFs

		So(fs.MkdirAll("/cache/vodplay", os.ModePerm), ShouldBeNil)
		f, err := fs.OpenFile("/cache/vodplay/stats.json", os.O_CREATE|os.O_RDWR, 0o644)
		So(err, ShouldBeNil)
		_, err = f.Write([]byte("{}"))
		So(err, ShouldBeNil)
		So(f.Close(), ShouldBeNil)

		exists, err := API().Exists("/cache/vodplay/stats.json")
		So(err, ShouldBeNil)
		So(exists, ShouldBeTrue)
	})
}
