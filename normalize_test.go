package mobilestore

import (
	"errors"
	"testing"

	"github.com/smartystreets/goconvey/convey"
)

func TestMinify(t *testing.T) {
	convey.Convey("test minify section headers", t, func() {
		convey.So(Minify("Price (USD)"), convey.ShouldEqual, "priceusd")
		convey.So(Minify("Main Camera"), convey.ShouldEqual, "maincamera")
		convey.So(Minify("  DISPLAY \t"), convey.ShouldEqual, "display")
		convey.So(Minify(""), convey.ShouldEqual, "")
	})
}

func TestClean(t *testing.T) {
	convey.Convey("test clean scraped values", t, func() {
		convey.So(Clean("  6.39\tinches,\n 100.2 cm2  "), convey.ShouldEqual, "6.39 inches, 100.2 cm2")
		convey.So(Clean("- Fast battery charging"), convey.ShouldEqual, "Fast battery charging")
		convey.So(Clean("-48 MP rear camera"), convey.ShouldEqual, "48 MP rear camera")
		// one bullet marker per pass, the inner one survives
		convey.So(Clean("- -x"), convey.ShouldEqual, "-x")
	})
	convey.Convey("test clean is idempotent", t, func() {
		inputs := []string{
			"  6.39\tinches,\n 100.2 cm2  ",
			"- Fast battery charging",
			"Octa-core (2x2.84 GHz)",
			"",
			"   ",
		}
		for _, s := range inputs {
			once := Clean(s)
			convey.So(Clean(once), convey.ShouldEqual, once)
		}
	})
}

func TestExtractPrice(t *testing.T) {
	convey.Convey("test price extraction", t, func() {
		price, err := ExtractPrice("$449.99 (about EUR 410)")
		convey.So(err, convey.ShouldBeNil)
		convey.So(price.String(), convey.ShouldEqual, "449.99")

		price, err = ExtractPrice("price: $300")
		convey.So(err, convey.ShouldBeNil)
		convey.So(price.String(), convey.ShouldEqual, "300")
	})
	convey.Convey("test price extraction failure", t, func() {
		_, err := ExtractPrice("449.99 EUR")
		convey.So(errors.Is(err, ErrParse), convey.ShouldBeTrue)

		_, err = ExtractPrice("")
		convey.So(errors.Is(err, ErrParse), convey.ShouldBeTrue)
	})
}

func TestSplitCameraSpec(t *testing.T) {
	convey.Convey("test camera spec split", t, func() {
		convey.So(
			SplitCameraSpec("48 MP + 5 MP dual rear camera with flash"),
			convey.ShouldEqual, "48 MP + 5 MP",
		)
		convey.So(SplitCameraSpec("Front Camera: 25 MP"), convey.ShouldEqual, "Front Camera: 25 MP")
		convey.So(SplitCameraSpec("no megapixels here"), convey.ShouldEqual, "no megapixels here")
	})
}

func TestEscapeQuotes(t *testing.T) {
	convey.Convey("test quote escaping", t, func() {
		convey.So(EscapeQuotes("the phone's screen"), convey.ShouldEqual, "the phone''s screen")
		convey.So(EscapeQuotes("plain text"), convey.ShouldEqual, "plain text")
	})
}
