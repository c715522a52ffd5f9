package mobilestore

import (
	"errors"
	"testing"

	"github.com/smartystreets/goconvey/convey"
)

func sampleDetails() DetailMap {
	return DetailMap{
		"manufacturer": "Acme",
		"priceusd":     "$449.99 (about EUR 410)",
		"description":  "The Acme X1 isn't just fast.",
		"rearcamera":   "48 MP + 5 MP",
		"frontcamera":  "25 MP",
		"body":         map[string]string{"dimensions": "157.5 x 74.7 x 7.6 mm"},
		"display":      map[string]string{"size": "6.39 inches"},
		"platform":     map[string]string{"os": "Android 9.0", "chipset": "Snapdragon 855"},
		"memory":       map[string]string{"internal": "128 GB"},
		"maincamera":   map[string]string{"features": "Dual-LED flash, HDR"},
		"battery":      map[string]string{"": "Li-Po 3300 mAh"},
		"features":     map[string]string{"sensors": "Fingerprint, accelerometer"},
	}
}

func TestAssemble(t *testing.T) {
	assembler := NewAssembler(AssemblerWithStockEstimator(func() int { return 42 }))

	convey.Convey("test the full record mapping", t, func() {
		record, err := assembler.Assemble("Acme X1", sampleDetails())
		convey.So(err, convey.ShouldBeNil)
		convey.So(record.Model, convey.ShouldEqual, "Acme X1")
		convey.So(record.Manufacturer, convey.ShouldEqual, "Acme")
		convey.So(record.Price.String(), convey.ShouldEqual, "449.99")
		convey.So(record.Description, convey.ShouldEqual, "The Acme X1 isn''t just fast.")
		convey.So(record.Battery, convey.ShouldEqual, "Li-Po 3300 mAh")
		convey.So(record.Features, convey.ShouldEqual, "Fingerprint, accelerometer")
		convey.So(record.Specs.Body, convey.ShouldEqual, "157.5 x 74.7 x 7.6 mm")
		convey.So(record.Specs.Display, convey.ShouldEqual, "6.39 inches")
		convey.So(record.Specs.Platform, convey.ShouldEqual, "Android 9.0")
		convey.So(record.Specs.Chipset, convey.ShouldEqual, "Snapdragon 855")
		convey.So(record.Specs.Memory, convey.ShouldEqual, "128 GB")
		convey.So(record.Specs.Camera.Main, convey.ShouldEqual, "48 MP + 5 MP")
		convey.So(record.Specs.Camera.Selfie, convey.ShouldEqual, "25 MP")
		convey.So(record.Specs.Camera.Features, convey.ShouldEqual, "Dual-LED flash, HDR")
		convey.So(record.Stock, convey.ShouldEqual, 42)
		convey.So(record.Image, convey.ShouldEqual, "")
	})

	convey.Convey("test required fields", t, func() {
		missing := &MissingFieldError{}

		details := sampleDetails()
		delete(details, "manufacturer")
		_, err := assembler.Assemble("Acme X1", details)
		convey.So(errors.As(err, &missing), convey.ShouldBeTrue)
		convey.So(missing.Field, convey.ShouldEqual, "manufacturer")

		details = sampleDetails()
		delete(details, "priceusd")
		_, err = assembler.Assemble("Acme X1", details)
		convey.So(errors.As(err, &missing), convey.ShouldBeTrue)
		convey.So(missing.Field, convey.ShouldEqual, "price")

		_, err = assembler.Assemble("", sampleDetails())
		convey.So(errors.As(err, &missing), convey.ShouldBeTrue)
		convey.So(missing.Field, convey.ShouldEqual, "model")
	})

	convey.Convey("test a price without a dollar token", t, func() {
		details := sampleDetails()
		details["priceusd"] = "449.99 EUR"
		_, err := assembler.Assemble("Acme X1", details)
		convey.So(errors.Is(err, ErrParse), convey.ShouldBeTrue)
	})

	convey.Convey("test the info alias of description", t, func() {
		details := sampleDetails()
		delete(details, "description")
		details["info"] = "older pages call it info"
		record, err := assembler.Assemble("Acme X1", details)
		convey.So(err, convey.ShouldBeNil)
		convey.So(record.Description, convey.ShouldEqual, "older pages call it info")
	})

	convey.Convey("test optional fields may be absent", t, func() {
		record, err := assembler.Assemble("Acme X1", DetailMap{
			"manufacturer": "Acme",
			"priceusd":     "$99.99",
		})
		convey.So(err, convey.ShouldBeNil)
		convey.So(record.Description, convey.ShouldEqual, "")
		convey.So(record.Specs.Body, convey.ShouldEqual, "")
		convey.So(record.Stock, convey.ShouldEqual, 42)
	})
}

func TestRandomStock(t *testing.T) {
	convey.Convey("test the placeholder stock stays within [1,100]", t, func() {
		for i := 0; i < 500; i++ {
			stock := RandomStock()
			convey.So(stock, convey.ShouldBeBetweenOrEqual, 1, 100)
		}
	})
}
