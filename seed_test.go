package mobilestore

import (
	"context"
	"errors"
	"testing"

	"github.com/smartystreets/goconvey/convey"
	"github.com/spf13/afero"
)

var seedFixture = []byte(`[
 {
  "model": "Acme P30",
  "img": "img/acmep30.jpg",
  "company": "Acme",
  "price": 599.99,
  "info": "Acme's finest.",
  "specs": {
   "body": "149.1 x 71.4 x 7.6 mm",
   "display": "6.1 inches",
   "platform": "Android 9.0",
   "chipset": "Kirin 980",
   "memory": "128 GB"
  }
 },
 {
  "model": "Bolt Mini",
  "img": "",
  "company": "Bolt",
  "price": 129.90,
  "info": "",
  "specs": {}
 }
]`)

func newSeedEngine(store CatalogStore) *IngestEngine {
	return NewIngestEngine(store,
		EngineWithSupplementFetcher(nil),
		EngineWithImageFetcher(nil),
		EngineWithAssembler(NewAssembler(AssemblerWithStockEstimator(func() int { return 3 }))),
	)
}

func TestRunSeedFile(t *testing.T) {
	ctx := context.Background()
	fs := afero.NewMemMapFs()
	err := afero.WriteFile(fs, "assets/data.json", seedFixture, 0o644)
	if err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	store := NewMemoryStore()

	convey.Convey("test seed records go through the persist flow", t, func() {
		engine := newSeedEngine(store)
		summary, err := engine.RunSeedFile(ctx, fs, "assets/data.json")
		convey.So(err, convey.ShouldBeNil)
		convey.So(summary.Candidates, convey.ShouldEqual, 2)
		convey.So(summary.Inserted, convey.ShouldEqual, 2)

		record, ok := store.Phone("Acme P30")
		convey.So(ok, convey.ShouldBeTrue)
		convey.So(record.Manufacturer, convey.ShouldEqual, "Acme")
		convey.So(record.Price.String(), convey.ShouldEqual, "599.99")
		convey.So(record.Image, convey.ShouldEqual, "img/acmep30.jpg")
		convey.So(record.Specs.Chipset, convey.ShouldEqual, "Kirin 980")
		convey.So(record.Stock, convey.ShouldEqual, 3)
		convey.So(record.Description, convey.ShouldEqual, "Acme''s finest.")
		convey.So(store.Companies(), convey.ShouldEqual, 2)
	})

	convey.Convey("test reseeding the same file only skips", t, func() {
		engine := newSeedEngine(store)
		summary, err := engine.RunSeedFile(ctx, fs, "assets/data.json")
		convey.So(err, convey.ShouldBeNil)
		convey.So(summary.Inserted, convey.ShouldEqual, 0)
		convey.So(summary.Skipped, convey.ShouldEqual, 2)
	})
}

func TestRunSeedFileRejectsBadInput(t *testing.T) {
	ctx := context.Background()

	convey.Convey("test an empty record list is an error", t, func() {
		fs := afero.NewMemMapFs()
		convey.So(afero.WriteFile(fs, "empty.json", []byte(`[]`), 0o644), convey.ShouldBeNil)
		_, err := newSeedEngine(NewMemoryStore()).RunSeedFile(ctx, fs, "empty.json")
		convey.So(errors.Is(err, ErrEmptySeedFile), convey.ShouldBeTrue)
	})

	convey.Convey("test malformed json is a parse error", t, func() {
		fs := afero.NewMemMapFs()
		convey.So(afero.WriteFile(fs, "bad.json", []byte(`{not json`), 0o644), convey.ShouldBeNil)
		_, err := newSeedEngine(NewMemoryStore()).RunSeedFile(ctx, fs, "bad.json")
		convey.So(errors.Is(err, ErrParse), convey.ShouldBeTrue)
	})

	convey.Convey("test a missing file is an error", t, func() {
		_, err := newSeedEngine(NewMemoryStore()).RunSeedFile(ctx, afero.NewMemMapFs(), "nope.json")
		convey.So(err, convey.ShouldNotBeNil)
	})

	convey.Convey("test a record without a price fails without halting the run", t, func() {
		fs := afero.NewMemMapFs()
		raw := []byte(`[
 {"model": "NoPrice One", "company": "Acme", "specs": {}},
 {"model": "Bolt Mini", "company": "Bolt", "price": 129.90, "specs": {}}
]`)
		convey.So(afero.WriteFile(fs, "mixed.json", raw, 0o644), convey.ShouldBeNil)
		store := NewMemoryStore()
		summary, err := newSeedEngine(store).RunSeedFile(ctx, fs, "mixed.json")
		convey.So(err, convey.ShouldBeNil)
		convey.So(summary.Failed, convey.ShouldEqual, 1)
		convey.So(summary.Inserted, convey.ShouldEqual, 1)

		exists, _ := store.PhoneExists(ctx, "NoPrice One")
		convey.So(exists, convey.ShouldBeFalse)
	})
}
