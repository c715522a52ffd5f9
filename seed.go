// MIT License

// Copyright (c) 2023 anagilda

// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:

// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.

// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package mobilestore

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/shopspring/decimal"
	"github.com/spf13/afero"
)

// SeedPhone one placeholder record of the assets/data.json shape
type SeedPhone struct {
	Model   string                 `json:"model"`
	Image   string                 `json:"img"`
	Company string                 `json:"company"`
	Price   json.Number            `json:"price"`
	Info    string                 `json:"info"`
	Specs   map[string]interface{} `json:"specs"`
}

// RunSeedFile ingest placeholder records from a json file through the
// same dedupe and persist flow as the scraped ones
func (e *IngestEngine) RunSeedFile(ctx context.Context, fs afero.Fs, path string) (*Summary, error) {
	start := time.Now()
	raw, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("read seed file %s: %w", path, err)
	}
	var seeds []SeedPhone
	if err := json.Unmarshal(raw, &seeds); err != nil {
		return nil, fmt.Errorf("decode seed file %s: %v: %w", path, err, ErrParse)
	}
	if len(seeds) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrEmptySeedFile)
	}

	for _, seed := range seeds {
		e.statistic.Incr(CandidatesStats)
		e.ingestSeed(ctx, seed)
	}

	summary := e.summarize(time.Since(start))
	engineLog.Infof("Seed run finished: %s", summary)
	return summary, nil
}

func (e *IngestEngine) ingestSeed(ctx context.Context, seed SeedPhone) {
	record, err := e.seedRecord(seed)
	if err != nil {
		engineLog.Errorf("Invalid seed record (model: %s): %s", seed.Model, err.Error())
		e.statistic.Incr(FailedStats)
		return
	}
	exists, err := e.store.PhoneExists(ctx, record.Model)
	if err != nil {
		engineLog.Errorf("Existence check failed (model: %s): %s", record.Model, err.Error())
		e.statistic.Incr(FailedStats)
		return
	}
	if exists {
		engineLog.Warningf("Phone already in the database (%s)", record.Model)
		e.statistic.Incr(SkippedStats)
		return
	}
	if err := e.store.SavePhone(ctx, record); err != nil {
		engineLog.Errorf("Unable to persist seed phone (model: %s): %s", record.Model, err.Error())
		e.statistic.Incr(FailedStats)
		return
	}
	e.statistic.Incr(InsertedStats)
}

// seedRecord map one seed entry onto the canonical record shape
func (e *IngestEngine) seedRecord(seed SeedPhone) (*PhoneRecord, error) {
	if seed.Model == "" {
		return nil, &MissingFieldError{Field: "model"}
	}
	if seed.Company == "" {
		return nil, &MissingFieldError{Field: "manufacturer"}
	}
	if seed.Price == "" {
		return nil, &MissingFieldError{Field: "price"}
	}
	price, err := decimal.NewFromString(seed.Price.String())
	if err != nil {
		return nil, fmt.Errorf("seed price %q: %w", seed.Price, ErrParse)
	}
	specs := PhoneSpecs{}
	if err := mapstructure.WeakDecode(seed.Specs, &specs); err != nil {
		return nil, fmt.Errorf("seed specs of %q: %v: %w", seed.Model, err, ErrParse)
	}
	return &PhoneRecord{
		Model:        seed.Model,
		Manufacturer: seed.Company,
		Image:        seed.Image,
		Price:        price,
		Description:  EscapeQuotes(seed.Info),
		Specs:        specs,
		Stock:        e.assembler.stock(),
	}, nil
}
