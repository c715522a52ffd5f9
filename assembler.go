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
	"fmt"
	"math/rand"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// StockEstimator strategy producing stock values for a record
// Real inventory is not sourced anywhere, the default is a placeholder
type StockEstimator func() int

// RandomStock placeholder stock value in [1,100]
func RandomStock() int {
	return rand.Intn(100) + 1
}

// detailFields the typed view of a DetailMap consumed by the assembler
// Section and field names arrive already minified
type detailFields struct {
	Manufacturer string `mapstructure:"manufacturer"`
	PriceUSD     string `mapstructure:"priceusd"`
	Description  string `mapstructure:"description"`
	// Info historical alias of description used by older page revisions
	Info        string `mapstructure:"info"`
	RearCamera  string `mapstructure:"rearcamera"`
	FrontCamera string `mapstructure:"frontcamera"`
	Body        struct {
		Dimensions string `mapstructure:"dimensions"`
	} `mapstructure:"body"`
	Display struct {
		Size string `mapstructure:"size"`
	} `mapstructure:"display"`
	Platform struct {
		OS      string `mapstructure:"os"`
		Chipset string `mapstructure:"chipset"`
	} `mapstructure:"platform"`
	Memory struct {
		Internal string `mapstructure:"internal"`
	} `mapstructure:"memory"`
	MainCamera struct {
		Features string `mapstructure:"features"`
	} `mapstructure:"maincamera"`
	// Battery rows keep the raw section map, the headline row of the
	// table carries an empty field name
	Battery  map[string]string `mapstructure:"battery"`
	FeatRows struct {
		Sensors string `mapstructure:"sensors"`
	} `mapstructure:"features"`
}

// Assembler maps normalized section and field data onto the canonical
// PhoneRecord shape
type Assembler struct {
	stock StockEstimator
}

// AssemblerOption optional parameters of the assembler
type AssemblerOption func(a *Assembler)

// AssemblerWithStockEstimator inject a deterministic stock strategy,
// used by tests
func AssemblerWithStockEstimator(estimator StockEstimator) AssemblerOption {
	return func(a *Assembler) {
		a.stock = estimator
	}
}

func NewAssembler(opts ...AssemblerOption) *Assembler {
	assembler := &Assembler{
		stock: RandomStock,
	}
	for _, opt := range opts {
		opt(assembler)
	}
	return assembler
}

// Assemble build one PhoneRecord from the merged detail maps
// Required fields are model, manufacturer and price, the assembler never
// guesses defaults for them
func (a *Assembler) Assemble(model string, details DetailMap) (*PhoneRecord, error) {
	if strings.TrimSpace(model) == "" {
		return nil, &MissingFieldError{Field: "model"}
	}
	fields := detailFields{}
	if err := mapstructure.WeakDecode(map[string]interface{}(details), &fields); err != nil {
		return nil, fmt.Errorf("decode detail sections of %q: %v: %w", model, err, ErrParse)
	}

	manufacturer := Clean(fields.Manufacturer)
	if manufacturer == "" {
		return nil, &MissingFieldError{Field: "manufacturer"}
	}
	if strings.TrimSpace(fields.PriceUSD) == "" {
		return nil, &MissingFieldError{Field: "price"}
	}
	price, err := ExtractPrice(fields.PriceUSD)
	if err != nil {
		return nil, err
	}

	description := fields.Description
	if description == "" {
		description = fields.Info
	}

	record := &PhoneRecord{
		Model:        model,
		Manufacturer: manufacturer,
		Image:        "",
		Price:        price,
		Description:  EscapeQuotes(description),
		Battery:      fields.Battery[""],
		Features:     fields.FeatRows.Sensors,
		Specs: PhoneSpecs{
			Body:     fields.Body.Dimensions,
			Display:  fields.Display.Size,
			Platform: fields.Platform.OS,
			Chipset:  fields.Platform.Chipset,
			Memory:   fields.Memory.Internal,
			Camera: CameraSpecs{
				Main:     fields.RearCamera,
				Selfie:   fields.FrontCamera,
				Features: fields.MainCamera.Features,
			},
		},
		Stock: a.stock(),
	}
	return record, nil
}
