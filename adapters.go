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
)

// DetailMap normalized page data keyed by minified section title
// A value is either a plain string for a supplementary field or a
// map[string]string of minified field name to cleaned value for a
// table section
type DetailMap map[string]interface{}

// Merge copy all entries of other into the map, other wins on clashes
func (d DetailMap) Merge(other DetailMap) {
	for k, v := range other {
		d[k] = v
	}
}

// CandidateLister adapters able to enumerate candidate detail pages
// from a results listing
type CandidateLister interface {
	// ListCandidates extract candidate detail page links in page order,
	// truncated to limit, limit <= 0 keeps all of them
	ListCandidates(ctx context.Context, resultsURL string, limit int) ([]string, error)
}

// DetailFetcher adapters able to turn one detail page into a DetailMap
type DetailFetcher interface {
	// FetchDetail fetch a detail page, returning the phone model and the
	// section mapping
	// Malformed rows are skipped and logged, they are not fatal to the
	// whole page
	FetchDetail(ctx context.Context, pageURL string) (string, DetailMap, error)
}

// SupplementFetcher adapters sourcing fields the primary detail page
// lacks, keyed by model name
// Callers must tolerate partial results, a missing key is a field level
// failure, not a page level one
type SupplementFetcher interface {
	FetchSupplement(ctx context.Context, model string) (DetailMap, error)
}

// ImageFetcher adapters able to locate a full resolution product image
// for a model
type ImageFetcher interface {
	// FetchImage returns the raw jpeg bytes
	// ErrImageNotFound when any navigation step's expected element is
	// absent, non fatal to the record
	FetchImage(ctx context.Context, model string) ([]byte, error)
}
