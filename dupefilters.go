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
	"io"
	"net/url"

	bloom "github.com/bits-and-blooms/bloom/v3"
	"github.com/spaolacci/murmur3"
)

// DupeFilterInterface candidate URL fingerprinting and in-run dedupe
// Listing pages repeat entries across result sections, the filter keeps
// one fetch per candidate within a run
type DupeFilterInterface interface {
	// Fingerprint candidate fingerprint computation
	Fingerprint(candidateURL string) ([]byte, error)

	// DoDupeFilter candidate dedupe, true when already seen
	DoDupeFilter(candidateURL string) (bool, error)
}

// RFPDupeFilter bloom filter based dedupe component
type RFPDupeFilter struct {
	bloomFilter *bloom.BloomFilter
}

// NewRFPDupeFilter create the dedupe component
// bloomP acceptable false positive rate
// bloomN expected number of candidates
func NewRFPDupeFilter(bloomP float64, bloomN uint) *RFPDupeFilter {
	return &RFPDupeFilter{
		bloomFilter: bloom.NewWithEstimates(bloomN, bloomP),
	}
}

// canonicalizeURL candidate URL normalization, sorted query, no fragment
// ParseRequestURI keeps the fragment glued to the query, so validation and
// parsing are separate steps
func (f *RFPDupeFilter) canonicalizeURL(candidateURL string, keepFragment bool) (url.URL, error) {
	if _, err := url.ParseRequestURI(candidateURL); err != nil {
		return url.URL{}, err
	}
	u, err := url.Parse(candidateURL)
	if err != nil {
		return url.URL{}, err
	}
	u.RawQuery = u.Query().Encode()
	u.ForceQuery = true
	if !keepFragment {
		u.Fragment = ""
	}
	return *u, nil
}

// Fingerprint compute the candidate fingerprint
func (f *RFPDupeFilter) Fingerprint(candidateURL string) ([]byte, error) {
	if candidateURL == "" {
		return nil, fmt.Errorf("candidate url is empty")
	}
	sha := murmur3.New128()
	u, err := f.canonicalizeURL(candidateURL, false)
	if err != nil {
		return nil, err
	}
	if _, err := io.WriteString(sha, u.String()); err != nil {
		return nil, err
	}
	return sha.Sum(nil), nil
}

// DoDupeFilter test and record one candidate through the bloom filter
func (f *RFPDupeFilter) DoDupeFilter(candidateURL string) (bool, error) {
	data, err := f.Fingerprint(candidateURL)
	if err != nil {
		return false, err
	}
	return f.bloomFilter.TestOrAdd(data), nil
}
