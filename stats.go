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
	"sync"
	"sync/atomic"

	"github.com/shopspring/decimal"
)

const (
	// CandidatesStats candidates enumerated from the results listing
	CandidatesStats string = "candidates"
	// InsertedStats phones persisted to the catalog
	InsertedStats string = "inserted"
	// SkippedStats duplicates short circuited before persistence
	SkippedStats string = "skipped"
	// FailedStats candidates aborted by a fatal per-item error
	FailedStats string = "failed"
	// ImagesStats images stored successfully
	ImagesStats string = "images"
)

// StatisticInterface ingest counters component
type StatisticInterface interface {
	GetAllStats() map[string]uint64
	Incr(metric string)
	Get(metric string) uint64
}

// DefaultStatistic atomic counter set
type DefaultStatistic struct {
	Metrics  map[string]*uint64
	register sync.Map
}

func NewDefaultStatistic() *DefaultStatistic {
	m := map[string]*uint64{
		CandidatesStats: new(uint64),
		InsertedStats:   new(uint64),
		SkippedStats:    new(uint64),
		FailedStats:     new(uint64),
		ImagesStats:     new(uint64),
	}
	for _, v := range m {
		atomic.StoreUint64(v, 0)
	}
	return &DefaultStatistic{
		Metrics:  m,
		register: sync.Map{},
	}
}

// Incr bump one metric
func (s *DefaultStatistic) Incr(metric string) {
	atomic.AddUint64(s.Metrics[metric], 1)
	s.register.Store(metric, true)
}

// Get read one metric
func (s *DefaultStatistic) Get(metric string) uint64 {
	return atomic.LoadUint64(s.Metrics[metric])
}

// GetAllStats snapshot the touched metrics
func (s *DefaultStatistic) GetAllStats() map[string]uint64 {
	result := make(map[string]uint64)
	s.register.Range(func(key any, _ any) bool {
		k := key.(string)
		result[k] = s.Get(k)
		return true
	})
	return result
}

// Summary outcome of one ingest run
type Summary struct {
	Candidates uint64
	Inserted   uint64
	Skipped    uint64
	Failed     uint64
	// Duration run time in seconds
	Duration float64
}

func (s *Summary) String() string {
	return fmt.Sprintf("candidates=%d inserted=%d skipped=%d failed=%d duration=%.2fs",
		s.Candidates, s.Inserted, s.Skipped, s.Failed, s.GetDuration())
}

// GetDuration run time rounded to two decimals
func (s *Summary) GetDuration() float64 {
	return decimal.NewFromFloat(s.Duration).Round(2).InexactFloat64()
}
