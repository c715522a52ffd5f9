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
	"errors"
	"time"

	"github.com/sirupsen/logrus"
)

var engineLog *logrus.Entry = GetLogger("engine")

// IngestEngine orchestrates the scrape, assemble and persist flow
// Candidates are processed strictly one at a time, the failure of one is
// isolated from the rest
type IngestEngine struct {
	// lister enumerates candidate detail pages
	lister CandidateLister
	// detail primary spec source
	detail DetailFetcher
	// supplement secondary source for fields the primary lacks
	supplement SupplementFetcher
	// images best effort image source
	images ImageFetcher
	// assembler builds the canonical record
	assembler *Assembler
	// store the persistence boundary, one connection per run
	store CatalogStore
	// imageStore blob sink for fetched images
	imageStore *ImageStore
	// dupeFilter in-run candidate dedupe
	dupeFilter DupeFilterInterface
	// statistic ingest counters
	statistic StatisticInterface
}

// EngineOption optional components of the engine
type EngineOption func(e *IngestEngine)

func EngineWithLister(lister CandidateLister) EngineOption {
	return func(e *IngestEngine) {
		e.lister = lister
	}
}

func EngineWithDetailFetcher(detail DetailFetcher) EngineOption {
	return func(e *IngestEngine) {
		e.detail = detail
	}
}

func EngineWithSupplementFetcher(supplement SupplementFetcher) EngineOption {
	return func(e *IngestEngine) {
		e.supplement = supplement
	}
}

func EngineWithImageFetcher(images ImageFetcher) EngineOption {
	return func(e *IngestEngine) {
		e.images = images
	}
}

func EngineWithAssembler(assembler *Assembler) EngineOption {
	return func(e *IngestEngine) {
		e.assembler = assembler
	}
}

func EngineWithStore(store CatalogStore) EngineOption {
	return func(e *IngestEngine) {
		e.store = store
	}
}

func EngineWithImageStore(imageStore *ImageStore) EngineOption {
	return func(e *IngestEngine) {
		e.imageStore = imageStore
	}
}

func EngineWithDupeFilter(filter DupeFilterInterface) EngineOption {
	return func(e *IngestEngine) {
		e.dupeFilter = filter
	}
}

// NewIngestEngine build an engine, components not overridden by options
// get their defaults
func NewIngestEngine(store CatalogStore, opts ...EngineOption) *IngestEngine {
	downloader := NewDownloader()
	gsm := NewGsmArenaAdapter(downloader)
	engine := &IngestEngine{
		lister:     gsm,
		detail:     gsm,
		supplement: NewFoneArenaAdapter(downloader),
		images:     NewAlloAdapter(downloader),
		assembler:  NewAssembler(),
		store:      store,
		dupeFilter: NewRFPDupeFilter(0.001, 1024*1024),
		statistic:  NewDefaultStatistic(),
	}
	for _, opt := range opts {
		opt(engine)
	}
	return engine
}

// Run enumerate candidates from the results listing and ingest each one
// sequentially, bounded by limit
// Per candidate failures are logged with the source url and do not halt
// the loop
func (e *IngestEngine) Run(ctx context.Context, resultsURL string, limit int) (*Summary, error) {
	start := time.Now()
	candidates, err := e.lister.ListCandidates(ctx, resultsURL, limit)
	if err != nil {
		return nil, err
	}
	engineLog.Infof("Found %d candidates on %s", len(candidates), resultsURL)

	for _, candidate := range candidates {
		e.statistic.Incr(CandidatesStats)
		e.ingestCandidate(ctx, candidate)
	}

	summary := e.summarize(time.Since(start))
	engineLog.Infof("Run finished: %s", summary)
	return summary, nil
}

// ingestCandidate process one candidate end to end
func (e *IngestEngine) ingestCandidate(ctx context.Context, candidate string) {
	if seen, err := e.dupeFilter.DoDupeFilter(candidate); err == nil && seen {
		engineLog.Debugf("Candidate already handled in this run (%s)", candidate)
		e.statistic.Incr(SkippedStats)
		return
	}

	model, details, err := e.detail.FetchDetail(ctx, candidate)
	if err != nil {
		engineLog.Errorf("Unable to gather phone information (url: %s): %s", candidate, err.Error())
		e.statistic.Incr(FailedStats)
		return
	}

	exists, err := e.store.PhoneExists(ctx, model)
	if err != nil {
		engineLog.Errorf("Existence check failed (url: %s, model: %s): %s", candidate, model, err.Error())
		e.statistic.Incr(FailedStats)
		return
	}
	if exists {
		engineLog.Warningf("Phone already in the database (%s)", model)
		e.statistic.Incr(SkippedStats)
		return
	}

	if e.supplement != nil {
		supplement, err := e.supplement.FetchSupplement(ctx, model)
		if err != nil {
			// field level gap, assembly decides whether the record
			// can still be built
			engineLog.Warningf("No supplementary data for %q: %s", model, err.Error())
		} else {
			details.Merge(supplement)
		}
	}

	record, err := e.assembler.Assemble(model, details)
	if err != nil {
		engineLog.Errorf("Unable to add all needed information to db (url: %s, model: %s): %s",
			candidate, model, err.Error())
		e.statistic.Incr(FailedStats)
		return
	}

	e.attachImage(ctx, record)

	if err := e.store.SavePhone(ctx, record); err != nil {
		if errors.Is(err, ErrDuplicateRecord) {
			engineLog.Warningf("Phone already in the database (%s)", model)
			e.statistic.Incr(SkippedStats)
			return
		}
		engineLog.Errorf("Unable to persist phone (url: %s, model: %s): %s", candidate, model, err.Error())
		e.statistic.Incr(FailedStats)
		return
	}
	e.statistic.Incr(InsertedStats)
}

// attachImage best effort image acquisition, a missing image never fails
// the record
func (e *IngestEngine) attachImage(ctx context.Context, record *PhoneRecord) {
	if e.images == nil || e.imageStore == nil {
		return
	}
	data, err := e.images.FetchImage(ctx, record.Model)
	if err != nil {
		engineLog.Warningf("No image for %q: %s", record.Model, err.Error())
		return
	}
	key, err := e.imageStore.Save(ctx, record.Model, data)
	if err != nil {
		engineLog.Warningf("Unable to store image of %q: %s", record.Model, err.Error())
		return
	}
	record.Image = key
	e.statistic.Incr(ImagesStats)
}

func (e *IngestEngine) summarize(elapsed time.Duration) *Summary {
	return &Summary{
		Candidates: e.statistic.Get(CandidatesStats),
		Inserted:   e.statistic.Get(InsertedStats),
		Skipped:    e.statistic.Get(SkippedStats),
		Failed:     e.statistic.Get(FailedStats),
		Duration:   elapsed.Seconds(),
	}
}

// Stats expose the ingest counters
func (e *IngestEngine) Stats() StatisticInterface {
	return e.statistic
}
