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
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/sirupsen/logrus"
)

const (
	FoneArenaURL       = "https://www.fonearena.com/"
	FoneArenaSearchURL = FoneArenaURL + "csearch.php?q="
)

// fonearenaKeys the supplementary fields sourced from the summary block
var fonearenaKeys = []string{
	"manufacturer", "priceusd", "description", "rearcamera", "frontcamera",
}

var foneLog *logrus.Entry = GetLogger("fonearena")

// FoneArenaAdapter secondary source adapter keyed by model name, fills
// the fields the primary detail page lacks
type FoneArenaAdapter struct {
	downloader Downloader
	searchURL  string
}

// FoneArenaOption optional parameters of the adapter
type FoneArenaOption func(a *FoneArenaAdapter)

// FoneArenaWithSearchURL point the adapter to another search endpoint,
// used by tests
func FoneArenaWithSearchURL(search string) FoneArenaOption {
	return func(a *FoneArenaAdapter) {
		a.searchURL = search
	}
}

func NewFoneArenaAdapter(downloader Downloader, opts ...FoneArenaOption) *FoneArenaAdapter {
	adapter := &FoneArenaAdapter{
		downloader: downloader,
		searchURL:  FoneArenaSearchURL,
	}
	for _, opt := range opts {
		opt(adapter)
	}
	return adapter
}

func supplementKey(section string) bool {
	for _, key := range fonearenaKeys {
		if key == section {
			return true
		}
	}
	return false
}

// FetchSupplement search the model, open its full specifications page and
// collect the summary fields and camera highlights
// A missing highlight or summary entry is a field level gap for the
// caller, only the navigation steps are page level failures
func (a *FoneArenaAdapter) FetchSupplement(ctx context.Context, model string) (DetailMap, error) {
	searchURL := a.searchURL + url.QueryEscape(model)
	resp, err := a.downloader.Fetch(ctx, searchURL)
	if err != nil {
		return nil, err
	}
	doc, err := resp.Document()
	freeResponse(resp)
	if err != nil {
		return nil, fmt.Errorf("search page for %q: %v: %w", model, err, ErrParse)
	}

	specsHref := ""
	doc.Find(".gsc-resultsbox-visible a").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if !strings.Contains(s.Text(), "Full Phone Specifications") {
			return true
		}
		if href, ok := s.Attr("href"); ok {
			specsHref = href
			return false
		}
		return true
	})
	if specsHref == "" {
		return nil, fmt.Errorf("no specifications result for %q: %w", model, ErrParse)
	}

	resp, err = a.downloader.Fetch(ctx, specsHref)
	if err != nil {
		return nil, err
	}
	defer freeResponse(resp)
	doc, err = resp.Document()
	if err != nil {
		return nil, fmt.Errorf("specifications page for %q: %v: %w", model, err, ErrParse)
	}

	details := DetailMap{}
	summary := doc.Find("#details")
	labels := summary.Find("label")
	spans := summary.Find("span")
	labels.Each(func(i int, label *goquery.Selection) {
		if i >= spans.Length() {
			return
		}
		section := Minify(label.Text())
		if supplementKey(section) {
			details[section] = Clean(spans.Eq(i).Text())
		}
	})

	doc.Find(".hList li").Each(func(_ int, item *goquery.Selection) {
		highlight := Clean(item.Text())
		switch {
		case strings.Contains(strings.ToLower(highlight), "front camera"):
			details["frontcamera"] = SplitCameraSpec(highlight)
		case strings.Contains(strings.ToLower(highlight), "rear camera"):
			details["rearcamera"] = SplitCameraSpec(highlight)
		}
	})

	if len(details) == 0 {
		foneLog.Warningf("No supplementary fields found for %q", model)
	}
	return details, nil
}
