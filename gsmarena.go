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
	GsmArenaURL = "https://www.gsmarena.com/"
	// GsmArenaResultsURL available bar phones only
	GsmArenaResultsURL = GsmArenaURL + "results.php3?sAvailabilities=1&FormFactors=1"
)

var gsmLog *logrus.Entry = GetLogger("gsmarena")

// GsmArenaAdapter primary source adapter, lists candidates from a results
// page and parses spec tables from detail pages
type GsmArenaAdapter struct {
	downloader Downloader
}

func NewGsmArenaAdapter(downloader Downloader) *GsmArenaAdapter {
	return &GsmArenaAdapter{
		downloader: downloader,
	}
}

// ListCandidates extract all candidate links from the makers listing
// container, in page order, truncated to limit
func (a *GsmArenaAdapter) ListCandidates(ctx context.Context, resultsURL string, limit int) ([]string, error) {
	resp, err := a.downloader.Fetch(ctx, resultsURL)
	if err != nil {
		return nil, err
	}
	defer freeResponse(resp)
	doc, err := resp.Document()
	if err != nil {
		return nil, fmt.Errorf("results page %s: %v: %w", resultsURL, err, ErrParse)
	}
	makers := doc.Find("div.makers")
	if makers.Length() == 0 {
		return nil, fmt.Errorf("results page %s without a makers listing: %w", resultsURL, ErrParse)
	}
	// relative hrefs resolve against the page they were found on
	base, err := url.Parse(resultsURL)
	if err != nil {
		return nil, fmt.Errorf("results page url %s: %v: %w", resultsURL, err, ErrParse)
	}
	candidates := make([]string, 0)
	makers.Find("a").Each(func(_ int, s *goquery.Selection) {
		href, ok := s.Attr("href")
		if !ok {
			return
		}
		ref, err := url.Parse(href)
		if err != nil {
			gsmLog.Warningf("Skipping candidate with bad href %q", href)
			return
		}
		candidates = append(candidates, base.ResolveReference(ref).String())
	})
	if limit > 0 && limit < len(candidates) {
		candidates = candidates[:limit]
	}
	return candidates, nil
}

// FetchDetail parse every spec table of a detail page into sections of
// minified field names and cleaned values
func (a *GsmArenaAdapter) FetchDetail(ctx context.Context, pageURL string) (string, DetailMap, error) {
	resp, err := a.downloader.Fetch(ctx, pageURL)
	if err != nil {
		return "", nil, err
	}
	defer freeResponse(resp)
	doc, err := resp.Document()
	if err != nil {
		return "", nil, fmt.Errorf("detail page %s: %v: %w", pageURL, err, ErrParse)
	}
	model := strings.TrimSpace(doc.Find(".specs-phone-name-title").First().Text())
	if model == "" {
		return "", nil, fmt.Errorf("detail page %s without a phone name title: %w", pageURL, ErrParse)
	}

	details := DetailMap{}
	doc.Find("table").Each(func(_ int, table *goquery.Selection) {
		section := Minify(table.Find("th").First().Text())
		if section == "" {
			return
		}
		specs := map[string]string{}
		table.Find("tr").Each(func(_ int, row *goquery.Selection) {
			if row.Find("th").Length() > 0 {
				return
			}
			cells := row.Find("td")
			if cells.Length() != 2 {
				gsmLog.Warningf("Unable to extract info from line in table %q (%s)", section, pageURL)
				return
			}
			name := Minify(cells.Eq(0).Text())
			specs[name] = Clean(cells.Eq(1).Text())
		})
		details[section] = specs
	})
	return model, details, nil
}
