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

	"github.com/sirupsen/logrus"
)

const (
	AlloURL = "https://allo.ua/ru/"
	// AlloSearchURL cat=3 keeps phones only
	AlloSearchURL = AlloURL + "catalogsearch/result/index/?cat=3&q="
)

var alloLog *logrus.Entry = GetLogger("allo")

// AlloAdapter image source adapter, searches the retailer by model name,
// opens the first matching product and pulls the zoom image
type AlloAdapter struct {
	downloader Downloader
	searchURL  string
}

// AlloOption optional parameters of the adapter
type AlloOption func(a *AlloAdapter)

// AlloWithSearchURL point the adapter to another search endpoint, used
// by tests
func AlloWithSearchURL(search string) AlloOption {
	return func(a *AlloAdapter) {
		a.searchURL = search
	}
}

func NewAlloAdapter(downloader Downloader, opts ...AlloOption) *AlloAdapter {
	adapter := &AlloAdapter{
		downloader: downloader,
		searchURL:  AlloSearchURL,
	}
	for _, opt := range opts {
		opt(adapter)
	}
	return adapter
}

// FetchImage search the model, open the first product and download the
// full resolution image of the zoom viewport
// Every missing navigation element reports ErrImageNotFound, the record
// proceeds with an empty image path
func (a *AlloAdapter) FetchImage(ctx context.Context, model string) ([]byte, error) {
	searchURL := a.searchURL + url.QueryEscape(model)
	resp, err := a.downloader.Fetch(ctx, searchURL)
	if err != nil {
		return nil, err
	}
	doc, err := resp.Document()
	freeResponse(resp)
	if err != nil {
		return nil, fmt.Errorf("image search page for %q: %v: %w", model, err, ErrParse)
	}
	productHref, ok := doc.Find(".product-name-container a").First().Attr("href")
	if !ok {
		return nil, fmt.Errorf("no product found for %q: %w", model, ErrImageNotFound)
	}

	resp, err = a.downloader.Fetch(ctx, productHref)
	if err != nil {
		return nil, err
	}
	doc, err = resp.Document()
	freeResponse(resp)
	if err != nil {
		return nil, fmt.Errorf("product page for %q: %v: %w", model, err, ErrParse)
	}
	imgSrc, ok := doc.Find("#zoomerViewPort img").First().Attr("src")
	if !ok {
		return nil, fmt.Errorf("no zoom image for %q: %w", model, ErrImageNotFound)
	}

	alloLog.Debugf("Downloading image of %q from %s", model, imgSrc)
	resp, err = a.downloader.Fetch(ctx, imgSrc)
	if err != nil {
		return nil, err
	}
	defer freeResponse(resp)
	data := make([]byte, len(resp.Bytes()))
	copy(data, resp.Bytes())
	return data, nil
}
