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
	"crypto/tls"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"
	"go.uber.org/ratelimit"
)

// Downloader page fetching boundary of the source adapters
// Fetches block until the page body is buffered, the pipeline has no
// scheduler of its own
type Downloader interface {
	// Fetch download one page
	Fetch(ctx context.Context, pageURL string) (*Response, error)

	// SetRatelimiter set download RPS
	// See https://github.com/uber-go/ratelimit
	SetRatelimiter(limiter ratelimit.Limiter)
}

// PageDownloader a blocking http downloader
type PageDownloader struct {
	// transport each request adopts a public network transmission
	// configuration and a connection pool is used globally
	transport *http.Transport
	// client network request client
	client *http.Client
	// userAgent sent on every request
	userAgent string
	// RateLimiter caps outgoing RPS
	RateLimiter ratelimit.Limiter
}

// DownloaderOption optional parameters of the downloader
type DownloaderOption func(d *PageDownloader)

var downloadLog *logrus.Entry = GetLogger("downloader")

// DownloadWithTimeout set request download timeout
// Expiry surfaces as ErrFetch to callers
func DownloadWithTimeout(timeout time.Duration) DownloaderOption {
	return func(d *PageDownloader) {
		d.client.Timeout = timeout
	}
}

// DownloadWithTlsConfig set tls configure for the downloader
func DownloadWithTlsConfig(tls *tls.Config) DownloaderOption {
	return func(d *PageDownloader) {
		d.transport.TLSClientConfig = tls
	}
}

// DownloadWithRateLimit set download RPS
func DownloadWithRateLimit(rateLimit ratelimit.Limiter) DownloaderOption {
	return func(d *PageDownloader) {
		d.RateLimiter = rateLimit
	}
}

// DownloadWithUserAgent set the User-Agent header sent on every request
func DownloadWithUserAgent(ua string) DownloaderOption {
	return func(d *PageDownloader) {
		d.userAgent = ua
	}
}

// NewDownloader get a new page downloader
func NewDownloader(opts ...DownloaderOption) Downloader {
	transport := &http.Transport{
		TLSClientConfig: &tls.Config{
			InsecureSkipVerify: false,
		},
		DialContext: (&net.Dialer{
			Timeout:   30 * time.Second,
			KeepAlive: 60 * time.Second,
		}).DialContext,
		MaxIdleConns:        64,
		IdleConnTimeout:     60 * time.Second,
		TLSHandshakeTimeout: 60 * time.Second,
	}
	rps := Config.GetInt("downloader.rps")
	if rps <= 0 {
		rps = 4
	}
	downloader := &PageDownloader{
		transport: transport,
		client: &http.Client{
			Transport: transport,
			Timeout:   60 * time.Second,
		},
		userAgent:   "Mozilla/5.0 (X11; Linux x86_64) mobilestore-worker",
		RateLimiter: ratelimit.New(rps),
	}
	for _, opt := range opts {
		opt(downloader)
	}
	return downloader
}

// checkUrlValidate URL check validator
func checkUrlValidate(requestUrl string) error {
	_, err := url.ParseRequestURI(requestUrl)
	return err
}

// Fetch download one page and buffer its body
func (d *PageDownloader) Fetch(ctx context.Context, pageURL string) (*Response, error) {
	now := time.Now()
	if err := checkUrlValidate(pageURL); err != nil {
		return nil, fmt.Errorf("request url %s is not valid: %w", pageURL, ErrFetch)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request for %s: %v: %w", pageURL, err, ErrFetch)
	}
	req.Header.Set("User-Agent", d.userAgent)

	downloadLog.Debugf("Downloader %s is downloading", pageURL)
	d.RateLimiter.Take()

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request url %s error %s: %w", pageURL, err.Error(), ErrFetch)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("request url %s got status %d: %w", pageURL, resp.StatusCode, ErrFetch)
	}

	response := NewResponse()
	response.Header = resp.Header
	response.Status = resp.StatusCode
	response.URL = req.URL.String()

	_, err = io.Copy(response.Buffer, resp.Body)
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		err = nil
	}
	if err != nil {
		freeResponse(response)
		return nil, fmt.Errorf("read response of %s error %s: %w", pageURL, err.Error(), ErrFetch)
	}
	response.Delay = time.Since(now).Seconds()
	return response, nil
}

// SetRatelimiter set download RPS
func (d *PageDownloader) SetRatelimiter(limiter ratelimit.Limiter) {
	d.RateLimiter = limiter
}
