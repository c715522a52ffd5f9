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
	"bytes"
	"sync"

	"github.com/PuerkitoBio/goquery"
)

// Response the page download response data
type Response struct {
	Status int                 // Status response status code
	Header map[string][]string // Header response header
	Delay  float64             // Delay the time of handling the download
	URL    string              // URL of the downloaded page
	Buffer *bytes.Buffer       // Buffer response body buffer
}

// responsePool a buffer pool of Response objects
var responsePool *sync.Pool = &sync.Pool{
	New: func() interface{} {
		return new(Response)
	},
}

// bufferPool response body buffers
var bufferPool *sync.Pool = &sync.Pool{
	New: func() interface{} {
		return new(bytes.Buffer)
	},
}

// String get response text from the response body
func (r *Response) String() string {
	return r.Buffer.String()
}

// Bytes get the raw response body
func (r *Response) Bytes() []byte {
	return r.Buffer.Bytes()
}

// Document parse the response body into a goquery document
func (r *Response) Document() (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(r.Buffer.Bytes()))
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// NewResponse create a new Response from responsePool
func NewResponse() *Response {
	response := responsePool.Get().(*Response)
	response.Buffer = bufferPool.Get().(*bytes.Buffer)
	response.Buffer.Reset()
	return response
}

// freeResponse reset a Response and put it back into the pools
func freeResponse(r *Response) {
	r.Status = -1
	r.Header = nil
	r.Delay = 0
	bufferPool.Put(r.Buffer)
	r.Buffer = nil
	responsePool.Put(r)
}
