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
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	nonAlnumPattern   = regexp.MustCompile(`[^0-9A-Za-z]`)
	whitespacePattern = regexp.MustCompile(`\s+`)
	pricePattern      = regexp.MustCompile(`\$(\d+(?:\.\d{2})?)`)
)

// Minify turn a human readable section header into a stable mapping key
// "Price (USD)" becomes "priceusd"
func Minify(s string) string {
	return strings.ToLower(nonAlnumPattern.ReplaceAllString(s, ""))
}

// Clean collapse whitespace runs into a single space, strip a single
// leading "-" bullet marker and trim
// Only one bullet marker is stripped per call, "- -x" keeps its inner
// marker
func Clean(s string) string {
	s = whitespacePattern.ReplaceAllString(s, " ")
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "-")
	return strings.TrimSpace(s)
}

// ExtractPrice locate a $ prefixed decimal token with an optional two
// digit fraction and return it as a decimal value
func ExtractPrice(s string) (decimal.Decimal, error) {
	match := pricePattern.FindStringSubmatch(s)
	if match == nil {
		return decimal.Zero, fmt.Errorf("no $ prefixed price in %q: %w", s, ErrParse)
	}
	return decimal.NewFromString(match[1])
}

// SplitCameraSpec cut a camera description at the last occurrence of "MP"
// keeping the prefix, "the 12 MP + 5 MP dual setup with flash" becomes
// "the 12 MP + 5 MP"
func SplitCameraSpec(s string) string {
	idx := strings.LastIndex(s, "MP")
	if idx < 0 {
		return s
	}
	return s[:idx+len("MP")]
}

// EscapeQuotes double single quotes so the text is safely embeddable
func EscapeQuotes(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
