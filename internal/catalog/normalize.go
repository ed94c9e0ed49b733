// Package catalog holds the record-level cleanup shared by the pipeline and
// the storefront API, plus reading and encoding of catalog files.
package catalog

import (
	"strconv"
	"strings"
	"unicode"
)

// DefaultFeatureCap is the maximum number of features kept per product.
const DefaultFeatureCap = 6

// DefaultVendorPrefixes are marketplace listing prefixes that carry no
// product information.
var DefaultVendorPrefixes = []string{
	"hot sale",
	"factory direct",
	"factory price",
	"wholesale",
	"new arrival",
	"2024 new",
	"2025 new",
}

// StripVendorPrefixes removes every matching prefix (case-insensitive) from
// the front of name until none match, then trims spaces and separators.
func StripVendorPrefixes(name string, prefixes []string) string {
	out := trimSeparators(name)
	for {
		stripped := false
		for _, p := range prefixes {
			p = strings.TrimSpace(p)
			if p == "" || len(out) < len(p) || !strings.EqualFold(out[:len(p)], p) {
				continue
			}
			rest := out[len(p):]
			// only strip whole words: "wholesale" must not eat "wholesaler"
			if rest != "" {
				r := []rune(rest)[0]
				if unicode.IsLetter(r) || unicode.IsDigit(r) {
					continue
				}
			}
			out = trimSeparators(rest)
			stripped = true
			break
		}
		if !stripped {
			return out
		}
	}
}

func trimSeparators(s string) string {
	return strings.TrimFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || r == '-' || r == ':' || r == '|'
	})
}

// NormalizeFeatures trims entries, drops empty ones and case-insensitive
// duplicates (first wins) and caps the list at limit. A limit <= 0 means
// DefaultFeatureCap. The result is never nil.
func NormalizeFeatures(features []string, limit int) []string {
	if limit <= 0 {
		limit = DefaultFeatureCap
	}
	out := make([]string, 0, min(len(features), limit))
	seen := make(map[string]struct{}, len(features))
	for _, f := range features {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		key := strings.ToLower(f)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, f)
		if len(out) == limit {
			break
		}
	}
	return out
}

// PriceDigits strips every non-digit character from price and parses the
// rest as an integer, so "$1,250" is 1250 and "$650.00" is 65000.
// A price without digits is 0.
func PriceDigits(price string) int64 {
	var b strings.Builder
	for _, r := range price {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return 0
	}
	n, err := strconv.ParseInt(b.String(), 10, 64)
	if err != nil {
		// more digits than an int64 holds
		return 0
	}
	return n
}
