// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package slug turns gallery titles into ASCII path segments.
//
// The batch converter names each export directory "<id> <slug>", for example
// "177013 sample-title". Accents fold to their base letter; every other
// character outside [a-z0-9] collapses into single hyphens.
package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// MaxLength bounds slugs so export paths stay well under file name limits.
const MaxLength = 80

// From returns the slug of s, possibly empty.
func From(s string) string {
	// Transformers carry state, so the chain is built per call.
	fold := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(fold, s)
	if err != nil {
		folded = s
	}

	var builder strings.Builder
	pendingHyphen := false
	for _, r := range strings.ToLower(folded) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingHyphen && builder.Len() > 0 {
				builder.WriteByte('-')
			}
			builder.WriteRune(r)
			pendingHyphen = false
			continue
		}
		pendingHyphen = true
	}

	return truncate(builder.String())
}

// truncate cuts at the last hyphen inside MaxLength when that keeps at least
// half of the budget, otherwise mid-word.
func truncate(result string) string {
	if len(result) <= MaxLength {
		return result
	}
	result = result[:MaxLength]
	if cut := strings.LastIndexByte(result, '-'); cut > MaxLength/2 {
		result = result[:cut]
	}
	return strings.TrimRight(result, "-")
}
