// Copyright (c) 2026 VoxMundi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package slug derives ASCII keys from free-form names.
//
// Category keys ("literature", "cuisine") are built with [Key], which bounds
// the result to the column width.
package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// From folds s to lowercase ASCII letters and digits joined by single hyphens.
// Accents are stripped ("Café Müller" becomes "cafe-muller"); any other run of
// non-ASCII or punctuation becomes one separator.
func From(s string) string {
	folded, _, err := transform.String(transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC), s)
	if err != nil {
		folded = s
	}

	var builder strings.Builder
	builder.Grow(len(folded))
	pendingHyphen := false

	for _, r := range strings.ToLower(folded) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingHyphen && builder.Len() > 0 {
				builder.WriteByte('-')
			}
			pendingHyphen = false
			builder.WriteRune(r)
			continue
		}
		pendingHyphen = true
	}
	return builder.String()
}

// Key is [From] cut to at most maxLen bytes without a trailing hyphen.
// maxLen <= 0 means unbounded.
func Key(s string, maxLen int) string {
	key := From(s)
	if maxLen <= 0 || len(key) <= maxLen {
		return key
	}
	return strings.TrimRight(key[:maxLen], "-")
}
