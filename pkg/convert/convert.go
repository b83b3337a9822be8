// Copyright (c) 2026 VoxMundi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package convert provides fault-tolerant conversions for query parameters
and loosely typed provider payloads.

Do not use it where a malformed value must be distinguished from a zero value.
*/
package convert

import (
	"strconv"
	"strings"
)

// ToIntD converts a string to an int, returning def if parsing fails or the string is empty.
func ToIntD(str string, def int) int {
	if str == "" {
		return def
	}

	if v, err := strconv.Atoi(strings.TrimSpace(str)); err == nil {
		return v
	}

	return def
}

// IsDigits reports whether s is a non-empty run of ASCII digits.
//
// Provider identifiers such as TMDb movie IDs are detected this way before
// falling back to a title search.
func IsDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// YearPrefix extracts the leading four-digit year of a date string such as
// "1999-10-15". It returns 0 when no year can be read.
func YearPrefix(date string) int {
	if len(date) < 4 || !IsDigits(date[:4]) {
		return 0
	}
	year, _ := strconv.Atoi(date[:4])
	return year
}
