// Copyright (c) 2026 Silo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package query parses repeated and comma-separated URL query parameters.
//
// List endpoints accept repeatable filters such as ?tag_id=1&tag_id=2;
// these helpers turn the raw url.Values slices into typed ones, silently
// dropping entries that do not parse.
package query

import (
	"strconv"
	"strings"
)

// IntSlice converts repeated query values into integers. Values that are
// not valid integers are skipped rather than failing the request.
func IntSlice(values []string) []int {
	parsed := make([]int, 0, len(values))
	for _, value := range values {
		number, err := strconv.Atoi(value)
		if err != nil {
			continue
		}
		parsed = append(parsed, number)
	}
	if len(parsed) == 0 {
		return nil
	}
	return parsed
}

// StringSlice splits a single comma-separated query value into trimmed,
// non-empty elements.
func StringSlice(value string) []string {
	if value == "" {
		return nil
	}
	parts := make([]string, 0)
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	if len(parts) == 0 {
		return nil
	}
	return parts
}
