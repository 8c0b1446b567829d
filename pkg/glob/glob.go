// Copyright (c) 2026 Silo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package glob implements wildcard matching for request paths.
//
// # Semantics
//
// Patterns support two wildcards: '*' matches any run of characters
// (including '/'), and '?' matches exactly one character. Matching is
// case-sensitive and anchored — the pattern must cover the entire input,
// never just a prefix.
//
// This is deliberately simpler than [path.Match]: permission patterns like
// "/item/*" must match nested paths such as "/item/42/comments", so '*'
// crosses path separators.
package glob

// Match reports whether name matches the wildcard pattern.
//
// The implementation walks pattern and name in lockstep, backtracking to the
// most recent '*' on mismatch. It runs in O(len(name) * len(pattern)) worst
// case with no allocations, which keeps the per-request authorization check
// cheap.
func Match(pattern, name string) bool {
	var pi, ni int

	// starPi / starNi remember the position of the last '*' seen and the
	// name index it is currently assumed to cover up to.
	starPi, starNi := -1, 0

	for ni < len(name) {
		switch {
		case pi < len(pattern) && (pattern[pi] == '?' || pattern[pi] == name[ni]):
			pi++
			ni++

		case pi < len(pattern) && pattern[pi] == '*':
			// Tentatively let '*' match the empty string; record the
			// backtrack point.
			starPi = pi
			starNi = ni
			pi++

		case starPi >= 0:
			// Mismatch after a '*': grow the star's span by one character
			// and retry from just past it.
			starNi++
			pi = starPi + 1
			ni = starNi

		default:
			return false
		}
	}

	// Only trailing stars may remain unconsumed.
	for pi < len(pattern) && pattern[pi] == '*' {
		pi++
	}

	return pi == len(pattern)
}

// MatchAny reports whether name matches at least one of the given patterns.
func MatchAny(patterns []string, name string) bool {
	for _, pattern := range patterns {
		if Match(pattern, name) {
			return true
		}
	}
	return false
}
