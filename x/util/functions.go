// Package util provides configuration and small helpers shared by the archive packages
package util

import (
	"strings"
)

// MatchesQuery reports whether any field contains query, ignoring case.
// An empty query matches everything.
func MatchesQuery(query string, fields ...string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	for _, field := range fields {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

// PtrOrNil returns nil for the empty string
func PtrOrNil(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Deref returns the pointed string or fallback when p is nil or empty
func Deref(p *string, fallback string) string {
	if p == nil || *p == "" {
		return fallback
	}
	return *p
}

// NonNil returns s, or an empty slice when s is nil
func NonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
