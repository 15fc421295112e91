// Package filter reduces read-only datasets to the rows matching a view's
// selection state. Every evaluator returns a fresh slice holding an ordered
// subsequence of its input; inputs are never modified.
package filter

import (
	"strings"

	"golang.org/x/text/cases"
)

// Predicate reports whether a record should be kept.
type Predicate[T any] func(T) bool

// Apply keeps the records that satisfy every non-nil predicate, in input order.
// The result is never nil, so an empty match renders as an empty list.
func Apply[T any](items []T, preds ...Predicate[T]) []T {
	active := make([]Predicate[T], 0, len(preds))
	for _, pred := range preds {
		if pred != nil {
			active = append(active, pred)
		}
	}

	out := make([]T, 0, len(items))
	for _, item := range items {
		if matchesAll(item, active) {
			out = append(out, item)
		}
	}
	return out
}

func matchesAll[T any](item T, preds []Predicate[T]) bool {
	for _, pred := range preds {
		if !pred(item) {
			return false
		}
	}
	return true
}

// MatchText reports whether term occurs in any of fields, ignoring case.
// An empty term matches everything; whitespace is matched literally.
func MatchText(term string, fields ...string) bool {
	if term == "" {
		return true
	}
	needle := fold(term)
	for _, field := range fields {
		if strings.Contains(fold(field), needle) {
			return true
		}
	}
	return false
}

// MatchCategory is an exact-match predicate bypassed by the sentinel or an empty filter.
func MatchCategory(filter, value, sentinel string) bool {
	if IsAll(filter, sentinel) {
		return true
	}
	return filter == value
}

// IsAll reports whether filter places no constraint on its dimension.
func IsAll(filter, sentinel string) bool {
	return filter == "" || filter == sentinel
}

// cases.Caser keeps state, so each call gets its own.
func fold(s string) string {
	return cases.Fold().String(s)
}
