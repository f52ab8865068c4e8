package reporting

import (
	"sort"

	"github.com/lib-tools/library-atlas/pkg/models/domain"
)

// RankByFrequency counts occurrences of the key extracted from each item and
// ranks the keys descending by count. Keys with equal counts keep the relative
// order in which they were first seen.
func RankByFrequency[T any](items []T, key func(T) string) []domain.RankedEntry {
	counts := make(map[string]int, len(items))
	var order []string

	for _, item := range items {
		k := key(item)
		if _, seen := counts[k]; !seen {
			order = append(order, k)
		}
		counts[k]++
	}

	entries := make([]domain.RankedEntry, 0, len(order))
	for _, k := range order {
		entries = append(entries, domain.RankedEntry{Entity: k, Count: counts[k]})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Count > entries[j].Count
	})

	return entries
}

// TopN returns the first n ranked entries, or all of them when fewer than n
// distinct keys exist.
func TopN(entries []domain.RankedEntry, n int) []domain.RankedEntry {
	if n < 0 {
		n = 0
	}
	if n > len(entries) {
		n = len(entries)
	}
	return entries[:n]
}

// MostFrequent returns the rank-1 key, or the "None" sentinel for an empty
// ranking.
func MostFrequent(entries []domain.RankedEntry) string {
	if len(entries) == 0 {
		return domain.NoneSentinel
	}
	return entries[0].Entity
}
