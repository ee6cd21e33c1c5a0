package services

import "time"

// RecencyGroups partitions a listing into today/yesterday/older buckets; the
// frontend renders these as sections instead of offset pages.
type RecencyGroups[T any] struct {
	Today     []T `json:"today"`
	Yesterday []T `json:"yesterday"`
	Older     []T `json:"older"`
}

// groupByDay buckets items by the calendar day of the timestamp `at` extracts,
// preserving the input order inside each bucket.
func groupByDay[T any](items []T, at func(T) time.Time) RecencyGroups[T] {
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	yesterday := today.AddDate(0, 0, -1)

	groups := RecencyGroups[T]{
		Today:     []T{},
		Yesterday: []T{},
		Older:     []T{},
	}

	for _, item := range items {
		t := at(item)
		day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, now.Location())
		switch {
		case day.Equal(today):
			groups.Today = append(groups.Today, item)
		case day.Equal(yesterday):
			groups.Yesterday = append(groups.Yesterday, item)
		default:
			groups.Older = append(groups.Older, item)
		}
	}

	return groups
}

// formatDay renders the short "2 Jan" label attached to older items.
func formatDay(t time.Time) string {
	return t.Format("2 Jan")
}
