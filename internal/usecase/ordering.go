package usecase

import (
	"sort"
	"time"

	"cv-portfolio/internal/domain"
)

// SortEntries orders entries most recent end date first, then most recent
// start date, then most recently created. Entries without a date sort after
// dated ones.
func SortEntries(entries []domain.Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if c := compareDesc(a.EndDate, b.EndDate); c != 0 {
			return c < 0
		}
		if c := compareDesc(a.StartDate, b.StartDate); c != 0 {
			return c < 0
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID > b.ID
	})
}

// compareDesc returns -1 when a sorts first.
func compareDesc(a, b *time.Time) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	case a.After(*b):
		return -1
	case b.After(*a):
		return 1
	}
	return 0
}
