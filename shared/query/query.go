package query

import (
	"math"
	"sort"
	"time"
)

// Predicate reports whether a record matches one filter criterion. A nil
// Predicate means "no constraint".
type Predicate[T any] func(T) bool

// Apply reduces items to the records matching every non-nil predicate,
// preserving the original relative order. The input slice is never modified.
func Apply[T any](items []T, predicates ...Predicate[T]) []T {
	result := make([]T, 0, len(items))

	for _, item := range items {
		matched := true

		for _, predicate := range predicates {
			if predicate == nil {
				continue
			}

			if !predicate(item) {
				matched = false
				break
			}
		}

		if matched {
			result = append(result, item)
		}
	}

	return result
}

// SortStable orders items in place using the provided less function. Equal
// keys keep their original relative order. Callers are expected to map
// missing or unparsable sort keys to a deterministic extreme so they land at
// the end regardless of direction.
func SortStable[T any](items []T, less func(a, b T) bool) {
	sort.SliceStable(items, func(i, j int) bool {
		return less(items[i], items[j])
	})
}

// SortByTime orders items by a temporal key. The key function reports whether
// the record carries a parseable value; records without one take the extreme
// for the requested direction, so they land at the end either way.
func SortByTime[T any](items []T, key func(T) (time.Time, bool), desc bool) {
	missing := time.Date(9999, 12, 31, 23, 59, 59, 0, time.UTC)
	if desc {
		missing = time.Time{}
	}

	resolve := func(item T) time.Time {
		t, ok := key(item)
		if !ok {
			return missing
		}

		return t
	}

	SortStable(items, func(a, b T) bool {
		ta, tb := resolve(a), resolve(b)
		if desc {
			return ta.After(tb)
		}

		return ta.Before(tb)
	})
}

// Page carries the pagination metadata for a filtered, sliced collection.
type Page struct {
	TotalCount    int  `json:"total_count"`
	FilteredCount int  `json:"filtered_count"`
	Limit         int  `json:"limit"`
	Offset        int  `json:"offset"`
	HasMore       bool `json:"has_more"`
	CurrentPage   int  `json:"current_page"`
	TotalPages    int  `json:"total_pages"`
}

// Paginate slices a filtered collection into a single page. totalCount is the
// size of the unfiltered collection; offsets beyond the filtered count yield
// an empty page rather than an error.
func Paginate[T any](items []T, totalCount, limit, offset int) ([]T, Page) {
	filteredCount := len(items)

	start := offset
	if start > filteredCount {
		start = filteredCount
	}

	end := start + limit
	if end > filteredCount {
		end = filteredCount
	}

	page := Page{
		TotalCount:    totalCount,
		FilteredCount: filteredCount,
		Limit:         limit,
		Offset:        offset,
		HasMore:       offset+limit < filteredCount,
	}

	if limit > 0 {
		page.CurrentPage = offset/limit + 1
		page.TotalPages = int(math.Ceil(float64(filteredCount) / float64(limit)))
	} else {
		page.CurrentPage = 1
		page.TotalPages = 1
	}

	return items[start:end], page
}
