package model

// Sort is the listing order requested by the client
type Sort string

const (
	SortNewest Sort = "newest"
	SortOldest Sort = "oldest"
	SortTitle  Sort = "title"
	SortAuthor Sort = "author"
)

// ParseSort maps a query value to a Sort, falling back to newest.
// Values match exactly: "Title" or " title" is not a known sort.
func ParseSort(s string) Sort {
	switch Sort(s) {
	case SortOldest:
		return SortOldest
	case SortTitle:
		return SortTitle
	case SortAuthor:
		return SortAuthor
	default:
		return SortNewest
	}
}

// ListFilter drives the blog listing query.
// A zero Limit means no limit.
type ListFilter struct {
	Search        string
	Sort          Sort
	Limit         uint64
	PublishedOnly bool
}

// Accessor defaults, used when the caller passes a limit <= 0
const (
	DefaultFeaturedLimit = 3
	DefaultRecentLimit   = 5
	DefaultPopularLimit  = 5
	HomeRecentLimit      = 3
)

// ResolveLimit returns limit, or fallback when limit is not positive
func ResolveLimit(limit, fallback int) int {
	if limit <= 0 {
		return fallback
	}
	return limit
}
