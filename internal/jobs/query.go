package jobs

import (
	"strings"

	"ats-backend/internal/scoring"
)

const defaultPageSize = 12

// DeriveQuery flattens grouped resume skills into one search query. Category
// order is fixed and skills keep their insertion order within a category; no
// dedupe or stemming, the provider matches on any term.
func DeriveQuery(skillsByCategory map[string][]string) string {
	var terms []string
	for _, category := range scoring.SkillCategories {
		terms = append(terms, skillsByCategory[category]...)
	}
	return strings.Join(terms, " ")
}

// Paginate slices listings deterministically. Pages are 1-based; size falls
// back to 12. Pages never overlap and the tail page holds the remainder.
func Paginate(listings []Listing, page, size int) []Listing {
	if size <= 0 {
		size = defaultPageSize
	}
	if page <= 0 {
		page = 1
	}
	start := (page - 1) * size
	if start >= len(listings) {
		return []Listing{}
	}
	end := start + size
	if end > len(listings) {
		end = len(listings)
	}
	return listings[start:end]
}

// PageCount reports how many pages Paginate yields for a result set.
func PageCount(total, size int) int {
	if size <= 0 {
		size = defaultPageSize
	}
	if total <= 0 {
		return 0
	}
	return (total + size - 1) / size
}
