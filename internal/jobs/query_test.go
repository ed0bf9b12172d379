package jobs

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveQueryFixedCategoryOrder(t *testing.T) {
	skills := map[string][]string{
		"tools":                 {"Docker"},
		"programming_languages": {"Go", "Rust"},
		"databases":             {"Postgres"},
	}

	assert.Equal(t, "Go Rust Postgres Docker", DeriveQuery(skills))
}

func TestDeriveQueryKeepsInsertionOrderAndDuplicates(t *testing.T) {
	skills := map[string][]string{
		"frameworks": {"Gin", "Echo", "Gin"},
	}

	assert.Equal(t, "Gin Echo Gin", DeriveQuery(skills), "no dedupe, no reordering")
}

func TestDeriveQueryEmpty(t *testing.T) {
	assert.Equal(t, "", DeriveQuery(nil))
	assert.Equal(t, "", DeriveQuery(map[string][]string{"unknown_category": {"x"}}))
}

func TestPaginateFiftyByTwelve(t *testing.T) {
	listings := make([]Listing, 50)
	for i := range listings {
		listings[i] = Listing{ID: fmt.Sprintf("job-%02d", i)}
	}

	assert.Equal(t, 5, PageCount(len(listings), 12))

	seen := make(map[string]int)
	for page := 1; page <= 5; page++ {
		chunk := Paginate(listings, page, 12)
		if page < 5 {
			assert.Len(t, chunk, 12, "page %d", page)
		} else {
			assert.Len(t, chunk, 2, "tail page holds the remainder")
		}
		for _, l := range chunk {
			seen[l.ID]++
		}
	}

	assert.Len(t, seen, 50, "pages cover every listing")
	for id, count := range seen {
		assert.Equal(t, 1, count, "listing %s must appear exactly once", id)
	}
}

func TestPaginateDefaultsAndOutOfRange(t *testing.T) {
	listings := make([]Listing, 20)

	assert.Len(t, Paginate(listings, 1, 0), 12, "size defaults to 12")
	assert.Len(t, Paginate(listings, 0, 0), 12, "page defaults to 1")
	assert.Empty(t, Paginate(listings, 3, 12), "past the end yields an empty page")
	assert.Equal(t, 0, PageCount(0, 12))
}
