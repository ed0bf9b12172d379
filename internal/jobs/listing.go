package jobs

import "context"

// Listing is one search result, already flattened from the provider shape.
type Listing struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Company     string  `json:"company"`
	Location    string  `json:"location"`
	Description string  `json:"description"`
	RedirectURL string  `json:"redirectUrl"`
	Created     string  `json:"created"`
	SalaryMin   float64 `json:"salaryMin"`
	SalaryMax   float64 `json:"salaryMax"`
}

// Searcher finds listings for a free-text query.
type Searcher interface {
	Search(ctx context.Context, query string) ([]Listing, error)
}
