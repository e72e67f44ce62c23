package types

import (
	"context"
	"strconv"

	"github.com/shopspring/decimal"
)

// Product represents a single catalog entry extracted from a listing page
type Product struct {
	Title        string          `json:"title"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `json:"price"`
	Rating       int             `json:"rating"`
	NumOfReviews int             `json:"num_of_reviews"`
}

// ProductFields is the column order used by tabular exports
var ProductFields = []string{"title", "description", "price", "rating", "num_of_reviews"}

// Record returns the product fields as strings in ProductFields order.
// Numbers are written without locale formatting.
func (p Product) Record() []string {
	return []string{
		p.Title,
		p.Description,
		p.Price.String(),
		strconv.Itoa(p.Rating),
		strconv.Itoa(p.NumOfReviews),
	}
}

// CategoryTarget names one catalog listing page
type CategoryTarget struct {
	Name string
	URL  string
}

// SkippedEntry records a catalog entry that could not be turned into a Product
type SkippedEntry struct {
	Index  int
	Reason string
	Err    error
}

// PageResult represents the extraction result for a single rendered page
type PageResult struct {
	Products    []Product
	Skipped     []SkippedEntry
	Activations int
}

// CategoryResult summarizes the processing of one category
type CategoryResult struct {
	Name     string
	URL      string
	Products int
	Skipped  int
	Err      error
}

// RunResult represents the complete result of a catalog walk
type RunResult struct {
	Categories []CategoryResult
}

// Failed returns the categories that produced no export
func (r *RunResult) Failed() []CategoryResult {
	var failed []CategoryResult
	for _, c := range r.Categories {
		if c.Err != nil {
			failed = append(failed, c)
		}
	}
	return failed
}

// Browser is a single stateful browser session. Only one call may be
// outstanding at a time.
type Browser interface {
	// Navigate loads url in the session's page
	Navigate(ctx context.Context, url string) error

	// Present reports whether selector matches at least one element.
	// Absence is not an error.
	Present(ctx context.Context, selector string) (bool, error)

	// Visible reports whether the first element matching selector is rendered
	// visibly. A missing element is reported as not visible.
	Visible(ctx context.Context, selector string) (bool, error)

	// Click activates the first element matching selector
	Click(ctx context.Context, selector string) error

	// OuterHTML returns the currently rendered document
	OuterHTML(ctx context.Context) (string, error)

	// Close releases the session
	Close()
}

// Logger defines the logging interface
type Logger interface {
	Debug(args ...interface{})
	Info(args ...interface{})
	Warn(args ...interface{})
	Error(args ...interface{})
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}
