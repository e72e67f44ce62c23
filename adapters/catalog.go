package adapters

import (
	"fmt"

	"catalog-extractor/internal/types"

	"github.com/PuerkitoBio/goquery"
)

// CatalogAdapter maps rendered product cards to Product records
type CatalogAdapter struct {
	*BaseAdapter
}

// NewCatalogAdapter creates a new catalog adapter
func NewCatalogAdapter(config *types.Config, logger types.Logger, browser types.Browser) *CatalogAdapter {
	return &CatalogAdapter{
		BaseAdapter: NewBaseAdapter(config, logger, browser),
	}
}

// Entries returns every catalog entry in doc, in document order
func (c *CatalogAdapter) Entries(doc *goquery.Document) *goquery.Selection {
	return doc.Find(c.config.Selectors.Entry)
}

// ExtractProduct builds a Product from a single catalog entry. A required
// fragment that is absent yields a MissingFieldError; unparsable numbers
// yield an error wrapping types.ErrMalformedNumber.
func (c *CatalogAdapter) ExtractProduct(entry *goquery.Selection) (types.Product, error) {
	sel := c.config.Selectors

	// The attribute carries the full title; the link text may be truncated.
	title, ok := c.ExtractAttribute(entry, sel.Title, sel.TitleAttr)
	if !ok || title == "" {
		return types.Product{}, types.MissingFieldError{Field: "title"}
	}

	description, ok := c.ExtractText(entry, sel.Description)
	if !ok {
		return types.Product{}, types.MissingFieldError{Field: "description"}
	}

	priceText, ok := c.ExtractText(entry, sel.Price)
	if !ok {
		return types.Product{}, types.MissingFieldError{Field: "price"}
	}
	price, err := ParsePrice(priceText)
	if err != nil {
		return types.Product{}, fmt.Errorf("price: %w", err)
	}

	reviewText, ok := c.ExtractText(entry, sel.ReviewCount)
	if !ok {
		return types.Product{}, types.MissingFieldError{Field: "num_of_reviews"}
	}
	reviews, err := ParseReviewCount(reviewText)
	if err != nil {
		return types.Product{}, fmt.Errorf("num_of_reviews: %w", err)
	}

	return types.Product{
		Title:        title,
		Description:  description,
		Price:        price,
		Rating:       CountRatingMarkers(entry, sel.RatingMarker),
		NumOfReviews: reviews,
	}, nil
}
