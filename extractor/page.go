package extractor

import (
	"context"
	"fmt"
	"time"

	"catalog-extractor/adapters"
	"catalog-extractor/internal/types"

	"github.com/PuerkitoBio/goquery"
)

// PageScraper extracts every product from the page currently loaded in the browser
type PageScraper struct {
	catalog    *adapters.CatalogAdapter
	consent    *adapters.ConsentHandler
	pagination *adapters.PaginationDriver
	logger     types.Logger
	metrics    *Metrics
}

// NewPageScraper creates a new page scraper bound to a browser session
func NewPageScraper(config *types.Config, logger types.Logger, browser types.Browser, metrics *Metrics) *PageScraper {
	return &PageScraper{
		catalog:    adapters.NewCatalogAdapter(config, logger, browser),
		consent:    adapters.NewConsentHandler(config, logger, browser),
		pagination: adapters.NewPaginationDriver(config, logger, browser),
		logger:     logger,
		metrics:    metrics,
	}
}

// ScrapePage dismisses consent, drains pagination and maps every rendered
// entry to a Product. Entries that fail extraction are reported in
// PageResult.Skipped and do not stop the page.
func (s *PageScraper) ScrapePage(ctx context.Context, category string) (*types.PageResult, error) {
	startTime := time.Now()
	defer func() {
		s.metrics.observePage(time.Since(startTime))
	}()

	s.consent.Dismiss(ctx)

	activations, err := s.pagination.Drain(ctx)
	s.metrics.addActivations(category, activations)
	if err != nil {
		return nil, fmt.Errorf("failed to load all entries: %w", err)
	}

	doc, err := s.catalog.RenderedDocument(ctx)
	if err != nil {
		return nil, err
	}

	entries := s.catalog.Entries(doc)
	s.logger.Debugf("Found %d catalog entries for %s after %d activations", entries.Length(), category, activations)

	result := &types.PageResult{Activations: activations}
	entries.Each(func(i int, entry *goquery.Selection) {
		product, err := s.catalog.ExtractProduct(entry)
		if err != nil {
			reason := types.ErrorReason(err)
			s.logger.Warnf("Skipping %s entry %d (%s): %v", category, i, reason, err)
			s.metrics.incSkipped(category, reason)
			result.Skipped = append(result.Skipped, types.SkippedEntry{Index: i, Reason: reason, Err: err})
			return
		}
		result.Products = append(result.Products, product)
	})
	s.metrics.addProducts(category, len(result.Products))

	return result, nil
}
