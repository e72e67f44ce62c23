package extractor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"catalog-extractor/internal/types"
)

// Exporter persists the products extracted for one category
type Exporter interface {
	Export(name string, products []types.Product) error
}

// CatalogWalker visits each category page in turn with a single shared browser session
type CatalogWalker struct {
	browser  types.Browser
	scraper  *PageScraper
	exporter Exporter
	logger   types.Logger
	metrics  *Metrics
}

// NewCatalogWalker creates a new catalog walker
func NewCatalogWalker(config *types.Config, logger types.Logger, browser types.Browser, exporter Exporter, metrics *Metrics) *CatalogWalker {
	return &CatalogWalker{
		browser:  browser,
		scraper:  NewPageScraper(config, logger, browser, metrics),
		exporter: exporter,
		logger:   logger,
		metrics:  metrics,
	}
}

// Walk processes targets in order. A category that fails to load, scrape or
// export is recorded and skipped; only a lost browser session or a cancelled
// context stops the walk with an error.
func (w *CatalogWalker) Walk(ctx context.Context, targets []types.CategoryTarget) (*types.RunResult, error) {
	startTime := time.Now()
	w.logger.Infof("Starting catalog walk over %d categories", len(targets))

	result := &types.RunResult{}
	for i, target := range targets {
		w.logger.Infof("Processing category %d/%d: %s (%s)", i+1, len(targets), target.Name, target.URL)

		category, err := w.walkCategory(ctx, target)
		result.Categories = append(result.Categories, category)
		if err != nil {
			if errors.Is(err, types.ErrSessionClosed) || ctx.Err() != nil {
				return result, err
			}
			w.logger.Warnf("Skipping category %s: %v", target.Name, err)
			continue
		}

		w.logger.Infof("Category %s: exported %d products, skipped %d entries", target.Name, category.Products, category.Skipped)
	}

	w.logger.Infof("Catalog walk completed in %v", time.Since(startTime))
	return result, nil
}

func (w *CatalogWalker) walkCategory(ctx context.Context, target types.CategoryTarget) (types.CategoryResult, error) {
	category := types.CategoryResult{Name: target.Name, URL: target.URL}

	if err := w.browser.Navigate(ctx, target.URL); err != nil {
		w.metrics.incNavigationFailure()
		if errors.Is(err, types.ErrSessionClosed) {
			category.Err = err
		} else {
			category.Err = types.NavigationError{URL: target.URL, Err: err}
		}
		return category, category.Err
	}

	page, err := w.scraper.ScrapePage(ctx, target.Name)
	if err != nil {
		category.Err = fmt.Errorf("scrape %s: %w", target.Name, err)
		return category, category.Err
	}
	category.Products = len(page.Products)
	category.Skipped = len(page.Skipped)

	if err := w.exporter.Export(target.Name, page.Products); err != nil {
		category.Err = fmt.Errorf("export %s: %w", target.Name, err)
		return category, category.Err
	}
	return category, nil
}
