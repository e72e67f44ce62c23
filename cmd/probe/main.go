package main

import (
	"context"
	"fmt"
	"os"

	"catalog-extractor/adapters"
	"catalog-extractor/internal/types"
	"catalog-extractor/utils"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// probe loads one catalog page and reports what each configured selector matches.
// Usage: probe [url]
func main() {
	_ = godotenv.Load()

	logger := logrus.New()
	logger.SetLevel(logrus.WarnLevel)

	config, err := types.LoadConfigFromEnv()
	if err != nil {
		logger.Fatalf("Invalid configuration: %v", err)
	}

	targetURL := ""
	if len(os.Args) > 1 {
		targetURL = os.Args[1]
	} else {
		targets, err := config.CategoryTargets()
		if err != nil {
			logger.Fatalf("Failed to build category targets: %v", err)
		}
		targetURL = targets[0].URL
	}

	ctx := context.Background()
	browser, err := utils.NewBrowser(ctx, config, logger)
	if err != nil {
		logger.Fatalf("Failed to open browser session: %v", err)
	}
	defer browser.Close()

	fmt.Printf("=== Probing %s (%s backend) ===\n", targetURL, config.Backend)
	if err := browser.Navigate(ctx, targetURL); err != nil {
		fmt.Printf("Navigation failed: %v\n", err)
		return
	}

	sel := config.Selectors
	for _, control := range []struct{ name, selector string }{
		{"consent", sel.Consent},
		{"load more", sel.LoadMore},
	} {
		present, err := browser.Present(ctx, control.selector)
		if err != nil {
			fmt.Printf("%-10s %s: lookup failed: %v\n", control.name, control.selector, err)
			continue
		}
		visible, _ := browser.Visible(ctx, control.selector)
		fmt.Printf("%-10s %s: present=%t visible=%t\n", control.name, control.selector, present, visible)
	}

	catalog := adapters.NewCatalogAdapter(config, logger, browser)
	doc, err := catalog.RenderedDocument(ctx)
	if err != nil {
		fmt.Printf("Failed to read page: %v\n", err)
		return
	}

	entries := catalog.Entries(doc)
	fmt.Printf("Entries matching %s: %d\n", sel.Entry, entries.Length())
	for _, field := range []string{sel.Title, sel.Description, sel.Price, sel.ReviewCount, sel.RatingMarker} {
		fmt.Printf("  %-40s %d\n", field, entries.Find(field).Length())
	}

	// Show the first few extracted records so selector drift is easy to spot
	for i := 0; i < entries.Length() && i < 3; i++ {
		product, err := catalog.ExtractProduct(entries.Eq(i))
		if err != nil {
			fmt.Printf("  entry %d: %v\n", i, err)
			continue
		}
		fmt.Printf("  entry %d: %q price=%s rating=%d reviews=%d\n", i, product.Title, product.Price, product.Rating, product.NumOfReviews)
	}
}
