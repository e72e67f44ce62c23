package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"catalog-extractor/exporter"
	"catalog-extractor/extractor"
	"catalog-extractor/internal/types"
	"catalog-extractor/utils"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	// Load .env file if present
	_ = godotenv.Load()

	logger := newLogger()

	config, err := types.LoadConfigFromEnv()
	if err != nil {
		logger.Fatalf("Invalid configuration: %v", err)
	}
	if err := config.Validate(); err != nil {
		logger.Fatalf("Invalid configuration: %v", err)
	}

	targets, err := config.CategoryTargets()
	if err != nil {
		logger.Fatalf("Failed to build category targets: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	browser, err := utils.NewBrowser(ctx, config, logger)
	if err != nil {
		logger.Fatalf("Failed to open browser session: %v", err)
	}
	defer browser.Close()

	output, err := exporter.New(config.OutputFormat, config.OutputDir, logger)
	if err != nil {
		logger.Fatalf("Failed to create exporter: %v", err)
	}

	metrics := extractor.NewMetrics()
	walker := extractor.NewCatalogWalker(config, logger, browser, output, metrics)

	startTime := time.Now()
	result, err := walker.Walk(ctx, targets)
	if err != nil {
		browser.Close()
		logger.Fatalf("Catalog walk aborted: %v", err)
	}

	if err := metrics.WriteTextfile(config.MetricsFile); err != nil {
		logger.Errorf("Failed to write metrics file: %v", err)
	}

	// Print summary
	totalProducts, totalSkipped := 0, 0
	for _, category := range result.Categories {
		totalProducts += category.Products
		totalSkipped += category.Skipped
		logger.WithFields(logrus.Fields{
			"category": category.Name,
			"products": category.Products,
			"skipped":  category.Skipped,
		}).Info("Category summary")
	}
	for _, failed := range result.Failed() {
		logger.Warnf("Category %s failed (%s): %v", failed.Name, types.ErrorReason(failed.Err), failed.Err)
	}
	logger.Infof("Extraction completed in %v", time.Since(startTime))
	logger.Infof("Total categories processed: %d", len(result.Categories))
	logger.Infof("Total products exported: %d", totalProducts)
	logger.Infof("Total entries skipped: %d", totalSkipped)
}

func newLogger() *logrus.Logger {
	logger := logrus.New()

	// Set timestamp format with milliseconds
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05.000",
	})

	logger.SetLevel(logrus.InfoLevel)
	if levelStr := os.Getenv("LOG_LEVEL"); levelStr != "" {
		if level, err := logrus.ParseLevel(levelStr); err == nil {
			logger.SetLevel(level)
		}
	}
	return logger
}
