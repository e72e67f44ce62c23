package exporter

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"catalog-extractor/internal/types"
)

// CSVExporter writes one <name>.csv file per category
type CSVExporter struct {
	Dir    string
	logger types.Logger
}

// NewCSVExporter creates a CSV exporter writing into dir
func NewCSVExporter(dir string, logger types.Logger) *CSVExporter {
	return &CSVExporter{Dir: dir, logger: logger}
}

// Export writes a header row followed by one row per product, in order
func (e *CSVExporter) Export(name string, products []types.Product) error {
	path, err := outputPath(e.Dir, name, ".csv")
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	if err := writer.Write(types.ProductFields); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, product := range products {
		if err := writer.Write(product.Record()); err != nil {
			return fmt.Errorf("write csv record: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush csv records: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close csv file: %w", err)
	}

	e.logger.Infof("Wrote %d products to %s", len(products), path)
	return nil
}

// JSONExporter writes newline-delimited JSON, one <name>.jsonl file per category
type JSONExporter struct {
	Dir    string
	logger types.Logger
}

// NewJSONExporter creates a JSON lines exporter writing into dir
func NewJSONExporter(dir string, logger types.Logger) *JSONExporter {
	return &JSONExporter{Dir: dir, logger: logger}
}

// Export writes one JSON object per product, in order
func (e *JSONExporter) Export(name string, products []types.Product) error {
	path, err := outputPath(e.Dir, name, ".jsonl")
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create json file: %w", err)
	}
	defer f.Close()

	buffer := bufio.NewWriter(f)
	encoder := json.NewEncoder(buffer)
	for _, product := range products {
		if err := encoder.Encode(product); err != nil {
			return fmt.Errorf("encode json record: %w", err)
		}
	}
	if err := buffer.Flush(); err != nil {
		return fmt.Errorf("flush json writer: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close json file: %w", err)
	}

	e.logger.Infof("Wrote %d products to %s", len(products), path)
	return nil
}

// MultiExporter writes a category in every configured output format
type MultiExporter struct {
	csv  *CSVExporter
	json *JSONExporter
}

// Export runs every configured format and joins their errors
func (m *MultiExporter) Export(name string, products []types.Product) error {
	var errs []error
	if m.csv != nil {
		if err := m.csv.Export(name, products); err != nil {
			errs = append(errs, err)
		}
	}
	if m.json != nil {
		if err := m.json.Export(name, products); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// New returns an exporter for a configured output format
func New(format, dir string, logger types.Logger) (*MultiExporter, error) {
	switch format {
	case types.FormatCSV:
		return &MultiExporter{csv: NewCSVExporter(dir, logger)}, nil
	case types.FormatJSON:
		return &MultiExporter{json: NewJSONExporter(dir, logger)}, nil
	case types.FormatDual:
		return &MultiExporter{csv: NewCSVExporter(dir, logger), json: NewJSONExporter(dir, logger)}, nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

func outputPath(dir, name, ext string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("export name cannot be empty")
	}
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return filepath.Join(dir, name+ext), nil
}
