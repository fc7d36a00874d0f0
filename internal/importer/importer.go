package importer

import (
	"context"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"orderdesk/internal/domain"
)

// Target receives a full replacement of a reference list.
type Target interface {
	ReplaceRetailers(ctx context.Context, retailers []domain.Retailer) error
	ReplaceProducts(ctx context.Context, products []string) error
}

type Importer struct {
	target Target
	logger *zap.Logger
}

func New(target Target, logger *zap.Logger) *Importer {
	return &Importer{
		target: target,
		logger: logger,
	}
}

// ImportRetailers replaces the retailer list with the rows of the sheet.
// Row 1 is a header; columns are name, address, address2, mobile.
func (i *Importer) ImportRetailers(ctx context.Context, r io.Reader, filename string) (int, error) {
	rows, err := ReadRows(r, filename)
	if err != nil {
		return 0, err
	}

	retailers := ParseRetailers(rows)
	if len(retailers) == 0 {
		return 0, fmt.Errorf("%s: no retailers found", filename)
	}
	if err := i.target.ReplaceRetailers(ctx, retailers); err != nil {
		return 0, fmt.Errorf("replacing retailers: %w", err)
	}

	i.logger.Info("retailers imported", zap.String("file", filename), zap.Int("count", len(retailers)))
	return len(retailers), nil
}

// ImportProducts replaces the product list with column A of the sheet.
func (i *Importer) ImportProducts(ctx context.Context, r io.Reader, filename string) (int, error) {
	rows, err := ReadRows(r, filename)
	if err != nil {
		return 0, err
	}

	products := ParseProducts(rows)
	if len(products) == 0 {
		return 0, fmt.Errorf("%s: no products found", filename)
	}
	if err := i.target.ReplaceProducts(ctx, products); err != nil {
		return 0, fmt.Errorf("replacing products: %w", err)
	}

	i.logger.Info("products imported", zap.String("file", filename), zap.Int("count", len(products)))
	return len(products), nil
}

// ParseRetailers skips the header and rows with a blank name. A repeated
// name keeps its last row.
func ParseRetailers(rows [][]string) []domain.Retailer {
	var retailers []domain.Retailer
	seen := map[string]int{}
	for _, row := range body(rows) {
		rt := domain.Retailer{
			Name:     cell(row, 0),
			Address:  cell(row, 1),
			Address2: cell(row, 2),
			Mobile:   cell(row, 3),
		}
		if rt.Name == "" {
			continue
		}
		rt = rt.Snapshot()
		if idx, ok := seen[strings.ToLower(rt.Name)]; ok {
			retailers[idx] = rt
			continue
		}
		seen[strings.ToLower(rt.Name)] = len(retailers)
		retailers = append(retailers, rt)
	}
	return retailers
}

// ParseProducts skips the header, blank names and repeats.
func ParseProducts(rows [][]string) []string {
	var products []string
	seen := map[string]bool{}
	for _, row := range body(rows) {
		name := cell(row, 0)
		if name == "" || seen[strings.ToLower(name)] {
			continue
		}
		seen[strings.ToLower(name)] = true
		products = append(products, name)
	}
	return products
}

func body(rows [][]string) [][]string {
	if len(rows) <= 1 {
		return nil
	}
	return rows[1:]
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
