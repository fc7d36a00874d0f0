package repository

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"orderdesk/internal/domain"
	"orderdesk/internal/infrastructure/workbook"
)

// WorkbookRepository reads the Retailers and Products sheets. Row 1 of each
// sheet is a header; retailers use columns A-D (name, address, address2,
// mobile) and products use column A.
type WorkbookRepository struct {
	wb *workbook.Workbook
}

func NewWorkbookRepository(wb *workbook.Workbook) *WorkbookRepository {
	return &WorkbookRepository{wb: wb}
}

func (r *WorkbookRepository) ListRetailers(ctx context.Context) ([]domain.Retailer, error) {
	var retailers []domain.Retailer
	err := r.wb.View(func(f *excelize.File) error {
		rows, err := dataRows(f, workbook.RetailersSheet)
		if err != nil {
			return err
		}
		for _, row := range rows {
			retailers = append(retailers, domain.Retailer{
				Name:     workbook.Cell(row, 0),
				Address:  workbook.Cell(row, 1),
				Address2: workbook.Cell(row, 2),
				Mobile:   workbook.Cell(row, 3),
			})
		}
		return nil
	})
	return retailers, err
}

func (r *WorkbookRepository) ListProducts(ctx context.Context) ([]string, error) {
	var products []string
	err := r.wb.View(func(f *excelize.File) error {
		rows, err := dataRows(f, workbook.ProductsSheet)
		if err != nil {
			return err
		}
		for _, row := range rows {
			products = append(products, workbook.Cell(row, 0))
		}
		return nil
	})
	return products, err
}

func (r *WorkbookRepository) ReplaceRetailers(ctx context.Context, retailers []domain.Retailer) error {
	values := make([][]interface{}, len(retailers))
	for i, rt := range retailers {
		s := rt.Snapshot()
		values[i] = []interface{}{s.Name, s.Address, s.Address2, s.Mobile}
	}
	return r.replaceSheet(workbook.RetailersSheet, []interface{}{"Name", "Address", "Address2", "Mobile No"}, values)
}

func (r *WorkbookRepository) ReplaceProducts(ctx context.Context, products []string) error {
	values := make([][]interface{}, len(products))
	for i, name := range products {
		values[i] = []interface{}{name}
	}
	return r.replaceSheet(workbook.ProductsSheet, []interface{}{"Name"}, values)
}

func (r *WorkbookRepository) replaceSheet(sheet string, header []interface{}, values [][]interface{}) error {
	return r.wb.Update(func(f *excelize.File) error {
		if _, err := workbook.EnsureSheet(f, sheet); err != nil {
			return err
		}
		existing, err := f.GetRows(sheet)
		if err != nil {
			return fmt.Errorf("reading sheet %s: %w", sheet, err)
		}
		for row := len(existing); row > len(values)+1; row-- {
			if err := f.RemoveRow(sheet, row); err != nil {
				return fmt.Errorf("clearing sheet %s: %w", sheet, err)
			}
		}
		if err := workbook.SetRow(f, sheet, 1, header); err != nil {
			return err
		}
		for i, v := range values {
			if err := workbook.SetRow(f, sheet, i+2, v); err != nil {
				return fmt.Errorf("writing sheet %s: %w", sheet, err)
			}
		}
		return nil
	})
}

func dataRows(f *excelize.File, sheet string) ([][]string, error) {
	if !workbook.HasSheet(f, sheet) {
		return nil, fmt.Errorf("sheet %s not found", sheet)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %s: %w", sheet, err)
	}
	if len(rows) <= 1 {
		return nil, nil
	}
	return rows[1:], nil
}
