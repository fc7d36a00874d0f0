package workbook

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/xuri/excelize/v2"
)

const (
	OrdersSheet    = "Orders"
	RetailersSheet = "Retailers"
	ProductsSheet  = "Products"
)

// Workbook serializes access to one .xlsx file. Every update is written to a
// temporary file and renamed over the original, so a failed update leaves the
// previous contents in place.
type Workbook struct {
	path string
	mu   sync.Mutex
}

func New(path string) *Workbook {
	return &Workbook{path: path}
}

func (w *Workbook) Path() string {
	return w.path
}

// View runs fn against the current contents. A missing file is viewed as an empty workbook.
func (w *Workbook) View(fn func(f *excelize.File) error) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	f, err := w.open()
	if err != nil {
		return err
	}
	defer f.Close()

	return fn(f)
}

// Update runs fn and saves the result only if fn succeeds.
func (w *Workbook) Update(fn func(f *excelize.File) error) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	f, err := w.open()
	if err != nil {
		return err
	}
	defer f.Close()

	if err := fn(f); err != nil {
		return err
	}

	return w.save(f)
}

func (w *Workbook) open() (*excelize.File, error) {
	f, err := excelize.OpenFile(w.path)
	if err == nil {
		return f, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return excelize.NewFile(), nil
	}
	return nil, fmt.Errorf("opening workbook %s: %w", w.path, err)
}

func (w *Workbook) save(f *excelize.File) error {
	dir := filepath.Dir(w.path)
	base := strings.TrimSuffix(filepath.Base(w.path), filepath.Ext(w.path))

	tmp, err := os.CreateTemp(dir, "."+base+"-*.xlsx")
	if err != nil {
		return fmt.Errorf("creating temp workbook: %w", err)
	}
	tmpName := tmp.Name()

	if err := f.Write(tmp); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing workbook: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp workbook: %w", err)
	}
	if err := os.Rename(tmpName, w.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replacing workbook: %w", err)
	}
	return nil
}

// EnsureSheet returns whether the sheet already existed. A fresh workbook's
// default sheet is renamed rather than left behind.
func EnsureSheet(f *excelize.File, name string) (bool, error) {
	idx, err := f.GetSheetIndex(name)
	if err != nil {
		return false, err
	}
	if idx >= 0 {
		return true, nil
	}

	sheets := f.GetSheetList()
	if len(sheets) == 1 && sheets[0] == "Sheet1" {
		rows, err := f.GetRows("Sheet1")
		if err != nil {
			return false, err
		}
		if len(rows) == 0 {
			return false, f.SetSheetName("Sheet1", name)
		}
	}

	if _, err := f.NewSheet(name); err != nil {
		return false, fmt.Errorf("creating sheet %s: %w", name, err)
	}
	return false, nil
}

// HasSheet reports whether the sheet exists.
func HasSheet(f *excelize.File, name string) bool {
	idx, err := f.GetSheetIndex(name)
	return err == nil && idx >= 0
}

// Cell returns the trimmed value at idx, or "" when the row is shorter.
func Cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// SetRow writes values starting at column A of the given 1-based row.
func SetRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}
