package workbook

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWorkbook_ViewMissingFileIsEmpty(t *testing.T) {
	wb := New(filepath.Join(t.TempDir(), "orders.xlsx"))

	err := wb.View(func(f *excelize.File) error {
		assert.False(t, HasSheet(f, OrdersSheet))
		return nil
	})
	require.NoError(t, err)
}

func TestWorkbook_UpdateCreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orders.xlsx")
	wb := New(path)

	err := wb.Update(func(f *excelize.File) error {
		existed, err := EnsureSheet(f, ProductsSheet)
		require.NoError(t, err)
		assert.False(t, existed)
		return SetRow(f, ProductsSheet, 1, []interface{}{"Name"})
	})
	require.NoError(t, err)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{ProductsSheet}, f.GetSheetList())
	v, err := f.GetCellValue(ProductsSheet, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Name", v)
}

func TestWorkbook_FailedUpdateKeepsPreviousContents(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "orders.xlsx")
	wb := New(path)

	require.NoError(t, wb.Update(func(f *excelize.File) error {
		if _, err := EnsureSheet(f, ProductsSheet); err != nil {
			return err
		}
		return SetRow(f, ProductsSheet, 1, []interface{}{"kept"})
	}))

	boom := errors.New("boom")
	err := wb.Update(func(f *excelize.File) error {
		require.NoError(t, SetRow(f, ProductsSheet, 1, []interface{}{"lost"}))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	require.NoError(t, wb.View(func(f *excelize.File) error {
		v, err := f.GetCellValue(ProductsSheet, "A1")
		require.NoError(t, err)
		assert.Equal(t, "kept", v)
		return nil
	}))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestEnsureSheet_Existing(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	_, err := EnsureSheet(f, OrdersSheet)
	require.NoError(t, err)
	existed, err := EnsureSheet(f, OrdersSheet)
	require.NoError(t, err)

	assert.True(t, existed)
	assert.Equal(t, []string{OrdersSheet}, f.GetSheetList())
}

func TestCell(t *testing.T) {
	row := []string{" a ", "b"}

	assert.Equal(t, "a", Cell(row, 0))
	assert.Equal(t, "b", Cell(row, 1))
	assert.Equal(t, "", Cell(row, 2))
	assert.Equal(t, "", Cell(row, -1))
}
