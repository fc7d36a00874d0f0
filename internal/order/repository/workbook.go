package repository

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	"orderdesk/internal/domain"
	"orderdesk/internal/errors"
	"orderdesk/internal/infrastructure/workbook"
)

// countersSheet is a hidden sheet holding the last issued order and record ids,
// so ids are never reused after the newest rows are deleted.
const countersSheet = "Counters"

// Orders sheet columns. M to O are hidden.
const (
	colDate = iota
	colTime
	colEmployee
	colRetailer
	colAddress
	colAddress2
	colMobile
	colProduct
	colQuantity
	colUnit
	colSpecialPrice
	colRemarks
	colOrderID
	colRecordID
	colCreatedAt
)

var ordersHeader = []interface{}{
	"Date", "Time", "Employee", "Retailer", "Address", "Address2", "Mobile No",
	"Product", "Quantity", "Unit", "Special Price", "Remarks",
	"Order ID", "Record ID", "Created At",
}

type WorkbookOrderRepository struct {
	wb *workbook.Workbook
}

func NewWorkbookOrderRepository(wb *workbook.Workbook) *WorkbookOrderRepository {
	return &WorkbookOrderRepository{wb: wb}
}

// Insert appends one row per line. The workbook is saved once, so either
// every line is written or none is.
func (r *WorkbookOrderRepository) Insert(ctx context.Context, order domain.Order) (uint64, error) {
	err := r.wb.Update(func(f *excelize.File) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		rows, err := ensureOrdersSheet(f)
		if err != nil {
			return err
		}

		lastOrder, lastRecord, err := readCounters(f)
		if err != nil {
			return err
		}
		for _, row := range dataRows(rows) {
			lastOrder = maxID(lastOrder, cellID(row, colOrderID))
			lastRecord = maxID(lastRecord, cellID(row, colRecordID))
		}

		order.ID = lastOrder + 1
		next := len(rows) + 1
		for i, rec := range order.Records() {
			lastRecord++
			values := []interface{}{
				rec.Date(), rec.Time(), rec.Employee,
				rec.Retailer.Name, rec.Retailer.Address, rec.Retailer.Address2, rec.Retailer.Mobile,
				rec.Line.Product, rec.Line.Quantity, rec.Line.Unit, rec.Line.SpecialPrice, rec.Remarks,
				rec.OrderID, lastRecord, rec.CreatedAt.Format(time.RFC3339Nano),
			}
			if err := workbook.SetRow(f, workbook.OrdersSheet, next+i, values); err != nil {
				return fmt.Errorf("writing order row: %w", err)
			}
		}

		return writeCounters(f, order.ID, lastRecord)
	})
	if err != nil {
		return 0, err
	}
	return order.ID, nil
}

// FindByDay scans the Orders sheet for rows created on day's calendar day in
// day's zone. Rows without a Created At value fall back to the Date and Time columns.
func (r *WorkbookOrderRepository) FindByDay(ctx context.Context, day time.Time) ([]domain.OrderRecord, error) {
	want := day.Format(domain.DayLayout)

	var records []domain.OrderRecord
	err := r.wb.View(func(f *excelize.File) error {
		if !workbook.HasSheet(f, workbook.OrdersSheet) {
			return nil
		}
		rows, err := f.GetRows(workbook.OrdersSheet)
		if err != nil {
			return fmt.Errorf("reading orders sheet: %w", err)
		}

		lines := map[uint64]int{}
		for _, row := range dataRows(rows) {
			rec, ok := parseRecord(row, day.Location())
			if !ok {
				continue
			}
			if rec.OrderID != 0 {
				lines[rec.OrderID]++
				rec.LineNo = lines[rec.OrderID]
			}
			if rec.Day() == want {
				records = append(records, rec)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *WorkbookOrderRepository) DeleteOrder(ctx context.Context, orderID uint64) error {
	return r.deleteRows(colOrderID, orderID, "order")
}

func (r *WorkbookOrderRepository) DeleteRecord(ctx context.Context, recordID uint64) error {
	return r.deleteRows(colRecordID, recordID, "order record")
}

func (r *WorkbookOrderRepository) deleteRows(col int, id uint64, kind string) error {
	notFound := errors.NewNotFoundError(fmt.Sprintf("%s with id %d not found", kind, id))

	return r.wb.Update(func(f *excelize.File) error {
		if !workbook.HasSheet(f, workbook.OrdersSheet) {
			return notFound
		}
		rows, err := f.GetRows(workbook.OrdersSheet)
		if err != nil {
			return fmt.Errorf("reading orders sheet: %w", err)
		}

		var matched []int
		for i := 1; i < len(rows); i++ {
			if cellID(rows[i], col) == id {
				matched = append(matched, i+1)
			}
		}
		if len(matched) == 0 {
			return notFound
		}

		for i := len(matched) - 1; i >= 0; i-- {
			if err := f.RemoveRow(workbook.OrdersSheet, matched[i]); err != nil {
				return fmt.Errorf("removing row %d: %w", matched[i], err)
			}
		}
		return nil
	})
}

// ensureOrdersSheet creates the sheet and its bold header when the sheet is
// empty, and returns the current rows.
func ensureOrdersSheet(f *excelize.File) ([][]string, error) {
	if _, err := workbook.EnsureSheet(f, workbook.OrdersSheet); err != nil {
		return nil, err
	}
	rows, err := f.GetRows(workbook.OrdersSheet)
	if err != nil {
		return nil, fmt.Errorf("reading orders sheet: %w", err)
	}
	if len(rows) > 0 {
		return rows, nil
	}

	if err := workbook.SetRow(f, workbook.OrdersSheet, 1, ordersHeader); err != nil {
		return nil, fmt.Errorf("writing header: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("creating header style: %w", err)
	}
	last, _ := excelize.CoordinatesToCellName(len(ordersHeader), 1)
	if err := f.SetCellStyle(workbook.OrdersSheet, "A1", last, bold); err != nil {
		return nil, fmt.Errorf("styling header: %w", err)
	}
	if err := f.SetColVisible(workbook.OrdersSheet, "M:O", false); err != nil {
		return nil, fmt.Errorf("hiding id columns: %w", err)
	}

	header := make([]string, len(ordersHeader))
	for i, h := range ordersHeader {
		header[i] = h.(string)
	}
	return [][]string{header}, nil
}

func readCounters(f *excelize.File) (uint64, uint64, error) {
	if !workbook.HasSheet(f, countersSheet) {
		return 0, 0, nil
	}
	rows, err := f.GetRows(countersSheet)
	if err != nil {
		return 0, 0, fmt.Errorf("reading counters: %w", err)
	}
	if len(rows) == 0 {
		return 0, 0, nil
	}
	return cellID(rows[0], 0), cellID(rows[0], 1), nil
}

func writeCounters(f *excelize.File, lastOrder, lastRecord uint64) error {
	existed, err := workbook.EnsureSheet(f, countersSheet)
	if err != nil {
		return err
	}
	if !existed {
		if err := f.SetSheetVisible(countersSheet, false); err != nil {
			return fmt.Errorf("hiding counters sheet: %w", err)
		}
	}
	return workbook.SetRow(f, countersSheet, 1, []interface{}{lastOrder, lastRecord})
}

// parseRecord skips rows without a record id: they were typed in by hand and
// could never be deleted through the API.
func parseRecord(row []string, loc *time.Location) (domain.OrderRecord, bool) {
	recordID := cellID(row, colRecordID)
	if recordID == 0 {
		return domain.OrderRecord{}, false
	}

	created, err := time.Parse(time.RFC3339Nano, workbook.Cell(row, colCreatedAt))
	if err != nil {
		raw := workbook.Cell(row, colDate) + " " + workbook.Cell(row, colTime)
		created, err = time.ParseInLocation(domain.DateLayout+" "+domain.TimeLayout, raw, loc)
		if err != nil {
			return domain.OrderRecord{}, false
		}
	}

	quantity, _ := strconv.Atoi(workbook.Cell(row, colQuantity))

	return domain.OrderRecord{
		ID:       recordID,
		OrderID:  cellID(row, colOrderID),
		LineNo:   1,
		Employee: workbook.Cell(row, colEmployee),
		Retailer: domain.Retailer{
			Name:     workbook.Cell(row, colRetailer),
			Address:  workbook.Cell(row, colAddress),
			Address2: workbook.Cell(row, colAddress2),
			Mobile:   workbook.Cell(row, colMobile),
		},
		Line: domain.OrderLine{
			Product:      workbook.Cell(row, colProduct),
			Quantity:     quantity,
			Unit:         workbook.Cell(row, colUnit),
			SpecialPrice: workbook.Cell(row, colSpecialPrice),
		},
		Remarks:   workbook.Cell(row, colRemarks),
		CreatedAt: created.In(loc),
	}, true
}

func dataRows(rows [][]string) [][]string {
	if len(rows) <= 1 {
		return nil
	}
	return rows[1:]
}

func cellID(row []string, col int) uint64 {
	id, err := strconv.ParseUint(workbook.Cell(row, col), 10, 64)
	if err != nil {
		return 0
	}
	return id
}

func maxID(a, b uint64) uint64 {
	if b > a {
		return b
	}
	return a
}
