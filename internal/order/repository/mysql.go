package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"orderdesk/internal/domain"
	"orderdesk/internal/errors"
)

type MySQLOrderRepository struct {
	db *sql.DB
}

func NewMySQLOrderRepository(db *sql.DB) *MySQLOrderRepository {
	return &MySQLOrderRepository{db: db}
}

// Insert allocates the order id and writes every line in one transaction.
func (r *MySQLOrderRepository) Insert(ctx context.Context, order domain.Order) (uint64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `INSERT INTO order_numbers (created_at) VALUES (?)`, order.CreatedAt)
	if err != nil {
		return 0, fmt.Errorf("allocating order id: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting order id: %w", err)
	}
	order.ID = uint64(id)

	records := order.Records()
	placeholders := make([]string, len(records))
	args := make([]interface{}, 0, len(records)*15)
	for i, rec := range records {
		placeholders[i] = "(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)"
		args = append(args,
			rec.OrderID, rec.LineNo, rec.Day(), rec.CreatedAt.Format("15:04:05"), rec.CreatedAt,
			rec.Employee, rec.Retailer.Name, rec.Retailer.Address, rec.Retailer.Address2, rec.Retailer.Mobile,
			rec.Line.Product, rec.Line.Quantity, rec.Line.Unit, rec.Line.SpecialPrice, rec.Remarks,
		)
	}

	query := fmt.Sprintf(`
		INSERT INTO orders (order_id, line_no, order_date, order_time, created_at,
		                    employee, retailer, address, address2, mobile,
		                    product, quantity, unit, special_price, remarks)
		VALUES %s`, strings.Join(placeholders, ", "))

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return 0, fmt.Errorf("inserting order lines: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing order: %w", err)
	}

	return order.ID, nil
}

// FindByDay returns the records whose order_date is day's calendar day.
func (r *MySQLOrderRepository) FindByDay(ctx context.Context, day time.Time) ([]domain.OrderRecord, error) {
	query := `
		SELECT id, order_id, line_no, created_at, employee, retailer, address, address2,
		       mobile, product, quantity, unit, special_price, remarks
		FROM orders
		WHERE order_date = ?
		ORDER BY created_at DESC, order_id DESC, line_no ASC
	`

	rows, err := r.db.QueryContext(ctx, query, day.Format(domain.DayLayout))
	if err != nil {
		return nil, fmt.Errorf("querying orders by day: %w", err)
	}
	defer rows.Close()

	var records []domain.OrderRecord
	for rows.Next() {
		var rec domain.OrderRecord
		err := rows.Scan(
			&rec.ID, &rec.OrderID, &rec.LineNo, &rec.CreatedAt, &rec.Employee,
			&rec.Retailer.Name, &rec.Retailer.Address, &rec.Retailer.Address2, &rec.Retailer.Mobile,
			&rec.Line.Product, &rec.Line.Quantity, &rec.Line.Unit, &rec.Line.SpecialPrice, &rec.Remarks,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning order row: %w", err)
		}
		rec.CreatedAt = rec.CreatedAt.In(day.Location())
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating order rows: %w", err)
	}

	return records, nil
}

func (r *MySQLOrderRepository) DeleteOrder(ctx context.Context, orderID uint64) error {
	return r.delete(ctx, `DELETE FROM orders WHERE order_id = ?`, orderID, "order")
}

func (r *MySQLOrderRepository) DeleteRecord(ctx context.Context, recordID uint64) error {
	return r.delete(ctx, `DELETE FROM orders WHERE id = ?`, recordID, "order record")
}

func (r *MySQLOrderRepository) delete(ctx context.Context, query string, id uint64, kind string) error {
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting %s: %w", kind, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("%s with id %d not found", kind, id))
	}

	return nil
}
