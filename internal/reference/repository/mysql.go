package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"orderdesk/internal/domain"
)

type MySQLRepository struct {
	db *sql.DB
}

func NewMySQLRepository(db *sql.DB) *MySQLRepository {
	return &MySQLRepository{db: db}
}

func (r *MySQLRepository) ListRetailers(ctx context.Context) ([]domain.Retailer, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT name, address, address2, mobile FROM retailers`)
	if err != nil {
		return nil, fmt.Errorf("querying retailers: %w", err)
	}
	defer rows.Close()

	var retailers []domain.Retailer
	for rows.Next() {
		var rt domain.Retailer
		if err := rows.Scan(&rt.Name, &rt.Address, &rt.Address2, &rt.Mobile); err != nil {
			return nil, fmt.Errorf("scanning retailer row: %w", err)
		}
		retailers = append(retailers, rt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating retailer rows: %w", err)
	}

	return retailers, nil
}

func (r *MySQLRepository) ListProducts(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT name FROM products`)
	if err != nil {
		return nil, fmt.Errorf("querying products: %w", err)
	}
	defer rows.Close()

	var products []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scanning product row: %w", err)
		}
		products = append(products, name)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating product rows: %w", err)
	}

	return products, nil
}

// ReplaceRetailers swaps the whole retailer list in one transaction.
// A repeated name keeps the last row's details.
func (r *MySQLRepository) ReplaceRetailers(ctx context.Context, retailers []domain.Retailer) error {
	return r.replace(ctx, "retailers", func(tx *sql.Tx) error {
		if len(retailers) == 0 {
			return nil
		}
		placeholders := make([]string, len(retailers))
		args := make([]interface{}, 0, len(retailers)*4)
		for i, rt := range retailers {
			s := rt.Snapshot()
			placeholders[i] = "(?, ?, ?, ?)"
			args = append(args, s.Name, s.Address, s.Address2, s.Mobile)
		}
		query := fmt.Sprintf(`
			INSERT INTO retailers (name, address, address2, mobile)
			VALUES %s
			ON DUPLICATE KEY UPDATE address = VALUES(address), address2 = VALUES(address2), mobile = VALUES(mobile)`,
			strings.Join(placeholders, ", "),
		)
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("inserting retailers: %w", err)
		}
		return nil
	})
}

func (r *MySQLRepository) ReplaceProducts(ctx context.Context, products []string) error {
	return r.replace(ctx, "products", func(tx *sql.Tx) error {
		if len(products) == 0 {
			return nil
		}
		placeholders := make([]string, len(products))
		args := make([]interface{}, len(products))
		for i, name := range products {
			placeholders[i] = "(?)"
			args[i] = strings.TrimSpace(name)
		}
		query := fmt.Sprintf(`INSERT IGNORE INTO products (name) VALUES %s`, strings.Join(placeholders, ", "))
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("inserting products: %w", err)
		}
		return nil
	})
}

func (r *MySQLRepository) replace(ctx context.Context, table string, insert func(tx *sql.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s", table)); err != nil {
		return fmt.Errorf("clearing %s: %w", table, err)
	}

	if err := insert(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing %s: %w", table, err)
	}
	return nil
}
