package mysql

import (
	"context"
	"database/sql"
	"fmt"
)

// Tables lists the schema in creation order.
var Tables = []struct {
	Name  string
	Query string
}{
	{"retailers", `
	CREATE TABLE IF NOT EXISTS retailers (
		id INT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		address VARCHAR(255) NOT NULL DEFAULT '-',
		address2 VARCHAR(255) NOT NULL DEFAULT '-',
		mobile VARCHAR(30) NOT NULL DEFAULT '-',
		UNIQUE KEY uq_retailer_name (name)
	) DEFAULT CHARSET=utf8mb4`},
	{"products", `
	CREATE TABLE IF NOT EXISTS products (
		id INT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		UNIQUE KEY uq_product_name (name)
	) DEFAULT CHARSET=utf8mb4`},
	{"order_numbers", `
	CREATE TABLE IF NOT EXISTS order_numbers (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		created_at DATETIME(6) NOT NULL
	)`},
	{"orders", `
	CREATE TABLE IF NOT EXISTS orders (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		order_id BIGINT UNSIGNED NOT NULL,
		line_no INT UNSIGNED NOT NULL,
		order_date DATE NOT NULL,
		order_time VARCHAR(8) NOT NULL,
		created_at DATETIME(6) NOT NULL,
		employee VARCHAR(100) NOT NULL,
		retailer VARCHAR(255) NOT NULL,
		address VARCHAR(255) NOT NULL DEFAULT '-',
		address2 VARCHAR(255) NOT NULL DEFAULT '-',
		mobile VARCHAR(30) NOT NULL DEFAULT '-',
		product VARCHAR(255) NOT NULL,
		quantity INT UNSIGNED NOT NULL,
		unit VARCHAR(50) NOT NULL DEFAULT '-',
		special_price VARCHAR(50) NOT NULL DEFAULT '-',
		remarks TEXT NOT NULL,
		INDEX idx_order_date (order_date),
		INDEX idx_order_id (order_id)
	) DEFAULT CHARSET=utf8mb4`},
}

// EnsureSchema creates any missing table. It is safe to run on every start.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, tbl := range Tables {
		if _, err := db.ExecContext(ctx, tbl.Query); err != nil {
			return fmt.Errorf("creating table %s: %w", tbl.Name, err)
		}
	}
	return nil
}
