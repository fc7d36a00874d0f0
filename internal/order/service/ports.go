package service

import (
	"context"
	"time"

	"orderdesk/internal/domain"
)

// OrderRepository persists orders as one record per line. Insert must be
// all-or-nothing. Deletes return a NotFoundError when nothing matched.
type OrderRepository interface {
	Insert(ctx context.Context, order domain.Order) (uint64, error)
	FindByDay(ctx context.Context, day time.Time) ([]domain.OrderRecord, error)
	DeleteOrder(ctx context.Context, orderID uint64) error
	DeleteRecord(ctx context.Context, recordID uint64) error
}

type Clock func() time.Time

type LineInput struct {
	Product      string
	Quantity     string
	Unit         string
	SpecialPrice string
}

type SubmitOrderCommand struct {
	Employee string
	Retailer domain.Retailer
	Lines    []LineInput
	Remarks  string
}
