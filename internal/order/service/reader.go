package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"orderdesk/internal/domain"
	apperrors "orderdesk/internal/errors"
)

type OrderReader struct {
	repo   OrderRepository
	clock  Clock
	loc    *time.Location
	logger *zap.Logger
}

func NewOrderReader(repo OrderRepository, clock Clock, loc *time.Location, logger *zap.Logger) *OrderReader {
	return &OrderReader{
		repo:   repo,
		clock:  clock,
		loc:    loc,
		logger: logger,
	}
}

// ParseDay reads a YYYY-MM-DD calendar day in the reader's zone. An empty
// string means no filter was given.
func (r *OrderReader) ParseDay(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	day, err := time.ParseInLocation(domain.DayLayout, raw, r.loc)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid date", apperrors.ValidationDetail{
			Field:   "date",
			Message: "date must be formatted as YYYY-MM-DD",
		})
	}
	return &day, nil
}

// ListOrders returns the records created on date, or today when date is nil,
// newest first. Lines of one order stay together in entry order.
func (r *OrderReader) ListOrders(ctx context.Context, date *time.Time) ([]domain.OrderRecord, error) {
	day := r.clock()
	if date != nil {
		day = *date
	}
	start, _ := domain.StartOfDay(day, r.loc)

	records, err := r.repo.FindByDay(ctx, start)
	if err != nil {
		r.logger.Error("listing orders failed", zap.String("day", start.Format(domain.DayLayout)), zap.Error(err))
		return nil, apperrors.NewSourceUnavailableError("orders", err)
	}

	SortNewestFirst(records)
	r.logger.Debug("orders listed", zap.String("day", start.Format(domain.DayLayout)), zap.Int("count", len(records)))
	return records, nil
}

func (r *OrderReader) DeleteOrder(ctx context.Context, orderID uint64) error {
	if err := r.repo.DeleteOrder(ctx, orderID); err != nil {
		return r.deleteFailed("order", orderID, err)
	}
	r.logger.Info("order deleted", zap.Uint64("orderId", orderID))
	return nil
}

func (r *OrderReader) DeleteRecord(ctx context.Context, recordID uint64) error {
	if err := r.repo.DeleteRecord(ctx, recordID); err != nil {
		return r.deleteFailed("record", recordID, err)
	}
	r.logger.Info("order record deleted", zap.Uint64("recordId", recordID))
	return nil
}

func (r *OrderReader) deleteFailed(kind string, id uint64, err error) error {
	if _, ok := apperrors.IsNotFoundError(err); ok {
		r.logger.Info(kind+" not found for delete", zap.Uint64("id", id))
		return err
	}
	r.logger.Error("deleting "+kind+" failed", zap.Uint64("id", id), zap.Error(err))
	return apperrors.NewInternalError(fmt.Sprintf("deleting %s %d", kind, id), err)
}

// SortNewestFirst orders by creation time descending, then order id
// descending, then line number ascending.
func SortNewestFirst(records []domain.OrderRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		if a.OrderID != b.OrderID {
			return a.OrderID > b.OrderID
		}
		return a.LineNo < b.LineNo
	})
}
