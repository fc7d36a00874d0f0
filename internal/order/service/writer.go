package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"orderdesk/internal/domain"
	apperrors "orderdesk/internal/errors"
)

type OrderWriter struct {
	repo         OrderRepository
	clock        Clock
	loc          *time.Location
	writeTimeout time.Duration
	logger       *zap.Logger
}

func NewOrderWriter(
	repo OrderRepository,
	clock Clock,
	loc *time.Location,
	writeTimeout time.Duration,
	logger *zap.Logger,
) *OrderWriter {
	return &OrderWriter{
		repo:         repo,
		clock:        clock,
		loc:          loc,
		writeTimeout: writeTimeout,
		logger:       logger,
	}
}

// SubmitOrder validates cmd and stores one record per line, all stamped with
// the same creation time.
func (w *OrderWriter) SubmitOrder(ctx context.Context, cmd SubmitOrderCommand) (uint64, error) {
	order, err := buildOrder(cmd)
	if err != nil {
		w.logger.Info("order rejected", zap.String("employee", cmd.Employee), zap.Error(err))
		return 0, err
	}
	order.CreatedAt = w.clock().In(w.loc)

	w.logger.Info("submit order started",
		zap.String("employee", order.Employee),
		zap.String("retailer", order.Retailer.Name),
		zap.Int("lineCount", len(order.Lines)),
	)

	if w.writeTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, w.writeTimeout)
		defer cancel()
	}

	id, err := w.repo.Insert(ctx, order)
	if err != nil {
		w.logger.Error("persisting order failed", zap.String("employee", order.Employee), zap.Error(err))
		return 0, apperrors.NewInternalError("persisting order", err)
	}

	w.logger.Info("order stored", zap.Uint64("orderId", id), zap.Int("lineCount", len(order.Lines)))
	return id, nil
}

func buildOrder(cmd SubmitOrderCommand) (domain.Order, error) {
	var details []apperrors.ValidationDetail

	employee := strings.TrimSpace(cmd.Employee)
	if employee == "" {
		details = append(details, apperrors.ValidationDetail{
			Field:   "employee",
			Message: "employee is required",
		})
	}

	if strings.TrimSpace(cmd.Retailer.Name) == "" {
		details = append(details, apperrors.ValidationDetail{
			Field:   "retailer",
			Message: "retailer is required",
		})
	}

	if len(cmd.Lines) == 0 {
		details = append(details, apperrors.ValidationDetail{
			Field:   "products",
			Message: "at least one product line is required",
		})
	}

	lines := make([]domain.OrderLine, 0, len(cmd.Lines))
	for idx, in := range cmd.Lines {
		field := fmt.Sprintf("products[%d]", idx)

		product := strings.TrimSpace(in.Product)
		if product == "" {
			details = append(details, apperrors.ValidationDetail{
				Field:   field + ".product",
				Message: "product is required",
			})
		}

		quantity, msg := parseQuantity(in.Quantity)
		if msg != "" {
			details = append(details, apperrors.ValidationDetail{
				Field:   field + ".quantity",
				Message: msg,
			})
		}

		lines = append(lines, domain.OrderLine{
			Product:      product,
			Quantity:     quantity,
			Unit:         domain.OrPlaceholder(in.Unit),
			SpecialPrice: domain.OrPlaceholder(in.SpecialPrice),
		})
	}

	if len(details) > 0 {
		return domain.Order{}, apperrors.NewValidationError("validation failed", details...)
	}

	return domain.Order{
		Employee: employee,
		Retailer: cmd.Retailer.Snapshot(),
		Lines:    lines,
		Remarks:  domain.OrPlaceholder(cmd.Remarks),
	}, nil
}

// MaxQuantity is the largest quantity every store column can hold.
const MaxQuantity = math.MaxInt32

func parseQuantity(raw string) (int, string) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, "quantity is required"
	}
	q, err := strconv.ParseInt(raw, 10, 64)
	if errors.Is(err, strconv.ErrRange) {
		return 0, "quantity is too large"
	}
	if err != nil {
		return 0, "quantity must be a whole number"
	}
	if q <= 0 {
		return 0, "quantity must be a positive integer"
	}
	if q > MaxQuantity {
		return 0, "quantity is too large"
	}
	return int(q), ""
}
