package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/go-sql-driver/mysql"
	"go.uber.org/zap"

	"orderdesk/internal/domain"
	"orderdesk/internal/dto"
	"orderdesk/internal/order/service"
)

type OrderWriter interface {
	SubmitOrder(ctx context.Context, cmd service.SubmitOrderCommand) (uint64, error)
}

type SubmitOrderUseCase struct {
	writer           OrderWriter
	logger           *zap.Logger
	maxRetryAttempts int
}

func NewSubmitOrderUseCase(writer OrderWriter, logger *zap.Logger, maxRetryAttempts int) *SubmitOrderUseCase {
	if maxRetryAttempts < 1 {
		maxRetryAttempts = 1
	}
	return &SubmitOrderUseCase{
		writer:           writer,
		logger:           logger,
		maxRetryAttempts: maxRetryAttempts,
	}
}

func (uc *SubmitOrderUseCase) SubmitOrder(ctx context.Context, req dto.SubmitOrderRequest) (*dto.SubmitOrderResponse, error) {
	lines := req.Lines()
	uc.logger.Info("submit-order started",
		zap.String("employee", req.Employee),
		zap.Int("lineCount", len(lines)),
		zap.Bool("legacy", len(req.Products) == 0),
	)

	cmd := toCommand(req, lines)

	id, err := uc.submitWithRetry(ctx, cmd)
	if err != nil {
		return nil, err
	}

	return &dto.SubmitOrderResponse{
		Success: true,
		ID:      id,
		Lines:   len(lines),
	}, nil
}

// submitWithRetry retries MySQL deadlocks. The failed transaction was rolled
// back, so nothing from the earlier attempt is stored.
func (uc *SubmitOrderUseCase) submitWithRetry(ctx context.Context, cmd service.SubmitOrderCommand) (uint64, error) {
	backoffs := []time.Duration{0, 100 * time.Millisecond, 200 * time.Millisecond}

	var err error
	for attempt := 1; attempt <= uc.maxRetryAttempts; attempt++ {
		var id uint64
		id, err = uc.writer.SubmitOrder(ctx, cmd)
		if err == nil {
			return id, nil
		}
		if !isDeadlockError(err) || attempt == uc.maxRetryAttempts {
			return 0, err
		}

		uc.logger.Warn("deadlock detected, retrying", zap.Int("attempt", attempt), zap.Int("maxAttempts", uc.maxRetryAttempts))
		wait := backoffs[len(backoffs)-1]
		if attempt < len(backoffs) {
			wait = backoffs[attempt]
		}
		select {
		case <-ctx.Done():
			return 0, err
		case <-time.After(wait):
		}
	}
	return 0, err
}

func toCommand(req dto.SubmitOrderRequest, lines []dto.OrderLineRequest) service.SubmitOrderCommand {
	cmd := service.SubmitOrderCommand{
		Employee: req.Employee,
		Retailer: domain.Retailer{
			Name:     req.Retailer,
			Address:  req.Address,
			Address2: req.Address2,
			Mobile:   req.Mobile,
		},
		Lines:   make([]service.LineInput, len(lines)),
		Remarks: req.Remarks,
	}
	for i, l := range lines {
		cmd.Lines[i] = service.LineInput{
			Product:      l.Product,
			Quantity:     string(l.Quantity),
			Unit:         l.Unit,
			SpecialPrice: l.SpecialPrice,
		}
	}
	return cmd
}

func isDeadlockError(err error) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == 1213 || mysqlErr.Number == 1205
	}
	return false
}
