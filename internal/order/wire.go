package order

import (
	"time"

	"go.uber.org/zap"

	"orderdesk/internal/config"
	"orderdesk/internal/order/controller"
	"orderdesk/internal/order/service"
	"orderdesk/internal/order/usecase"
)

func NewModule(repo service.OrderRepository, cfg config.OrderConfig, logger *zap.Logger) *controller.OrderController {
	writer := service.NewOrderWriter(repo, time.Now, cfg.Location, cfg.WriteTimeout, logger)
	reader := service.NewOrderReader(repo, time.Now, cfg.Location, logger)
	submitUC := usecase.NewSubmitOrderUseCase(writer, logger, cfg.MaxRetryAttempts)

	return controller.NewOrderController(submitUC, reader, logger)
}
