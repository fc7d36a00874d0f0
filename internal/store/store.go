package store

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"orderdesk/internal/config"
	"orderdesk/internal/domain"
	"orderdesk/internal/infrastructure/mongo"
	"orderdesk/internal/infrastructure/mysql"
	"orderdesk/internal/infrastructure/workbook"
	orderrepo "orderdesk/internal/order/repository"
	"orderdesk/internal/order/service"
	refrepo "orderdesk/internal/reference/repository"
)

// ReferenceStore reads and replaces the retailer and product lists.
type ReferenceStore interface {
	ListRetailers(ctx context.Context) ([]domain.Retailer, error)
	ListProducts(ctx context.Context) ([]string, error)
	ReplaceRetailers(ctx context.Context, retailers []domain.Retailer) error
	ReplaceProducts(ctx context.Context, products []string) error
}

type Backend struct {
	Name      string
	Orders    service.OrderRepository
	Reference ReferenceStore
	close     func() error
}

func (b *Backend) Close() error {
	if b.close == nil {
		return nil
	}
	return b.close()
}

// Open connects to the backend named by cfg.Store.Backend.
func Open(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Backend, error) {
	switch cfg.Store.Backend {
	case config.BackendMySQL:
		db, err := mysql.NewConnection(cfg.Database)
		if err != nil {
			return nil, err
		}
		if err := mysql.EnsureSchema(ctx, db); err != nil {
			db.Close()
			return nil, err
		}
		logger.Info("database connected", zap.String("host", cfg.Database.Host), zap.String("name", cfg.Database.Name))
		return &Backend{
			Name:      config.BackendMySQL,
			Orders:    orderrepo.NewMySQLOrderRepository(db),
			Reference: refrepo.NewMySQLRepository(db),
			close:     db.Close,
		}, nil

	case config.BackendWorkbook:
		wb := workbook.New(cfg.Workbook.Path)
		logger.Info("using workbook store", zap.String("path", wb.Path()))
		return &Backend{
			Name:      config.BackendWorkbook,
			Orders:    orderrepo.NewWorkbookOrderRepository(wb),
			Reference: refrepo.NewWorkbookRepository(wb),
		}, nil

	case config.BackendMongo:
		client, db, err := mongo.NewConnection(cfg.Mongo)
		if err != nil {
			return nil, err
		}
		logger.Info("mongo connected", zap.String("database", cfg.Mongo.Database))
		return &Backend{
			Name:      config.BackendMongo,
			Orders:    orderrepo.NewMongoOrderRepository(db),
			Reference: refrepo.NewMongoRepository(db),
			close: func() error {
				return client.Disconnect(context.Background())
			},
		}, nil

	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}
