package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"orderdesk/internal/config"
	orderrepo "orderdesk/internal/order/repository"
)

func TestOpen_Workbook(t *testing.T) {
	cfg := &config.Config{
		Store:    config.StoreConfig{Backend: config.BackendWorkbook},
		Workbook: config.WorkbookConfig{Path: filepath.Join(t.TempDir(), "orders.xlsx")},
	}

	b, err := Open(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)
	defer b.Close()

	assert.Equal(t, config.BackendWorkbook, b.Name)
	assert.IsType(t, &orderrepo.WorkbookOrderRepository{}, b.Orders)
	assert.NoError(t, b.Reference.ReplaceProducts(context.Background(), []string{"Product A"}))

	products, err := b.Reference.ListProducts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Product A"}, products)
}

func TestOpen_UnknownBackend(t *testing.T) {
	_, err := Open(context.Background(), &config.Config{Store: config.StoreConfig{Backend: "sheets"}}, zap.NewNop())
	assert.Error(t, err)
}
