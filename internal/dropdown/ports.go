package dropdown

import (
	"context"

	"orderdesk/internal/domain"
)

// Data is the content of the order form's retailer and product pickers.
type Data struct {
	Retailers []domain.Retailer
	Products  []string
}

type Provider interface {
	GetDropdownData(ctx context.Context) (*Data, error)
}

// Source is the read-only reference store. Lists may come back unsorted and with blanks.
type Source interface {
	ListRetailers(ctx context.Context) ([]domain.Retailer, error)
	ListProducts(ctx context.Context) ([]string, error)
}
