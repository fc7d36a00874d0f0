package dropdown

import (
	"context"
	"sort"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"orderdesk/internal/domain"
	apperrors "orderdesk/internal/errors"
)

type service struct {
	source Source
	tag    language.Tag
	logger *zap.Logger
}

// NewService sorts retailers with the collation rules of locale (a BCP 47
// tag such as "en" or "hi"); an unparseable locale falls back to English.
func NewService(source Source, locale string, logger *zap.Logger) Provider {
	tag, err := language.Parse(locale)
	if err != nil {
		logger.Warn("unknown locale, using en", zap.String("locale", locale), zap.Error(err))
		tag = language.English
	}
	return &service{source: source, tag: tag, logger: logger}
}

func (s *service) GetDropdownData(ctx context.Context) (*Data, error) {
	empty := &Data{Retailers: []domain.Retailer{}, Products: []string{}}

	retailers, err := s.source.ListRetailers(ctx)
	if err != nil {
		s.logger.Error("reading retailers failed", zap.Error(err))
		return empty, apperrors.NewSourceUnavailableError("retailers", err)
	}

	products, err := s.source.ListProducts(ctx)
	if err != nil {
		s.logger.Error("reading products failed", zap.Error(err))
		return empty, apperrors.NewSourceUnavailableError("products", err)
	}

	return &Data{
		Retailers: s.sortRetailers(retailers),
		Products:  sortProducts(products),
	}, nil
}

func (s *service) sortRetailers(in []domain.Retailer) []domain.Retailer {
	out := make([]domain.Retailer, 0, len(in))
	for _, r := range in {
		if strings.TrimSpace(r.Name) == "" {
			continue
		}
		out = append(out, r.Snapshot())
	}

	// Collators carry scratch buffers, so each call gets its own.
	c := collate.New(s.tag)
	sort.SliceStable(out, func(i, j int) bool {
		return c.CompareString(out[i].Name, out[j].Name) < 0
	})
	return out
}

func sortProducts(in []string) []string {
	out := make([]string, 0, len(in))
	for _, p := range in {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}
