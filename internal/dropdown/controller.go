package dropdown

import (
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	apperrors "orderdesk/internal/errors"
	"orderdesk/internal/respond"
)

type Controller struct {
	provider Provider
	logger   *zap.Logger
}

func NewController(provider Provider, logger *zap.Logger) *Controller {
	return &Controller{
		provider: provider,
		logger:   logger,
	}
}

// HandleGetData answers with empty lists and a 503 when a source cannot be
// read, so the form still renders.
func (c *Controller) HandleGetData(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()

	data, err := c.provider.GetDropdownData(r.Context())
	if err != nil {
		if sue, ok := apperrors.IsSourceUnavailableError(err); ok {
			c.logger.Warn("dropdown source unavailable", zap.String("traceId", traceID), zap.String("source", sue.Source))
			respond.JSON(w, http.StatusServiceUnavailable, unavailableResponse{
				DataResponse: DataResponse{Retailers: []RetailerDTO{}, Products: []string{}},
				TraceID:      traceID,
				Code:         "SOURCE_UNAVAILABLE",
				Message:      sue.Source + " unavailable",
			}, c.logger)
			return
		}
		respond.Error(w, traceID, err, c.logger)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(data), c.logger)
}
