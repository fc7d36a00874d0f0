package controller

import (
	"context"
	"encoding/json"
	"mime"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"orderdesk/internal/domain"
	"orderdesk/internal/dto"
	apperrors "orderdesk/internal/errors"
	"orderdesk/internal/respond"
)

const maxBodyBytes = 1 << 20

type SubmitOrderUseCase interface {
	SubmitOrder(ctx context.Context, req dto.SubmitOrderRequest) (*dto.SubmitOrderResponse, error)
}

type OrderReader interface {
	ParseDay(raw string) (*time.Time, error)
	ListOrders(ctx context.Context, date *time.Time) ([]domain.OrderRecord, error)
	DeleteOrder(ctx context.Context, orderID uint64) error
	DeleteRecord(ctx context.Context, recordID uint64) error
}

type OrderController struct {
	submitUC SubmitOrderUseCase
	reader   OrderReader
	logger   *zap.Logger
}

func NewOrderController(submitUC SubmitOrderUseCase, reader OrderReader, logger *zap.Logger) *OrderController {
	return &OrderController{
		submitUC: submitUC,
		reader:   reader,
		logger:   logger,
	}
}

func (c *OrderController) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	req, ok := c.decodeSubmit(w, r, traceID, logger)
	if !ok {
		return
	}

	resp, err := c.submitUC.SubmitOrder(r.Context(), req)
	if err != nil {
		respond.Error(w, traceID, err, logger)
		return
	}

	respond.JSON(w, http.StatusOK, resp, logger)
}

// decodeSubmit accepts JSON bodies and the legacy form-encoded submission.
func (c *OrderController) decodeSubmit(w http.ResponseWriter, r *http.Request, traceID string, logger *zap.Logger) (dto.SubmitOrderRequest, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/x-www-form-urlencoded" || mediaType == "multipart/form-data" {
		parse := r.ParseForm
		if mediaType == "multipart/form-data" {
			parse = func() error { return r.ParseMultipartForm(maxBodyBytes) }
		}
		if err := parse(); err != nil {
			logger.Warn("invalid form body", zap.Error(err))
			respond.Validation(w, traceID, "invalid form body", logger, apperrors.ValidationDetail{
				Field:   "body",
				Message: "request body must be a valid form",
			})
			return dto.SubmitOrderRequest{}, false
		}
		return dto.SubmitOrderRequestFromForm(r.PostForm), true
	}

	var req dto.SubmitOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid JSON body", zap.Error(err))
		respond.Validation(w, traceID, "invalid JSON body", logger, apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return dto.SubmitOrderRequest{}, false
	}
	return req, true
}

func (c *OrderController) HandleList(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	date, err := c.reader.ParseDay(r.URL.Query().Get("date"))
	if err != nil {
		respond.Error(w, traceID, err, logger)
		return
	}

	records, err := c.reader.ListOrders(r.Context(), date)
	if err != nil {
		respond.Error(w, traceID, err, logger)
		return
	}

	resp := make([]dto.OrderRecordResponse, len(records))
	for i, rec := range records {
		resp[i] = toRecordResponse(rec)
	}

	respond.JSON(w, http.StatusOK, resp, logger)
}

func (c *OrderController) HandleDeleteOrder(w http.ResponseWriter, r *http.Request) {
	c.handleDelete(w, r, "id", c.reader.DeleteOrder)
}

func (c *OrderController) HandleDeleteRecord(w http.ResponseWriter, r *http.Request) {
	c.handleDelete(w, r, "id", c.reader.DeleteRecord)
}

func (c *OrderController) handleDelete(w http.ResponseWriter, r *http.Request, param string, del func(context.Context, uint64) error) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	id, err := strconv.ParseUint(chi.URLParam(r, param), 10, 64)
	if err != nil || id == 0 {
		logger.Warn("invalid id in path", zap.String("id", chi.URLParam(r, param)))
		respond.Validation(w, traceID, "invalid id", logger, apperrors.ValidationDetail{
			Field:   param,
			Message: param + " must be a positive integer",
		})
		return
	}

	if err := del(r.Context(), id); err != nil {
		respond.Error(w, traceID, err, logger)
		return
	}

	respond.JSON(w, http.StatusOK, dto.SuccessResponse{Success: true}, logger)
}

func toRecordResponse(rec domain.OrderRecord) dto.OrderRecordResponse {
	return dto.OrderRecordResponse{
		ID:           rec.ID,
		OrderID:      rec.OrderID,
		LineNo:       rec.LineNo,
		Date:         rec.Date(),
		Time:         rec.Time(),
		CreatedAt:    rec.CreatedAt,
		Employee:     rec.Employee,
		Retailer:     rec.Retailer.Name,
		Address:      rec.Retailer.Address,
		Address2:     rec.Retailer.Address2,
		Mobile:       rec.Retailer.Mobile,
		Product:      rec.Line.Product,
		Quantity:     rec.Line.Quantity,
		Unit:         rec.Line.Unit,
		SpecialPrice: rec.Line.SpecialPrice,
		Remarks:      rec.Remarks,
	}
}
