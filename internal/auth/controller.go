package auth

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"orderdesk/internal/domain"
	"orderdesk/internal/dto"
	apperrors "orderdesk/internal/errors"
	"orderdesk/internal/respond"
)

type Authenticator interface {
	Authenticate(ctx context.Context, username, password string) (domain.Identity, error)
}

type TokenSigner interface {
	Issue(id domain.Identity) (string, error)
}

type Controller struct {
	auth   Authenticator
	tokens TokenSigner
	logger *zap.Logger
}

func NewController(auth Authenticator, tokens TokenSigner, logger *zap.Logger) *Controller {
	return &Controller{
		auth:   auth,
		tokens: tokens,
		logger: logger,
	}
}

func (c *Controller) HandleLogin(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	var req dto.LoginRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16)).Decode(&req); err != nil {
		logger.Warn("invalid JSON body", zap.Error(err))
		respond.Validation(w, traceID, "invalid JSON body", logger, apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	id, err := c.auth.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		respond.Error(w, traceID, err, logger)
		return
	}

	token, err := c.tokens.Issue(id)
	if err != nil {
		respond.Error(w, traceID, apperrors.NewInternalError("issuing token", err), logger)
		return
	}

	respond.JSON(w, http.StatusOK, dto.LoginResponse{
		Username:    id.Username,
		DisplayName: id.DisplayName,
		Role:        string(id.Role),
		Token:       token,
	}, logger)
}
