package auth

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"orderdesk/internal/config"
	"orderdesk/internal/domain"
)

type Module struct {
	Controller *Controller
	Admin      func(next http.Handler) http.Handler
}

func NewModule(store CredentialLookup, cfg config.AuthConfig, logger *zap.Logger) *Module {
	tokens := NewTokenIssuer(cfg.TokenSecret, cfg.TokenTTL, time.Now)
	svc := NewService(store, logger)

	return &Module{
		Controller: NewController(svc, tokens, logger),
		Admin:      RequireRole(tokens, store, domain.RoleAdmin, logger),
	}
}
