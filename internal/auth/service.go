package auth

import (
	"context"
	"crypto/subtle"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"orderdesk/internal/domain"
	apperrors "orderdesk/internal/errors"
)

type CredentialLookup interface {
	Lookup(username string) (domain.Credential, bool)
}

type Service struct {
	store  CredentialLookup
	logger *zap.Logger
}

func NewService(store CredentialLookup, logger *zap.Logger) *Service {
	return &Service{
		store:  store,
		logger: logger,
	}
}

// Authenticate matches the username case-insensitively and the password
// exactly. Every mismatch yields the same InvalidCredentialsError.
func (s *Service) Authenticate(ctx context.Context, username, password string) (domain.Identity, error) {
	cred, ok := s.store.Lookup(username)
	if !ok || !passwordMatches(cred, password) {
		s.logger.Info("login rejected", zap.String("username", strings.TrimSpace(username)))
		return domain.Identity{}, apperrors.NewInvalidCredentialsError()
	}

	s.logger.Info("login accepted", zap.String("username", cred.Username), zap.String("role", string(cred.Role)))
	return cred.Identity(), nil
}

func passwordMatches(cred domain.Credential, password string) bool {
	if cred.PasswordHash != "" {
		return bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(password)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(cred.Password), []byte(password)) == 1
}
