package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"orderdesk/internal/domain"
	apperrors "orderdesk/internal/errors"
	"orderdesk/internal/respond"
)

type identityKey struct{}

type TokenParser interface {
	Parse(raw string) (domain.Identity, error)
}

// RequireRole rejects requests without a valid bearer token (401) or whose
// user lacks role (403). The role is read from the current credential table,
// so removing or demoting a user takes effect before their token expires.
// The identity is stored on the context.
func RequireRole(parser TokenParser, users CredentialLookup, role domain.Role, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := bearerToken(r)
			if !ok {
				respond.Error(w, uuid.New().String(), apperrors.NewUnauthorizedError("missing bearer token"), logger)
				return
			}

			id, err := parser.Parse(raw)
			if err != nil {
				logger.Info("rejected token", zap.Error(err))
				respond.Error(w, uuid.New().String(), apperrors.NewUnauthorizedError("invalid or expired token"), logger)
				return
			}

			cred, ok := users.Lookup(id.Username)
			if !ok {
				logger.Info("token for unknown user", zap.String("username", id.Username))
				respond.Error(w, uuid.New().String(), apperrors.NewUnauthorizedError("invalid or expired token"), logger)
				return
			}
			id.Role = cred.Role

			if id.Role != role {
				logger.Info("role not permitted", zap.String("username", id.Username), zap.String("role", string(id.Role)))
				respond.Error(w, uuid.New().String(), apperrors.NewForbiddenError(string(role)+" role required"), logger)
				return
			}

			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), identityKey{}, id)))
		})
	}
}

// IdentityFrom returns the identity RequireRole stored on ctx.
func IdentityFrom(ctx context.Context) (domain.Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(domain.Identity)
	return id, ok
}

func bearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(h, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
