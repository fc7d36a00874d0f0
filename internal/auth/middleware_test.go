package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"orderdesk/internal/domain"
)

type mockLookup struct {
	LookupFunc func(username string) (domain.Credential, bool)
}

func (m *mockLookup) Lookup(username string) (domain.Credential, bool) {
	return m.LookupFunc(username)
}

func staticUsers(t *testing.T, creds ...domain.Credential) CredentialLookup {
	store, err := NewStaticStore(creds)
	require.NoError(t, err)
	return store
}

func serveWithToken(handler http.Handler, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func noContent() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
}

func TestRequireRole(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Hour, time.Now)
	adminToken, err := issuer.Issue(domain.Identity{Username: "admin", Role: domain.RoleAdmin})
	require.NoError(t, err)
	employeeToken, err := issuer.Issue(domain.Identity{Username: "sam", Role: domain.RoleEmployee})
	require.NoError(t, err)

	users := staticUsers(t,
		domain.Credential{Username: "admin", Password: "admin123", Role: domain.RoleAdmin},
		domain.Credential{Username: "sam", Password: "sam123", Role: domain.RoleEmployee},
	)

	var seen domain.Identity
	handler := RequireRole(issuer, users, domain.RoleAdmin, zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = IdentityFrom(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	tests := []struct {
		name   string
		header string
		status int
	}{
		{name: "admin", header: "Bearer " + adminToken, status: http.StatusNoContent},
		{name: "lowercase scheme", header: "bearer " + adminToken, status: http.StatusNoContent},
		{name: "missing", header: "", status: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic YWRtaW46YWRtaW4xMjM=", status: http.StatusUnauthorized},
		{name: "invalid token", header: "Bearer nope", status: http.StatusUnauthorized},
		{name: "employee", header: "Bearer " + employeeToken, status: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serveWithToken(handler, tt.header)

			assert.Equal(t, tt.status, rec.Code)
		})
	}

	assert.Equal(t, "admin", seen.Username)
	assert.Equal(t, domain.RoleAdmin, seen.Role)
}

func TestRequireRole_RemovedUser(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Hour, time.Now)
	token, err := issuer.Issue(domain.Identity{Username: "admin", Role: domain.RoleAdmin})
	require.NoError(t, err)

	var looked string
	users := &mockLookup{
		LookupFunc: func(username string) (domain.Credential, bool) {
			looked = username
			return domain.Credential{}, false
		},
	}

	rec := serveWithToken(RequireRole(issuer, users, domain.RoleAdmin, zap.NewNop())(noContent()), "Bearer "+token)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "admin", looked)
}

func TestRequireRole_DemotedUser(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Hour, time.Now)
	token, err := issuer.Issue(domain.Identity{Username: "vijay", Role: domain.RoleAdmin})
	require.NoError(t, err)

	users := staticUsers(t, domain.Credential{Username: "vijay", Password: "vijay123", Role: domain.RoleEmployee})

	rec := serveWithToken(RequireRole(issuer, users, domain.RoleAdmin, zap.NewNop())(noContent()), "Bearer "+token)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireRole_PromotedUser(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Hour, time.Now)
	token, err := issuer.Issue(domain.Identity{Username: "amit", Role: domain.RoleEmployee})
	require.NoError(t, err)

	users := staticUsers(t, domain.Credential{Username: "amit", Password: "amit123", Role: domain.RoleAdmin})

	rec := serveWithToken(RequireRole(issuer, users, domain.RoleAdmin, zap.NewNop())(noContent()), "Bearer "+token)

	assert.Equal(t, http.StatusNoContent, rec.Code)
}
