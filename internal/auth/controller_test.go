package auth

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"orderdesk/internal/config"
	"orderdesk/internal/domain"
	"orderdesk/internal/dto"
)

type mockSigner struct {
	IssueFunc func(id domain.Identity) (string, error)
}

func (m *mockSigner) Issue(id domain.Identity) (string, error) {
	if m.IssueFunc != nil {
		return m.IssueFunc(id)
	}
	return "token", nil
}

func TestHandleLogin(t *testing.T) {
	store, err := NewStaticStore([]domain.Credential{
		{Username: "sam", Password: "sam123", DisplayName: "Sam", Role: domain.RoleEmployee},
	})
	require.NoError(t, err)
	module := NewModule(store, config.AuthConfig{TokenSecret: "secret", TokenTTL: time.Hour}, zap.NewNop())

	req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(`{"username":"SAM","password":"sam123"}`))
	rec := httptest.NewRecorder()
	module.Controller.HandleLogin(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp dto.LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "sam", resp.Username)
	assert.Equal(t, "Sam", resp.DisplayName)
	assert.Equal(t, "employee", resp.Role)
	assert.NotEmpty(t, resp.Token)
}

func TestHandleLogin_Errors(t *testing.T) {
	store, err := NewStaticStore([]domain.Credential{
		{Username: "sam", Password: "sam123", Role: domain.RoleEmployee},
	})
	require.NoError(t, err)
	svc := NewService(store, zap.NewNop())

	tests := []struct {
		name   string
		body   string
		signer *mockSigner
		status int
		code   string
	}{
		{name: "wrong password", body: `{"username":"sam","password":"nope"}`, signer: &mockSigner{}, status: http.StatusUnauthorized, code: "INVALID_CREDENTIALS"},
		{name: "bad json", body: `{`, signer: &mockSigner{}, status: http.StatusBadRequest, code: "VALIDATION_ERROR"},
		{
			name: "signing fails",
			body: `{"username":"sam","password":"sam123"}`,
			signer: &mockSigner{IssueFunc: func(id domain.Identity) (string, error) {
				return "", errors.New("no key")
			}},
			status: http.StatusInternalServerError,
			code:   "INTERNAL_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := NewController(svc, tt.signer, zap.NewNop())

			rec := httptest.NewRecorder()
			ctrl.HandleLogin(rec, httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(tt.body)))

			assert.Equal(t, tt.status, rec.Code)
			var body map[string]interface{}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.code, body["code"])
		})
	}
}

var _ Authenticator = (*Service)(nil)
