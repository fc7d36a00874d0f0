package auth

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"orderdesk/internal/domain"
)

const employeesYAML = `
employees:
  - username: sam
    password: sam123
    displayName: Sam
    role: employee
  - username: admin
    password: admin123
    displayName: Admin
    role: admin
`

func writeCredentials(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestFileStore_Load(t *testing.T) {
	path := filepath.Join(t.TempDir(), "employees.yaml")
	writeCredentials(t, path, employeesYAML)

	store, err := NewFileStore(path, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, 2, store.Len())

	c, ok := store.Lookup("SAM")
	require.True(t, ok)
	assert.Equal(t, "sam", c.Username)
	assert.Equal(t, "Sam", c.DisplayName)
	assert.Equal(t, domain.RoleEmployee, c.Role)

	c, ok = store.Lookup(" admin ")
	require.True(t, ok)
	assert.Equal(t, domain.RoleAdmin, c.Role)

	_, ok = store.Lookup("nobody")
	assert.False(t, ok)
}

func TestFileStore_InvalidFiles(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "missing password", content: "employees:\n  - username: sam\n"},
		{name: "unknown role", content: "employees:\n  - username: sam\n    password: x\n    role: owner\n"},
		{name: "duplicate user", content: "employees:\n  - username: sam\n    password: x\n  - username: SAM\n    password: y\n"},
		{name: "not yaml", content: "employees: [\n"},
		{name: "empty", content: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "employees.yaml")
			writeCredentials(t, path, tt.content)

			_, err := NewFileStore(path, zap.NewNop())
			assert.Error(t, err)
		})
	}
}

func TestFileStore_DefaultsRoleAndDisplayName(t *testing.T) {
	path := filepath.Join(t.TempDir(), "employees.yaml")
	writeCredentials(t, path, "employees:\n  - username: vijay\n    password: vijay123\n")

	store, err := NewFileStore(path, zap.NewNop())
	require.NoError(t, err)

	c, ok := store.Lookup("vijay")
	require.True(t, ok)
	assert.Equal(t, domain.RoleEmployee, c.Role)
	assert.Equal(t, "vijay", c.DisplayName)
}

func TestFileStore_ReloadKeepsPreviousOnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "employees.yaml")
	writeCredentials(t, path, employeesYAML)

	store, err := NewFileStore(path, zap.NewNop())
	require.NoError(t, err)

	writeCredentials(t, path, "employees: [\n")
	assert.Error(t, store.Reload())

	_, ok := store.Lookup("sam")
	assert.True(t, ok)
}

func TestFileStore_Watch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "employees.yaml")
	writeCredentials(t, path, employeesYAML)

	store, err := NewFileStore(path, zap.NewNop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, store.Watch(ctx))

	writeCredentials(t, path, employeesYAML+"  - username: amit\n    password: amit123\n")

	assert.Eventually(t, func() bool {
		_, ok := store.Lookup("amit")
		return ok
	}, 5*time.Second, 20*time.Millisecond)
}

func TestNewStaticStore(t *testing.T) {
	store, err := NewStaticStore([]domain.Credential{{Username: "Rahul", Password: "rahul123", Role: domain.RoleEmployee}})
	require.NoError(t, err)

	c, ok := store.Lookup("rahul")
	require.True(t, ok)
	assert.Equal(t, "Rahul", c.DisplayName)
}
