package auth

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"orderdesk/internal/commons"
	"orderdesk/internal/domain"
)

type credentialsFile struct {
	Employees []credentialEntry `yaml:"employees"`
}

type credentialEntry struct {
	Username     string `yaml:"username"`
	Password     string `yaml:"password"`
	PasswordHash string `yaml:"passwordHash"`
	DisplayName  string `yaml:"displayName"`
	Role         string `yaml:"role"`
}

// FileStore holds the credential table read from a YAML file. Lookups are
// case-insensitive on the username.
type FileStore struct {
	path   string
	logger *zap.Logger

	mu      sync.RWMutex
	byLogin map[string]domain.Credential
}

func NewFileStore(path string, logger *zap.Logger) (*FileStore, error) {
	s := &FileStore{path: path, logger: logger}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// NewStaticStore builds a store from an in-memory table.
func NewStaticStore(creds []domain.Credential) (*FileStore, error) {
	byLogin, err := index(creds)
	if err != nil {
		return nil, err
	}
	return &FileStore{byLogin: byLogin, logger: zap.NewNop()}, nil
}

func (s *FileStore) Lookup(username string) (domain.Credential, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.byLogin[strings.ToLower(strings.TrimSpace(username))]
	return c, ok
}

func (s *FileStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byLogin)
}

// Reload rereads the file. On error the previous table is kept.
func (s *FileStore) Reload() error {
	var file credentialsFile
	if err := commons.LoadYAML(s.path, &file); err != nil {
		return fmt.Errorf("loading credentials: %w", err)
	}
	if len(file.Employees) == 0 {
		return fmt.Errorf("loading credentials from %s: no employees listed", s.path)
	}

	creds := make([]domain.Credential, len(file.Employees))
	for i, e := range file.Employees {
		role := domain.Role(strings.ToLower(strings.TrimSpace(e.Role)))
		if role == "" {
			role = domain.RoleEmployee
		}
		creds[i] = domain.Credential{
			Username:     strings.TrimSpace(e.Username),
			Password:     e.Password,
			PasswordHash: e.PasswordHash,
			DisplayName:  strings.TrimSpace(e.DisplayName),
			Role:         role,
		}
	}

	byLogin, err := index(creds)
	if err != nil {
		return fmt.Errorf("loading credentials from %s: %w", s.path, err)
	}

	s.mu.Lock()
	s.byLogin = byLogin
	s.mu.Unlock()
	return nil
}

// Watch reloads the table whenever the file changes, until ctx is done.
// The parent directory is watched so editors that replace the file by
// rename are picked up.
func (s *FileStore) Watch(ctx context.Context) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := w.Add(dir); err != nil {
		w.Close()
		return fmt.Errorf("watching %s: %w", dir, err)
	}

	target := filepath.Clean(s.path)
	go func() {
		defer w.Close()

		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != target || event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				if err := s.Reload(); err != nil {
					s.logger.Warn("credential reload failed, keeping previous table", zap.Error(err))
					continue
				}
				s.logger.Info("credentials reloaded", zap.Int("count", s.Len()))
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				s.logger.Warn("credential watcher error", zap.Error(err))
			}
		}
	}()

	return nil
}

func index(creds []domain.Credential) (map[string]domain.Credential, error) {
	byLogin := make(map[string]domain.Credential, len(creds))
	for i, c := range creds {
		if c.Username == "" {
			return nil, fmt.Errorf("entry %d: username is required", i)
		}
		if c.Password == "" && c.PasswordHash == "" {
			return nil, fmt.Errorf("entry %q: password or passwordHash is required", c.Username)
		}
		if !c.Role.Valid() {
			return nil, fmt.Errorf("entry %q: unknown role %q", c.Username, c.Role)
		}
		if c.DisplayName == "" {
			c.DisplayName = c.Username
		}
		key := strings.ToLower(c.Username)
		if _, dup := byLogin[key]; dup {
			return nil, fmt.Errorf("entry %q: duplicate username", c.Username)
		}
		byLogin[key] = c
	}
	return byLogin, nil
}
