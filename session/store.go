package session

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/glucomate-org/glucomate/config"
	"github.com/glucomate-org/glucomate/errors"
	"go.uber.org/zap"
)

//go:generate mockgen --build_flags=--mod=mod -source=./store.go -destination=./test/mock_store.go -package test MockStore

// Store holds the bearer token obtained from the auth endpoints. The token
// is the whole value; writes always replace it and never merge.
type Store interface {
	Token() (string, error)
	SetToken(token string) error
	Clear() error
}

type fileStore struct {
	path   string
	mu     sync.RWMutex
	logger *zap.SugaredLogger
}

var _ Store = &fileStore{}

func NewStore(cfg *config.Config, logger *zap.SugaredLogger) Store {
	return &fileStore{
		path:   cfg.TokenPath,
		logger: logger,
	}
}

func (s *fileStore) Token() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	raw, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return "", errors.NoSession
	} else if err != nil {
		return "", err
	}

	token := strings.TrimSpace(string(raw))
	if token == "" {
		return "", errors.NoSession
	}
	return token, nil
}

func (s *fileStore) SetToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(s.path, []byte(token), 0o600)
}

func (s *fileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err == nil {
		s.logger.Debug("session cleared")
	}
	return err
}
