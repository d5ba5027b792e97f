package disk

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/peterbourgon/diskv/v3"
	"go.uber.org/zap"

	"github.com/PabloGalante/cbt-notebook/internal/domain"
	"github.com/PabloGalante/cbt-notebook/internal/observability"
)

// APIKeyName is the fixed key under which the API key is persisted.
const APIKeyName = "gemini_api_key"

// CredentialStore keeps the API key in a small diskv key/value store on the
// local machine.
type CredentialStore struct {
	d *diskv.Diskv
}

// NewCredentialStore opens (creating if needed) a store rooted at basePath.
func NewCredentialStore(basePath string) (*CredentialStore, error) {
	if basePath == "" {
		return nil, fmt.Errorf("credential store: base path is required")
	}
	if err := os.MkdirAll(basePath, 0o700); err != nil {
		return nil, fmt.Errorf("creating credential dir: %w", err)
	}

	return &CredentialStore{d: diskv.New(diskv.Options{
		BasePath:     basePath,
		Transform:    func(string) []string { return []string{} },
		// No read cache: another process (cbtnote apikey) may change the file.
		CacheSizeMax: 0,
		FilePerm:     0o600,
		PathPerm:     0o700,
	})}, nil
}

func (s *CredentialStore) Lookup(ctx context.Context) (string, bool) {
	if !s.d.Has(APIKeyName) {
		return "", false
	}
	val, err := s.d.Read(APIKeyName)
	if err != nil {
		observability.LoggerFromContext(ctx).Warn("reading stored API key", zap.Error(err))
		return "", false
	}
	key := strings.TrimSpace(string(val))
	return key, key != ""
}

// Save stores key, replacing any previous value. A blank key clears it.
func (s *CredentialStore) Save(ctx context.Context, key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return s.Clear(ctx)
	}
	if err := s.d.Write(APIKeyName, []byte(key)); err != nil {
		return fmt.Errorf("writing API key: %w", err)
	}
	return nil
}

func (s *CredentialStore) Clear(ctx context.Context) error {
	if !s.d.Has(APIKeyName) {
		return nil
	}
	if err := s.d.Erase(APIKeyName); err != nil {
		return fmt.Errorf("erasing API key: %w", err)
	}
	return nil
}

var _ domain.CredentialStore = (*CredentialStore)(nil)
