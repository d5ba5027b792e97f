package firestore

import (
	"context"
	"fmt"
	"strings"

	"cloud.google.com/go/firestore"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/PabloGalante/cbt-notebook/internal/domain"
	"github.com/PabloGalante/cbt-notebook/internal/observability"
)

const (
	settingsCollection = "settings"
	credentialsDoc     = "credentials"
	apiKeyField        = "gemini_api_key"
)

// CredentialStore keeps the API key in a Firestore settings document, for
// deployments where the local disk is not durable.
type CredentialStore struct {
	client *firestore.Client
}

// NewCredentialStore creates a Firestore-backed credential store.
func NewCredentialStore(ctx context.Context, projectID string) (*CredentialStore, error) {
	if projectID == "" {
		return nil, fmt.Errorf("projectID is required for Firestore store")
	}

	client, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("creating firestore client: %w", err)
	}

	return &CredentialStore{client: client}, nil
}

// Close releases the underlying client.
func (s *CredentialStore) Close() error {
	return s.client.Close()
}

func (s *CredentialStore) doc() *firestore.DocumentRef {
	return s.client.Collection(settingsCollection).Doc(credentialsDoc)
}

type credentialsDocument struct {
	APIKey string `firestore:"gemini_api_key"`
}

func (s *CredentialStore) Lookup(ctx context.Context) (string, bool) {
	snap, err := s.doc().Get(ctx)
	if err != nil {
		if status.Code(err) != codes.NotFound {
			observability.LoggerFromContext(ctx).Warn("firestore credential lookup", zap.Error(err))
		}
		return "", false
	}

	var doc credentialsDocument
	if err := snap.DataTo(&doc); err != nil {
		observability.LoggerFromContext(ctx).Warn("firestore credential decode", zap.Error(err))
		return "", false
	}

	key := strings.TrimSpace(doc.APIKey)
	return key, key != ""
}

// Save stores key; a blank key clears it.
func (s *CredentialStore) Save(ctx context.Context, key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return s.Clear(ctx)
	}

	_, err := s.doc().Set(ctx, map[string]interface{}{
		apiKeyField: key,
	}, firestore.MergeAll)
	if err != nil {
		return fmt.Errorf("firestore save credential: %w", err)
	}
	return nil
}

func (s *CredentialStore) Clear(ctx context.Context) error {
	_, err := s.doc().Set(ctx, map[string]interface{}{
		apiKeyField: firestore.Delete,
	}, firestore.MergeAll)
	if err != nil {
		return fmt.Errorf("firestore clear credential: %w", err)
	}
	return nil
}

var _ domain.CredentialStore = (*CredentialStore)(nil)
