package firestore_test

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	fsstore "github.com/PabloGalante/cbt-notebook/internal/adapters/storage/firestore"
)

// Runs only against the Firestore emulator (FIRESTORE_EMULATOR_HOST).
func TestCredentialStoreAgainstEmulator(t *testing.T) {
	if os.Getenv("FIRESTORE_EMULATOR_HOST") == "" {
		t.Skip("FIRESTORE_EMULATOR_HOST not set")
	}
	ctx := context.Background()

	s, err := fsstore.NewCredentialStore(ctx, "cbt-notebook-test")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.Clear(ctx))
	_, ok := s.Lookup(ctx)
	assert.False(t, ok)

	require.NoError(t, s.Save(ctx, "emulator-key"))
	key, ok := s.Lookup(ctx)
	require.True(t, ok)
	assert.Equal(t, "emulator-key", key)

	require.NoError(t, s.Clear(ctx))
	_, ok = s.Lookup(ctx)
	assert.False(t, ok)
}

func TestNewCredentialStoreRequiresProject(t *testing.T) {
	_, err := fsstore.NewCredentialStore(context.Background(), "")
	assert.Error(t, err)
}
