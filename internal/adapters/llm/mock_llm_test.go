package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PabloGalante/cbt-notebook/internal/domain"
)

func TestMockLLMRecordsRequests(t *testing.T) {
	m := NewMockLLM()
	assert.Empty(t, m.Requests())

	req := domain.GenerateRequest{APIKey: "k", Model: "gemini-2.5-flash", Prompt: "hello"}
	text, err := m.Generate(context.Background(), req)
	require.NoError(t, err)
	assert.Contains(t, text, "gemini-2.5-flash")

	got := m.Requests()
	require.Len(t, got, 1)
	assert.Equal(t, req, got[0])

	// The returned slice is a copy.
	got[0].Prompt = "changed"
	assert.Equal(t, "hello", m.Requests()[0].Prompt)
}

func TestMockLLMReplyAndError(t *testing.T) {
	ctx := context.Background()

	m := NewMockLLM().WithReply("fixed")
	text, err := m.Generate(ctx, domain.GenerateRequest{})
	require.NoError(t, err)
	assert.Equal(t, "fixed", text)

	boom := errors.New("boom")
	m = NewMockLLM().WithReply("ignored").WithError(boom)
	_, err = m.Generate(ctx, domain.GenerateRequest{})
	assert.ErrorIs(t, err, boom)
	assert.Len(t, m.Requests(), 1)
}
