package llm

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/PabloGalante/cbt-notebook/internal/domain"
)

type capturedCall struct {
	path   string
	apiKey string
	body   string
}

// fakeGemini serves generateContent with a fixed status and body and
// records each call.
func fakeGemini(t *testing.T, status int, body string) (*httptest.Server, func() []capturedCall) {
	t.Helper()
	var (
		mu    sync.Mutex
		calls []capturedCall
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		mu.Lock()
		calls = append(calls, capturedCall{path: r.URL.Path, apiKey: r.Header.Get("x-goog-api-key"), body: string(raw)})
		mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)

	return srv, func() []capturedCall {
		mu.Lock()
		defer mu.Unlock()
		return append([]capturedCall(nil), calls...)
	}
}

const replyBody = `{"candidates":[{"content":{"role":"model","parts":[{"text":"Try a kinder reading."}]}}]}`

func TestGeminiGenerateReturnsText(t *testing.T) {
	srv, calls := fakeGemini(t, http.StatusOK, replyBody)
	gen := NewGeminiGenerator().WithBaseURL(srv.URL)

	text, err := gen.Generate(context.Background(), domain.GenerateRequest{
		APIKey: "key-1",
		Model:  "gemini-2.5-flash",
		Prompt: "Negative thought: I always fail",
	})

	require.NoError(t, err)
	assert.Equal(t, "Try a kinder reading.", text)

	got := calls()
	require.Len(t, got, 1)
	assert.True(t, strings.HasSuffix(got[0].path, "models/gemini-2.5-flash:generateContent"), got[0].path)
	assert.Equal(t, "key-1", got[0].apiKey)
	assert.Contains(t, got[0].body, "I always fail")
}

func TestGeminiUsesKeyOfEachRequest(t *testing.T) {
	srv, calls := fakeGemini(t, http.StatusOK, replyBody)
	gen := NewGeminiGenerator().WithBaseURL(srv.URL)
	ctx := context.Background()

	_, err := gen.Generate(ctx, domain.GenerateRequest{APIKey: "first", Model: "m", Prompt: "p"})
	require.NoError(t, err)
	_, err = gen.Generate(ctx, domain.GenerateRequest{APIKey: "second", Model: "m", Prompt: "p"})
	require.NoError(t, err)

	got := calls()
	require.Len(t, got, 2)
	assert.Equal(t, "first", got[0].apiKey)
	assert.Equal(t, "second", got[1].apiKey)
}

func TestGeminiUpstreamErrors(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
	}{
		{"bad request", http.StatusBadRequest, `{"error":{"code":400,"message":"API key not valid","status":"INVALID_ARGUMENT"}}`},
		{"forbidden", http.StatusForbidden, `{"error":{"code":403,"message":"permission denied","status":"PERMISSION_DENIED"}}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv, _ := fakeGemini(t, tc.status, tc.body)
			gen := NewGeminiGenerator().WithBaseURL(srv.URL)

			text, err := gen.Generate(context.Background(), domain.GenerateRequest{APIKey: "k", Model: "m", Prompt: "p"})

			assert.Error(t, err)
			assert.Empty(t, text)
		})
	}
}

func TestGeminiEmptyTextIsError(t *testing.T) {
	srv, _ := fakeGemini(t, http.StatusOK, `{"candidates":[{"content":{"role":"model","parts":[]}}]}`)
	gen := NewGeminiGenerator().WithBaseURL(srv.URL)

	_, err := gen.Generate(context.Background(), domain.GenerateRequest{APIKey: "k", Model: "m", Prompt: "p"})

	assert.ErrorContains(t, err, "empty text")
}

func TestGeminiRejectsEmptyKeyWithoutCalling(t *testing.T) {
	srv, calls := fakeGemini(t, http.StatusOK, replyBody)
	gen := NewGeminiGenerator().WithBaseURL(srv.URL)

	_, err := gen.Generate(context.Background(), domain.GenerateRequest{Model: "m", Prompt: "p"})

	assert.Error(t, err)
	assert.Empty(t, calls())
}

func TestGeneratorBackends(t *testing.T) {
	assert.Equal(t, genai.BackendGeminiAPI, NewGeminiGenerator().backend)
	assert.Equal(t, genai.BackendVertexAI, NewVertexGenerator().backend)
	assert.Equal(t, "http://proxy", NewVertexGenerator().WithBaseURL("http://proxy").baseURL)
}
