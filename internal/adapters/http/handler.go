package httpadapter

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/PabloGalante/cbt-notebook/internal/app/analysis"
	"github.com/PabloGalante/cbt-notebook/internal/app/journal"
	"github.com/PabloGalante/cbt-notebook/internal/app/pga"
	"github.com/PabloGalante/cbt-notebook/internal/domain"
	"github.com/PabloGalante/cbt-notebook/internal/observability"
)

const (
	defaultSampleCount = 10
	maxBodyBytes       = 1 << 20
)

// Deps are the services the HTTP API exposes. CredentialStore may be nil,
// in which case the API key cannot be changed over HTTP.
type Deps struct {
	Journal         *journal.Service
	Goals           *pga.Service
	Analysis        *analysis.Service
	Credentials     domain.CredentialSource
	CredentialStore domain.CredentialStore
}

type Server struct {
	deps Deps
}

func NewServer(deps Deps) http.Handler {
	s := &Server{deps: deps}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(withRequestID)
	r.Use(withLogging)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestSize(maxBodyBytes))
	r.Use(withCORS())

	r.Get("/healthz", s.handleHealthz)

	r.Route("/entries", func(r chi.Router) {
		r.Get("/", s.handleListEntries)
		r.Post("/", s.handleCreateEntry)
		r.Post("/samples", s.handleSeedEntries)
		r.Get("/stats", s.handleEntryStats)
		r.Get("/moods", s.handleMoodSuggestions)
		r.Delete("/{entryID}", s.handleDeleteEntry)
	})

	r.Route("/goals", func(r chi.Router) {
		r.Get("/", s.handleListGoals)
		r.Post("/", s.handleCreateGoal)
		r.Delete("/{goalID}", s.handleDeleteGoal)
		r.Put("/{goalID}/status", s.handleSetGoalStatus)
		r.Post("/{goalID}/progress", s.handleAddProgress)
	})

	r.Route("/analysis", func(r chi.Router) {
		r.Post("/balanced-thought", s.handleBalancedThought)
		r.Post("/entries", s.handleEntriesAnalysis)
	})

	r.Route("/settings/api-key", func(r chi.Router) {
		r.Get("/", s.handleAPIKeyStatus)
		r.Put("/", s.handleSaveAPIKey)
		r.Delete("/", s.handleClearAPIKey)
	})

	return r
}

// ─────────────────────────────────────────────
// DTOs (request/response)
// ─────────────────────────────────────────────

type createEntryRequest struct {
	Timestamp       *time.Time        `json:"timestamp,omitempty"`
	Situation       string            `json:"situation"`
	Mood            string            `json:"mood"`
	Rating          int               `json:"rating"`
	NegativeThought string            `json:"negative_thought"`
	EvidenceFor     string            `json:"evidence_for,omitempty"`
	EvidenceAgainst string            `json:"evidence_against,omitempty"`
	BalancedThought string            `json:"balanced_thought,omitempty"`
	CustomFields    map[string]string `json:"custom_fields,omitempty"`
}

type seedRequest struct {
	Count *int `json:"count,omitempty"`
}

type createGoalRequest struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	TargetDate  string `json:"target_date,omitempty"`
}

type setStatusRequest struct {
	Status string `json:"status"`
}

type addProgressRequest struct {
	Text string `json:"text"`
}

type balancedThoughtRequest struct {
	Situation       string `json:"situation"`
	Mood            string `json:"mood"`
	Rating          int    `json:"rating"`
	NegativeThought string `json:"negative_thought"`
}

type saveAPIKeyRequest struct {
	APIKey string `json:"api_key"`
}

type deleteResponse struct {
	Deleted bool `json:"deleted"`
}

type textResponse struct {
	Text string `json:"text"`
}

type apiKeyStatusResponse struct {
	Configured bool `json:"configured"`
	Writable   bool `json:"writable"`
}

// ─────────────────────────────────────────────
// Entries
// ─────────────────────────────────────────────

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleListEntries(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.deps.Journal.ListEntries(r.Context()))
}

func (s *Server) handleCreateEntry(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return
		}
		badRequest(w, "could not read body")
		return
	}

	draft, err := decodeEntryDraft(body)
	if err != nil {
		badRequest(w, "invalid JSON body")
		return
	}

	entry, err := s.deps.Journal.AddEntry(r.Context(), draft)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidDraft) || errors.Is(err, domain.ErrReservedField) {
			badRequest(w, err.Error())
			return
		}
		internalError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, entry)
}

// decodeEntryDraft also accepts custom fields sent flattened as top-level
// "custom_<name>" keys. Keys inside custom_fields take precedence.
func decodeEntryDraft(body []byte) (domain.EntryDraft, error) {
	var req createEntryRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return domain.EntryDraft{}, err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return domain.EntryDraft{}, err
	}
	for key, val := range raw {
		if key == "custom_fields" || !strings.HasPrefix(key, domain.CustomFieldPrefix) {
			continue
		}
		var v string
		if err := json.Unmarshal(val, &v); err != nil {
			return domain.EntryDraft{}, fmt.Errorf("custom field %q: %w", key, err)
		}
		name := strings.TrimPrefix(key, domain.CustomFieldPrefix)
		if req.CustomFields == nil {
			req.CustomFields = make(map[string]string)
		}
		if _, exists := req.CustomFields[name]; !exists {
			req.CustomFields[name] = v
		}
	}

	draft := domain.EntryDraft{
		Situation:       req.Situation,
		Mood:            req.Mood,
		Rating:          req.Rating,
		NegativeThought: req.NegativeThought,
		EvidenceFor:     req.EvidenceFor,
		EvidenceAgainst: req.EvidenceAgainst,
		BalancedThought: req.BalancedThought,
		CustomFields:    req.CustomFields,
	}
	if req.Timestamp != nil {
		draft.Timestamp = *req.Timestamp
	}
	return draft, nil
}

func (s *Server) handleDeleteEntry(w http.ResponseWriter, r *http.Request) {
	id := domain.EntryID(chi.URLParam(r, "entryID"))
	writeJSON(w, http.StatusOK, deleteResponse{Deleted: s.deps.Journal.DeleteEntry(r.Context(), id)})
}

func (s *Server) handleSeedEntries(w http.ResponseWriter, r *http.Request) {
	var req seedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		badRequest(w, "invalid JSON body")
		return
	}

	count := defaultSampleCount
	if req.Count != nil {
		count = *req.Count
	}
	if count < 0 || count > journal.MaxSampleEntries {
		badRequest(w, fmt.Sprintf("count must be between 0 and %d", journal.MaxSampleEntries))
		return
	}

	writeJSON(w, http.StatusCreated, s.deps.Journal.SeedSamples(r.Context(), count))
}

func (s *Server) handleEntryStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.deps.Journal.Summary(r.Context()))
}

func (s *Server) handleMoodSuggestions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.deps.Journal.MoodSuggestions(r.Context()))
}

// ─────────────────────────────────────────────
// Goals
// ─────────────────────────────────────────────

func (s *Server) handleListGoals(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.deps.Goals.ListGoals(r.Context()))
}

func (s *Server) handleCreateGoal(w http.ResponseWriter, r *http.Request) {
	var req createGoalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}

	goal, err := s.deps.Goals.AddGoal(r.Context(), domain.GoalDraft{
		Title:       req.Title,
		Description: req.Description,
		TargetDate:  req.TargetDate,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidDraft) {
			badRequest(w, err.Error())
			return
		}
		internalError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, goal)
}

func (s *Server) handleDeleteGoal(w http.ResponseWriter, r *http.Request) {
	id := domain.GoalID(chi.URLParam(r, "goalID"))
	writeJSON(w, http.StatusOK, deleteResponse{Deleted: s.deps.Goals.DeleteGoal(r.Context(), id)})
}

func (s *Server) handleSetGoalStatus(w http.ResponseWriter, r *http.Request) {
	id := domain.GoalID(chi.URLParam(r, "goalID"))

	var req setStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}

	found, err := s.deps.Goals.SetStatus(r.Context(), id, req.Status)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidStatus) {
			badRequest(w, err.Error())
			return
		}
		internalError(w, r, err)
		return
	}
	if !found {
		notFound(w, "goal not found")
		return
	}

	goal, _ := s.deps.Goals.GetGoal(r.Context(), id)
	writeJSON(w, http.StatusOK, goal)
}

func (s *Server) handleAddProgress(w http.ResponseWriter, r *http.Request) {
	id := domain.GoalID(chi.URLParam(r, "goalID"))

	var req addProgressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}

	p, found, err := s.deps.Goals.AddProgress(r.Context(), id, req.Text)
	if err != nil {
		if errors.Is(err, domain.ErrEmptyProgress) {
			badRequest(w, err.Error())
			return
		}
		internalError(w, r, err)
		return
	}
	if !found {
		notFound(w, "goal not found")
		return
	}

	writeJSON(w, http.StatusCreated, p)
}

// ─────────────────────────────────────────────
// Analysis
// ─────────────────────────────────────────────

func (s *Server) handleBalancedThought(w http.ResponseWriter, r *http.Request) {
	var req balancedThoughtRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.Situation) == "" || strings.TrimSpace(req.Mood) == "" || strings.TrimSpace(req.NegativeThought) == "" {
		badRequest(w, "situation, mood and negative_thought are required")
		return
	}

	text, err := s.deps.Analysis.GetBalancedThought(r.Context(), analysis.BalancedThoughtInput{
		Situation:       req.Situation,
		Mood:            req.Mood,
		Rating:          req.Rating,
		NegativeThought: req.NegativeThought,
	})
	if err != nil {
		analysisError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, textResponse{Text: text})
}

func (s *Server) handleEntriesAnalysis(w http.ResponseWriter, r *http.Request) {
	entries := s.deps.Journal.ListEntries(r.Context())
	if len(entries) == 0 {
		writeError(w, http.StatusUnprocessableEntity, "at least one journal entry is required for analysis")
		return
	}

	text, err := s.deps.Analysis.GetEntriesAnalysis(r.Context(), entries)
	if err != nil {
		analysisError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, textResponse{Text: text})
}

// ─────────────────────────────────────────────
// Settings
// ─────────────────────────────────────────────

func (s *Server) handleAPIKeyStatus(w http.ResponseWriter, r *http.Request) {
	configured := false
	if s.deps.Credentials != nil {
		_, configured = s.deps.Credentials.Lookup(r.Context())
	}
	writeJSON(w, http.StatusOK, apiKeyStatusResponse{
		Configured: configured,
		Writable:   s.deps.CredentialStore != nil,
	})
}

func (s *Server) handleSaveAPIKey(w http.ResponseWriter, r *http.Request) {
	if s.deps.CredentialStore == nil {
		notFound(w, "no writable credential store configured")
		return
	}

	var req saveAPIKeyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.APIKey) == "" {
		badRequest(w, "api_key is required")
		return
	}

	if err := s.deps.CredentialStore.Save(r.Context(), req.APIKey); err != nil {
		internalError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleClearAPIKey(w http.ResponseWriter, r *http.Request) {
	if s.deps.CredentialStore == nil {
		notFound(w, "no writable credential store configured")
		return
	}
	if err := s.deps.CredentialStore.Clear(r.Context()); err != nil {
		internalError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ─────────────────────────────────────────────
// HTTP Helpers
// ─────────────────────────────────────────────

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{
		"error": msg,
	})
}

func badRequest(w http.ResponseWriter, msg string) {
	writeError(w, http.StatusBadRequest, msg)
}

func notFound(w http.ResponseWriter, msg string) {
	writeError(w, http.StatusNotFound, msg)
}

func internalError(w http.ResponseWriter, r *http.Request, err error) {
	observability.LoggerFromContext(r.Context()).Error("request failed", zap.Error(err))
	writeError(w, http.StatusInternalServerError, "internal server error")
}

// analysisError maps the analysis failure kinds to status codes.
func analysisError(w http.ResponseWriter, r *http.Request, err error) {
	var ae *domain.AnalysisError
	switch {
	case errors.Is(err, domain.ErrMissingCredential):
		writeError(w, http.StatusPreconditionFailed, err.Error())
	case errors.As(err, &ae):
		writeError(w, http.StatusBadGateway, ae.Message)
	default:
		internalError(w, r, err)
	}
}
