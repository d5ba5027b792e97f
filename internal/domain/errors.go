package domain

import "errors"

var (
	ErrInvalidDraft  = errors.New("invalid draft")
	ErrReservedField = errors.New("custom field name is reserved")
	ErrInvalidStatus = errors.New("invalid goal status")
	ErrEmptyProgress = errors.New("progress text is required")

	// ErrMissingCredential is returned before any network attempt when no
	// API key can be resolved.
	ErrMissingCredential = errors.New("API key is not configured")

	// ErrAnalysisFailed is matched by every *AnalysisError.
	ErrAnalysisFailed = errors.New("analysis failed")
)

// AnalysisError is the normalized failure of a text-generation call.
// Message is safe to show to the user; Err keeps the original cause.
type AnalysisError struct {
	Op      string
	Message string
	Err     error
}

func (e *AnalysisError) Error() string {
	return e.Message
}

func (e *AnalysisError) Unwrap() []error {
	return []error{ErrAnalysisFailed, e.Err}
}
