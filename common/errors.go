package common

import (
	"fmt"
	"strings"
	"sync"
)

// Stable error codes surfaced to callers. These are identifiers, not type
// names; collaborators match on them across process boundaries.
const (
	CodeInvalidInput         = "INVALID_INPUT"
	CodeInvalidClassSyntax   = "INVALID_CLASS_SYNTAX"
	CodeInvalidCSSValue      = "INVALID_CSS_VALUE"
	CodeDangerousInput       = "DANGEROUS_INPUT"
	CodeInputTooLong         = "INPUT_TOO_LONG"
	CodeParsingFailed        = "PARSING_FAILED"
	CodeValidationFailed     = "VALIDATION_FAILED"
	CodePropertyNotSupported = "PROPERTY_NOT_SUPPORTED"
	CodeGenerationFailed     = "GENERATION_FAILED"
	CodeUnexpectedError      = "UNEXPECTED_ERROR"
)

// Bounds on error payloads so a hostile input can't balloon an error report.
const (
	maxContextEntries   = 10
	maxContextValueLen  = 1000
	maxContextBytes     = 10 * 1024
	maxSuggestions      = 10
	maxHistoryEntries   = 100
	historySummaryLabel = "summary"
)

// Error is the single error value used across the pipeline. Per-class errors
// are collected as Invalid entries; top-level errors fail the call.
type Error struct {
	Code        string            `json:"code"`
	Message     string            `json:"message"`
	Context     map[string]string `json:"context,omitempty"`
	Suggestions []string          `json:"suggestions,omitempty"`
}

func (e *Error) Error() string {
	return e.Code + ": " + e.Message
}

// NewError builds an Error with the given code and printf-style message.
func NewError(code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// WithContext attaches a context entry, enforcing the payload bounds.
// Entries past the cap are dropped rather than growing the error.
func (e *Error) WithContext(key, value string) *Error {
	if e.Context == nil {
		e.Context = make(map[string]string, 4)
	}
	if len(e.Context) >= maxContextEntries {
		return e
	}
	if len(value) > maxContextValueLen {
		value = value[:maxContextValueLen]
	}
	total := len(key) + len(value)
	for k, v := range e.Context {
		total += len(k) + len(v)
	}
	if total > maxContextBytes {
		return e
	}
	e.Context[key] = value
	return e
}

// WithSuggestion appends a suggestion string, capped at maxSuggestions.
func (e *Error) WithSuggestion(s string) *Error {
	if len(e.Suggestions) >= maxSuggestions {
		return e
	}
	e.Suggestions = append(e.Suggestions, s)
	return e
}

// Wrap converts an arbitrary error into an UNEXPECTED_ERROR, passing a
// *Error through untouched.
func Wrap(err error) *Error {
	if err == nil {
		return nil
	}
	if zerr, ok := err.(*Error); ok {
		return zerr
	}
	return NewError(CodeUnexpectedError, "%v", err)
}

// Invalid records one rejected class. The batch continues without it.
type Invalid struct {
	ClassName string `json:"className"`
	Code      string `json:"code"`
	Reason    string `json:"reason"`
}

// NewInvalid builds an Invalid entry from a class name and its error.
func NewInvalid(className string, err *Error) Invalid {
	return Invalid{ClassName: className, Code: err.Code, Reason: err.Message}
}

// ErrorHistory retains the most recent errors for an engine instance.
// Older entries beyond the cap collapse into a single summary row so the
// history never grows unbounded.
type ErrorHistory struct {
	mu        sync.Mutex
	entries   []*Error
	collapsed int
}

// Record appends an error to the history, collapsing the oldest entry when
// the cap is exceeded.
func (h *ErrorHistory) Record(err *Error) {
	if err == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = append(h.entries, err)
	if len(h.entries) > maxHistoryEntries {
		drop := len(h.entries) - maxHistoryEntries
		h.collapsed += drop
		h.entries = h.entries[drop:]
	}
}

// Entries returns a snapshot of the retained errors. When older entries
// have been collapsed, the first row is a summary of what was dropped.
func (h *ErrorHistory) Entries() []*Error {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]*Error, 0, len(h.entries)+1)
	if h.collapsed > 0 {
		summary := NewError(CodeUnexpectedError, "%d older errors collapsed", h.collapsed)
		summary.WithContext(historySummaryLabel, "true")
		out = append(out, summary)
	}
	return append(out, h.entries...)
}

// Len reports the number of retained entries (excluding the summary row).
func (h *ErrorHistory) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}

// Clear drops all history.
func (h *ErrorHistory) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = nil
	h.collapsed = 0
}

// TruncateForContext bounds a string destined for an error context map.
func TruncateForContext(s string) string {
	if len(s) > maxContextValueLen {
		return s[:maxContextValueLen] + "..."
	}
	return s
}

// JoinSuggestions renders suggestions as one human-readable line.
func JoinSuggestions(e *Error) string {
	if e == nil || len(e.Suggestions) == 0 {
		return ""
	}
	return strings.Join(e.Suggestions, "; ")
}
