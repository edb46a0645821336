package mcpserver

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// ErrorCategory classifies tool failures for the audit trail
type ErrorCategory string

const (
	ErrorCategoryValidation ErrorCategory = "validation"
	ErrorCategoryDecode     ErrorCategory = "decode"
	ErrorCategorySystem     ErrorCategory = "system"
)

// ToolError wraps a tool failure with audit metadata
type ToolError struct {
	Category    ErrorCategory
	Tool        string
	RequestID   string
	OriginalErr error
	Timestamp   time.Time
}

func (e ToolError) Error() string {
	return fmt.Sprintf("[%s] %s: %s (request: %s)", e.Category, e.Tool, e.OriginalErr.Error(), e.RequestID)
}

func (e ToolError) Unwrap() error {
	return e.OriginalErr
}

// newToolError creates a ToolError, classifying err when category is empty
func newToolError(category ErrorCategory, tool, requestID string, err error) ToolError {
	if category == "" {
		category = categorizeError(err)
	}
	return ToolError{
		Category:    category,
		Tool:        tool,
		RequestID:   requestID,
		OriginalErr: err,
		Timestamp:   time.Now(),
	}
}

// ErrorReporter writes tool errors as structured log entries
type ErrorReporter struct {
	logger *slog.Logger
}

// NewErrorReporter creates a new error reporter
func NewErrorReporter(logger *slog.Logger) *ErrorReporter {
	return &ErrorReporter{logger: logger}
}

// ReportError logs err, adding ToolError metadata when available
func (r *ErrorReporter) ReportError(err error) {
	attrs := []any{slog.String("error", err.Error())}

	var toolErr ToolError
	if errors.As(err, &toolErr) {
		attrs = append(attrs,
			slog.String("category", string(toolErr.Category)),
			slog.String("tool", toolErr.Tool),
			slog.String("request_id", toolErr.RequestID),
			slog.Time("occurred_at", toolErr.Timestamp),
		)
	}

	r.logger.Error("tool call failed", attrs...)
}

// categorizeError categorizes an error based on its message
func categorizeError(err error) ErrorCategory {
	errStr := err.Error()

	if strings.Contains(errStr, "decode") || strings.Contains(errStr, "unmarshal") || strings.Contains(errStr, "invalid character") {
		return ErrorCategoryDecode
	} else if strings.Contains(errStr, "missing") || strings.Contains(errStr, "invalid") || strings.Contains(errStr, "must be") {
		return ErrorCategoryValidation
	}

	return ErrorCategorySystem
}
