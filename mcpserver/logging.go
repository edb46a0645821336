package mcpserver

import (
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/SamuelRCrider/amendment13-go/core"
)

// RequestLogger writes an audit line per tool call. Identifying answer
// fields never reach the log.
type RequestLogger struct {
	logger       *slog.Logger
	auditLevel   string
	redactFields []string
}

// NewRequestLogger creates a new request logger
func NewRequestLogger(logger *slog.Logger, auditLevel string, redactFields []string) *RequestLogger {
	return &RequestLogger{
		logger:       logger,
		auditLevel:   auditLevel,
		redactFields: redactFields,
	}
}

// LogRequest logs an incoming tool call according to the audit level
func (l *RequestLogger) LogRequest(requestID, tool string, results *core.AssessmentResult, answers core.Answers) {
	if l.auditLevel == AuditMinimal {
		return
	}

	attrs := []any{
		slog.String("request_id", requestID),
		slog.String("tool", tool),
	}
	if results != nil {
		attrs = append(attrs,
			slog.Int("violations", len(results.Violations)),
			slog.Int("recommendations", len(results.Recommendations)),
		)
	}

	clean := core.SanitizeAnswers(answers, l.redactFields...)
	if l.auditLevel == AuditVerbose {
		attrs = append(attrs, slog.Any("answers", clean))
	} else {
		keys := make([]string, 0, len(clean))
		for k := range clean {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		attrs = append(attrs, slog.Any("answer_keys", keys))
	}

	l.logger.Info("tool request", attrs...)
}

// LogResponse logs the outcome of a tool call
func (l *RequestLogger) LogResponse(requestID, tool string, findings int, duration time.Duration) {
	if l.auditLevel == AuditMinimal {
		l.logger.Info("tool completed", slog.String("request_id", requestID), slog.Duration("duration", duration))
		return
	}

	l.logger.Info("tool response",
		slog.String("request_id", requestID),
		slog.String("tool", tool),
		slog.Int("findings", findings),
		slog.Int64("duration_ms", duration.Milliseconds()),
	)
}

// generateRequestID creates a unique ID for request tracking
func generateRequestID() string {
	return uuid.NewString()
}
