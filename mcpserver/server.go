package mcpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/SamuelRCrider/amendment13-go/core"
)

// Tool names exposed by the server
const (
	ToolComplianceFindings   = "export_compliance_findings"
	ToolDataSecurityFindings = "export_data_security_findings"
	ToolCombinedReport       = "export_combined_report"
	ToolRecommendations      = "export_recommendations"
)

// Server exposes the OCSF exporter as MCP tools
type Server struct {
	mcp           *server.MCPServer
	exporter      *core.Exporter
	logger        *slog.Logger
	requestLog    *RequestLogger
	errorReporter *ErrorReporter
}

// NewServer creates an MCP server backed by exporter
func NewServer(exporter *core.Exporter, config *ServerConfig, redactFields []string, logger *slog.Logger) *Server {
	config = LoadServerConfig(config)
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	s := &Server{
		mcp:           server.NewMCPServer(config.Name, config.Version, server.WithToolCapabilities(false), server.WithLogging()),
		exporter:      exporter,
		logger:        logger,
		requestLog:    NewRequestLogger(logger, config.AuditLevel, redactFields),
		errorReporter: NewErrorReporter(logger),
	}

	findingArgs := []mcp.ToolOption{
		mcp.WithObject("results", mcp.Required(), mcp.Description("Assessment result produced by the scoring engine")),
		mcp.WithObject("answers", mcp.Required(), mcp.Description("Raw questionnaire answers")),
	}

	s.mcp.AddTool(mcp.NewTool(ToolComplianceFindings,
		append([]mcp.ToolOption{mcp.WithDescription("Export every violation as an OCSF 1.6.0 Compliance Finding (class 2003)")}, findingArgs...)...,
	), s.handleComplianceFindings)

	s.mcp.AddTool(mcp.NewTool(ToolDataSecurityFindings,
		append([]mcp.ToolOption{mcp.WithDescription("Export data security violations as OCSF 1.6.0 Data Security Findings (class 2006)")}, findingArgs...)...,
	), s.handleDataSecurityFindings)

	s.mcp.AddTool(mcp.NewTool(ToolCombinedReport,
		append([]mcp.ToolOption{mcp.WithDescription("Export both finding sets, a summary and the recommendations")}, findingArgs...)...,
	), s.handleCombinedReport)

	s.mcp.AddTool(mcp.NewTool(ToolRecommendations,
		mcp.WithDescription("Convert recommendations to OCSF shaped remediation records"),
		mcp.WithArray("recommendations", mcp.Required(), mcp.Description("Recommendations produced by the scoring engine")),
	), s.handleRecommendations)

	return s
}

// MCPServer returns the underlying MCP server
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

// Serve speaks MCP over the given streams until ctx is cancelled or in is closed
func (s *Server) Serve(ctx context.Context, in io.Reader, out io.Writer) error {
	stdio := server.NewStdioServer(s.mcp)
	stdio.SetErrorLogger(slog.NewLogLogger(s.logger.Handler(), slog.LevelError))

	s.logger.Info("mcp server listening on stdio")
	return stdio.Listen(ctx, in, out)
}

func (s *Server) handleComplianceFindings(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.exportFindings(ToolComplianceFindings, request, func(results *core.AssessmentResult, answers core.Answers) (interface{}, int) {
		doc := s.exporter.ExportComplianceFindings(results, answers)
		return doc, len(doc.Findings)
	})
}

func (s *Server) handleDataSecurityFindings(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.exportFindings(ToolDataSecurityFindings, request, func(results *core.AssessmentResult, answers core.Answers) (interface{}, int) {
		doc := s.exporter.ExportDataSecurityFindings(results, answers)
		return doc, len(doc.Findings)
	})
}

func (s *Server) handleCombinedReport(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.exportFindings(ToolCombinedReport, request, func(results *core.AssessmentResult, answers core.Answers) (interface{}, int) {
		report := s.exporter.ExportCombinedReport(results, answers)
		return report, len(report.ComplianceFindings.Findings) + len(report.DataSecurityFindings.Findings)
	})
}

func (s *Server) handleRecommendations(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	requestID := generateRequestID()
	start := time.Now()

	var recommendations []core.Recommendation
	if err := decodeArgument(request.Params.Arguments, "recommendations", &recommendations); err != nil {
		return s.toolError(ToolRecommendations, requestID, err), nil
	}

	s.requestLog.LogRequest(requestID, ToolRecommendations, &core.AssessmentResult{Recommendations: recommendations}, nil)
	records := s.exporter.ExportRecommendations(recommendations)

	result, err := jsonResult(records)
	if err != nil {
		return s.toolError(ToolRecommendations, requestID, err), nil
	}

	s.requestLog.LogResponse(requestID, ToolRecommendations, len(records), time.Since(start))
	return result, nil
}

type exportFunc func(results *core.AssessmentResult, answers core.Answers) (interface{}, int)

func (s *Server) exportFindings(tool string, request mcp.CallToolRequest, export exportFunc) (*mcp.CallToolResult, error) {
	requestID := generateRequestID()
	start := time.Now()

	var results core.AssessmentResult
	if err := decodeArgument(request.Params.Arguments, "results", &results); err != nil {
		return s.toolError(tool, requestID, err), nil
	}

	answers := core.Answers{}
	if err := decodeArgument(request.Params.Arguments, "answers", &answers); err != nil {
		return s.toolError(tool, requestID, err), nil
	}

	s.requestLog.LogRequest(requestID, tool, &results, answers)
	doc, count := export(&results, answers)

	result, err := jsonResult(doc)
	if err != nil {
		return s.toolError(tool, requestID, err), nil
	}

	s.requestLog.LogResponse(requestID, tool, count, time.Since(start))
	return result, nil
}

// toolError reports err and converts it to an MCP error result so that the
// client sees the failure instead of a protocol error
func (s *Server) toolError(tool, requestID string, err error) *mcp.CallToolResult {
	toolErr := newToolError("", tool, requestID, err)
	s.errorReporter.ReportError(toolErr)
	return mcp.NewToolResultError(toolErr.Error())
}

// decodeArgument decodes a tool argument into target. Objects and arrays are
// accepted as-is; a string argument is parsed as JSON text.
func decodeArgument(args map[string]interface{}, name string, target interface{}) error {
	raw, ok := args[name]
	if !ok || raw == nil {
		return fmt.Errorf("missing required argument %q", name)
	}

	var data []byte
	if text, isText := raw.(string); isText {
		data = []byte(text)
	} else {
		encoded, err := json.Marshal(raw)
		if err != nil {
			return fmt.Errorf("failed to encode argument %q: %w", name, err)
		}
		data = encoded
	}

	if err := json.NewDecoder(bytes.NewReader(data)).Decode(target); err != nil {
		return fmt.Errorf("failed to decode argument %q: %w", name, err)
	}
	return nil
}

func jsonResult(v interface{}) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode export: %w", err)
	}
	return mcp.NewToolResultText(string(data)), nil
}
