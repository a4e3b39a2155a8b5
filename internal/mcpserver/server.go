// Package mcpserver exposes generation and judging as MCP tools over stdio.
package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/katian28/ai-bootcamp/internal/rewrite"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Rewriter is the part of the orchestrator the tools call.
type Rewriter interface {
	Generate(ctx context.Context, req rewrite.Request) (string, bool, error)
	Judge(ctx context.Context, metric rewrite.Metric, original, candidate string) (*rewrite.Judgment, error)
}

type handlers struct {
	rw     Rewriter
	logger *slog.Logger
}

// New builds an MCP server with the generate and judge tools registered.
func New(rw Rewriter, version string, logger *slog.Logger) *server.MCPServer {
	if logger == nil {
		logger = slog.Default()
	}

	s := server.NewMCPServer(
		"mailedit",
		version,
		server.WithLogging(),
		server.WithRecovery(),
	)
	Register(s, rw, logger)
	return s
}

// Register adds the tools to an existing server.
func Register(s *server.MCPServer, rw Rewriter, logger *slog.Logger) {
	h := &handlers{rw: rw, logger: logger}

	s.AddTool(mcp.NewTool("generate",
		mcp.WithDescription("Rewrite an email: shorten it, lengthen it or change its tone"),
		mcp.WithString("action", mcp.Required(),
			mcp.Description("Rewrite to perform"),
			mcp.Enum(actionNames()...),
		),
		mcp.WithString("text", mcp.Required(), mcp.Description("Email text to rewrite")),
		mcp.WithString("tone", mcp.Description("Target tone for the tone action, e.g. "+strings.Join(rewrite.Tones, ", "))),
		mcp.WithReadOnlyHintAnnotation(true),
	), h.generate)

	s.AddTool(mcp.NewTool("judge",
		mcp.WithDescription("Rate an edited email against its original on one metric (1-5 with explanation)"),
		mcp.WithString("metric", mcp.Required(),
			mcp.Description("Quality dimension to rate"),
			mcp.Enum(metricNames()...),
		),
		mcp.WithString("original", mcp.Required(), mcp.Description("Original email text")),
		mcp.WithString("candidate", mcp.Required(), mcp.Description("Edited email text")),
		mcp.WithReadOnlyHintAnnotation(true),
	), h.judge)
}

// Serve runs s on stdin/stdout until the client disconnects.
func Serve(s *server.MCPServer) error {
	return server.ServeStdio(s)
}

func (h *handlers) generate(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	action, err := request.RequireString("action")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	text, err := request.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	tone := request.GetString("tone", "")

	req := rewrite.Request{Action: rewrite.Action(action), Text: text, Tone: tone}
	if !req.Action.Valid() {
		return mcp.NewToolResultError(fmt.Sprintf("unsupported action %q, want one of %s",
			action, strings.Join(actionNames(), ", "))), nil
	}
	if req.Action == rewrite.ActionTone && tone == "" {
		return mcp.NewToolResultError("tone is required for the tone action"), nil
	}

	out, ok, err := h.rw.Generate(ctx, req)
	if err != nil {
		h.logger.Error("generate tool failed", "action", action, "error", err)
		return mcp.NewToolResultError(err.Error()), nil
	}
	if !ok {
		return mcp.NewToolResultError("failed to generate a response, see server logs"), nil
	}

	return mcp.NewToolResultText(out), nil
}

func (h *handlers) judge(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	var missing []string
	for _, key := range []string{"metric", "original", "candidate"} {
		if _, ok := args[key].(string); !ok {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return mcp.NewToolResultError("missing required arguments: " + strings.Join(missing, ", ")), nil
	}

	metric := request.GetString("metric", "")
	j, err := h.rw.Judge(ctx, rewrite.Metric(metric), request.GetString("original", ""), request.GetString("candidate", ""))
	if err != nil {
		if errors.Is(err, rewrite.ErrUnsupportedMetric) {
			return mcp.NewToolResultError(fmt.Sprintf("%v, want one of %s", err, strings.Join(metricNames(), ", "))), nil
		}
		h.logger.Error("judge tool failed", "metric", metric, "error", err)
		return mcp.NewToolResultError(err.Error()), nil
	}
	if j == nil {
		return mcp.NewToolResultError("failed to get a judgment, see server logs"), nil
	}

	if !j.Structured() {
		return mcp.NewToolResultText(j.Raw), nil
	}

	data, err := json.Marshal(j.Verdict)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func actionNames() []string {
	names := make([]string, len(rewrite.Actions))
	for i, a := range rewrite.Actions {
		names[i] = string(a)
	}
	return names
}

func metricNames() []string {
	names := make([]string, len(rewrite.Metrics))
	for i, m := range rewrite.Metrics {
		names[i] = string(m)
	}
	return names
}
