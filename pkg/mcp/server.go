// Package mcp exposes the anonymizer as a Model Context Protocol tool
// served over stdio.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/codeready-toolchain/anonymizer/pkg/anonymizer"
	"github.com/codeready-toolchain/anonymizer/pkg/version"
)

// ToolAnonymizeRequest is the name of the single tool served.
const ToolAnonymizeRequest = "anonymize_request"

// Anonymizer is the pipeline behind the tool.
type Anonymizer interface {
	CleanHeadersCookies(ctx context.Context, req anonymizer.Request, opts anonymizer.Options) (anonymizer.CleanRequest, error)
}

// Server wraps an MCP server with the anonymize_request tool registered.
type Server struct {
	mcp        *server.MCPServer
	anonymizer Anonymizer
}

// NewServer creates the MCP server.
func NewServer(anon Anonymizer) *Server {
	s := &Server{
		mcp:        server.NewMCPServer(version.AppName, version.GitCommit, server.WithToolCapabilities(false)),
		anonymizer: anon,
	}
	s.mcp.AddTool(anonymizeRequestTool(), s.handleAnonymizeRequest)
	return s
}

// ServeStdio blocks serving JSON-RPC on stdin/stdout.
func (s *Server) ServeStdio() error {
	slog.Info("MCP server listening on stdio", "tool", ToolAnonymizeRequest)
	return server.ServeStdio(s.mcp)
}

func anonymizeRequestTool() mcp.Tool {
	return mcp.NewTool(ToolAnonymizeRequest,
		mcp.WithDescription("Replace the values of sensitive headers and cookies of an HTTP request with anonymized values of similar length and format. Returns only the replaced entries."),
		mcp.WithString("request",
			mcp.Required(),
			mcp.Description(`The HTTP request as a JSON object: {"headers":[{"name":..,"value":..}],"cookies":[{"name":..,"value":..}]}`)),
		mcp.WithNumber("filter_values_over_length",
			mcp.Description("Values with this many characters or more are never sent to the model. Defaults to the configured cutoff.")),
		mcp.WithString("run_id", mcp.Description("Identifier shared by both model calls of this request.")),
		mcp.WithString("user_id", mcp.Description("Caller identity forwarded to the model provider.")),
		mcp.WithString("team_id", mcp.Description("Caller team recorded in the history store.")),
		mcp.WithBoolean("debug_mode", mcp.Description("Log prompts and raw model replies.")),
	)
}

// handleAnonymizeRequest answers tool calls. Input problems come back as a
// tool error result; pipeline failures too, with the cause logged.
func (s *Server) handleAnonymizeRequest(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	req, opts, err := parseArguments(request.Params.Arguments)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	clean, err := s.anonymizer.CleanHeadersCookies(ctx, req, opts)
	if err != nil {
		slog.Error("MCP anonymize_request failed", "error", err)
		return mcp.NewToolResultError(fmt.Sprintf("anonymization failed: %v", err)), nil
	}

	out, err := json.Marshal(clean)
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return mcp.NewToolResultText(string(out)), nil
}

func parseArguments(args map[string]interface{}) (anonymizer.Request, anonymizer.Options, error) {
	var (
		req  anonymizer.Request
		opts anonymizer.Options
	)

	raw, ok := args["request"].(string)
	if !ok || raw == "" {
		return req, opts, errors.New("request is required and must be a JSON string")
	}
	var probe any
	if err := json.Unmarshal([]byte(raw), &probe); err != nil {
		return req, opts, fmt.Errorf("request is not valid JSON: %w", err)
	}
	if _, isObject := probe.(map[string]any); !isObject {
		return req, opts, errors.New("request must be a JSON object")
	}
	if err := json.Unmarshal([]byte(raw), &req); err != nil {
		return req, opts, fmt.Errorf("request: %w", err)
	}

	if v, present := args["filter_values_over_length"]; present && v != nil {
		n, ok := v.(float64)
		if !ok || n < 0 || n != math.Trunc(n) {
			return req, opts, errors.New("filter_values_over_length must be a non-negative integer")
		}
		threshold := int(n)
		opts.FilterValuesOverLength = &threshold
	}

	opts.RunID, _ = args["run_id"].(string)
	opts.UserID, _ = args["user_id"].(string)
	opts.TeamID, _ = args["team_id"].(string)
	opts.Debug, _ = args["debug_mode"].(bool)
	return req, opts, nil
}
