package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/snipstash/runnerd/config"
	"github.com/snipstash/runnerd/runner"
)

// MCPServer exposes the snippet engine as an MCP tool so local agents
// (e.g. the vault's AI helper) can run snippets over stdio. The stdio
// transport is a trusted local channel; HTTP callers go through the
// authenticated httpserver instead.
type MCPServer struct {
	config    *config.Config
	logger    *zap.Logger
	engine    *runner.Engine
	mcpServer *server.MCPServer
}

// New creates a new MCPServer
func New(cfg *config.Config, logger *zap.Logger, engine *runner.Engine) (*MCPServer, error) {
	s := &MCPServer{
		config: cfg,
		logger: logger,
		engine: engine,
	}

	s.mcpServer = server.NewMCPServer("runnerd", "Snippet execution sandbox for the snippet vault")
	s.registerRunSnippetTool()

	return s, nil
}

// registerRunSnippetTool registers the run_snippet tool
func (s *MCPServer) registerRunSnippetTool() {
	tool := mcp.Tool{
		Name:        "run_snippet",
		Description: "Evaluate a stored snippet and return its output, error and exit code",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]any{
				"code": map[string]any{
					"type":        "string",
					"description": "Snippet source text",
				},
				"language": map[string]any{
					"type":        "string",
					"description": "Snippet language",
					"enum":        s.engine.Languages(),
				},
			},
			Required: []string{"code", "language"},
		},
	}

	s.mcpServer.AddTool(tool, s.handleRunSnippet)
}

// handleRunSnippet handles the run_snippet tool
func (s *MCPServer) handleRunSnippet(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	code, err := request.RequireString("code")
	if err != nil {
		return nil, fmt.Errorf("code parameter is required: %w", err)
	}

	language, err := request.RequireString("language")
	if err != nil {
		return nil, fmt.Errorf("language parameter is required: %w", err)
	}

	if code == "" {
		return nil, fmt.Errorf("code must not be empty")
	}

	if len(code) > s.config.Execution.MaxCodeBytes {
		return nil, fmt.Errorf("code exceeds maximum length of %d bytes", s.config.Execution.MaxCodeBytes)
	}

	if !s.engine.Supports(language) {
		return nil, fmt.Errorf("unsupported language: %s", language)
	}

	s.logger.Info("snippet execution requested over mcp", zap.String("language", language))

	envelope := s.engine.Run(ctx, runner.Request{Code: code, Language: language})

	payload, err := json.Marshal(envelope)
	if err != nil {
		return nil, fmt.Errorf("failed to encode result: %w", err)
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{
				Type: "text",
				Text: string(payload),
			},
		},
		IsError: envelope.ExitCode != 0,
	}, nil
}

// ServeStdio starts the server on stdio
func (s *MCPServer) ServeStdio() error {
	s.logger.Info("starting MCP server on stdio")
	return server.ServeStdio(s.mcpServer)
}
