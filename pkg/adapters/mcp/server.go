// Package mcp exposes the palisade engine as a Model Context Protocol
// server, so agent hosts can evaluate transitions and inspect the route
// table over stdio.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aretw0/palisade"
	"github.com/aretw0/palisade/pkg/domain"
	"github.com/aretw0/palisade/pkg/ports"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// EvaluateResponse is the structured result of the evaluate_transition tool.
type EvaluateResponse struct {
	RequestID string           `json:"request_id" jsonschema_description:"Correlation ID assigned to this transition"`
	Decision  *domain.Decision `json:"decision" jsonschema_description:"The routed decision, including the redirect trace"`
}

// Server wraps an Evaluator and exposes it as an MCP server.
type Server struct {
	evaluator ports.Evaluator
	mcpServer *server.MCPServer
}

// NewServer creates the MCP server and registers its tools and resources.
func NewServer(evaluator ports.Evaluator) *Server {
	s := &Server{
		evaluator: evaluator,
		mcpServer: server.NewMCPServer("palisade-mcp", strings.TrimSpace(palisade.Version)),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

func (s *Server) registerTools() {
	evaluateTool := mcp.NewTool("evaluate_transition",
		mcp.WithDescription("Evaluate the guard chain for a navigation transition and return the decision (allow, redirect or abort)."),
		mcp.WithString("target", mcp.Required(), mcp.Description("Target route ID, e.g. /admin/users")),
		mcp.WithString("origin", mcp.Description("Route ID the navigation starts from (optional)")),
		mcp.WithString("params", mcp.Description("JSON object of path parameters (optional)")),
		mcp.WithString("query", mcp.Description("JSON object of query parameters (optional)")),
		mcp.WithOutputSchema[EvaluateResponse](),
	)
	s.mcpServer.AddTool(evaluateTool, mcp.NewStructuredToolHandler(s.handleEvaluate))

	s.mcpServer.AddTool(mcp.NewTool("list_routes",
		mcp.WithDescription("List every route with its declared guards and metadata."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		routes, err := s.evaluator.Inspect()
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("inspect failed: %v", err)), nil
		}
		jsonBytes, _ := json.Marshal(routes)
		return mcp.NewToolResultText(string(jsonBytes)), nil
	})
}

func (s *Server) handleEvaluate(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (EvaluateResponse, error) {
	target, _ := args["target"].(string)
	if target == "" {
		return EvaluateResponse{}, fmt.Errorf("target is required")
	}
	origin, _ := args["origin"].(string)

	params := decodeStringMap(args, "params")
	query := decodeStringMap(args, "query")

	req := domain.NewTransitionRequest(target, origin, params, query)
	decision, err := s.evaluator.Evaluate(ctx, req)
	if err != nil {
		return EvaluateResponse{}, fmt.Errorf("evaluation failed: %w", err)
	}

	return EvaluateResponse{RequestID: req.ID, Decision: decision}, nil
}

// decodeStringMap parses an optional JSON-object string argument. Malformed
// input degrades to nil rather than failing the tool call.
func decodeStringMap(args map[string]interface{}, key string) map[string]string {
	raw, ok := args[key].(string)
	if !ok || raw == "" {
		return nil
	}
	var out map[string]string
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil
	}
	return out
}

func (s *Server) registerResources() {
	// EXPOSE: palisade://routes
	s.mcpServer.AddResource(mcp.NewResource("palisade://routes", "Route Table",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		routes, err := s.evaluator.Inspect()
		if err != nil {
			return nil, fmt.Errorf("failed to inspect routes: %w", err)
		}
		jsonBytes, _ := json.Marshal(routes)

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "palisade://routes",
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
