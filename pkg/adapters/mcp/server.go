package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/romandfa/internal/presentation/graph"
	"github.com/aretw0/romandfa/pkg/ports"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// AutomatonURI addresses the automaton resource.
const AutomatonURI = "romandfa://automaton"

// VerdictResult is the structured output of validate_numeral.
type VerdictResult struct {
	Input    string   `json:"input" jsonschema_description:"The normalized input"`
	Accepted bool     `json:"accepted" jsonschema_description:"Whether the automaton accepted the input"`
	Value    int      `json:"value,omitempty" jsonschema_description:"Decimal value when accepted"`
	States   []string `json:"states" jsonschema_description:"States visited, starting with the start state"`
	Reason   string   `json:"reason,omitempty" jsonschema_description:"invalid_character or not_accepting"`
	Detail   string   `json:"detail,omitempty" jsonschema_description:"Human readable rejection"`
}

// DecodeResult is the structured output of decode_numeral.
type DecodeResult struct {
	Numeral string `json:"numeral" jsonschema_description:"The normalized numeral"`
	Value   int    `json:"value" jsonschema_description:"Decimal value"`
}

type numeralArgs struct {
	Input string `json:"input"`
}

type graphArgs struct {
	Input    string `json:"input,omitempty"`
	HideDead bool   `json:"hide_dead,omitempty"`
}

// Server wraps the engine and exposes it as an MCP Server.
type Server struct {
	engine    ports.Validator
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(engine ports.Validator, version string) *Server {
	s := &Server{
		engine:    engine,
		mcpServer: server.NewMCPServer("romandfa-mcp", strings.TrimSpace(version)),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer exposes the underlying server, e.g. for in-process clients.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", sseServer.SSEHandler())
	mux.Handle("/message", sseServer.MessageHandler())

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		slog.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func (s *Server) registerTools() {
	// TOOL: validate_numeral
	validateTool := mcp.NewTool("validate_numeral",
		mcp.WithDescription("Check whether a Roman numeral between 1 and 50 is well formed, and decode it."),
		mcp.WithString("input", mcp.Required(), mcp.Description("The numeral, case-insensitive (e.g. XLIV)")),
		mcp.WithOutputSchema[VerdictResult](),
	)
	s.mcpServer.AddTool(validateTool, mcp.NewStructuredToolHandler(s.handleValidate))

	// TOOL: decode_numeral
	decodeTool := mcp.NewTool("decode_numeral",
		mcp.WithDescription("Convert an accepted Roman numeral to its decimal value. Fails for rejected numerals."),
		mcp.WithString("input", mcp.Required(), mcp.Description("The numeral to decode")),
		mcp.WithOutputSchema[DecodeResult](),
	)
	s.mcpServer.AddTool(decodeTool, mcp.NewStructuredToolHandler(s.handleDecode))

	// TOOL: render_automaton
	s.mcpServer.AddTool(mcp.NewTool("render_automaton",
		mcp.WithDescription("Render the automaton as a Mermaid flowchart, optionally highlighting the path of an input."),
		mcp.WithString("input", mcp.Description("Numeral whose path should be highlighted (optional)")),
		mcp.WithBoolean("hide_dead", mcp.Description("Omit the dead state and edges into it")),
	), mcp.NewTypedToolHandler(s.handleRender))
}

func (s *Server) handleValidate(ctx context.Context, request mcp.CallToolRequest, args numeralArgs) (VerdictResult, error) {
	v := s.engine.Validate(ctx, args.Input)
	res := VerdictResult{
		Input:    v.Input,
		Accepted: v.Accepted,
		Value:    v.Value,
		States:   []string{},
	}
	for _, st := range v.Visited() {
		res.States = append(res.States, string(st))
	}
	if v.Rejection != nil {
		res.Reason = string(v.Rejection.Kind)
		res.Detail = v.Rejection.Error()
	}
	return res, nil
}

func (s *Server) handleDecode(ctx context.Context, request mcp.CallToolRequest, args numeralArgs) (DecodeResult, error) {
	v := s.engine.Validate(ctx, args.Input)
	if !v.Accepted {
		slog.Debug("MCP Decode: numeral rejected", "input", v.Input, "err", v.Rejection)
		return DecodeResult{}, fmt.Errorf("cannot decode %q: %w", v.Input, v.Err())
	}
	return DecodeResult{Numeral: v.Input, Value: v.Value}, nil
}

func (s *Server) handleRender(ctx context.Context, request mcp.CallToolRequest, args graphArgs) (*mcp.CallToolResult, error) {
	opts := graph.Options{HideDead: args.HideDead}
	if args.Input != "" {
		v := s.engine.Validate(ctx, args.Input)
		opts.Overlay = &graph.Overlay{Path: v.Path}
	}
	return mcp.NewToolResultText(graph.GenerateMermaid(s.engine.Inspect(), opts)), nil
}

func (s *Server) registerResources() {
	// EXPOSE: romandfa://automaton
	s.mcpServer.AddResource(mcp.NewResource(AutomatonURI, "Automaton Definition",
		mcp.WithResourceDescription("States, alphabet and completed transition table of the active automaton"),
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		a := s.engine.Inspect()
		if a == nil {
			return nil, errors.New("no automaton loaded")
		}
		jsonBytes, err := json.Marshal(a.Definition())
		if err != nil {
			return nil, fmt.Errorf("failed to encode automaton: %w", err)
		}

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      AutomatonURI,
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
