// Package mcp implements a Model Context Protocol server exposing label
// expression conversion as MCP tools over stdio transport.
package mcp

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// serverName is the MCP server implementation name.
	serverName = "labelconv"
	// serverVersion is the MCP server implementation version.
	serverVersion = "1.0.0"

	// toolCount is the expected number of registered tools.
	toolCount = 2
)

// ServerDeps holds injectable dependencies for the MCP server.
// Zero-value fields use production defaults.
type ServerDeps struct {
	// Logger is an optional structured logger. Nil uses slog default.
	Logger *slog.Logger
}

// Server wraps the MCP SDK server with labelconv tool registrations.
type Server struct {
	inner *mcpsdk.Server
	mu    sync.RWMutex
	tools []string
}

// NewServer creates a new MCP server with all labelconv tools registered.
func NewServer(deps ServerDeps) *Server {
	opts := &mcpsdk.ServerOptions{}
	if deps.Logger != nil {
		opts.Logger = deps.Logger
	}

	inner := mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    serverName,
			Version: serverVersion,
		},
		opts,
	)

	srv := &Server{
		inner: inner,
		tools: make([]string, 0, toolCount),
	}

	srv.registerTools()

	return srv
}

// ListToolNames returns the sorted names of all registered tools.
func (s *Server) ListToolNames() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, len(s.tools))
	copy(names, s.tools)
	sort.Strings(names)

	return names
}

// Run starts the MCP server on stdio transport. It blocks until the context
// is canceled or the connection closes.
func (s *Server) Run(ctx context.Context) error {
	err := s.inner.Run(ctx, &mcpsdk.StdioTransport{})
	if err != nil {
		return fmt.Errorf("mcp server: %w", err)
	}

	return nil
}

// RunWithTransport starts the MCP server on the given transport. It blocks
// until the context is canceled or the connection closes.
func (s *Server) RunWithTransport(ctx context.Context, transport mcpsdk.Transport) error {
	err := s.inner.Run(ctx, transport)
	if err != nil {
		return fmt.Errorf("mcp server: %w", err)
	}

	return nil
}

// registerTools adds all labelconv MCP tools to the server.
func (s *Server) registerTools() {
	s.registerConvertTool()
	s.registerLyrxTool()
}

func (s *Server) registerConvertTool() {
	mcpsdk.AddTool(s.inner, &mcpsdk.Tool{
		Name:        ToolNameConvert,
		Description: convertToolDescription,
	}, handleConvert)

	s.trackTool(ToolNameConvert)
}

func (s *Server) registerLyrxTool() {
	mcpsdk.AddTool(s.inner, &mcpsdk.Tool{
		Name:        ToolNameLyrx,
		Description: lyrxToolDescription,
	}, handleLyrxConvert)

	s.trackTool(ToolNameLyrx)
}

func (s *Server) trackTool(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tools = append(s.tools, name)
}

// Tool description constants.
const (
	convertToolDescription = "Convert one ArcGIS label expression (VBScript FindLabel " +
		"program, expression fragment, or bare field name) into a QGIS label expression."

	lyrxToolDescription = "Extract label classes from an ArcGIS Pro layer file (.lyrx CIM JSON) " +
		"and convert each label expression into a QGIS label expression."
)
