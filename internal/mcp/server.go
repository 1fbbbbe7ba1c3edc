// ABOUTME: MCP server setup for the liftlog workout store.
// ABOUTME: Wraps the MCP server with the workout repository and dashboard views.
package mcp

import (
	"context"
	"time"

	"github.com/harperreed/liftlog/internal/dashboard"
	"github.com/harperreed/liftlog/internal/storage"
	"github.com/harperreed/liftlog/internal/workout"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Server wraps the MCP server with storage access.
type Server struct {
	mcpServer *mcp.Server
	repo      *workout.Repository
	dash      *dashboard.Service
	now       func() time.Time
}

// NewServer creates a new MCP server over the given backend.
func NewServer(b storage.Backend) (*Server, error) {
	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "liftlog",
			Version: "1.0.0",
		},
		nil,
	)

	repo := workout.NewRepository(b)
	s := &Server{
		mcpServer: mcpServer,
		repo:      repo,
		dash:      dashboard.NewService(repo),
		now:       time.Now,
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// SetClock replaces the time source for tools and resources.
func (s *Server) SetClock(now func() time.Time) {
	s.now = now
	s.dash.SetClock(now)
}

// Serve starts the MCP server using stdio transport.
func (s *Server) Serve(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}
