// ABOUTME: MCP resource implementations for workout dashboards.
// ABOUTME: Provides liftlog://recent, liftlog://progress, and liftlog://calendar resources.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	recentURI   = "liftlog://recent"
	progressURI = "liftlog://progress"
	calendarURI = "liftlog://calendar"
)

func (s *Server) registerResources() {
	// liftlog://recent - headline counts and the last few workouts
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         recentURI,
		Name:        "Recent Workouts",
		Description: "Total and weekly workout counts with the most recent workouts",
		MIMEType:    "application/json",
	}, s.handleRecentResource)

	// liftlog://progress - weekly histogram and duration trend
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         progressURI,
		Name:        "Workout Progress",
		Description: "Workouts per week and the recent duration trend",
		MIMEType:    "application/json",
	}, s.handleProgressResource)

	// liftlog://calendar - workouts grouped by date around this month
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         calendarURI,
		Name:        "Workout Calendar",
		Description: "Workouts grouped by date with this month's totals",
		MIMEType:    "application/json",
	}, s.handleCalendarResource)
}

// Resource handlers

func (s *Server) handleRecentResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	return jsonResource(recentURI, s.dash.Home(ctx))
}

func (s *Server) handleProgressResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	return jsonResource(progressURI, s.dash.Progress(ctx))
}

func (s *Server) handleCalendarResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	return jsonResource(calendarURI, s.dash.Calendar(ctx))
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
