// Package mcp exposes training session state and the exercise catalog as
// MCP tools and resources.
package mcp

import (
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// New creates an MCP server with all tools and resources registered. The
// data source is already bound to one user; every tool operates on that
// user's sessions.
func New(ds DataSource, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("TrainUp", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("TrainUp training server. Check session status and cooldown, start and stop training sessions, mark exercises, and browse the training catalog. All data is scoped to the authenticated user."),
	)

	h := &handlers{ds: ds, log: log}

	// Tools
	s.AddTools(
		server.ServerTool{Tool: toolGetTrainingStatus, Handler: h.getTrainingStatus},
		server.ServerTool{Tool: toolStartSession, Handler: h.startSession},
		server.ServerTool{Tool: toolStopSession, Handler: h.stopSession},
		server.ServerTool{Tool: toolMarkExercise, Handler: h.markExercise},
		server.ServerTool{Tool: toolListTrainings, Handler: h.listTrainings},
		server.ServerTool{Tool: toolListExercises, Handler: h.listExercises},
		server.ServerTool{Tool: toolGetUserProgress, Handler: h.getUserProgress},
	)

	// Resources
	s.AddResources(
		server.ServerResource{Resource: resSessionStatus, Handler: h.sessionStatus},
		server.ServerResource{Resource: resCatalog, Handler: h.catalog},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	ds  DataSource
	log *slog.Logger
}

// --- Resource definitions ---

var resSessionStatus = mcp.NewResource(
	"trainup://session_status",
	"Session Status",
	mcp.WithResourceDescription("The current training session status: active session with its exercises, availability of a new session, and the cooldown target"),
	mcp.WithMIMEType("application/json"),
)

var resCatalog = mcp.NewResource(
	"trainup://catalog",
	"Training Catalog",
	mcp.WithResourceDescription("All training templates, exercises, and categories"),
	mcp.WithMIMEType("application/json"),
)
