package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/server"

	"tableflip.dev/ideabook/pkg/app"
)

// Runner coordinates MCP server startup. The server only speaks stdio.
type Runner struct {
	Service *app.Service
	Name    string
	Version string
}

// Run starts the Model Context Protocol server using stdio transport.
func Run(ctx context.Context, svc *app.Service) error {
	r := Runner{
		Service: svc,
		Name:    "ideabook",
		Version: "dev",
	}
	return r.Do(ctx)
}

// Do executes the runner.
func (r Runner) Do(ctx context.Context) error {
	if r.Service == nil {
		return errors.New("mcp runner requires a service")
	}
	return server.ServeStdio(r.Server())
}

// Server builds the MCP server with every resource and tool registered.
func (r Runner) Server() *server.MCPServer {
	name := r.Name
	if name == "" {
		name = "ideabook"
	}
	version := r.Version
	if version == "" {
		version = "dev"
	}

	srv := server.NewMCPServer(
		fmt.Sprintf("%s MCP", name),
		version,
		server.WithResourceCapabilities(false, false),
		server.WithToolCapabilities(false),
		server.WithInstructions("Search and read ideas, their categories and tags via MCP."),
		server.WithResourceRecovery(),
		server.WithRecovery(),
	)

	svc := NewService(r.Service)
	registerResources(srv, svc)
	registerTools(srv, svc)
	return srv
}
