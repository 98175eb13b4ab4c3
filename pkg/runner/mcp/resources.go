package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func registerResources(srv *server.MCPServer, svc *Service) {
	registerCategoriesResource(srv, svc)
	registerIdeaTemplate(srv, svc)
	registerTagTemplate(srv, svc)
}

func registerCategoriesResource(srv *server.MCPServer, svc *Service) {
	resource := mcp.NewResource(
		"ideabook://categories",
		"Categories",
		mcp.WithResourceDescription("All idea categories with counts."),
		mcp.WithMIMEType("application/json"),
	)

	srv.AddResource(resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		summaries, err := svc.ListCategories(ctx)
		if err != nil {
			return nil, err
		}

		payload := map[string]any{
			"categories": summaries,
			"count":      len(summaries),
		}
		return encodeResourceJSON(request.Params.URI, payload)
	})
}

func registerIdeaTemplate(srv *server.MCPServer, svc *Service) {
	template := mcp.NewResourceTemplate(
		"ideabook://ideas/{name}",
		"Idea Details",
		mcp.WithTemplateDescription("Every field of a single idea."),
		mcp.WithTemplateMIMEType("application/json"),
	)

	srv.AddResourceTemplate(template, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		name := argument(request, "name")
		if name == "" {
			return nil, fmt.Errorf("idea name is required")
		}

		view, err := svc.Idea(ctx, name)
		if err != nil {
			return nil, err
		}
		return encodeResourceJSON(request.Params.URI, view)
	})
}

func registerTagTemplate(srv *server.MCPServer, svc *Service) {
	template := mcp.NewResourceTemplate(
		"ideabook://tags/{id}",
		"Tag Ideas",
		mcp.WithTemplateDescription("Ideas filed under a tag."),
		mcp.WithTemplateMIMEType("application/json"),
	)

	srv.AddResourceTemplate(template, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		id := argument(request, "id")
		if id == "" {
			return nil, fmt.Errorf("tag id is required")
		}

		view, err := svc.Tag(ctx, id)
		if err != nil {
			return nil, err
		}
		return encodeResourceJSON(request.Params.URI, view)
	})
}

// argument reads a template variable, which may arrive as a string or a
// single element list.
func argument(request mcp.ReadResourceRequest, key string) string {
	switch v := request.Params.Arguments[key].(type) {
	case string:
		return v
	case []string:
		if len(v) > 0 {
			return v[0]
		}
	}
	return ""
}

func encodeResourceJSON(uri string, payload any) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
