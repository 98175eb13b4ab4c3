package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"tableflip.dev/ideabook/pkg/idea"
)

func registerTools(srv *server.MCPServer, svc *Service) {
	registerSearchIdeasTool(srv, svc)
	registerListCategoriesTool(srv, svc)
	registerGetIdeaTool(srv, svc)
	registerListTagsTool(srv, svc)
	registerCreateIdeaTool(srv, svc)
}

func registerSearchIdeasTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"search_ideas",
		mcp.WithDescription("Find ideas whose name contains the query, plus ideas tagged with a matching tag."),
		mcp.WithString("query",
			mcp.Description("Case-insensitive substring; empty lists every idea."),
		),
		mcp.WithString("category",
			mcp.Description("Restrict results to one category. Empty or All means every category."),
		),
	)
	srv.AddTool(tool, searchIdeas(svc))
}

func searchIdeas(svc *Service) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Query    string `json:"query"`
			Category string `json:"category"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		res, err := svc.Search(ctx, args.Query, args.Category)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(res)
	}
}

func registerListCategoriesTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"list_categories",
		mcp.WithDescription("List categories with their idea counts."),
	)
	srv.AddTool(tool, listCategories(svc))
}

func listCategories(svc *Service) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		summaries, err := svc.ListCategories(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"categories": summaries,
			"count":      len(summaries),
		})
	}
}

func registerGetIdeaTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"get_idea",
		mcp.WithDescription("Fetch a single idea by name."),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Idea name, matched ignoring case."),
		),
	)
	srv.AddTool(tool, getIdea(svc))
}

func getIdea(svc *Service) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		name, err := request.RequireString("name")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		view, err := svc.Idea(ctx, name)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(view)
	}
}

func registerListTagsTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"list_tags",
		mcp.WithDescription("List tags with the ideas filed under each."),
	)
	srv.AddTool(tool, listTags(svc))
}

func listTags(svc *Service) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		tags, err := svc.ListTags(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"tags":  tags,
			"count": len(tags),
		})
	}
}

func registerCreateIdeaTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"create_idea",
		mcp.WithDescription("Create a new idea in an existing category."),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Unique idea name."),
		),
		mcp.WithString("category",
			mcp.Required(),
			mcp.Description("Category that should hold the idea."),
		),
		mcp.WithString("tags",
			mcp.Description("Comma separated tags."),
		),
		mcp.WithString("body",
			mcp.Description("Text of the idea."),
		),
	)
	srv.AddTool(tool, createIdea(svc))
}

func createIdea(svc *Service) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Name     string `json:"name"`
			Category string `json:"category"`
			Tags     string `json:"tags"`
			Body     string `json:"body"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		view, err := svc.CreateIdea(ctx, CreateIdeaOptions{
			Name:     args.Name,
			Category: args.Category,
			Tags:     idea.SplitTags(args.Tags),
			Body:     args.Body,
		})
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(view)
	}
}

func toJSONResult(data any) (*mcp.CallToolResult, error) {
	b, err := json.Marshal(data)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal error: %v", err)), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}
