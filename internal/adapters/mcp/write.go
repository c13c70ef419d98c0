package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"trailhead/internal/application/commands"
	"trailhead/internal/ports"
)

// RegisterWriteTools adds all mutating graph tools to the MCP server.
func RegisterWriteTools(s *server.MCPServer, graph ports.NodeGraph, contexts ports.ContextStore) {
	s.AddTool(createTool(), createHandler(graph))
	s.AddTool(renameTool(), renameHandler(graph))
	s.AddTool(deleteTool(), deleteHandler(graph))
	s.AddTool(linkTool(), linkHandler(graph))
	s.AddTool(unlinkTool(), unlinkHandler(graph))
	s.AddTool(moveTool(), moveHandler(graph))
	s.AddTool(visitTool(), visitHandler(graph))
	s.AddTool(contextMemberTool(), contextMemberHandler(graph, contexts))
}

// --- create ---

func createTool() mcp.Tool {
	return mcp.NewTool("create",
		mcp.WithDescription("Create a node. Without parents it becomes a root; use an anchor id (anchor-projects, anchor-topics, ...) to file it under a category."),
		mcp.WithString("name",
			mcp.Description("Name of the new node"),
			mcp.Required(),
		),
		mcp.WithArray("parent_ids",
			mcp.Description("Parent node ids or unique names"),
			mcp.WithStringItems(),
		),
		mcp.WithBoolean("temp",
			mcp.Description("Mark the node as scratch"),
		),
	)
}

func createHandler(graph ports.NodeGraph) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd := commands.NewCreateNodeCommand(graph,
			req.GetString("name", ""),
			req.GetStringSlice("parent_ids", nil),
			req.GetBool("temp", false),
		)
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message + "  [" + result.Node.ID + "]"), nil
	}
}

// --- rename ---

func renameTool() mcp.Tool {
	return mcp.NewTool("rename",
		mcp.WithDescription("Rename a node."),
		mcp.WithString("id",
			mcp.Description("Node id or unique name"),
			mcp.Required(),
		),
		mcp.WithString("name",
			mcp.Description("New name"),
			mcp.Required(),
		),
	)
}

func renameHandler(graph ports.NodeGraph) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := commands.NewRenameCommand(graph, req.GetString("id", ""), req.GetString("name", "")).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- delete ---

func deleteTool() mcp.Tool {
	return mcp.NewTool("delete",
		mcp.WithDescription("Delete a node. Nodes with children are only deleted with cascade, which removes every descendant too."),
		mcp.WithString("id",
			mcp.Description("Node id or unique name"),
			mcp.Required(),
		),
		mcp.WithBoolean("cascade",
			mcp.Description("Also delete all descendants"),
		),
	)
}

func deleteHandler(graph ports.NodeGraph) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := commands.NewDeleteCommand(graph, req.GetString("id", ""), req.GetBool("cascade", false)).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- link / unlink ---

func linkTool() mcp.Tool {
	return mcp.NewTool("link",
		mcp.WithDescription("Add a parent to a node. Rejected when it would create a cycle or already exists."),
		mcp.WithString("parent_id", mcp.Description("Parent node id or unique name"), mcp.Required()),
		mcp.WithString("child_id", mcp.Description("Child node id or unique name"), mcp.Required()),
	)
}

func linkHandler(graph ports.NodeGraph) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := commands.NewLinkCommand(graph, req.GetString("parent_id", ""), req.GetString("child_id", "")).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

func unlinkTool() mcp.Tool {
	return mcp.NewTool("unlink",
		mcp.WithDescription("Remove a parent from a node."),
		mcp.WithString("parent_id", mcp.Description("Parent node id or unique name"), mcp.Required()),
		mcp.WithString("child_id", mcp.Description("Child node id or unique name"), mcp.Required()),
	)
}

func unlinkHandler(graph ports.NodeGraph) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := commands.NewUnlinkCommand(graph, req.GetString("parent_id", ""), req.GetString("child_id", "")).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- move ---

func moveTool() mcp.Tool {
	return mcp.NewTool("move",
		mcp.WithDescription("Replace all parents of a node. An empty list makes it a root."),
		mcp.WithString("id", mcp.Description("Node id or unique name"), mcp.Required()),
		mcp.WithArray("parent_ids",
			mcp.Description("New parent node ids or unique names"),
			mcp.WithStringItems(),
		),
	)
}

func moveHandler(graph ports.NodeGraph) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := commands.NewMoveCommand(graph, req.GetString("id", ""), req.GetStringSlice("parent_ids", nil)).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- visit ---

func visitTool() mcp.Tool {
	return mcp.NewTool("visit",
		mcp.WithDescription("Make a node the current one and record it in the navigation history."),
		mcp.WithString("id", mcp.Description("Node id or unique name"), mcp.Required()),
	)
}

func visitHandler(graph ports.NodeGraph) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := commands.NewVisitCommand(graph, req.GetString("id", "")).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- context_member ---

func contextMemberTool() mcp.Tool {
	return mcp.NewTool("context_member",
		mcp.WithDescription("Add a node to a context, or remove it. Defaults to the current context."),
		mcp.WithString("id", mcp.Description("Node id or unique name"), mcp.Required()),
		mcp.WithString("context", mcp.Description("Context id or name, omit for the current context")),
		mcp.WithBoolean("remove", mcp.Description("Remove instead of add")),
	)
}

func contextMemberHandler(graph ports.NodeGraph, contexts ports.ContextStore) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		msg, err := commands.NewContextMembershipCommand(graph, contexts,
			req.GetString("context", ""),
			req.GetString("id", ""),
			req.GetBool("remove", false),
		).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(msg), nil
	}
}
