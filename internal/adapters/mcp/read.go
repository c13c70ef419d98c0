package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"trailhead/internal/application/commands"
	"trailhead/internal/domain"
	"trailhead/internal/ports"
)

// RegisterReadTools adds all read-only graph tools to the MCP server.
func RegisterReadTools(s *server.MCPServer, graph ports.NodeGraph, contexts ports.ContextStore) {
	s.AddTool(treeTool(), treeHandler(graph))
	s.AddTool(searchTool(), searchHandler(graph))
	s.AddTool(showTool(), showHandler(graph))
	s.AddTool(whereTool(), whereHandler(graph))
	s.AddTool(historyTool(), historyHandler(graph))
	s.AddTool(contextsTool(), contextsHandler(contexts))
}

// --- tree ---

func treeTool() mcp.Tool {
	return mcp.NewTool("tree",
		mcp.WithDescription("Show the node tree for a filter, at most three levels deep. Nodes in the current context are marked with '*'."),
		mcp.WithString("filter",
			mcp.Description("One of: "+filterNames()+". Defaults to all."),
		),
	)
}

func treeHandler(graph ports.NodeGraph) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		entries, err := commands.NewTreeCommand(graph, req.GetString("filter", "")).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		if len(entries) == 0 {
			return mcp.NewToolResultText("No nodes."), nil
		}

		var sb strings.Builder
		for _, e := range entries {
			marker := " "
			if e.Selected {
				marker = "*"
			}
			fmt.Fprintf(&sb, "%s %s%s  [%s]\n", marker, strings.Repeat("  ", e.Depth), e.Node.Name, e.Node.ID)
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- search ---

func searchTool() mcp.Tool {
	return mcp.NewTool("search",
		mcp.WithDescription("Fuzzy search nodes by name. Returns each match with its id and hierarchy."),
		mcp.WithString("query",
			mcp.Description("Search query (at least 2 characters)"),
			mcp.Required(),
		),
	)
}

func searchHandler(graph ports.NodeGraph) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		query := req.GetString("query", "")
		if query == "" {
			return toolError(fmt.Errorf("query is required"))
		}

		results, err := commands.NewSearchCommand(graph, query).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		if len(results) == 0 {
			return mcp.NewToolResultText("No results found."), nil
		}

		var sb strings.Builder
		for _, r := range results {
			fmt.Fprintf(&sb, "%s  %s\n", r.Node.ID, r.Path)
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- show ---

func showTool() mcp.Tool {
	return mcp.NewTool("show",
		mcp.WithDescription("Show a node with its hierarchy, parents and children."),
		mcp.WithString("id",
			mcp.Description("Node id or unique name"),
			mcp.Required(),
		),
	)
}

func showHandler(graph ports.NodeGraph) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		res, err := commands.NewNeighboursCommand(graph, req.GetString("id", "")).Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		var sb strings.Builder
		fmt.Fprintf(&sb, "%s  [%s]\n", res.Path, res.Node.ID)
		if res.Node.Temp {
			sb.WriteString("temp: yes\n")
		}
		if res.Node.WorkspaceRef != "" {
			fmt.Fprintf(&sb, "workspace: %s\n", res.Node.WorkspaceRef)
		}
		writeNodes(&sb, "parents", res.Parents)
		writeNodes(&sb, "children", res.Children)
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- where ---

func whereTool() mcp.Tool {
	return mcp.NewTool("where",
		mcp.WithDescription("Show the current and previous node of the navigation history."),
	)
}

func whereHandler(graph ports.NodeGraph) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		res, err := commands.NewWhereCommand(graph).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		if res.Current == nil {
			return mcp.NewToolResultText("No current node."), nil
		}

		text := "current: " + res.CurrentPath + "\n"
		if res.Previous != nil {
			text += "previous: " + res.PreviousPath + "\n"
		}
		return mcp.NewToolResultText(text), nil
	}
}

// --- history ---

func historyTool() mcp.Tool {
	return mcp.NewTool("history",
		mcp.WithDescription("List recent navigation history, newest first."),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of records (default 20)"),
		),
	)
}

func historyHandler(graph ports.NodeGraph) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		records, err := graph.RecentHistory(ctx, req.GetInt("limit", 0))
		if err != nil {
			return toolError(err)
		}
		if len(records) == 0 {
			return mcp.NewToolResultText("No history."), nil
		}

		var sb strings.Builder
		for _, r := range records {
			name := r.CurrentNodeID
			if n, err := graph.GetNode(ctx, r.CurrentNodeID); err == nil {
				name = n.Name
			}
			fmt.Fprintf(&sb, "%s  %s\n", r.Timestamp.Local().Format("2006-01-02 15:04"), name)
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- contexts ---

func contextsTool() mcp.Tool {
	return mcp.NewTool("contexts",
		mcp.WithDescription("List contexts with their member count. The current context is marked with '*'."),
	)
}

func contextsHandler(contexts ports.ContextStore) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		list, err := contexts.ListContexts(ctx)
		if err != nil {
			return toolError(err)
		}
		if len(list) == 0 {
			return mcp.NewToolResultText("No contexts."), nil
		}
		cur, err := contexts.CurrentContext(ctx)
		if err != nil {
			return toolError(err)
		}

		var sb strings.Builder
		for _, c := range list {
			marker := " "
			if cur != nil && cur.ID == c.ID {
				marker = "*"
			}
			fmt.Fprintf(&sb, "%s %s  (%d nodes)\n", marker, c.Name, len(c.MemberNodeIDs))
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- helpers ---

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}

func writeNodes(sb *strings.Builder, label string, nodes []domain.Node) {
	if len(nodes) == 0 {
		return
	}
	fmt.Fprintf(sb, "%s:\n", label)
	for _, n := range nodes {
		fmt.Fprintf(sb, "  %s  %s\n", n.ID, n.Name)
	}
}

func filterNames() string {
	names := make([]string, 0, len(domain.AllFilters))
	for _, f := range domain.AllFilters {
		names = append(names, f.String())
	}
	return strings.Join(names, ", ")
}
