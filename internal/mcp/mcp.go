// Package mcp exposes the context store over the Model Context
// Protocol (stdio transport), so any MCP-capable agent can persist
// and recall session context.
//
// Every tool maps 1:1 onto a store operation; no logic lives here.
package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/jpalmieri/ctxstore/internal/model"
	"github.com/jpalmieri/ctxstore/internal/store"
)

const serverInstructions = `Persistent context memory scoped to named projects. ` +
	`Call init_project_context when a session starts to recover earlier ` +
	`decisions, then save_context whenever something worth remembering ` +
	`happens. Key tools: save_context, get_contexts, init_project_context.`

// NewServer creates the MCP server with all tools registered.
func NewServer(s store.Store, defaultBudget int) *server.MCPServer {
	srv := server.NewMCPServer(
		"ctxstore",
		"0.1.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(serverInstructions),
	)

	srv.AddTool(
		mcp.NewTool("save_context",
			mcp.WithDescription("Save a piece of context (a note, fact, or decision) to persistent project memory. Higher importance makes it more likely to be recalled at session start."),
			mcp.WithTitleAnnotation("Save Context"),
			mcp.WithReadOnlyHintAnnotation(false),
			mcp.WithDestructiveHintAnnotation(false),
			mcp.WithIdempotentHintAnnotation(false),
			mcp.WithOpenWorldHintAnnotation(false),
			mcp.WithString("content",
				mcp.Required(),
				mcp.Description("The text to remember"),
			),
			mcp.WithNumber("importance_level",
				mcp.Required(),
				mcp.Description("Importance from 1 to 10; higher is recalled first"),
			),
			mcp.WithString("project",
				mcp.Description("Project name (default: general)"),
			),
			mcp.WithString("tags",
				mcp.Description("Comma-separated tags"),
			),
		),
		handleSave(s),
	)

	srv.AddTool(
		mcp.NewTool("get_contexts",
			mcp.WithDescription("Search stored contexts for a project, filtered by tags and minimum importance. Returns active contexts newest first."),
			mcp.WithTitleAnnotation("Get Contexts"),
			mcp.WithReadOnlyHintAnnotation(true),
			mcp.WithDestructiveHintAnnotation(false),
			mcp.WithIdempotentHintAnnotation(true),
			mcp.WithOpenWorldHintAnnotation(false),
			mcp.WithString("project",
				mcp.Required(),
				mcp.Description("Project name"),
			),
			mcp.WithString("tags",
				mcp.Description("Comma-separated tags; a context matching any is returned"),
			),
			mcp.WithNumber("min_importance",
				mcp.Description("Only contexts at or above this importance"),
			),
			mcp.WithNumber("limit",
				mcp.Description("Max results (default: 20)"),
			),
			mcp.WithString("status",
				mcp.Description("Filter by status: active (default), archived, expired"),
			),
		),
		handleGet(s),
	)

	srv.AddTool(
		mcp.NewTool("init_project_context",
			mcp.WithDescription("Load the most important stored contexts for a project at session start. Returns the top entries by importance and recency plus the total count of active contexts."),
			mcp.WithTitleAnnotation("Initialize Project Context"),
			mcp.WithReadOnlyHintAnnotation(true),
			mcp.WithDestructiveHintAnnotation(false),
			mcp.WithIdempotentHintAnnotation(true),
			mcp.WithOpenWorldHintAnnotation(false),
			mcp.WithString("project",
				mcp.Required(),
				mcp.Description("Project name"),
			),
			mcp.WithNumber("budget",
				mcp.Description(fmt.Sprintf("Max contexts to return (default: %d)", defaultBudget)),
			),
		),
		handleInit(s, defaultBudget),
	)

	srv.AddTool(
		mcp.NewTool("update_context_status",
			mcp.WithDescription("Retire a context by moving it forward in its lifecycle: active -> archived -> expired. Status never moves backward."),
			mcp.WithTitleAnnotation("Update Context Status"),
			mcp.WithReadOnlyHintAnnotation(false),
			mcp.WithDestructiveHintAnnotation(false),
			mcp.WithIdempotentHintAnnotation(false),
			mcp.WithOpenWorldHintAnnotation(false),
			mcp.WithString("id",
				mcp.Required(),
				mcp.Description("Context ID"),
			),
			mcp.WithString("status",
				mcp.Required(),
				mcp.Description("New status: archived or expired"),
			),
		),
		handleUpdateStatus(s),
	)

	srv.AddTool(
		mcp.NewTool("list_projects",
			mcp.WithDescription("List every known project with its active context count, most recently accessed first."),
			mcp.WithTitleAnnotation("List Projects"),
			mcp.WithReadOnlyHintAnnotation(true),
			mcp.WithDestructiveHintAnnotation(false),
			mcp.WithIdempotentHintAnnotation(true),
			mcp.WithOpenWorldHintAnnotation(false),
		),
		handleListProjects(s),
	)

	srv.AddTool(
		mcp.NewTool("popular_tags",
			mcp.WithDescription("Show a project's tags ranked by how many active contexts carry them."),
			mcp.WithTitleAnnotation("Popular Tags"),
			mcp.WithReadOnlyHintAnnotation(true),
			mcp.WithDestructiveHintAnnotation(false),
			mcp.WithIdempotentHintAnnotation(true),
			mcp.WithOpenWorldHintAnnotation(false),
			mcp.WithString("project",
				mcp.Required(),
				mcp.Description("Project name"),
			),
			mcp.WithNumber("limit",
				mcp.Description("Max tags (default: 20)"),
			),
		),
		handlePopularTags(s),
	)

	srv.AddTool(
		mcp.NewTool("memory_stats",
			mcp.WithDescription("Aggregate statistics: context counts by status, project count, tag count, and average importance of active contexts."),
			mcp.WithTitleAnnotation("Memory Stats"),
			mcp.WithReadOnlyHintAnnotation(true),
			mcp.WithDestructiveHintAnnotation(false),
			mcp.WithIdempotentHintAnnotation(true),
			mcp.WithOpenWorldHintAnnotation(false),
			mcp.WithString("project",
				mcp.Description("Scope to one project (default: global)"),
			),
		),
		handleStats(s),
	)

	srv.AddTool(
		mcp.NewTool("purge_expired",
			mcp.WithDescription("Physically delete expired contexts. Maintenance operation; expired contexts are already invisible to normal queries."),
			mcp.WithTitleAnnotation("Purge Expired"),
			mcp.WithReadOnlyHintAnnotation(false),
			mcp.WithDestructiveHintAnnotation(true),
			mcp.WithIdempotentHintAnnotation(true),
			mcp.WithOpenWorldHintAnnotation(false),
		),
		handlePurge(s),
	)

	return srv
}

// ─── Tool Handlers ───────────────────────────────────────────────────────────

func handleSave(s store.Store) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		content, _ := req.GetArguments()["content"].(string)
		project, _ := req.GetArguments()["project"].(string)
		importance := intArg(req, "importance_level", 0)
		tags := splitTags(req, "tags")

		saved, err := s.SaveContext(ctx, store.SaveParams{
			Content:    content,
			Importance: importance,
			ProjectID:  project,
			Tags:       tags,
		})
		if err != nil {
			return mcp.NewToolResultError("Failed to save context: " + err.Error()), nil
		}

		return mcp.NewToolResultText(fmt.Sprintf("Context saved: %s (project %q, importance %d)",
			saved.ID, saved.ProjectID, saved.Importance)), nil
	}
}

func handleGet(s store.Store) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		project, _ := req.GetArguments()["project"].(string)
		status, _ := req.GetArguments()["status"].(string)

		contexts, err := s.GetContexts(ctx, store.SearchFilters{
			ProjectID:     project,
			Tags:          splitTags(req, "tags"),
			MinImportance: intArg(req, "min_importance", 0),
			Limit:         intArg(req, "limit", 0),
			Status:        model.Status(status),
		})
		if err != nil {
			return mcp.NewToolResultError("Failed to get contexts: " + err.Error()), nil
		}

		if len(contexts) == 0 {
			return mcp.NewToolResultText(fmt.Sprintf("No contexts found for project %q", project)), nil
		}

		var b strings.Builder
		fmt.Fprintf(&b, "Found %d contexts:\n\n", len(contexts))
		for i, c := range contexts {
			writeContext(&b, i+1, c)
		}
		return mcp.NewToolResultText(b.String()), nil
	}
}

func handleInit(s store.Store, defaultBudget int) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		project, _ := req.GetArguments()["project"].(string)
		budget := intArg(req, "budget", defaultBudget)

		res, err := s.SelectForInit(ctx, project, budget)
		if err != nil {
			return mcp.NewToolResultError("Failed to initialize context: " + err.Error()), nil
		}

		var b strings.Builder
		fmt.Fprintf(&b, "%s\n\n", res.Instructions)
		fmt.Fprintf(&b, "Project %q: showing %d of %d active contexts.\n\n",
			res.ProjectID, len(res.Contexts), res.TotalContexts)
		for i, c := range res.Contexts {
			writeContext(&b, i+1, c)
		}
		return mcp.NewToolResultText(b.String()), nil
	}
}

func handleUpdateStatus(s store.Store) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, _ := req.GetArguments()["id"].(string)
		status, _ := req.GetArguments()["status"].(string)
		if id == "" || status == "" {
			return mcp.NewToolResultError("id and status are required"), nil
		}

		if err := s.UpdateStatus(ctx, id, model.Status(status)); err != nil {
			return mcp.NewToolResultError("Failed to update status: " + err.Error()), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("Context %s is now %s", id, status)), nil
	}
}

func handleListProjects(s store.Store) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		projects, err := s.ListProjects(ctx)
		if err != nil {
			return mcp.NewToolResultError("Failed to list projects: " + err.Error()), nil
		}
		if len(projects) == 0 {
			return mcp.NewToolResultText("No projects yet."), nil
		}

		var b strings.Builder
		fmt.Fprintf(&b, "%d projects:\n\n", len(projects))
		for _, p := range projects {
			fmt.Fprintf(&b, "- %s (%q) — %d active contexts, last accessed %s\n",
				p.ID, p.Name, p.ContextCount, p.LastAccessed.Format("2006-01-02 15:04"))
		}
		return mcp.NewToolResultText(b.String()), nil
	}
}

func handlePopularTags(s store.Store) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		project, _ := req.GetArguments()["project"].(string)
		limit := intArg(req, "limit", 0)

		tags, err := s.PopularTags(ctx, project, limit)
		if err != nil {
			return mcp.NewToolResultError("Failed to rank tags: " + err.Error()), nil
		}
		if len(tags) == 0 {
			return mcp.NewToolResultText(fmt.Sprintf("No tags in project %q", project)), nil
		}

		var b strings.Builder
		for _, t := range tags {
			fmt.Fprintf(&b, "%s: %d\n", t.Tag, t.Count)
		}
		return mcp.NewToolResultText(b.String()), nil
	}
}

func handleStats(s store.Store) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		project, _ := req.GetArguments()["project"].(string)

		st, err := s.Stats(ctx, project)
		if err != nil {
			return mcp.NewToolResultError("Failed to compute stats: " + err.Error()), nil
		}

		return mcp.NewToolResultText(fmt.Sprintf(
			"Contexts: %d total (%d active, %d archived, %d expired)\nProjects: %d\nDistinct tags: %d\nAvg importance (active): %.2f\nProvider: %s",
			st.TotalContexts, st.ActiveContexts, st.ArchivedContexts, st.ExpiredContexts,
			st.TotalProjects, st.TotalTags, st.AvgImportance, st.Provider)), nil
	}
}

func handlePurge(s store.Store) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		n, err := s.PurgeExpired(ctx)
		if err != nil {
			return mcp.NewToolResultError("Failed to purge: " + err.Error()), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("Purged %d expired contexts", n)), nil
	}
}

// ─── Helpers ─────────────────────────────────────────────────────────────────

func writeContext(b *strings.Builder, n int, c model.Context) {
	tags := ""
	if len(c.Tags) > 0 {
		tags = " | tags: " + strings.Join(c.Tags, ", ")
	}
	fmt.Fprintf(b, "[%d] %s (importance %d)%s\n    %s\n    %s\n\n",
		n, c.ID, c.Importance, tags,
		truncate(c.Content, 300),
		c.CreatedAt.Format("2006-01-02 15:04"))
}

func intArg(req mcp.CallToolRequest, key string, defaultVal int) int {
	v, ok := req.GetArguments()[key].(float64)
	if !ok {
		return defaultVal
	}
	return int(v)
}

func splitTags(req mcp.CallToolRequest, key string) []string {
	raw, _ := req.GetArguments()[key].(string)
	if raw == "" {
		return nil
	}
	var tags []string
	for _, t := range strings.Split(raw, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
