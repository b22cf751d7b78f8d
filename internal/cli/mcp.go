package cli

import (
	"github.com/spf13/cobra"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/jpalmieri/ctxstore/internal/config"
	"github.com/jpalmieri/ctxstore/internal/mcp"
)

func init() {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Run the MCP server on stdio",
		Long:  "Expose the context store over the Model Context Protocol so AI agents can save and recall project memory.",
		Run:   runMCP,
	}

	RootCmd.AddCommand(cmd)
}

func runMCP(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	srv := mcp.NewServer(s, config.Load().DefaultBudget)
	if err := mcpserver.ServeStdio(srv); err != nil {
		exitErr("mcp server", err)
	}
}
