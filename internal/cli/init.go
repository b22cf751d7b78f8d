package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jpalmieri/ctxstore/internal/config"
)

func init() {
	cmd := &cobra.Command{
		Use:   "init [project]",
		Short: "Load the top contexts for resuming a session",
		Long:  "Select the most important contexts for a project, bounded by --budget, with the total count of stored contexts.",
		Args:  cobra.MaximumNArgs(1),
		Run:   runInit,
	}

	cmd.Flags().IntP("budget", "b", 0, fmt.Sprintf("Max contexts to return (default: %d)", config.DefaultBudget))

	RootCmd.AddCommand(cmd)
}

func runInit(cmd *cobra.Command, args []string) {
	project := ""
	if len(args) > 0 {
		project = args[0]
	}
	budget, _ := cmd.Flags().GetInt("budget")
	if !cmd.Flags().Changed("budget") {
		budget = config.Load().DefaultBudget
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	res, err := s.SelectForInit(cmd.Context(), project, budget)
	if err != nil {
		exitErr("init", err)
	}

	b, _ := json.MarshalIndent(res, "", "  ")
	fmt.Println(string(b))
}
