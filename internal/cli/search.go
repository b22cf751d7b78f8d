package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jpalmieri/ctxstore/internal/model"
	"github.com/jpalmieri/ctxstore/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search stored contexts",
		Long:  "Search a project's contexts by tags and minimum importance. Active contexts only unless --status says otherwise.",
		Run:   runSearch,
	}

	cmd.Flags().StringP("project", "p", "", "Project name (required)")
	cmd.Flags().StringP("tags", "t", "", "Comma-separated tags; a context matching any is returned")
	cmd.Flags().Int("min-importance", 0, "Only contexts at or above this importance")
	cmd.Flags().IntP("limit", "l", 0, "Max results (default: 20)")
	cmd.Flags().String("status", "", "Filter by status: active (default), archived, expired")

	cmd.MarkFlagRequired("project")

	RootCmd.AddCommand(cmd)
}

func runSearch(cmd *cobra.Command, args []string) {
	project, _ := cmd.Flags().GetString("project")
	tagsStr, _ := cmd.Flags().GetString("tags")
	minImportance, _ := cmd.Flags().GetInt("min-importance")
	limit, _ := cmd.Flags().GetInt("limit")
	status, _ := cmd.Flags().GetString("status")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	contexts, err := s.GetContexts(cmd.Context(), store.SearchFilters{
		ProjectID:     project,
		Tags:          splitTags(tagsStr),
		MinImportance: minImportance,
		Limit:         limit,
		Status:        model.Status(status),
	})
	if err != nil {
		exitErr("search", err)
	}

	b, _ := json.MarshalIndent(contexts, "", "  ")
	fmt.Println(string(b))
}
