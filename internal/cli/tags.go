package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "tags",
		Short: "Show a project's tags by popularity",
		Run:   runTags,
	}

	cmd.Flags().StringP("project", "p", "", "Project name (required)")
	cmd.Flags().IntP("limit", "l", 0, "Max tags (default: 20)")

	cmd.MarkFlagRequired("project")

	RootCmd.AddCommand(cmd)
}

func runTags(cmd *cobra.Command, args []string) {
	project, _ := cmd.Flags().GetString("project")
	limit, _ := cmd.Flags().GetInt("limit")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	tags, err := s.PopularTags(cmd.Context(), project, limit)
	if err != nil {
		exitErr("tags", err)
	}

	b, _ := json.MarshalIndent(tags, "", "  ")
	fmt.Println(string(b))
}
