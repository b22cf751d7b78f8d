package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export contexts as JSON",
		Long:  "Export every stored context regardless of status. Filter by project with -p.",
		Run:   runExport,
	}

	cmd.Flags().StringP("project", "p", "", "Filter by project")

	RootCmd.AddCommand(cmd)
}

func runExport(cmd *cobra.Command, args []string) {
	project, _ := cmd.Flags().GetString("project")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	contexts, err := s.ExportAll(cmd.Context(), project)
	if err != nil {
		exitErr("export", err)
	}

	b, _ := json.MarshalIndent(contexts, "", "  ")
	fmt.Println(string(b))
}
