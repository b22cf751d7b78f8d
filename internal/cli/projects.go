package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "projects",
		Short: "List all known projects",
		Long:  "List every project with its active context count, most recently accessed first.",
		Run:   runProjects,
	}

	RootCmd.AddCommand(cmd)
}

func runProjects(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	projects, err := s.ListProjects(cmd.Context())
	if err != nil {
		exitErr("projects", err)
	}

	b, _ := json.MarshalIndent(projects, "", "  ")
	fmt.Println(string(b))
}
