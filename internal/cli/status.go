package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jpalmieri/ctxstore/internal/model"
)

func init() {
	cmd := &cobra.Command{
		Use:   "status <id> <new-status>",
		Short: "Move a context forward in its lifecycle",
		Long:  "Transition a context's status: active -> archived -> expired. Status never moves backward.",
		Args:  cobra.ExactArgs(2),
		Run:   runStatus,
	}

	RootCmd.AddCommand(cmd)
}

func runStatus(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	if err := s.UpdateStatus(cmd.Context(), args[0], model.Status(args[1])); err != nil {
		exitErr("status", err)
	}

	fmt.Printf("context %s is now %s\n", args[0], args[1])
}
