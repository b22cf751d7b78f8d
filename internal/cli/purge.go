package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "purge",
		Short: "Physically delete expired contexts",
		Long:  "Delete all expired contexts and their tag rows. Expired contexts are already invisible to normal queries; this reclaims storage.",
		Run:   runPurge,
	}

	RootCmd.AddCommand(cmd)
}

func runPurge(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	n, err := s.PurgeExpired(cmd.Context())
	if err != nil {
		exitErr("purge", err)
	}

	fmt.Printf("purged %d expired contexts\n", n)
}
