// Package cli implements the ctxstore CLI commands.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jpalmieri/ctxstore/internal/config"
	"github.com/jpalmieri/ctxstore/internal/store"
)

var dbPath string

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "ctxstore",
	Short: "Persistent project context memory for AI sessions",
	Long:  "Store short pieces of session context per project, scored by importance, and recall the most relevant slice when a session resumes. SQLite-backed, single binary.",
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "Database path (default: $CTXSTORE_DB or ~/.ctxstore/contexts.db)")
}

func getDBPath() string {
	if dbPath != "" {
		return dbPath
	}
	return config.Load().DBPath
}

func openStore() (*store.SQLiteStore, error) {
	return store.NewSQLiteStore(getDBPath())
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}
