package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/lotledger/internal/cli"
	"github.com/example/lotledger/internal/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "lotledger",
		Short:   "lotledger - bankruptcy auction lot reconciliation",
		Version: version.String(),
		Long: `lotledger maintains a versioned store of bankruptcy auction lots.
It ingests extracted registry messages, normalizes them into lot candidates
and reconciles each candidate against the current store: matched lots are
archived and replaced, cancellations mark lots for deletion.`,
	}

	rootCmd.AddCommand(cli.InitCmd())
	rootCmd.AddCommand(cli.DoctorCmd())
	rootCmd.AddCommand(cli.IngestCmd())
	rootCmd.AddCommand(cli.LotsCmd())
	rootCmd.AddCommand(cli.DebtorCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
