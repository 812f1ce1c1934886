package cli

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/example/lotledger/internal/models"
	"github.com/example/lotledger/internal/wire"
)

// DebtorCmd returns the debtor command
func DebtorCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "debtor",
		Short: "Manage the debtor directory",
		Long: `Manage the directory of monitored debtors. Only messages whose tax id
is present in the directory enter the lot store; everything else is
rejected during ingest.`,
	}

	cmd.AddCommand(debtorAddCmd())
	cmd.AddCommand(debtorListCmd())

	return cmd
}

func debtorAddCmd() *cobra.Command {
	var (
		name       string
		caseNumber string
		sourceLink string
	)

	cmd := &cobra.Command{
		Use:   "add [inn]",
		Short: "Add a debtor to the directory",
		Long: `Add a debtor by tax id. Adding an existing tax id updates the stored
name, case number and source link.

Examples:
  lotledger debtor add 7701234567 --name "ООО Ромашка" --case А40-100/2024`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			backend, err := wire.OpenBackend(ctx, cfg)
			if err != nil {
				return err
			}
			defer backend.Close()

			d := &models.Debtor{
				INN:        args[0],
				Name:       name,
				CaseNumber: caseNumber,
				SourceLink: sourceLink,
			}
			if err := backend.Debtors.Add(ctx, d); err != nil {
				return err
			}

			fmt.Printf("✓ Added debtor %s\n", d.INN)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Debtor name")
	cmd.Flags().StringVar(&caseNumber, "case", "", "Bankruptcy case number")
	cmd.Flags().StringVar(&sourceLink, "link", "", "Registry source link")

	return cmd
}

func debtorListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List directory entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			backend, err := wire.OpenBackend(ctx, cfg)
			if err != nil {
				return err
			}
			defer backend.Close()

			debtors, err := backend.Debtors.List(ctx)
			if err != nil {
				return fmt.Errorf("failed to list debtors: %w", err)
			}
			if len(debtors) == 0 {
				fmt.Println("Directory is empty.")
				fmt.Println()
				fmt.Println("Add your first debtor:")
				fmt.Println("  lotledger debtor add 7701234567 --name \"ООО Ромашка\"")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
			fmt.Fprintln(w, "INN\tNAME\tCASE\tLINK")
			fmt.Fprintln(w, "---\t----\t----\t----")
			for _, d := range debtors {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", d.INN, d.Name, d.CaseNumber, d.SourceLink)
			}
			w.Flush()
			return nil
		},
	}
}
