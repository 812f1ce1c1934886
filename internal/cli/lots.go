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

// LotsCmd returns the lots command
func LotsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lots",
		Short: "Browse the lot store",
		Long:  `List current lots, archived versions and failed candidates.`,
	}

	cmd.AddCommand(lotsListCmd())
	cmd.AddCommand(lotsArchiveCmd())
	cmd.AddCommand(lotsErrorsCmd())

	return cmd
}

func lotsListCmd() *cobra.Command {
	var inn string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List current lots",
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

			lots, err := backend.Lots.ListCurrent(ctx, inn)
			if err != nil {
				return fmt.Errorf("failed to list lots: %w", err)
			}
			if len(lots) == 0 {
				fmt.Println("No lots found.")
				return nil
			}
			printLots(lots)
			return nil
		},
	}

	cmd.Flags().StringVar(&inn, "inn", "", "Filter by debtor tax id")

	return cmd
}

func lotsArchiveCmd() *cobra.Command {
	var inn string

	cmd := &cobra.Command{
		Use:   "archive",
		Short: "List archived lot versions",
		Long: `List superseded lot versions. Every time a later message matches an
existing lot, the old row is archived before the new one is inserted, so
the archive holds the full history of each lot.`,
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

			lots, err := backend.Lots.ListArchive(ctx, inn)
			if err != nil {
				return fmt.Errorf("failed to list archive: %w", err)
			}
			if len(lots) == 0 {
				fmt.Println("Archive is empty.")
				return nil
			}
			printLots(lots)
			return nil
		},
	}

	cmd.Flags().StringVar(&inn, "inn", "", "Filter by debtor tax id")

	return cmd
}

func lotsErrorsCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "errors",
		Short: "List failed candidates",
		Long:  `List candidates that were rejected during reconciliation, newest first.`,
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

			lots, err := backend.Errors.List(ctx, limit)
			if err != nil {
				return fmt.Errorf("failed to list errors: %w", err)
			}
			if len(lots) == 0 {
				fmt.Println("No failed candidates.")
				return nil
			}
			printLots(lots)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 50, "Maximum number of rows")

	return cmd
}

func printLots(lots []*models.Lot) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "INN\tLOT\tKIND\tSTATUS\tMESSAGE\tPRICE\tDESCRIPTION")
	fmt.Fprintln(w, "---\t---\t----\t------\t-------\t-----\t-----------")

	for _, lot := range lots {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			lot.DebtorINN,
			lot.LotNumber,
			lot.Kind,
			lot.Status,
			lot.MessageNumber,
			lot.Price,
			truncate(lot.AssetDescription, 60),
		)
	}

	w.Flush()
	fmt.Printf("\n%d row(s)\n", len(lots))
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
