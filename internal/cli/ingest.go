package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/lotledger/internal/models"
	"github.com/example/lotledger/internal/wire"
)

// IngestCmd returns the ingest command
func IngestCmd() *cobra.Command {
	var (
		logLevel string
		jsonLogs bool
	)

	cmd := &cobra.Command{
		Use:   "ingest [file]",
		Short: "Reconcile a batch of registry messages into the lot store",
		Long: `Read extracted registry messages as a JSON array and run each one
through the pipeline: split multi-lot messages, normalize fields, classify
the message kind, check the debtor directory and reconcile against the
current lot store.

Pass "-" (or no argument) to read from stdin.

Examples:
  lotledger ingest messages.json
  fedresurs-extract | lotledger ingest -`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			log := newLogger(cfg, logLevel, jsonLogs)

			raws, err := readMessages(args)
			if err != nil {
				return err
			}
			if len(raws) == 0 {
				fmt.Println("No messages to process.")
				return nil
			}

			backend, err := wire.OpenBackend(ctx, cfg)
			if err != nil {
				return err
			}
			defer backend.Close()

			service := wire.IngestService(backend, cfg, log)
			report, err := service.ProcessBatch(ctx, raws)
			if err != nil {
				return fmt.Errorf("ingest aborted: %w", err)
			}

			printReport(report.Messages, report.Candidates, report.New, report.Updated,
				report.Cancelled, report.Rejected, report.Unhandled, report.Errored)
			return nil
		},
	}

	cmd.Flags().StringVar(&logLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")
	cmd.Flags().BoolVar(&jsonLogs, "json-logs", false, "Emit JSON logs instead of console output")

	return cmd
}

// readMessages decodes the input JSON array from the named file or stdin.
func readMessages(args []string) ([]models.RawMessage, error) {
	var r io.Reader = os.Stdin
	if len(args) == 1 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return nil, fmt.Errorf("failed to open input: %w", err)
		}
		defer f.Close()
		r = f
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}

	var raws []models.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, fmt.Errorf("failed to parse messages: %w", err)
	}
	return raws, nil
}

func printReport(messages, candidates, added, updated, cancelled, rejected, unhandled, errored int) {
	fmt.Printf("Processed %d message(s), %d lot candidate(s):\n", messages, candidates)
	fmt.Printf("  %s\n", color.New(color.FgHiGreen).Sprintf("new:       %d", added))
	fmt.Printf("  %s\n", color.New(color.FgHiBlue).Sprintf("updated:   %d", updated))
	fmt.Printf("  %s\n", color.New(color.FgYellow).Sprintf("cancelled: %d", cancelled))
	if rejected > 0 {
		fmt.Printf("  %s\n", color.New(color.FgHiBlack).Sprintf("rejected:  %d (unknown debtor or missing tax id)", rejected))
	}
	if unhandled > 0 {
		fmt.Printf("  %s\n", color.New(color.FgHiBlack).Sprintf("unhandled: %d (unrecognized message type)", unhandled))
	}
	if errored > 0 {
		fmt.Printf("  %s\n", color.New(color.FgRed).Sprintf("errored:   %d (sent to error collection)", errored))
	}
}
