package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/example/lotledger/internal/config"
	"github.com/example/lotledger/internal/ports/secondary"
	"github.com/example/lotledger/internal/wire"
)

// CheckResult represents the outcome of a single check
type CheckResult struct {
	Name    string
	Status  string // "✓", "⚠", "✗"
	Details string // Only shown if Status != "✓"
}

// DoctorCmd returns the doctor command for environment validation
func DoctorCmd() *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Validate the lotledger environment",
		Long: `Health check for the lotledger installation.

Validates:
- Configuration file and match key setting
- Storage backend connectivity
- Debtor directory population

Examples:
  lotledger doctor          # Run full health check
  lotledger doctor --quiet  # Exit code only (0=healthy, 1=issues)`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			results := []CheckResult{}
			cfg, cfgResult := checkConfig()
			results = append(results, cfgResult)
			results = append(results, checkBackend(ctx, cfg))

			hasErrors := false
			for _, r := range results {
				if r.Status == "✗" {
					hasErrors = true
					break
				}
			}

			if !quiet {
				fmt.Println()
				fmt.Println("Check              Status")
				fmt.Println("─────────────────────────")
				for _, r := range results {
					fmt.Printf("%-18s %s\n", r.Name, r.Status)
				}
				fmt.Println()

				for _, r := range results {
					if r.Status != "✓" && r.Details != "" {
						fmt.Printf("%s:\n%s\n\n", r.Name, r.Details)
					}
				}

				if hasErrors {
					fmt.Println("⚠ Issues found. Run 'lotledger init' to set up the environment.")
				} else {
					fmt.Println("All checks passed.")
				}
			}

			if hasErrors {
				return fmt.Errorf("environment validation failed")
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Quiet mode - exit code only")

	return cmd
}

// checkConfig validates the config file and returns the loaded config for
// the remaining checks.
func checkConfig() (*config.Config, CheckResult) {
	home, err := os.UserHomeDir()
	if err != nil {
		return config.Default(), CheckResult{Name: "Config", Status: "✗", Details: "  Cannot get home directory"}
	}

	cfg, err := config.Load(home)
	if err != nil {
		return config.Default(), CheckResult{Name: "Config", Status: "✗", Details: "  " + err.Error()}
	}

	if !secondary.MatchKey(cfg.MatchKey).Valid() {
		return cfg, CheckResult{
			Name:    "Config",
			Status:  "✗",
			Details: fmt.Sprintf("  Unknown match_key %q (expected debtor_inn or case_number)", cfg.MatchKey),
		}
	}

	path := filepath.Join(home, ".lotledger", "config.json")
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, CheckResult{
			Name:    "Config",
			Status:  "⚠",
			Details: "  ~/.lotledger/config.json not found, using defaults",
		}
	}

	return cfg, CheckResult{Name: "Config", Status: "✓"}
}

// checkBackend opens the configured backend and inspects the debtor
// directory.
func checkBackend(ctx context.Context, cfg *config.Config) CheckResult {
	backend, err := wire.OpenBackend(ctx, cfg)
	if err != nil {
		return CheckResult{
			Name:    "Storage",
			Status:  "✗",
			Details: "  " + err.Error(),
		}
	}
	defer backend.Close()

	debtors, err := backend.Debtors.List(ctx)
	if err != nil {
		return CheckResult{
			Name:    "Storage",
			Status:  "✗",
			Details: "  Backend opened but directory query failed: " + err.Error(),
		}
	}
	if len(debtors) == 0 {
		return CheckResult{
			Name:    "Storage",
			Status:  "⚠",
			Details: "  Debtor directory is empty; all ingested messages will be rejected\n  Run: lotledger debtor add <inn>",
		}
	}

	return CheckResult{Name: "Storage", Status: "✓"}
}
