package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/driftlab/genograph/internal/config"
	"github.com/driftlab/genograph/internal/evolution"
	"github.com/driftlab/genograph/internal/governance"
	"github.com/driftlab/genograph/internal/logging"
	"github.com/driftlab/genograph/internal/models"
	"github.com/driftlab/genograph/internal/store"
)

func newSimulateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "simulate <scenario.yaml>",
		Short: "Run an evolution scenario",
		Long: `Run an evolution scenario against the loaded gene catalog.

The scenario names a strain and the genes it attempts, in order. Genes
whose prerequisites are missing are skipped; successful acquisitions are
persisted and observed by the governor, which raises containment alerts
for critical strains.

Examples:
  genograph simulate scenarios/mrsa.yaml
  genograph simulate scenarios/mrsa.yaml --interval 0s --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, _ := cmd.Flags().GetString("root")
			jsonOut, _ := cmd.Flags().GetBool("json")
			intervalFlag, _ := cmd.Flags().GetString("interval")

			cfg, err := config.Load(root)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			scenario, err := evolution.LoadScenario(args[0])
			if err != nil {
				return fmt.Errorf("failed to load scenario: %w", err)
			}

			interval, err := resolveInterval(intervalFlag, scenario, cfg)
			if err != nil {
				return err
			}

			geneStore, err := openStore(root)
			if err != nil {
				return err
			}
			defer geneStore.Close()

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			cat, err := store.LoadCatalog(ctx, geneStore)
			if err != nil {
				return fmt.Errorf("failed to load catalog: %w", err)
			}

			strain, err := geneStore.GetStrain(ctx, scenario.Strain)
			if err != nil {
				return fmt.Errorf("failed to get strain: %w", err)
			}
			if strain == nil {
				strain = models.NewStrain(scenario.Strain)
				if err := geneStore.PutStrain(ctx, strain); err != nil {
					return fmt.Errorf("failed to create strain: %w", err)
				}
			}

			logger := logging.NewLogger(cfg.Logging.Level, cmd.ErrOrStderr())
			events := logging.NewEventLogger(filepath.Join(root, store.DirName))
			defer events.Close()

			gov := governance.NewGovernor(
				governance.Config{
					AlertThreshold:      cfg.Governor.AlertThreshold,
					PandemicStrainCount: cfg.Governor.PandemicStrainCount,
				},
				governance.MultiReporter{
					governance.SlogReporter{Logger: logger},
					governance.EventReporter{Events: events},
				},
				func(strainID string, resistance float64, lastAcquired string) {
					fmt.Fprintf(cmd.OutOrStdout(), "CONTAINMENT ALERT: strain %s reached resistance %.2f via %s\n",
						strainID, resistance, lastAcquired)
				},
			)

			loop := evolution.NewLoop(cat, strain, gov,
				evolution.WithStore(geneStore),
				evolution.WithInterval(interval),
				evolution.WithLogger(logger),
			)

			outcomes, err := loop.Run(ctx, scenario.Steps)
			if err != nil {
				return fmt.Errorf("simulation failed: %w", err)
			}

			if jsonOut {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]interface{}{
					"strain":   strain.ID,
					"outcomes": outcomes,
					"final": map[string]interface{}{
						"resistance": strain.Resistance,
						"level":      models.ClassifyResistance(strain.Resistance),
						"genome":     strain.Acquisitions,
					},
				})
			}

			for _, o := range outcomes {
				if o.Acquired {
					fmt.Fprintf(cmd.OutOrStdout(), "acquired %s [%s]\n", o.GeneID, o.Level)
				} else {
					fmt.Fprintf(cmd.OutOrStdout(), "skipped  %s (%s)\n", o.GeneID, o.Reason)
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "\nStrain %s finished at resistance %.2f (%s)\n",
				strain.ID, strain.Resistance, models.ClassifyResistance(strain.Resistance))
			return nil
		},
	}

	cmd.Flags().String("interval", "", "Delay between steps (e.g. 250ms); overrides scenario and config")

	return cmd
}

// resolveInterval picks the step delay: flag, then scenario, then config.
func resolveInterval(flag string, scenario *evolution.Scenario, cfg *config.Config) (time.Duration, error) {
	if flag != "" {
		d, err := time.ParseDuration(flag)
		if err != nil {
			return 0, fmt.Errorf("invalid interval %q: %w", flag, err)
		}
		return d, nil
	}
	if scenario.Interval > 0 {
		return scenario.Interval, nil
	}
	return cfg.Simulation.Interval()
}
