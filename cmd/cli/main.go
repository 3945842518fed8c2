package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"fiscalsim/adapters/excel"
	"fiscalsim/app"
	"fiscalsim/domain/policy"
	"fiscalsim/internal"
	"fiscalsim/internal/safety"
	"fiscalsim/internal/sim"
)

func main() {
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "fiscalsim-cli",
		Short: "Fiscal projection engine for policy scenarios",
	}

	rootCmd.AddCommand(
		newProjectCmd(),
		newMonteCarloCmd(),
		newExportCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadScenario(path string) (policy.Scenario, error) {
	var scenario policy.Scenario
	data, err := os.ReadFile(path)
	if err != nil {
		return scenario, fmt.Errorf("failed to read scenario file: %w", err)
	}
	if err := json.Unmarshal(data, &scenario); err != nil {
		return scenario, fmt.Errorf("failed to parse scenario file: %w", err)
	}
	if scenario.ID == "" {
		scenario = policy.NewScenario(scenario.Name, scenario.Mechanics, scenario.Assumptions)
	}
	return scenario, scenario.Validate()
}

func newService() *app.ProjectionService {
	logger := internal.NewDefaultLogger()
	driver := sim.NewDriver(safety.DefaultThresholds(), logger)
	return app.NewProjectionService(driver, nil, nil)
}

func newProjectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project [scenario.json]",
		Short: "Run a deterministic multi-year projection of a scenario",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scenario, err := loadScenario(args[0])
			if err != nil {
				return err
			}

			result, err := newService().Project(context.Background(), scenario)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		},
	}
	return cmd
}

func newMonteCarloCmd() *cobra.Command {
	var trials, workers int
	var seed uint64

	cmd := &cobra.Command{
		Use:   "montecarlo [scenario.json]",
		Short: "Run a stochastic projection with percentile bands",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scenario, err := loadScenario(args[0])
			if err != nil {
				return err
			}

			result, err := newService().MonteCarlo(context.Background(), scenario, sim.MonteCarloConfig{
				Trials:  trials,
				Workers: workers,
				Seed:    seed,
			})
			if err != nil {
				return err
			}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		},
	}

	cmd.Flags().IntVar(&trials, "trials", 1000, "number of Monte Carlo trials")
	cmd.Flags().IntVar(&workers, "workers", 8, "maximum concurrent trials")
	cmd.Flags().Uint64Var(&seed, "seed", 42, "random seed (fixed seed gives identical results)")
	return cmd
}

func newExportCmd() *cobra.Command {
	var out string
	var trials int
	var seed uint64

	cmd := &cobra.Command{
		Use:   "export [scenario.json]",
		Short: "Project a scenario and write an Excel workbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scenario, err := loadScenario(args[0])
			if err != nil {
				return err
			}

			service := newService()
			ctx := context.Background()

			projection, err := service.Project(ctx, scenario)
			if err != nil {
				return err
			}

			var mc *sim.MonteCarloResult
			if trials > 0 {
				mc, err = service.MonteCarlo(ctx, scenario, sim.MonteCarloConfig{
					Trials:  trials,
					Workers: 8,
					Seed:    seed,
				})
				if err != nil {
					return err
				}
			}

			if err := excel.NewReportWriter().Write(out, projection, mc); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", out)
			return nil
		},
	}

	cmd.Flags().StringVar(&out, "out", "projection.xlsx", "output workbook path")
	cmd.Flags().IntVar(&trials, "trials", 0, "Monte Carlo trials to include (0 skips the sheet)")
	cmd.Flags().Uint64Var(&seed, "seed", 42, "random seed for the Monte Carlo sheet")
	return cmd
}
