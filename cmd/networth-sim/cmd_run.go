package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nwgo/networth-simulator/internal/config"
	"github.com/nwgo/networth-simulator/internal/output"
	"github.com/nwgo/networth-simulator/internal/simulation"
	"github.com/nwgo/networth-simulator/internal/store"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Simulate a scenario file and report the outcome distribution",
		Long: `Run loads a YAML scenario, simulates every path and renders the result
in the requested format.

Examples:
  networth-sim run --config scenario.yaml
  networth-sim run --config scenario.yaml --format html --output-dir ./reports
  networth-sim run --config scenario.yaml --seed 42 --simulations 5000
  networth-sim run --config scenario.yaml --store runs.db --name "baseline"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			format, _ := cmd.Flags().GetString("format")
			outputDir, _ := cmd.Flags().GetString("output-dir")
			seed, _ := cmd.Flags().GetInt64("seed")
			simulations, _ := cmd.Flags().GetInt("simulations")
			storePath, _ := cmd.Flags().GetString("store")
			runName, _ := cmd.Flags().GetString("name")
			strict, _ := cmd.Flags().GetBool("strict")
			realView, _ := cmd.Flags().GetBool("real")

			loader := config.NewScenarioLoader()
			sc, err := loader.LoadFromFile(configPath)
			if err != nil {
				return fmt.Errorf("failed to load scenario: %w", err)
			}

			// CLI overrides beat the file.
			if cmd.Flags().Changed("seed") {
				sc.RandomSeed = &seed
			}
			if simulations > 0 {
				sc.NumSimulations = simulations
			}

			engine := simulation.NewEngine()
			engine.Logger = loggerFromFlags(cmd)
			engine.StrictInvariants = strict

			rs, err := engine.Run(cmd.Context(), sc)
			if err != nil {
				return fmt.Errorf("simulation failed: %w", err)
			}

			report, err := output.NewReport(rs)
			if err != nil {
				return fmt.Errorf("failed to aggregate results: %w", err)
			}
			if realView {
				report.View = simulation.ViewReal
			}

			if storePath != "" {
				runStore, err := store.Open(storePath)
				if err != nil {
					return fmt.Errorf("failed to open run store: %w", err)
				}
				defer runStore.Close()
				rec, err := runStore.SaveRun(cmd.Context(), runName, sc, report.Summary)
				if err != nil {
					return fmt.Errorf("failed to persist run: %w", err)
				}
				fmt.Fprintf(os.Stderr, "Saved run %s\n", rec.ID)
			}

			if output.NormalizeFormatName(format) == "console" && outputDir == "" {
				f := output.GetFormatterByName("console")
				data, err := f.Format(report)
				if err != nil {
					return err
				}
				_, err = os.Stdout.Write(data)
				return err
			}

			if outputDir == "" {
				outputDir = "."
			}
			path, err := output.GenerateReport(report, format, outputDir)
			if err != nil {
				return err
			}
			fmt.Printf("Report written to %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringP("config", "c", "", "Path to the scenario YAML file (required)")
	cmd.Flags().StringP("format", "f", "console", "Output format: console, json, csv, html, arrow")
	cmd.Flags().StringP("output-dir", "o", "", "Directory for the rendered report (console prints to stdout when unset)")
	cmd.Flags().Int64("seed", 0, "Override the scenario's random seed")
	cmd.Flags().IntP("simulations", "n", 0, "Override the scenario's number of paths")
	cmd.Flags().String("store", "", "SQLite file to record the run in")
	cmd.Flags().String("name", "", "Name for the persisted run")
	cmd.Flags().Bool("strict", false, "Fail the run on an accounting identity violation")
	cmd.Flags().Bool("real", false, "Show the milestone table in today's money instead of nominal")
	_ = cmd.MarkFlagRequired("config")

	return cmd
}
