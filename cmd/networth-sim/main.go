package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nwgo/networth-simulator/internal/simulation"
)

var version = "0.1.0-dev"

func main() {
	rootCmd := &cobra.Command{
		Use:   "networth-sim",
		Short: "Monte Carlo net-worth simulator for household finances",
		Long: `networth-sim projects a household's net worth forward over decades by
simulating thousands of stochastic economic futures and reporting the
distribution of outcomes.

Scenarios are YAML files describing the household's starting balances,
economic assumptions and scheduled life events (property purchases and
sales, windfalls, expense changes). Run 'networth-sim example' to write
a starter scenario.`,
	}

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log engine progress to stderr")
	rootCmd.PersistentFlags().Bool("debug", false, "Include debug lines in verbose output")

	rootCmd.AddCommand(
		newRunCmd(),
		newExampleCmd(),
		newRunsCmd(),
		newServeCmd(),
		newVersionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("networth-sim version %s\n", version)
		},
	}
}

// loggerFromFlags builds the engine logger the persistent flags ask for.
func loggerFromFlags(cmd *cobra.Command) simulation.Logger {
	verbose, _ := cmd.Flags().GetBool("verbose")
	if !verbose {
		return simulation.NopLogger{}
	}
	debug, _ := cmd.Flags().GetBool("debug")
	return simulation.WriterLogger{W: os.Stderr, Debug: debug}
}
