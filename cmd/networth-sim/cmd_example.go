package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nwgo/networth-simulator/internal/config"
)

func newExampleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "example",
		Short: "Write a starter scenario file",
		Long: `Example writes a fully populated scenario to the given path: a
two-earner household with a mortgaged home, pension accrual, a rental
purchase and a downsize in retirement. Edit it, then simulate it with
'networth-sim run --config <path>'.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString("output")
			force, _ := cmd.Flags().GetBool("force")

			if !force {
				if _, err := os.Stat(path); err == nil {
					return fmt.Errorf("%s already exists (use --force to overwrite)", path)
				}
			}
			if err := config.WriteExampleFile(path); err != nil {
				return err
			}
			fmt.Printf("Example scenario written to %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringP("output", "o", "scenario.yaml", "Where to write the example scenario")
	cmd.Flags().Bool("force", false, "Overwrite an existing file")
	return cmd
}
