package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/nwgo/networth-simulator/internal/store"
	"github.com/nwgo/networth-simulator/pkg/money"
)

func newRunsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List runs recorded in a store",
		RunE: func(cmd *cobra.Command, args []string) error {
			storePath, _ := cmd.Flags().GetString("store")
			limit, _ := cmd.Flags().GetInt("limit")

			runStore, err := store.Open(storePath)
			if err != nil {
				return fmt.Errorf("failed to open run store: %w", err)
			}
			defer runStore.Close()

			records, err := runStore.ListRuns(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(records) == 0 {
				fmt.Println("No recorded runs.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tCREATED\tNAME\tPATHS\tYEARS\tSEED\tMEDIAN FINAL\tINSOLVENCY")
			for _, rec := range records {
				cur := money.CurrencyFor("")
				if rec.Scenario != nil {
					cur = money.CurrencyFor(rec.Scenario.Currency)
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\t%s\t%.1f%%\n",
					rec.ID,
					rec.CreatedAt.Format("2006-01-02 15:04"),
					rec.Name,
					rec.NumSimulations,
					rec.HorizonYears,
					rec.Seed,
					cur.Format(rec.Summary.MedianFinalNetWorth),
					rec.Summary.InsolvencyRate*100)
			}
			return w.Flush()
		},
	}

	cmd.Flags().String("store", "networth_runs.db", "SQLite file holding recorded runs")
	cmd.Flags().Int("limit", 20, "Maximum number of runs to list")
	return cmd
}
