package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nwgo/networth-simulator/internal/server"
	"github.com/nwgo/networth-simulator/internal/store"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the simulator over HTTP",
		Long: `Serve exposes the engine as a JSON API:

  POST /api/v1/simulate      run a scenario (JSON body), get summary + bands
  GET  /api/v1/runs          list persisted runs
  GET  /api/v1/runs/{id}     fetch one persisted run
  GET  /healthz              liveness check

Settings come from NWSIM_* environment variables; flags override them.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := server.LoadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.Addr, _ = cmd.Flags().GetString("addr")
			}
			if cmd.Flags().Changed("store") {
				cfg.StorePath, _ = cmd.Flags().GetString("store")
			}

			var runs store.RunStore
			if cfg.StorePath != "" {
				s, err := store.Open(cfg.StorePath)
				if err != nil {
					return fmt.Errorf("failed to open run store: %w", err)
				}
				defer s.Close()
				runs = s
			}

			srv := server.New(cfg, runs, loggerFromFlags(cmd))
			return srv.ListenAndServe()
		},
	}

	cmd.Flags().String("addr", "", "Listen address (overrides NWSIM_ADDR)")
	cmd.Flags().String("store", "", "SQLite run store path (overrides NWSIM_STORE_PATH; empty disables persistence)")
	return cmd
}
