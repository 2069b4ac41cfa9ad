package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newHealthCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check that the LevelUp API is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			client := newAPIClient(cfg)
			defer func() {
				_ = client.Close()
			}()

			health, err := client.Health(cmd.Context())
			if err != nil {
				return fmt.Errorf("client.Health() > %w", err)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s %s: %s (%s)\n", health.App, health.Version, health.Status, cfg.API.BaseURL)
			return err
		},
	}
}
