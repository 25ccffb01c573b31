package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check whether the portal backend is reachable",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		env, err := newPortalEnv(ctx)
		if err != nil {
			return err
		}
		defer env.close()

		if err := env.client.Health(ctx); err != nil {
			fmt.Printf("Backend %s is unreachable; govlens will run on bundled demo data.\n", env.cfg.APIBaseURL)
			if verbose {
				fmt.Printf("  %v\n", err)
			}
			return nil
		}
		fmt.Printf("Backend %s is healthy.\n", env.cfg.APIBaseURL)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
