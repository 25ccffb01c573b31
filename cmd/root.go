package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "govlens",
	Short: "Browse, question, and fact-check government policy documents",
	Long: `govlens is a client for the policy document portal. It renders bills
and reports in plain language, answers questions about them through the
portal's retrieval backend, and verifies claims and URLs against the
official document index. When the backend is unreachable every operation
degrades to bundled demo data, so the tool stays usable offline.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", ".govlens.yml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

func exitOnError(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
