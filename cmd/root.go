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
	Use:   "lpforge",
	Short: "No-code landing page builder with live preview and export",
	Long: `lpforge turns a structured JSON document into a finished landing
page. Edit copy, colors, shop cards and comparison tables through the
local editor backend with live HTML preview, then export the page as a
self-contained HTML/ZIP bundle, one page or a whole batch.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", ".lpforge.yml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

func exitOnError(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
