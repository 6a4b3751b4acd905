package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lpforge/lpforge/internal/document"
)

var renderCmd = &cobra.Command{
	Use:   "render [document.json]",
	Short: "Render a document to HTML",
	Long: `Renders a configuration document to the final landing page HTML.
Without an output path the HTML goes to stdout. Embedded images stay
embedded; use export for a file bundle.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		doc, err := resolveDocument(cfg.Document, args)
		if err != nil {
			return err
		}

		renderer, err := newRenderer(cfg)
		if err != nil {
			return err
		}

		exportMode, _ := cmd.Flags().GetBool("export")
		html, err := renderer.Render(doc, exportMode)
		if err != nil {
			return err
		}

		out, _ := cmd.Flags().GetString("output")
		if out == "" {
			fmt.Print(html)
			return nil
		}
		if err := os.WriteFile(out, []byte(html), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", out, err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "Wrote %s\n", out)
		}
		return nil
	},
}

// resolveDocument picks the document to operate on: the positional
// argument first, then the configured default, then the bundled sample.
func resolveDocument(configured string, args []string) (*document.Document, error) {
	switch {
	case len(args) > 0:
		return document.LoadFile(args[0])
	case configured != "":
		return document.LoadFile(configured)
	default:
		return document.Default(), nil
	}
}

func init() {
	renderCmd.Flags().StringP("output", "o", "", "output HTML file (default stdout)")
	renderCmd.Flags().Bool("export", false, "render with the export flag set")
	rootCmd.AddCommand(renderCmd)
}
