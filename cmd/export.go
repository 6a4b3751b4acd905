package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lpforge/lpforge/internal/export"
	"github.com/lpforge/lpforge/internal/progress"
)

var exportCmd = &cobra.Command{
	Use:   "export [document.json]",
	Short: "Export a document as a self-contained HTML/ZIP bundle",
	Long: `Packages a configuration document into a ZIP archive holding
index.html plus one file per embedded image under images/. With --all,
every document matching the configured globs is exported; the
mass-production path.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		renderer, err := newRenderer(cfg)
		if err != nil {
			return err
		}

		if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
			return fmt.Errorf("creating output dir: %w", err)
		}

		all, _ := cmd.Flags().GetBool("all")
		if all {
			paths, err := export.FindDocuments(".", cfg.Documents, cfg.Exclude)
			if err != nil {
				return err
			}
			if len(paths) == 0 {
				return fmt.Errorf("no documents matched %v", cfg.Documents)
			}

			results := export.Batch(paths, cfg.OutputDir, renderer, progress.NewReporter())
			failed := 0
			for _, res := range results {
				if res.Err != nil {
					failed++
					fmt.Fprintf(os.Stderr, "Error: %s: %v\n", res.Source, res.Err)
				} else if verbose {
					fmt.Fprintf(os.Stderr, "%s -> %s\n", res.Source, res.Archive)
				}
			}
			fmt.Fprintf(os.Stderr, "Exported %d/%d pages to %s\n", len(results)-failed, len(results), cfg.OutputDir)
			if failed > 0 {
				return fmt.Errorf("%d documents failed to export", failed)
			}
			return nil
		}

		doc, err := resolveDocument(cfg.Document, args)
		if err != nil {
			return err
		}

		data, err := export.Package(doc, renderer)
		if err != nil {
			return err
		}

		out, _ := cmd.Flags().GetString("output")
		if out == "" {
			stem := "lp_export"
			if len(args) > 0 {
				stem = strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
			}
			out = filepath.Join(cfg.OutputDir, stem+".zip")
		}
		if err := os.WriteFile(out, data, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", out, err)
		}
		fmt.Fprintf(os.Stderr, "Exported %s\n", out)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringP("output", "o", "", "output archive path")
	exportCmd.Flags().Bool("all", false, "export every document matching the configured globs")
	rootCmd.AddCommand(exportCmd)
}
