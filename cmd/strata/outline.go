package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/colmreid/strata"
	"github.com/colmreid/strata/extract"
	"github.com/colmreid/strata/internal/config"
	"github.com/colmreid/strata/ocr"
	"github.com/colmreid/strata/schema"
)

var outlineOutput string

var outlineCmd = &cobra.Command{
	Use:   "outline <document.pdf>",
	Short: "Derive one document's outline",
	Long: `Outline extracts a single document's outline and writes it as JSON to
stdout, or to a file with --output.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, err := config.NewManager(cfgFile)
		if err != nil {
			return err
		}
		cfg := mgr.Get()

		chain := strata.Open(args[0]).WithPipelineConfig(cfg.ToPipelineConfig())
		if cfg.OCR.Enabled {
			client, err := ocr.New()
			if err != nil {
				return fmt.Errorf("ocr: %w", err)
			}
			defer client.Close()
			if err := client.SetLanguage(cfg.OCR.Language); err != nil {
				return fmt.Errorf("ocr language: %w", err)
			}
			renderer := extract.NewPdftoppmRenderer(args[0])
			if !renderer.Available() {
				return fmt.Errorf("ocr enabled but pdftoppm not found in PATH")
			}
			chain = chain.WithOCR(client, renderer)
		}

		out, err := chain.Outline()
		if err != nil {
			return err
		}

		if outlineOutput != "" {
			return schema.WriteFile(outlineOutput, out)
		}
		data, err := schema.Marshal(out)
		if err != nil {
			return err
		}
		fmt.Fprintln(os.Stdout, string(data))
		return nil
	},
}

func init() {
	outlineCmd.Flags().StringVarP(
		&outlineOutput, "output", "o", "", "write the outline to a file instead of stdout",
	)
}
