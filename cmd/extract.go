package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/geoscience-tools/geochemtools/internal/export"
	"github.com/geoscience-tools/geochemtools/internal/geochem"
)

var (
	extractElements []string
	extractDHOnly   bool
	extractDashBDL  bool
	extractNoWtPerc bool
	extractLegacy   bool
	extractOutPath  string
)

var extractCmd = &cobra.Command{
	Use:   "extract-element <file>",
	Short: "Extract cleaned single-element dataset(s)",
	Long: `Extract one processed dataset per requested element from the raw
long-format export. Each dataset is cleaned (detection-limit markers flagged
and stripped), converted from oxide to element basis where applicable,
converted to ppm, and annotated with normalized method categories. Output is
written as {element}_processed.csv.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(extractElements) == 0 {
			return fmt.Errorf("at least one --element is required")
		}
		opt := geochem.ElementDatasetOptions{
			DHOnly:    extractDHOnly,
			DashAsBDL: extractDashBDL,
			Convert: geochem.ConvertOptions{
				ConvertWeightPercent: !extractNoWtPerc,
				LegacyAuAgSentinel:   extractLegacy,
			},
		}
		if cfg != nil {
			opt.MethodMapPath = cfg.MethodMapPath
		}
		schema := cfg.Schema()

		manifest := export.NewManifest()
		for _, element := range extractElements {
			recs, err := geochem.MakeElementDataset(args[0], element, schema, opt, logger)
			if err != nil {
				return err
			}
			frame := geochem.DatasetFrame(recs, schema)
			path, err := export.WriteCSV(frame, extractOutPath, element+"_processed")
			if err != nil {
				return err
			}
			manifest.Add(path, len(frame.Rows))
			fmt.Printf("✓ Wrote %s (%d rows)\n", path, len(frame.Rows))
		}
		return manifest.Write(extractOutPath)
	},
}

func init() {
	rootCmd.AddCommand(extractCmd)
	extractCmd.Flags().StringSliceVarP(&extractElements, "element", "e", nil, "element to extract (repeatable)")
	extractCmd.Flags().BoolVar(&extractDHOnly, "dh-only", false, "filter to drillhole samples only")
	extractCmd.Flags().BoolVar(&extractDashBDL, "dash-bdl", false, "treat '-' as a below-detection marker instead of dropping the row")
	extractCmd.Flags().BoolVar(&extractNoWtPerc, "no-wtperc", false, "do not scale '%' values to ppm")
	extractCmd.Flags().BoolVar(&extractLegacy, "legacy-auag", false, "use the small ppb sentinel for Au/Ag below-detection rows")
	extractCmd.Flags().StringVarP(&extractOutPath, "out-path", "o", "", "directory for output files (defaults to the working directory)")
}
