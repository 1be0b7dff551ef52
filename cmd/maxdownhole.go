package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/geoscience-tools/geochemtools/internal/export"
	"github.com/geoscience-tools/geochemtools/internal/geochem"
)

var (
	maxElement  string
	maxInterval int
	maxOutPath  string
)

var maxDownholeCmd = &cobra.Command{
	Use:   "max-downhole <processed-file>",
	Short: "Aggregate maximum down-hole values per drillhole",
	Long: `Compute, for each drillhole in a processed single-element dataset,
the row holding the maximum converted ppm value, and normalise it against the
element's average crustal abundance. With --interval the maximum is taken per
depth interval of the given width in metres instead of per whole hole.

The result is the tabular input consumed by external map plotting; it is
written as Max_downhole_{element}.csv (or Max_downhole_intervals_{element}.csv).`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if maxElement == "" {
			return fmt.Errorf("--element is required (the elemental code, not an oxide, e.g. Fe for Fe2O3 data)")
		}
		schema := cfg.Schema()
		loader, err := geochem.NewLoader(args[0], schema, logger)
		if err != nil {
			return err
		}
		recs, err := loader.Load(geochem.Filter{})
		if err != nil {
			return err
		}
		recs, err = rehydrateProcessed(recs)
		if err != nil {
			return err
		}

		label := "Max_downhole_" + maxElement
		if maxInterval > 0 {
			recs, err = geochem.MaxDownholeInterval(recs, maxInterval)
			if err != nil {
				return err
			}
			label = "Max_downhole_intervals_" + maxElement
		} else {
			recs = geochem.MaxDownhole(recs)
		}

		recs, err = geochem.NormaliseCrustalAbundance(recs, maxElement, cfg.Abundances())
		if err != nil {
			return err
		}

		frame := geochem.DatasetFrame(recs, schema)
		path, err := export.WriteCSV(frame, maxOutPath, label)
		if err != nil {
			return err
		}
		fmt.Printf("✓ Wrote %s (%d rows)\n", path, len(frame.Rows))
		manifest := export.NewManifest()
		manifest.Add(path, len(frame.Rows))
		return manifest.Write(maxOutPath)
	},
}

// rehydrateProcessed rebuilds the converted ppm column when the input lacks
// it. Processed exports round-trip their derived columns through the loader,
// so this only runs for inputs that skipped extraction.
func rehydrateProcessed(recs []geochem.Record) ([]geochem.Record, error) {
	for _, rec := range recs {
		if !rec.MissingConvertedPPM() {
			return recs, nil
		}
	}
	recs, err := geochem.Clean(recs, geochem.DashBelowDetection)
	if err != nil {
		return nil, err
	}
	recs = geochem.ConvertPPM(recs, geochem.DefaultConvertOptions())
	return geochem.SubstituteBDL(recs, geochem.DefaultConvertOptions()), nil
}

func init() {
	rootCmd.AddCommand(maxDownholeCmd)
	maxDownholeCmd.Flags().StringVarP(&maxElement, "element", "e", "", "elemental code to normalise against (required)")
	maxDownholeCmd.Flags().IntVarP(&maxInterval, "interval", "i", 0, "depth interval width in whole metres (0 = whole hole)")
	maxDownholeCmd.Flags().StringVarP(&maxOutPath, "out-path", "o", "", "directory for output files (defaults to the working directory)")
}
