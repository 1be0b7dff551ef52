package geochem

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
)

// Frame is an ordered-column table of string cells, used for wide-format
// output where the column set depends on the data. The first column is the
// join key (sample id) for frames produced by the pivoter.
type Frame struct {
	Columns []string
	Rows    [][]string
}

// WriteCSV writes the frame as plain CSV with a header row and no index
// column.
func (f *Frame) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(f.Columns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, row := range f.Rows {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// SortByKey sorts rows by the first column, numerically when both keys parse
// as numbers, lexicographically otherwise. Ordering is stable so overflow
// rows stay after their primary row for the same sample.
func (f *Frame) SortByKey() {
	sort.SliceStable(f.Rows, func(i, j int) bool {
		return keyLess(f.Rows[i][0], f.Rows[j][0])
	})
}

func keyLess(a, b string) bool {
	fa, errA := strconv.ParseFloat(a, 64)
	fb, errB := strconv.ParseFloat(b, 64)
	if errA == nil && errB == nil {
		if fa != fb {
			return fa < fb
		}
		return false
	}
	return a < b
}

// InnerJoin joins f (left) with other (right) on the first column of each,
// producing left columns followed by right columns minus the duplicated key.
// Right rows with no matching left key are dropped, and vice versa. The right
// frame may carry several rows per key (duplicate-overflow rows); each joins
// against the single left row.
func (f *Frame) InnerJoin(other *Frame) *Frame {
	left := make(map[string][]string, len(f.Rows))
	for _, row := range f.Rows {
		if _, ok := left[row[0]]; !ok {
			left[row[0]] = row
		}
	}
	cols := append(append([]string(nil), f.Columns...), other.Columns[1:]...)
	out := &Frame{Columns: cols}
	for _, row := range other.Rows {
		l, ok := left[row[0]]
		if !ok {
			continue
		}
		joined := make([]string, 0, len(cols))
		joined = append(joined, l...)
		joined = append(joined, row[1:]...)
		out.Rows = append(out.Rows, joined)
	}
	return out
}

// Derived-column headers appended to the processed single-element dataset.
const (
	colBDL           = "BDL"
	colConvertedPPM  = "converted_ppm"
	colDetermination = "DETERMINATION"
	colDigestion     = "DIGESTION"
	colFusion        = "FUSION"
	colNormalised    = "Normalised_crustal_abund_ppm"
	colMedianDepth   = "median_depth"
	colBin           = "bin"
)

// DatasetFrame renders a processed long-format dataset with its derived
// columns for export, using the schema's physical header names for the raw
// fields.
func DatasetFrame(recs []Record, schema Schema) *Frame {
	cols := append(schema.columns(), colBDL, colConvertedPPM, colDetermination, colDigestion, colFusion)
	hasNorm := false
	hasBins := false
	for _, rec := range recs {
		if !isMissing(rec.NormalisedCrustal) {
			hasNorm = true
		}
		if rec.Bin != "" {
			hasBins = true
		}
	}
	if hasNorm {
		cols = append(cols, colNormalised)
	}
	if hasBins {
		cols = append(cols, colMedianDepth, colBin)
	}

	out := &Frame{Columns: cols}
	for _, rec := range recs {
		row := []string{
			rec.SampleNo, rec.SampleSource, rec.Drillhole,
			formatFloat(rec.DepthFrom), formatFloat(rec.DepthTo),
			rec.AnalysisNo, rec.AnalysisType, rec.Laboratory,
			rec.Element, valueCell(rec), rec.Unit, rec.MethodCode,
			formatFloat(rec.Longitude), formatFloat(rec.Latitude),
			strconv.Itoa(rec.BDL), formatFloat(rec.ConvertedPPM),
			rec.Determination, rec.Digestion, rec.Fusion,
		}
		if hasNorm {
			row = append(row, formatFloat(rec.NormalisedCrustal))
		}
		if hasBins {
			row = append(row, formatFloat(rec.MedianDepth), rec.Bin)
		}
		out.Rows = append(out.Rows, row)
	}
	return out
}

// valueCell prefers the parsed numeric value once cleaning has run, so that
// exported values are guaranteed marker-free.
func valueCell(rec Record) string {
	if !isMissing(rec.Value) {
		return formatFloat(rec.Value)
	}
	return rec.RawValue
}

// MetadataFrame builds the per-sample metadata table joined back onto wide
// pivot output: one row per unique sample id, first occurrence wins, carrying
// the sample-level columns (source, drillhole, depths, coordinates) and
// dropping the per-analysis ones.
func MetadataFrame(recs []Record, schema Schema) *Frame {
	out := &Frame{Columns: []string{
		schema.SampleNo, schema.SampleSource, schema.Drillhole,
		schema.DepthFrom, schema.DepthTo, schema.Longitude, schema.Latitude,
	}}
	seen := map[string]struct{}{}
	for _, rec := range recs {
		if _, ok := seen[rec.SampleNo]; ok {
			continue
		}
		seen[rec.SampleNo] = struct{}{}
		out.Rows = append(out.Rows, []string{
			rec.SampleNo, rec.SampleSource, rec.Drillhole,
			formatFloat(rec.DepthFrom), formatFloat(rec.DepthTo),
			formatFloat(rec.Longitude), formatFloat(rec.Latitude),
		})
	}
	return out
}
