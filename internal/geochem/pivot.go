package geochem

import (
	"go.uber.org/zap"
)

// Pivoter reshapes long-format tables (one row per sample and analyte) into
// wide format (one row per sample, one column group per analyte).
type Pivoter struct {
	log *zap.Logger
}

// NewPivoter returns a pivoter that reports duplicate degradation through log.
func NewPivoter(log *zap.Logger) *Pivoter {
	if log == nil {
		log = zap.NewNop()
	}
	return &Pivoter{log: log}
}

// PivotOptions controls the value pivot.
type PivotOptions struct {
	// IncludeUnits interleaves an {element}_UNIT column immediately after
	// each element's value column.
	IncludeUnits bool
}

// spread is one per-element output column: its header suffix and the record
// field it spreads.
type spread struct {
	suffix string
	get    func(Record) string
}

// LongToWide pivots the value (and optionally unit) columns per analyte.
//
// Duplicate handling: the first occurrence of each (sample, element) pair
// wins the primary pivot. Second occurrences are pivoted independently and
// appended as extra sparse rows for the same sample id, so duplicate analyte
// readings stay visible in the output. Third and later occurrences are
// dropped with a logged warning rather than aborting the export. The final
// frame is sorted by sample id.
func (p *Pivoter) LongToWide(recs []Record, schema Schema, opt PivotOptions) *Frame {
	spreads := []spread{{suffix: "", get: valueCell}}
	if opt.IncludeUnits {
		spreads = append(spreads, spread{suffix: "_UNIT", get: func(r Record) string { return r.Unit }})
	}
	return p.pivot(recs, schema.SampleNo, spreads)
}

// MethodsWide pivots the four method-metadata columns per analyte, producing
// the parallel methods table for a wide export. Requires method mapping to
// have been applied.
func (p *Pivoter) MethodsWide(recs []Record, schema Schema) *Frame {
	spreads := []spread{
		{suffix: "_METHOD_CODE", get: func(r Record) string { return r.MethodCode }},
		{suffix: "_DETERMINATION", get: func(r Record) string { return r.Determination }},
		{suffix: "_DIGESTION", get: func(r Record) string { return r.Digestion }},
		{suffix: "_FUSION", get: func(r Record) string { return r.Fusion }},
	}
	return p.pivot(recs, schema.SampleNo, spreads)
}

type pivotKey struct {
	sample  string
	element string
}

// pivot is the shared core: partition into primary and overflow sets, pivot
// each with identical column ordering, concatenate and sort.
func (p *Pivoter) pivot(recs []Record, sampleColumn string, spreads []spread) *Frame {
	var primary, overflow []Record
	counts := make(map[pivotKey]int, len(recs))
	dropped := 0
	for _, rec := range recs {
		k := pivotKey{sample: rec.SampleNo, element: rec.Element}
		counts[k]++
		switch counts[k] {
		case 1:
			primary = append(primary, rec)
		case 2:
			overflow = append(overflow, rec)
		default:
			dropped++
		}
	}
	if dropped > 0 {
		p.log.Warn("duplicate overflow: more than two rows share a (sample, element) pair; dropping the excess",
			zap.Int("rows_dropped", dropped))
	}

	// Column order follows first appearance of each element in the input.
	var elements []string
	seen := map[string]struct{}{}
	for _, rec := range primary {
		if _, ok := seen[rec.Element]; !ok {
			seen[rec.Element] = struct{}{}
			elements = append(elements, rec.Element)
		}
	}

	out := pivotOnce(primary, sampleColumn, elements, spreads)
	if len(overflow) > 0 {
		extra := pivotOnce(overflow, sampleColumn, elements, spreads)
		out.Rows = append(out.Rows, extra.Rows...)
	}
	out.SortByKey()
	return out
}

// pivotOnce spreads a duplicate-free record set into one wide frame. Columns
// interleave the spread headers per element: El1, El1_UNIT, El2, El2_UNIT...
func pivotOnce(recs []Record, sampleColumn string, elements []string, spreads []spread) *Frame {
	type colKey struct{ element, suffix string }
	colIdx := make(map[colKey]int, len(elements)*len(spreads))
	cols := []string{sampleColumn}
	for _, el := range elements {
		for _, sp := range spreads {
			colIdx[colKey{element: el, suffix: sp.suffix}] = len(cols)
			cols = append(cols, el+sp.suffix)
		}
	}

	rowIdx := map[string]int{}
	out := &Frame{Columns: cols}
	for _, rec := range recs {
		ri, ok := rowIdx[rec.SampleNo]
		if !ok {
			row := make([]string, len(cols))
			row[0] = rec.SampleNo
			out.Rows = append(out.Rows, row)
			ri = len(out.Rows) - 1
			rowIdx[rec.SampleNo] = ri
		}
		// the element list is seeded from first occurrences, so every
		// overflow element already has a column
		for _, sp := range spreads {
			out.Rows[ri][colIdx[colKey{element: rec.Element, suffix: sp.suffix}]] = sp.get(rec)
		}
	}
	return out
}

// Melt converts a wide frame produced by LongToWide back into (sample,
// element, value) triples, skipping empty cells. Unit columns are folded onto
// their preceding value column when present.
func Melt(f *Frame) []Record {
	var out []Record
	for _, row := range f.Rows {
		last := -1
		for ci := 1; ci < len(f.Columns); ci++ {
			name := f.Columns[ci]
			if len(name) > 5 && name[len(name)-5:] == "_UNIT" {
				if last >= 0 && row[ci] != "" {
					out[last].Unit = row[ci]
				}
				last = -1
				continue
			}
			if row[ci] == "" {
				last = -1
				continue
			}
			out = append(out, Record{
				SampleNo: row[0],
				Element:  name,
				RawValue: row[ci],
				Value:    parseFloatOrNaN(row[ci]),
			})
			last = len(out) - 1
		}
	}
	return out
}
