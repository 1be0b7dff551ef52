package geochem

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// Loader streams the raw long-format export CSV and materializes only the
// rows that survive filtering. The raw export can run to millions of rows, so
// every operation is a single forward scan with bounded memory; nothing is
// kept between scans.
type Loader struct {
	path   string
	schema Schema
	log    *zap.Logger
}

// NewLoader validates the input path and returns a loader bound to the given
// column schema.
func NewLoader(path string, schema Schema, log *zap.Logger) (*Loader, error) {
	if log == nil {
		log = zap.NewNop()
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, &InvalidInputError{Path: path, Reason: "file not found", Err: err}
	}
	if info.IsDir() {
		return nil, &InvalidInputError{Path: path, Reason: "path is a directory"}
	}
	if strings.ToLower(filepath.Ext(path)) != ".csv" {
		return nil, &InvalidInputError{Path: path, Reason: "not a .csv file"}
	}
	return &Loader{path: path, schema: schema, log: log}, nil
}

// Filter selects rows from the raw export. Zero-valued fields mean "no
// constraint". DrillholesOnly keeps only rows carrying a drillhole id;
// Drillholes restricts to an explicit id list.
type Filter struct {
	Elements       []string
	SampleTypes    []string
	Drillholes     []string
	DrillholesOnly bool
}

// scan walks every data row, handing the header index and raw fields to fn.
// fn returns false to stop early.
func (l *Loader) scan(fn func(idx map[string]int, rec []string) bool) error {
	f, err := os.Open(l.path)
	if err != nil {
		return &InvalidInputError{Path: l.path, Reason: "open failed", Err: err}
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.ReuseRecord = true
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return &InvalidInputError{Path: l.path, Reason: "read header", Err: err}
	}
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.TrimSpace(h)] = i
	}

	row := 0
	for {
		rec, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return &InvalidInputError{Path: l.path, Reason: fmt.Sprintf("read row %d", row+1), Err: err}
		}
		row++
		if !fn(idx, rec) {
			return nil
		}
	}
}

// Columns returns the header names of the input file in file order. The header
// is read verbatim, so repeated names (which messy lab exports do carry) come
// back repeated rather than collapsed.
func (l *Loader) Columns() ([]string, error) {
	f, err := os.Open(l.path)
	if err != nil {
		return nil, &InvalidInputError{Path: l.path, Reason: "open failed", Err: err}
	}
	defer f.Close()
	r := csv.NewReader(f)
	r.TrimLeadingSpace = true
	header, err := r.Read()
	if err != nil {
		return nil, &InvalidInputError{Path: l.path, Reason: "read header", Err: err}
	}
	cols := make([]string, len(header))
	for i, h := range header {
		cols[i] = strings.TrimSpace(h)
	}
	return cols, nil
}

// SampleTypes returns the distinct sample source codes in the dataset, sorted.
func (l *Loader) SampleTypes() ([]string, error) {
	return l.distinct(l.schema.SampleSource)
}

// Elements returns the distinct analyte codes in the dataset, sorted.
func (l *Loader) Elements() ([]string, error) {
	return l.distinct(l.schema.Element)
}

func (l *Loader) distinct(column string) ([]string, error) {
	seen := map[string]struct{}{}
	err := l.scan(func(idx map[string]int, rec []string) bool {
		if v := cell(idx, rec, column); v != "" {
			seen[v] = struct{}{}
		}
		return true
	})
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(seen))
	for v := range seen {
		out = append(out, v)
	}
	sort.Strings(out)
	return out, nil
}

// FilterElement materializes the single-element dataset used by the cleaning
// pipeline. Rows with unit "cps" are dropped here: counts-per-second is an
// uncalibrated instrument unit with no meaningful ppm conversion.
func (l *Loader) FilterElement(element string, dhOnly bool) ([]Record, error) {
	recs, err := l.Load(Filter{Elements: []string{element}, DrillholesOnly: dhOnly})
	if err != nil {
		return nil, err
	}
	out := recs[:0]
	dropped := 0
	for _, rec := range recs {
		if rec.Unit == "cps" {
			dropped++
			continue
		}
		out = append(out, rec)
	}
	if dropped > 0 {
		l.log.Debug("dropped uncalibrated cps rows",
			zap.String("element", element), zap.Int("rows", dropped))
	}
	return out, nil
}

// Load materializes every row passing the filter as a Record.
func (l *Loader) Load(f Filter) ([]Record, error) {
	elements := toSet(f.Elements)
	sampleTypes := toSet(f.SampleTypes)
	drillholes := toSet(f.Drillholes)

	var out []Record
	err := l.scan(func(idx map[string]int, rec []string) bool {
		dh := cell(idx, rec, l.schema.Drillhole)
		if f.DrillholesOnly && dh == "" {
			return true
		}
		if drillholes != nil {
			if _, ok := drillholes[dh]; !ok {
				return true
			}
		}
		if sampleTypes != nil {
			if _, ok := sampleTypes[cell(idx, rec, l.schema.SampleSource)]; !ok {
				return true
			}
		}
		if elements != nil {
			if _, ok := elements[cell(idx, rec, l.schema.Element)]; !ok {
				return true
			}
		}
		out = append(out, l.record(idx, rec))
		return true
	})
	if err != nil {
		return nil, err
	}
	l.log.Debug("dataset loaded", zap.String("path", l.path), zap.Int("rows", len(out)))
	return out, nil
}

func (l *Loader) record(idx map[string]int, rec []string) Record {
	s := l.schema
	r := Record{
		SampleNo:          cell(idx, rec, s.SampleNo),
		SampleSource:      cell(idx, rec, s.SampleSource),
		Drillhole:         cell(idx, rec, s.Drillhole),
		DepthFrom:         parseFloatOrNaN(cell(idx, rec, s.DepthFrom)),
		DepthTo:           parseFloatOrNaN(cell(idx, rec, s.DepthTo)),
		AnalysisNo:        cell(idx, rec, s.AnalysisNo),
		AnalysisType:      cell(idx, rec, s.AnalysisType),
		Laboratory:        cell(idx, rec, s.Laboratory),
		Element:           cell(idx, rec, s.Element),
		RawValue:          cell(idx, rec, s.Value),
		Unit:              cell(idx, rec, s.Units),
		MethodCode:        cell(idx, rec, s.MethodCode),
		Longitude:         parseFloatOrNaN(cell(idx, rec, s.Longitude)),
		Latitude:          parseFloatOrNaN(cell(idx, rec, s.Latitude)),
		Value:             nan(),
		ConvertedPPM:      nan(),
		NormalisedCrustal: nan(),
		MedianDepth:       nan(),
	}
	// Processed exports carry derived columns; round-tripping them back in
	// preserves the BDL flag and sentinel substitution.
	if _, ok := idx[colConvertedPPM]; ok {
		r.ConvertedPPM = parseFloatOrNaN(cell(idx, rec, colConvertedPPM))
	}
	if v := cell(idx, rec, colBDL); v != "" {
		if bdl, err := strconv.Atoi(v); err == nil {
			r.BDL = bdl
		}
	}
	if v := cell(idx, rec, colDetermination); v != "" {
		r.Determination = v
	}
	if v := cell(idx, rec, colDigestion); v != "" {
		r.Digestion = v
	}
	if v := cell(idx, rec, colFusion); v != "" {
		r.Fusion = v
	}
	return r
}

func cell(idx map[string]int, rec []string, column string) string {
	i, ok := idx[column]
	if !ok || i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}

func toSet(vals []string) map[string]struct{} {
	if len(vals) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(vals))
	for _, v := range vals {
		set[v] = struct{}{}
	}
	return set
}
