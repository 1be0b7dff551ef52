package geochem

import (
	"bytes"
	_ "embed"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
)

// Default laboratory method-code reference table, shipped with the binary so
// method mapping works without any external data file.
//
//go:embed data/sarig_method_code_map.csv
var defaultMethodMapCSV []byte

// unknownCategory is assigned on any lookup miss: method metadata is
// best-effort and absence must never block the pipeline.
const unknownCategory = "unknown"

// MethodMap maps laboratory method codes to normalized determination,
// digestion and fusion categories. Loaded once, read-only afterwards.
type MethodMap struct {
	determination map[string]string
	digestion     map[string]string
	fusion        map[string]string
}

// LoadMethodMap reads a method-code reference table from path, or the
// embedded default table when path is empty. The table is CSV with columns
// CHEM_METHOD, DETERMINATION_CODE_RD, DIGESTION_CODE_RD, FUSION_TYPE.
func LoadMethodMap(path string) (*MethodMap, error) {
	var src io.Reader
	if path == "" {
		src = bytes.NewReader(defaultMethodMapCSV)
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open method map: %w", err)
		}
		defer f.Close()
		src = f
	}
	return parseMethodMap(src)
}

func parseMethodMap(src io.Reader) (*MethodMap, error) {
	r := csv.NewReader(src)
	r.TrimLeadingSpace = true
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse method map: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("parse method map: empty table")
	}
	idx := map[string]int{}
	for i, h := range rows[0] {
		idx[strings.TrimSpace(h)] = i
	}
	for _, col := range []string{"CHEM_METHOD", "DETERMINATION_CODE_RD", "DIGESTION_CODE_RD", "FUSION_TYPE"} {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("parse method map: missing column %s", col)
		}
	}
	m := &MethodMap{
		determination: map[string]string{},
		digestion:     map[string]string{},
		fusion:        map[string]string{},
	}
	for _, row := range rows[1:] {
		code := strings.TrimSpace(row[idx["CHEM_METHOD"]])
		if code == "" {
			continue
		}
		m.determination[code] = strings.TrimSpace(row[idx["DETERMINATION_CODE_RD"]])
		m.digestion[code] = strings.TrimSpace(row[idx["DIGESTION_CODE_RD"]])
		m.fusion[code] = strings.TrimSpace(row[idx["FUSION_TYPE"]])
	}
	return m, nil
}

// Len reports the number of mapped method codes.
func (m *MethodMap) Len() int { return len(m.determination) }

// Apply sets the determination, digestion and fusion categories on every
// record, defaulting to "unknown" when the method code has no mapping entry.
func (m *MethodMap) Apply(recs []Record, log *zap.Logger) []Record {
	misses := 0
	for i := range recs {
		code := recs[i].MethodCode
		recs[i].Determination = lookupOrUnknown(m.determination, code)
		recs[i].Digestion = lookupOrUnknown(m.digestion, code)
		recs[i].Fusion = lookupOrUnknown(m.fusion, code)
		if code != "" {
			if _, ok := m.determination[code]; !ok {
				misses++
			}
		}
	}
	if misses > 0 && log != nil {
		log.Debug("method codes without mapping entry", zap.Int("rows", misses))
	}
	return recs
}

func lookupOrUnknown(m map[string]string, code string) string {
	if v, ok := m[code]; ok && v != "" {
		return v
	}
	return unknownCategory
}
