package geochem

import (
	"math"
	"strconv"
)

// BDL flag values. The flag is set once during cleaning and only the
// below-detection sentinel substitution is allowed to act on it afterwards.
const (
	BDLNormal     = 0
	BDLBelowLimit = 1
	BDLAboveRange = 2
)

// Record is one row of a long-format assay table: a single measurement of one
// analyte on one sample. Missing numeric fields are NaN; missing string fields
// are empty.
type Record struct {
	SampleNo     string
	SampleSource string
	Drillhole    string // empty when the sample did not come from a drillhole
	DepthFrom    float64
	DepthTo      float64
	AnalysisNo   string
	AnalysisType string
	Laboratory   string
	Element      string
	RawValue     string // value field exactly as read, may carry <, > or - markers
	Unit         string
	MethodCode   string
	Longitude    float64
	Latitude     float64

	// Derived fields, populated by pipeline stages in order. The numeric ones
	// are NaN until their stage has run.
	Value             float64 // numeric value, set by Clean
	BDL               int
	ConvertedPPM      float64 // set by ConvertPPM, overwritten by SubstituteBDL
	Determination     string
	Digestion         string
	Fusion            string
	NormalisedCrustal float64

	// Set by interval aggregation only.
	MedianDepth float64
	Bin         string
}

// MissingConvertedPPM reports whether the ppm conversion has not produced a
// value for this record.
func (r Record) MissingConvertedPPM() bool { return math.IsNaN(r.ConvertedPPM) }

// nan is the missing-value marker for numeric fields.
func nan() float64 { return math.NaN() }

func isMissing(v float64) bool { return math.IsNaN(v) }

// parseFloatOrNaN parses a numeric cell, returning NaN for empty or
// unparsable input. Raw loading is tolerant; strictness belongs to Clean.
func parseFloatOrNaN(s string) float64 {
	if s == "" {
		return nan()
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nan()
	}
	return f
}

// formatFloat renders a numeric cell for CSV output, with empty string for
// missing values.
func formatFloat(v float64) string {
	if isMissing(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}
