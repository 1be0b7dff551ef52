package geochem

import (
	"strconv"
	"strings"
)

// CleanPolicy controls how a '-' in the raw value field is treated.
type CleanPolicy int

const (
	// DashDrop treats any '-' as an ungradeable artifact and removes the
	// whole record. This removes both genuine negatives like "-12" and
	// range-encoded values like "5-10".
	DashDrop CleanPolicy = iota
	// DashBelowDetection treats a '-' as a below-detection marker instead,
	// flagging the row BDL rather than deleting it.
	DashBelowDetection
)

// Clean classifies detection-limit markers and strips non-numeric characters
// from the raw value field. A '<' flags the row below detection limit (BDL=1)
// and a '>' flags it above the measurable range (BDL=2); '-' handling follows
// the policy. The flag is decided before any unit conversion runs.
//
// Row order of survivors follows input order. A value that is still not
// numeric after stripping aborts the batch with a MalformedValueError.
func Clean(recs []Record, policy CleanPolicy) ([]Record, error) {
	out := make([]Record, 0, len(recs))
	for i, rec := range recs {
		raw := strings.TrimSpace(rec.RawValue)
		rec.BDL = BDLNormal

		if strings.Contains(raw, "-") {
			if policy == DashDrop {
				continue
			}
			rec.BDL = BDLBelowLimit
		}
		if strings.Contains(raw, "<") {
			rec.BDL = BDLBelowLimit
		}
		if strings.Contains(raw, ">") {
			rec.BDL = BDLAboveRange
		}

		stripped := stripMarkers(raw)
		if stripped == "" {
			rec.RawValue = ""
			rec.Value = nan()
			out = append(out, rec)
			continue
		}
		v, err := strconv.ParseFloat(stripped, 64)
		if err != nil {
			return nil, &MalformedValueError{Row: i + 1, Value: raw}
		}
		rec.RawValue = stripped
		rec.Value = v
		out = append(out, rec)
	}
	return out, nil
}

var markerReplacer = strings.NewReplacer("<", "", ">", "", "-", "")

func stripMarkers(s string) string {
	return strings.TrimSpace(markerReplacer.Replace(s))
}
