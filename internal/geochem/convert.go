package geochem

// Gravimetric oxide-to-element conversion factors (molar-mass ratios).
var oxideFactors = map[string]float64{
	"Fe2O3": 1.4297,
	"FeO":   1.2865,
	"U3O8":  1.1792,
	"CoO":   1.2715,
	"NiO":   1.2725,
}

// OxideFactor returns the gravimetric conversion factor for a recognized
// oxide code, or 1 when the code is not an oxide.
func OxideFactor(element string) float64 {
	if f, ok := oxideFactors[element]; ok {
		return f
	}
	return 1
}

// ConvertOxides divides the cleaned values of a single-element dataset by the
// oxide conversion factor, expressing oxide assays on an element basis. Codes
// outside the recognized oxide set pass through unchanged.
func ConvertOxides(recs []Record, element string) []Record {
	factor, ok := oxideFactors[element]
	if !ok {
		return recs
	}
	for i := range recs {
		if !isMissing(recs[i].Value) {
			recs[i].Value /= factor
		}
	}
	return recs
}

// ConvertOptions tunes unit conversion and BDL sentinel substitution.
type ConvertOptions struct {
	// ConvertWeightPercent scales '%' rows by 10000 into ppm. On by default
	// in DefaultConvertOptions.
	ConvertWeightPercent bool
	// LegacyAuAgSentinel applies the small ppb sentinel to gold and silver
	// regardless of the reported unit, matching historic precious-metal
	// handling.
	LegacyAuAgSentinel bool
}

// DefaultConvertOptions returns the standard conversion behavior.
func DefaultConvertOptions() ConvertOptions {
	return ConvertOptions{ConvertWeightPercent: true}
}

// ConvertPPM populates the converted_ppm field on a common ppm basis: '%'
// rows are multiplied by 10000 (when enabled), 'ppb' rows divided by 10000,
// and every other unit is assumed already ppm-equivalent.
func ConvertPPM(recs []Record, opt ConvertOptions) []Record {
	for i := range recs {
		v := recs[i].Value
		switch recs[i].Unit {
		case "%":
			if opt.ConvertWeightPercent && !isMissing(v) {
				v *= 10000
			}
		case "ppb":
			if !isMissing(v) {
				v /= 10000
			}
		}
		recs[i].ConvertedPPM = v
	}
	return recs
}

// Below-detection sentinels. Below-detection rows are forced to a fixed low
// non-zero value so they survive max and log-scale computations while staying
// distinguishably small.
const (
	bdlSentinelPPM = 0.001
	bdlSentinelPPB = 0.00001
)

// SubstituteBDL overwrites converted_ppm on below-detection rows with the
// sentinel: 0.00001 for ppb-reported rows (or Au/Ag in legacy mode), 0.001
// otherwise. Above-range rows (BDL=2) are left alone: their value stands as a
// valid lower bound on the unmeasurable true value.
func SubstituteBDL(recs []Record, opt ConvertOptions) []Record {
	for i := range recs {
		if recs[i].BDL != BDLBelowLimit {
			continue
		}
		sentinel := bdlSentinelPPM
		if recs[i].Unit == "ppb" {
			sentinel = bdlSentinelPPB
		} else if opt.LegacyAuAgSentinel && (recs[i].Element == "Au" || recs[i].Element == "Ag") {
			sentinel = bdlSentinelPPB
		}
		recs[i].ConvertedPPM = sentinel
	}
	return recs
}
