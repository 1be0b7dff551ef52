package geochem

// NormaliseCrustalAbundance divides every converted_ppm value by the average
// crustal abundance of the element, expressing concentrations as multiples of
// their typical crustal occurrence. The element must be an elemental code,
// not an oxide. A missing reference value returns an AbundanceLookupError:
// there is no defensible default divisor.
func NormaliseCrustalAbundance(recs []Record, element string, abundances map[string]float64) ([]Record, error) {
	norm, ok := abundances[element]
	if !ok || norm == 0 {
		return nil, &AbundanceLookupError{Element: element}
	}
	for i := range recs {
		if isMissing(recs[i].ConvertedPPM) {
			continue
		}
		recs[i].NormalisedCrustal = recs[i].ConvertedPPM / norm
	}
	return recs, nil
}
