package geochem

import (
	"fmt"
	"math"
	"sort"
)

// MaxDownhole selects, for each drillhole, the record holding the maximum
// converted_ppm value. Ties keep the first maximal row in input order.
// Records without a drillhole id or without a converted value cannot compete
// and are skipped; drillholes whose rows are all skipped produce no output.
// The result is sorted by drillhole id.
func MaxDownhole(recs []Record) []Record {
	best := map[string]Record{}
	var order []string
	for _, rec := range recs {
		if rec.Drillhole == "" || isMissing(rec.ConvertedPPM) {
			continue
		}
		cur, ok := best[rec.Drillhole]
		if !ok {
			best[rec.Drillhole] = rec
			order = append(order, rec.Drillhole)
			continue
		}
		if rec.ConvertedPPM > cur.ConvertedPPM {
			best[rec.Drillhole] = rec
		}
	}
	sort.Slice(order, func(i, j int) bool { return keyLess(order[i], order[j]) })
	out := make([]Record, 0, len(order))
	for _, dh := range order {
		out = append(out, best[dh])
	}
	return out
}

// MaxDownholeInterval selects the maximum converted_ppm record per drillhole
// and depth bin. Each record's median depth is the midpoint of its from/to
// depths (the present one alone when the other is missing); records with
// neither depth cannot be binned and are dropped. Bins are half-open
// [k·w, (k+1)·w) intervals of width interval metres covering 0 up to the
// maximum observed median depth. The result is sorted by drillhole id then
// bin start.
func MaxDownholeInterval(recs []Record, interval int) ([]Record, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("interval must be a positive number of metres, got %d", interval)
	}

	maxDepth := math.Inf(-1)
	binned := make([]Record, 0, len(recs))
	for _, rec := range recs {
		rec.MedianDepth = medianDepth(rec.DepthFrom, rec.DepthTo)
		if isMissing(rec.MedianDepth) || isMissing(rec.ConvertedPPM) || rec.Drillhole == "" {
			continue
		}
		if rec.MedianDepth > maxDepth {
			maxDepth = rec.MedianDepth
		}
		binned = append(binned, rec)
	}
	if len(binned) == 0 {
		return nil, nil
	}

	w := float64(interval)
	type group struct {
		drillhole string
		binStart  float64
	}
	best := map[group]Record{}
	for _, rec := range binned {
		k := math.Floor(rec.MedianDepth / w)
		rec.Bin = fmt.Sprintf("[%g, %g)", k*w, (k+1)*w)
		g := group{drillhole: rec.Drillhole, binStart: k * w}
		cur, ok := best[g]
		if !ok || rec.ConvertedPPM > cur.ConvertedPPM {
			best[g] = rec
		}
	}

	groups := make([]group, 0, len(best))
	for g := range best {
		groups = append(groups, g)
	}
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].drillhole != groups[j].drillhole {
			return keyLess(groups[i].drillhole, groups[j].drillhole)
		}
		return groups[i].binStart < groups[j].binStart
	})
	out := make([]Record, 0, len(groups))
	for _, g := range groups {
		out = append(out, best[g])
	}
	return out, nil
}

// medianDepth is the midpoint of the sampled interval, degrading to the
// single present depth, or NaN when both are missing.
func medianDepth(from, to float64) float64 {
	switch {
	case !isMissing(from) && !isMissing(to):
		return (from + to) / 2
	case !isMissing(from):
		return from
	case !isMissing(to):
		return to
	default:
		return nan()
	}
}
