package geochem

import (
	"math"
	"testing"
)

func holeRecord(drillhole string, from, to, ppm float64) Record {
	r := rawRecord(drillhole, "Cu", "", "ppm")
	r.SampleNo = drillhole + "-s"
	r.Drillhole = drillhole
	r.DepthFrom = from
	r.DepthTo = to
	r.ConvertedPPM = ppm
	return r
}

func TestMaxDownholePicksMaximumPerHole(t *testing.T) {
	recs := []Record{
		holeRecord("d1", 0, 2, 5),
		holeRecord("d1", 2, 4, 12),
		holeRecord("d1", 4, 6, 3),
		holeRecord("d2", 0, 2, 7),
	}
	out := MaxDownhole(recs)
	if len(out) != 2 {
		t.Fatalf("rows = %d, want 2", len(out))
	}
	if out[0].Drillhole != "d1" || out[0].ConvertedPPM != 12 {
		t.Fatalf("d1 max = %s/%f, want d1/12", out[0].Drillhole, out[0].ConvertedPPM)
	}
	if out[1].Drillhole != "d2" || out[1].ConvertedPPM != 7 {
		t.Fatalf("d2 max = %s/%f, want d2/7", out[1].Drillhole, out[1].ConvertedPPM)
	}
}

func TestMaxDownholeTieKeepsFirst(t *testing.T) {
	first := holeRecord("d1", 0, 2, 9)
	first.SampleNo = "first"
	second := holeRecord("d1", 2, 4, 9)
	second.SampleNo = "second"
	out := MaxDownhole([]Record{first, second})
	if len(out) != 1 || out[0].SampleNo != "first" {
		t.Fatalf("tie winner = %v, want the first row", out)
	}
}

func TestMaxDownholeSkipsUnusableRows(t *testing.T) {
	noHole := holeRecord("", 0, 2, 99)
	noValue := holeRecord("d1", 0, 2, math.NaN())
	keeper := holeRecord("d1", 2, 4, 4)
	out := MaxDownhole([]Record{noHole, noValue, keeper})
	if len(out) != 1 || out[0].ConvertedPPM != 4 {
		t.Fatalf("out = %v, want single d1 row with 4 ppm", out)
	}
}

func TestMaxDownholeIntervalBins(t *testing.T) {
	recs := []Record{
		holeRecord("d1", 0, 10, 5),   // median 5  -> [0, 10)
		holeRecord("d1", 10, 20, 12), // median 15 -> [10, 20)
		holeRecord("d1", 20, 30, 3),  // median 25 -> [20, 30)
	}
	out, err := MaxDownholeInterval(recs, 10)
	if err != nil {
		t.Fatalf("MaxDownholeInterval: %v", err)
	}
	wantBins := []string{"[0, 10)", "[10, 20)", "[20, 30)"}
	wantPPM := []float64{5, 12, 3}
	if len(out) != len(wantBins) {
		t.Fatalf("rows = %d, want %d", len(out), len(wantBins))
	}
	for i, rec := range out {
		if rec.Bin != wantBins[i] {
			t.Fatalf("row %d bin = %q, want %q", i, rec.Bin, wantBins[i])
		}
		if rec.ConvertedPPM != wantPPM[i] {
			t.Fatalf("row %d ppm = %f, want %f", i, rec.ConvertedPPM, wantPPM[i])
		}
	}
}

func TestMaxDownholeIntervalPicksMaxWithinBin(t *testing.T) {
	recs := []Record{
		holeRecord("d1", 0, 4, 2),
		holeRecord("d1", 4, 8, 11),
		holeRecord("d1", 8, 10, 6),
	}
	out, err := MaxDownholeInterval(recs, 10)
	if err != nil {
		t.Fatalf("MaxDownholeInterval: %v", err)
	}
	if len(out) != 1 || out[0].ConvertedPPM != 11 {
		t.Fatalf("out = %v, want single [0, 10) row with 11 ppm", out)
	}
	if math.IsNaN(out[0].MedianDepth) || out[0].MedianDepth != 6 {
		t.Fatalf("median depth = %f, want 6", out[0].MedianDepth)
	}
}

func TestMaxDownholeIntervalSingleDepth(t *testing.T) {
	rec := holeRecord("d1", 25, math.NaN(), 8)
	out, err := MaxDownholeInterval([]Record{rec}, 10)
	if err != nil {
		t.Fatalf("MaxDownholeInterval: %v", err)
	}
	if len(out) != 1 || out[0].Bin != "[20, 30)" {
		t.Fatalf("out = %v, want one row in [20, 30)", out)
	}
}

func TestMaxDownholeIntervalRejectsNonPositiveWidth(t *testing.T) {
	if _, err := MaxDownholeInterval(nil, 0); err == nil {
		t.Fatal("expected error for zero interval width")
	}
	if _, err := MaxDownholeInterval(nil, -5); err == nil {
		t.Fatal("expected error for negative interval width")
	}
}

func TestMedianDepth(t *testing.T) {
	if d := medianDepth(10, 20); d != 15 {
		t.Fatalf("midpoint = %f, want 15", d)
	}
	if d := medianDepth(10, math.NaN()); d != 10 {
		t.Fatalf("from-only = %f, want 10", d)
	}
	if d := medianDepth(math.NaN(), 20); d != 20 {
		t.Fatalf("to-only = %f, want 20", d)
	}
	if d := medianDepth(math.NaN(), math.NaN()); !math.IsNaN(d) {
		t.Fatalf("both missing = %f, want NaN", d)
	}
}
