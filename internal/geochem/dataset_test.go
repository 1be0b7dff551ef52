package geochem

import (
	"testing"
)

func TestMakeElementDataset(t *testing.T) {
	path := writeFixture(t, "raw.csv", rawFixture)
	recs, err := MakeElementDataset(path, "Cu", DefaultSarigSchema(), ElementDatasetOptions{Convert: DefaultConvertOptions()}, nil)
	if err != nil {
		t.Fatalf("MakeElementDataset: %v", err)
	}
	// 4 Cu rows in the fixture, the cps one dropped
	if len(recs) != 3 {
		t.Fatalf("rows = %d, want 3", len(recs))
	}

	byNo := map[string]Record{}
	for _, rec := range recs {
		byNo[rec.SampleNo] = rec
	}
	if r := byNo["100"]; r.ConvertedPPM != 12 || r.BDL != BDLNormal {
		t.Fatalf("sample 100 = %f ppm BDL %d, want 12/0", r.ConvertedPPM, r.BDL)
	}
	// "<15" ppm is flagged below detection and substituted
	if r := byNo["101"]; r.ConvertedPPM != 0.001 || r.BDL != BDLBelowLimit {
		t.Fatalf("sample 101 = %f ppm BDL %d, want 0.001/1", r.ConvertedPPM, r.BDL)
	}
	if r := byNo["100"]; r.Determination != "ICPMS" || r.Digestion != "4acid" {
		t.Fatalf("sample 100 methods = %s/%s", r.Determination, r.Digestion)
	}
	// surface sample carries a mapped method too
	if r := byNo["102"]; r.Determination == "" {
		t.Fatal("sample 102 has no method categories")
	}
}

func TestMakeElementDatasetDHOnly(t *testing.T) {
	path := writeFixture(t, "raw.csv", rawFixture)
	recs, err := MakeElementDataset(path, "Cu", DefaultSarigSchema(), DefaultElementDatasetOptions(), nil)
	if err != nil {
		t.Fatalf("MakeElementDataset: %v", err)
	}
	for _, rec := range recs {
		if rec.Drillhole == "" {
			t.Fatalf("surface sample %s in drillhole-only dataset", rec.SampleNo)
		}
	}
	if len(recs) != 2 {
		t.Fatalf("rows = %d, want 2", len(recs))
	}
}

func TestLongToWideDataset(t *testing.T) {
	path := writeFixture(t, "raw.csv", rawFixture)
	data, methods, err := LongToWideDataset(path, DefaultSarigSchema(), WideOptions{
		Elements:     []string{"Cu", "Au"},
		IncludeUnits: true,
		WithMethods:  true,
	}, nil)
	if err != nil {
		t.Fatalf("LongToWideDataset: %v", err)
	}
	if methods == nil {
		t.Fatal("methods table requested but not built")
	}
	// samples 100..104 each appear once; 103 (cps Cu) still pivots here, the
	// cps drop applies only to the single-element pipeline
	if len(data.Rows) != 5 {
		t.Fatalf("data rows = %d, want 5", len(data.Rows))
	}
	// metadata columns lead, then Cu, Cu_UNIT, Au, Au_UNIT
	last := data.Columns[len(data.Columns)-4:]
	want := []string{"Cu", "Cu_UNIT", "Au", "Au_UNIT"}
	for i := range want {
		if last[i] != want[i] {
			t.Fatalf("trailing columns = %v, want %v", last, want)
		}
	}
	if data.Rows[0][0] != "100" {
		t.Fatalf("first sample = %s, want 100 (sorted by sample id)", data.Rows[0][0])
	}
	if len(methods.Rows) != 5 {
		t.Fatalf("methods rows = %d, want 5", len(methods.Rows))
	}
}
