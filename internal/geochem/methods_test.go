package geochem

import (
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
)

func TestMethodMapEmbeddedDefault(t *testing.T) {
	m, err := LoadMethodMap("")
	if err != nil {
		t.Fatalf("LoadMethodMap: %v", err)
	}
	if m.Len() == 0 {
		t.Fatal("embedded method map is empty")
	}

	recs := []Record{
		func() Record { r := rawRecord("1", "Cu", "10", "ppm"); r.MethodCode = "ICP-MS"; return r }(),
		func() Record { r := rawRecord("2", "Cu", "11", "ppm"); r.MethodCode = "NO_SUCH_CODE"; return r }(),
		rawRecord("3", "Cu", "12", "ppm"), // no method code at all
	}
	out := m.Apply(recs, zap.NewNop())

	if out[0].Determination != "ICPMS" || out[0].Digestion != "4acid" || out[0].Fusion != "none" {
		t.Fatalf("mapped categories = %s/%s/%s", out[0].Determination, out[0].Digestion, out[0].Fusion)
	}
	for _, i := range []int{1, 2} {
		if out[i].Determination != "unknown" || out[i].Digestion != "unknown" || out[i].Fusion != "unknown" {
			t.Fatalf("row %d: miss should map to unknown, got %s/%s/%s",
				i, out[i].Determination, out[i].Digestion, out[i].Fusion)
		}
	}
}

func TestMethodMapExternalFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "methods.csv")
	table := "CHEM_METHOD,DETERMINATION_CODE_RD,DIGESTION_CODE_RD,FUSION_TYPE\n" +
		"XYZ,ICPAES,aqua_regia,none\n"
	if err := os.WriteFile(path, []byte(table), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	m, err := LoadMethodMap(path)
	if err != nil {
		t.Fatalf("LoadMethodMap: %v", err)
	}
	if m.Len() != 1 {
		t.Fatalf("len = %d, want 1", m.Len())
	}
	rec := rawRecord("1", "Cu", "10", "ppm")
	rec.MethodCode = "XYZ"
	out := m.Apply([]Record{rec}, nil)
	if out[0].Determination != "ICPAES" {
		t.Fatalf("determination = %s, want ICPAES", out[0].Determination)
	}
}

func TestMethodMapMissingColumns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.csv")
	if err := os.WriteFile(path, []byte("A,B\n1,2\n"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	if _, err := LoadMethodMap(path); err == nil {
		t.Fatal("expected error for table missing required columns")
	}
}
