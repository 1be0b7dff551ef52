package geochem

import (
	"bytes"
	"reflect"
	"strings"
	"testing"
)

func TestSortByKeyNumericAware(t *testing.T) {
	f := &Frame{
		Columns: []string{"SAMPLE_NO", "Cu"},
		Rows: [][]string{
			{"100", "a"},
			{"9", "b"},
			{"20", "c"},
		},
	}
	f.SortByKey()
	got := []string{f.Rows[0][0], f.Rows[1][0], f.Rows[2][0]}
	if !reflect.DeepEqual(got, []string{"9", "20", "100"}) {
		t.Fatalf("numeric key order = %v", got)
	}

	f = &Frame{
		Columns: []string{"SAMPLE_NO"},
		Rows:    [][]string{{"B2"}, {"A10"}, {"A2"}},
	}
	f.SortByKey()
	got = []string{f.Rows[0][0], f.Rows[1][0], f.Rows[2][0]}
	if !reflect.DeepEqual(got, []string{"A10", "A2", "B2"}) {
		t.Fatalf("lexicographic key order = %v", got)
	}
}

func TestFrameWriteCSV(t *testing.T) {
	f := &Frame{
		Columns: []string{"SAMPLE_NO", "bin"},
		Rows:    [][]string{{"1", "[0, 10)"}},
	}
	var buf bytes.Buffer
	if err := f.WriteCSV(&buf); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	want := "SAMPLE_NO,bin\n1,\"[0, 10)\"\n"
	if buf.String() != want {
		t.Fatalf("csv = %q, want %q", buf.String(), want)
	}
}

func TestDatasetFrameDerivedColumns(t *testing.T) {
	rec := rawRecord("100", "Cu", "12", "ppm")
	rec.Value = 12
	rec.BDL = BDLNormal
	rec.ConvertedPPM = 12
	rec.Determination = "ICPMS"
	rec.Digestion = "4acid"
	rec.Fusion = "none"

	f := DatasetFrame([]Record{rec}, DefaultSarigSchema())
	joined := strings.Join(f.Columns, ",")
	for _, col := range []string{"BDL", "converted_ppm", "DETERMINATION", "DIGESTION", "FUSION"} {
		if !strings.Contains(joined, col) {
			t.Fatalf("columns %v missing %s", f.Columns, col)
		}
	}
	// normalisation and binning not run: their columns stay out
	if strings.Contains(joined, "Normalised_crustal_abund_ppm") || strings.Contains(joined, "median_depth") {
		t.Fatalf("unexpected optional columns in %v", f.Columns)
	}

	rec.NormalisedCrustal = 12.0 / 28
	rec.MedianDepth = 1
	rec.Bin = "[0, 10)"
	f = DatasetFrame([]Record{rec}, DefaultSarigSchema())
	joined = strings.Join(f.Columns, ",")
	if !strings.Contains(joined, "Normalised_crustal_abund_ppm") || !strings.Contains(joined, "median_depth") {
		t.Fatalf("optional columns missing from %v", f.Columns)
	}
	row := f.Rows[0]
	if row[len(row)-1] != "[0, 10)" {
		t.Fatalf("bin cell = %q", row[len(row)-1])
	}
}

func TestValueCellPrefersParsedValue(t *testing.T) {
	rec := rawRecord("1", "Cu", "<15", "ppm")
	if v := valueCell(rec); v != "<15" {
		t.Fatalf("uncleaned cell = %q, want raw value", v)
	}
	rec.Value = 15
	if v := valueCell(rec); v != "15" {
		t.Fatalf("cleaned cell = %q, want 15", v)
	}
}
