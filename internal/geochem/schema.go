package geochem

// Schema binds Record fields to physical column headers in the input CSV.
// Column naming varies between exports, so the bindings are injected rather
// than hardcoded; DefaultSarigSchema matches the SARIG rock-sample chemistry
// export.
type Schema struct {
	SampleNo     string
	SampleSource string
	Drillhole    string
	DepthFrom    string
	DepthTo      string
	AnalysisNo   string
	AnalysisType string
	Laboratory   string
	Element      string
	Value        string
	Units        string
	MethodCode   string
	Longitude    string
	Latitude     string
}

// DefaultSarigSchema returns the column bindings for the
// sarig_rs_chem_exp.csv dataset structure.
func DefaultSarigSchema() Schema {
	return Schema{
		SampleNo:     "SAMPLE_NO",
		SampleSource: "SAMPLE_SOURCE_CODE",
		Drillhole:    "DRILLHOLE_NUMBER",
		DepthFrom:    "DH_DEPTH_FROM",
		DepthTo:      "DH_DEPTH_TO",
		AnalysisNo:   "SAMPLE_ANALYSIS_NO",
		AnalysisType: "ANALYSIS_TYPE_DESC",
		Laboratory:   "LABORATORY",
		Element:      "CHEM_CODE",
		Value:        "VALUE",
		Units:        "UNIT",
		MethodCode:   "CHEM_METHOD_CODE",
		Longitude:    "LONGITUDE_GDA2020",
		Latitude:     "LATITUDE_GDA2020",
	}
}

// columns returns the bound header names in record-field order.
func (s Schema) columns() []string {
	return []string{
		s.SampleNo, s.SampleSource, s.Drillhole, s.DepthFrom, s.DepthTo,
		s.AnalysisNo, s.AnalysisType, s.Laboratory, s.Element, s.Value,
		s.Units, s.MethodCode, s.Longitude, s.Latitude,
	}
}
