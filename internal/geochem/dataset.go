package geochem

import (
	"go.uber.org/zap"
)

// ElementDatasetOptions tunes the single-element extraction pipeline.
type ElementDatasetOptions struct {
	// DHOnly filters to samples carrying a drillhole id.
	DHOnly bool
	// DashAsBDL selects the permissive cleaning policy: a '-' marks below
	// detection limit instead of deleting the row.
	DashAsBDL bool
	// Convert carries the unit-conversion and sentinel flags.
	Convert ConvertOptions
	// MethodMapPath points at an external method-code reference table;
	// empty uses the embedded default.
	MethodMapPath string
}

// DefaultElementDatasetOptions filters to drillholes and converts weight
// percent, matching the common extraction run.
func DefaultElementDatasetOptions() ElementDatasetOptions {
	return ElementDatasetOptions{DHOnly: true, Convert: DefaultConvertOptions()}
}

// MakeElementDataset produces the cleaned single-element dataset from the raw
// long-format export: filter to the element (dropping cps rows), clean and
// flag detection-limit markers, convert oxide values to an element basis,
// convert all units to ppm, substitute below-detection sentinels and map
// method codes. The returned records feed aggregation or export as
// {element}_processed.csv.
func MakeElementDataset(path, element string, schema Schema, opt ElementDatasetOptions, log *zap.Logger) ([]Record, error) {
	if log == nil {
		log = zap.NewNop()
	}
	loader, err := NewLoader(path, schema, log)
	if err != nil {
		return nil, err
	}
	recs, err := loader.FilterElement(element, opt.DHOnly)
	if err != nil {
		return nil, err
	}

	policy := DashDrop
	if opt.DashAsBDL {
		policy = DashBelowDetection
	}
	recs, err = Clean(recs, policy)
	if err != nil {
		return nil, err
	}

	recs = ConvertOxides(recs, element)
	recs = ConvertPPM(recs, opt.Convert)
	recs = SubstituteBDL(recs, opt.Convert)

	methods, err := LoadMethodMap(opt.MethodMapPath)
	if err != nil {
		return nil, err
	}
	recs = methods.Apply(recs, log)

	log.Info("element dataset built",
		zap.String("element", element), zap.Int("rows", len(recs)))
	return recs, nil
}

// WideOptions tunes the long-to-wide conversion pipeline.
type WideOptions struct {
	Elements    []string
	SampleTypes []string
	Drillholes  []string
	DHOnly      bool
	// IncludeUnits interleaves unit columns in the wide output.
	IncludeUnits bool
	// WithMethods also builds the parallel methods-wide table.
	WithMethods bool
	// MethodMapPath overrides the embedded method-code reference table.
	MethodMapPath string
}

// LongToWideDataset filters the raw export and pivots it to wide format: one
// row per sample joined onto the per-sample metadata, plus the optional
// parallel methods table. Duplicate (sample, element) readings follow the
// pivoter's overflow policy.
func LongToWideDataset(path string, schema Schema, opt WideOptions, log *zap.Logger) (data, methodsWide *Frame, err error) {
	if log == nil {
		log = zap.NewNop()
	}
	loader, err := NewLoader(path, schema, log)
	if err != nil {
		return nil, nil, err
	}
	recs, err := loader.Load(Filter{
		Elements:       opt.Elements,
		SampleTypes:    opt.SampleTypes,
		Drillholes:     opt.Drillholes,
		DrillholesOnly: opt.DHOnly,
	})
	if err != nil {
		return nil, nil, err
	}

	meta := MetadataFrame(recs, schema)
	pivoter := NewPivoter(log)

	wide := pivoter.LongToWide(recs, schema, PivotOptions{IncludeUnits: opt.IncludeUnits})
	data = meta.InnerJoin(wide)
	data.SortByKey()

	if opt.WithMethods {
		methods, err := LoadMethodMap(opt.MethodMapPath)
		if err != nil {
			return nil, nil, err
		}
		recs = methods.Apply(recs, log)
		mw := pivoter.MethodsWide(recs, schema)
		methodsWide = meta.InnerJoin(mw)
		methodsWide.SortByKey()
	}

	log.Info("wide dataset built",
		zap.Int("samples", len(data.Rows)), zap.Int("columns", len(data.Columns)))
	return data, methodsWide, nil
}
