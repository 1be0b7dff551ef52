package geochem

import "fmt"

// InvalidInputError indicates the input file is missing, has the wrong
// extension, or cannot be parsed as CSV. It is fatal: no partial output is
// written.
type InvalidInputError struct {
	Path   string
	Reason string
	Err    error
}

func (e *InvalidInputError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid input %s: %s: %v", e.Path, e.Reason, e.Err)
	}
	return fmt.Sprintf("invalid input %s: %s", e.Path, e.Reason)
}

func (e *InvalidInputError) Unwrap() error { return e.Err }

// MalformedValueError indicates a value field that is still not numeric after
// marker stripping. The whole batch is aborted rather than silently dropping
// the row, which would skew downstream maxima.
type MalformedValueError struct {
	Row   int // 1-based data row ordinal within the batch
	Value string
}

func (e *MalformedValueError) Error() string {
	return fmt.Sprintf("malformed value %q at row %d: not numeric after cleaning", e.Value, e.Row)
}

// AbundanceLookupError indicates the requested element has no crustal
// abundance reference value. There is no sensible numeric default, so the
// normalised column cannot be computed.
type AbundanceLookupError struct {
	Element string
}

func (e *AbundanceLookupError) Error() string {
	return fmt.Sprintf("no crustal abundance reference value for element %q", e.Element)
}
