package pricing

// AxisRange defines one dimension of a sensitivity grid: Steps linearly
// spaced values from Min to Max, both endpoints included.
type AxisRange struct {
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Steps int     `json:"steps"`
}

// Validate checks the axis invariants. The field name prefixes the error so
// a request touching two axes still reports which one was malformed.
func (a AxisRange) Validate(field string) error {
	if a.Steps < 2 {
		return &InvalidParameterError{Field: field + ".steps", Constraint: ">= 2", Value: float64(a.Steps)}
	}
	if !(a.Min < a.Max) {
		return &InvalidParameterError{Field: field + ".min", Constraint: "< " + field + ".max", Value: a.Min}
	}
	return nil
}

// Values materializes the axis as an ascending slice of length Steps.
// The last value is set to Max exactly rather than accumulated, so the
// endpoints are bit-exact regardless of step count.
func (a AxisRange) Values() []float64 {
	values := make([]float64, a.Steps)
	step := (a.Max - a.Min) / float64(a.Steps-1)
	for i := range values {
		values[i] = a.Min + float64(i)*step
	}
	values[a.Steps-1] = a.Max
	return values
}
