package models

import "github.com/tvogel/volgrid/internal/pricing"

// PriceRequest is the JSON body of POST /api/price. Zero-valued fields are
// filled from the configured defaults before validation.
type PriceRequest struct {
	pricing.OptionParams
}

// HeatmapRequest is the JSON body of POST /api/heatmap and /api/heatmap.csv.
// Omitted axes are derived from the base parameters the same way the form
// does: spot*[1-span, 1+span] and vol*[1-span, 1+span].
type HeatmapRequest struct {
	pricing.OptionParams
	SpotAxis *pricing.AxisRange `json:"spot_axis,omitempty"`
	VolAxis  *pricing.AxisRange `json:"vol_axis,omitempty"`
}

// ResponseMetadata describes how a response was produced.
type ResponseMetadata struct {
	Timestamp     string  `json:"timestamp"`
	ComputeTime   float64 `json:"compute_time"` // seconds
	ExecutionMode string  `json:"execution_mode,omitempty"`
	CellCount     int     `json:"cell_count,omitempty"`
}

// PriceResponse is the body of a successful /api/price call.
type PriceResponse struct {
	Params pricing.OptionParams `json:"params"`
	Prices pricing.PriceResult  `json:"prices"`
	Meta   ResponseMetadata     `json:"meta"`
}

// HeatmapResponse carries the two price surfaces plus the price at the base
// parameters, so the UI renders the current price and both heatmaps from one
// round trip.
type HeatmapResponse struct {
	Params  pricing.OptionParams     `json:"params"`
	Current pricing.PriceResult      `json:"current"`
	Grid    *pricing.SensitivityGrid `json:"grid"`
	Meta    ResponseMetadata         `json:"meta"`
}

// ErrorResponse is returned with a 4xx/5xx status. Field is set when the
// failure is attributable to a single input.
type ErrorResponse struct {
	Error   string `json:"error"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// TemplateData feeds the home page template with configured defaults.
type TemplateData struct {
	Title             string
	DefaultSpot       float64
	DefaultStrike     float64
	DefaultMaturity   float64
	DefaultRate       float64
	DefaultVolatility float64
	DefaultGridSteps  int
	SpotSpan          float64
	VolSpan           float64
	ExecutionMode     string
}
