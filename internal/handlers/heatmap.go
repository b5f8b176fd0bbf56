package handlers

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"time"

	"github.com/tvogel/volgrid/internal/config"
	"github.com/tvogel/volgrid/internal/journal"
	"github.com/tvogel/volgrid/internal/logger"
	"github.com/tvogel/volgrid/internal/models"
	"github.com/tvogel/volgrid/internal/pricing"
)

// PricingHandler exposes the pricer and sweep engine over HTTP - dumb
// transport layer, all numeric work happens in internal/pricing.
type PricingHandler struct {
	config  *config.Config
	engine  *pricing.Engine
	journal *journal.Journal
}

// NewPricingHandler creates the handler. jrnl may be nil when journaling is
// disabled.
func NewPricingHandler(cfg *config.Config, engine *pricing.Engine, jrnl *journal.Journal) *PricingHandler {
	return &PricingHandler{
		config:  cfg,
		engine:  engine,
		journal: jrnl,
	}
}

// HomeHandler serves the main web interface. The template is reloaded on
// each request so web changes need no rebuild.
func (h *PricingHandler) HomeHandler(w http.ResponseWriter, r *http.Request) {
	tmpl, err := template.ParseFiles("web/templates/home.html")
	if err != nil {
		http.Error(w, "Template error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	data := models.TemplateData{
		Title:             "Volgrid - Black-Scholes Heatmaps",
		DefaultSpot:       h.config.Defaults.Spot,
		DefaultStrike:     h.config.Defaults.Strike,
		DefaultMaturity:   h.config.Defaults.Maturity,
		DefaultRate:       h.config.Defaults.Rate,
		DefaultVolatility: h.config.Defaults.Volatility,
		DefaultGridSteps:  h.config.Defaults.GridSteps,
		SpotSpan:          h.config.Defaults.SpotSpan,
		VolSpan:           h.config.Defaults.VolSpan,
		ExecutionMode:     string(h.engine.Mode()),
	}
	if err := tmpl.Execute(w, data); err != nil {
		http.Error(w, "Template execution error: "+err.Error(), http.StatusInternalServerError)
	}
}

// PriceHandler prices a single parameter set.
func (h *PricingHandler) PriceHandler(w http.ResponseWriter, r *http.Request) {
	if done := handlePreflight(w, r); done {
		return
	}

	var req models.PriceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, models.ErrorResponse{
			Error:   "INVALID_REQUEST_BODY",
			Message: "Request body must be JSON with the five Black-Scholes parameters",
		})
		return
	}

	logger.Debug.Printf("price request: %+v", req.OptionParams)

	start := time.Now()
	result, err := pricing.Price(req.OptionParams)
	if err != nil {
		writeValidationError(w, err)
		return
	}
	duration := time.Since(start)

	h.journal.Record(journal.Entry{
		Timestamp:  time.Now(),
		Kind:       "price",
		Params:     req.OptionParams,
		Prices:     result,
		DurationMs: float64(duration.Nanoseconds()) / 1e6,
	})

	writeJSON(w, http.StatusOK, models.PriceResponse{
		Params: req.OptionParams,
		Prices: result,
		Meta: models.ResponseMetadata{
			Timestamp:   time.Now().Format(time.RFC3339),
			ComputeTime: duration.Seconds(),
		},
	})
}

// HeatmapHandler sweeps the spot/volatility grid and returns both surfaces
// plus the price at the base parameters.
func (h *PricingHandler) HeatmapHandler(w http.ResponseWriter, r *http.Request) {
	if done := handlePreflight(w, r); done {
		return
	}

	req, grid, current, meta, err := h.runSweep(r)
	if err != nil {
		writeValidationError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, models.HeatmapResponse{
		Params:  req.OptionParams,
		Current: current,
		Grid:    grid,
		Meta:    meta,
	})
}

// HeatmapCSVHandler runs the same sweep but streams the surfaces as CSV for
// download. Row layout: surface name, volatility, then one column per spot.
func (h *PricingHandler) HeatmapCSVHandler(w http.ResponseWriter, r *http.Request) {
	if done := handlePreflight(w, r); done {
		return
	}

	_, grid, _, _, err := h.runSweep(r)
	if err != nil {
		writeValidationError(w, err)
		return
	}

	filename := fmt.Sprintf("heatmap_%s.csv", time.Now().Format("20060102_150405"))
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename="+filename)

	cw := csv.NewWriter(w)
	header := []string{"surface", "volatility"}
	for _, spot := range grid.Spots {
		header = append(header, strconv.FormatFloat(spot, 'g', -1, 64))
	}
	_ = cw.Write(header)
	writeSurface(cw, "call", grid.Vols, grid.Calls)
	writeSurface(cw, "put", grid.Vols, grid.Puts)
	cw.Flush()
	if err := cw.Error(); err != nil {
		logger.Error.Printf("csv export failed: %v", err)
	}
}

// HealthHandler reports liveness.
func (h *PricingHandler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// runSweep decodes a heatmap request, derives omitted axes from the base
// parameters, and evaluates the grid.
func (h *PricingHandler) runSweep(r *http.Request) (models.HeatmapRequest, *pricing.SensitivityGrid, pricing.PriceResult, models.ResponseMetadata, error) {
	var req models.HeatmapRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return req, nil, pricing.PriceResult{}, models.ResponseMetadata{},
			fmt.Errorf("request body must be JSON: %w", err)
	}

	spotAxis := h.axisOrDefault(req.SpotAxis, req.Spot, h.config.Defaults.SpotSpan)
	volAxis := h.axisOrDefault(req.VolAxis, req.Volatility, h.config.Defaults.VolSpan)

	logger.Debug.Printf("heatmap request: %+v spotAxis=%+v volAxis=%+v", req.OptionParams, spotAxis, volAxis)

	start := time.Now()
	current, err := pricing.Price(req.OptionParams)
	if err != nil {
		return req, nil, pricing.PriceResult{}, models.ResponseMetadata{}, err
	}
	grid, err := h.engine.Sweep(req.OptionParams, spotAxis, volAxis)
	if err != nil {
		return req, nil, pricing.PriceResult{}, models.ResponseMetadata{}, err
	}
	duration := time.Since(start)

	cells := spotAxis.Steps * volAxis.Steps
	logger.Info.Printf("heatmap computed: %d cells in %v (%s mode)", cells, duration, h.engine.Mode())

	h.journal.Record(journal.Entry{
		Timestamp:  time.Now(),
		Kind:       "heatmap",
		Params:     req.OptionParams,
		SpotAxis:   &spotAxis,
		VolAxis:    &volAxis,
		Prices:     current,
		DurationMs: float64(duration.Nanoseconds()) / 1e6,
	})

	meta := models.ResponseMetadata{
		Timestamp:     time.Now().Format(time.RFC3339),
		ComputeTime:   duration.Seconds(),
		ExecutionMode: string(h.engine.Mode()),
		CellCount:     cells,
	}
	return req, grid, current, meta, nil
}

// axisOrDefault derives an axis around a base value when the request omits
// it, matching the form's behavior: base*[1-span, 1+span].
func (h *PricingHandler) axisOrDefault(axis *pricing.AxisRange, base, span float64) pricing.AxisRange {
	if axis != nil {
		return *axis
	}
	return pricing.AxisRange{
		Min:   base * (1 - span),
		Max:   base * (1 + span),
		Steps: h.config.Defaults.GridSteps,
	}
}

func writeSurface(cw *csv.Writer, name string, vols []float64, matrix [][]float64) {
	for r, vol := range vols {
		row := []string{name, strconv.FormatFloat(vol, 'g', -1, 64)}
		for _, v := range matrix[r] {
			row = append(row, strconv.FormatFloat(v, 'f', 6, 64))
		}
		_ = cw.Write(row)
	}
}

// handlePreflight sets CORS headers and answers OPTIONS. Returns true when
// the request is fully handled.
func handlePreflight(w http.ResponseWriter, r *http.Request) bool {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return true
	}
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return true
	}
	return false
}

// writeValidationError maps pricing validation failures to 400 responses
// carrying the offending field, so the form can point at the right input.
func writeValidationError(w http.ResponseWriter, err error) {
	var invalid *pricing.InvalidParameterError
	if errors.As(err, &invalid) {
		logger.Warn.Printf("rejected request: %v", invalid)
		writeError(w, http.StatusBadRequest, models.ErrorResponse{
			Error:   "INVALID_PARAMETER",
			Field:   invalid.Field,
			Message: invalid.Error(),
		})
		return
	}
	logger.Warn.Printf("rejected request: %v", err)
	writeError(w, http.StatusBadRequest, models.ErrorResponse{
		Error:   "INVALID_REQUEST_BODY",
		Message: err.Error(),
	})
}

func writeError(w http.ResponseWriter, status int, resp models.ErrorResponse) {
	writeJSON(w, status, resp)
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error.Printf("JSON encoding failed: %v", err)
	}
}
