package pricing

import "sync"

// ExecutionMode selects how a sweep evaluates its grid cells.
type ExecutionMode string

const (
	ExecutionModeAuto     ExecutionMode = "auto"
	ExecutionModeSerial   ExecutionMode = "serial"
	ExecutionModeParallel ExecutionMode = "parallel"
)

// SensitivityGrid holds call and put price surfaces over a spot × volatility
// grid. Calls and Puts are indexed [row][col] where row r corresponds to
// Vols[r] and column c to Spots[c], both ascending. A grid is built fresh per
// sweep and never mutated afterwards.
type SensitivityGrid struct {
	SpotAxis AxisRange   `json:"spot_axis"`
	VolAxis  AxisRange   `json:"vol_axis"`
	Spots    []float64   `json:"spots"`
	Vols     []float64   `json:"vols"`
	Calls    [][]float64 `json:"calls"`
	Puts     [][]float64 `json:"puts"`
}

// Engine evaluates sensitivity sweeps. The zero value is usable and runs
// serially; NewEngine applies the configured execution mode and worker bound.
//
// Grid cells are independent pure-function evaluations, so the parallel mode
// fans out one goroutine per volatility row with no locking: every cell only
// reads its own inputs and writes its own slot. Serial and parallel runs
// produce bit-identical grids.
type Engine struct {
	mode              ExecutionMode
	workers           int
	parallelThreshold int
}

// NewEngine creates a sweep engine. Unknown modes fall back to auto. workers
// bounds the number of rows evaluated at once in parallel mode (0 means one
// worker per row). threshold is the cell count above which auto mode switches
// to parallel evaluation.
func NewEngine(mode string, workers, threshold int) *Engine {
	m := ExecutionMode(mode)
	switch m {
	case ExecutionModeSerial, ExecutionModeParallel, ExecutionModeAuto:
	default:
		m = ExecutionModeAuto
	}
	if threshold <= 0 {
		threshold = 4096
	}
	return &Engine{mode: m, workers: workers, parallelThreshold: threshold}
}

// Mode returns the configured execution mode.
func (e *Engine) Mode() ExecutionMode {
	if e.mode == "" {
		return ExecutionModeSerial
	}
	return e.mode
}

// Sweep prices every (volatility, spot) combination of the two axes, holding
// the remaining fields of base fixed. Cell values are exactly what Price
// returns for the same derived parameters.
//
// Validation happens up front and covers the whole grid: malformed axes, a
// spot or volatility axis reaching below zero, or a base strike/expiry that
// would fail the pricer all reject the sweep with an *InvalidParameterError
// before any cell is computed. No partial grids are ever returned.
func (e *Engine) Sweep(base OptionParams, spotAxis, volAxis AxisRange) (*SensitivityGrid, error) {
	if err := spotAxis.Validate("spotAxis"); err != nil {
		return nil, err
	}
	if err := volAxis.Validate("volAxis"); err != nil {
		return nil, err
	}
	// The grid minimum is the worst case on each axis: if it satisfies the
	// pricer precondition, every grid point does.
	if spotAxis.Min <= 0 {
		return nil, &InvalidParameterError{Field: "spotAxis.min", Constraint: "> 0", Value: spotAxis.Min}
	}
	if volAxis.Min <= 0 {
		return nil, &InvalidParameterError{Field: "volAxis.min", Constraint: "> 0", Value: volAxis.Min}
	}
	probe := base
	probe.Spot = spotAxis.Min
	probe.Volatility = volAxis.Min
	if err := probe.Validate(); err != nil {
		return nil, err
	}

	grid := &SensitivityGrid{
		SpotAxis: spotAxis,
		VolAxis:  volAxis,
		Spots:    spotAxis.Values(),
		Vols:     volAxis.Values(),
		Calls:    make([][]float64, volAxis.Steps),
		Puts:     make([][]float64, volAxis.Steps),
	}

	if e.parallelEnabled(spotAxis.Steps * volAxis.Steps) {
		e.fillParallel(grid, base)
	} else {
		for r := range grid.Vols {
			fillRow(grid, base, r)
		}
	}
	return grid, nil
}

func (e *Engine) parallelEnabled(cells int) bool {
	switch e.mode {
	case ExecutionModeParallel:
		return true
	case ExecutionModeAuto:
		return cells >= e.parallelThreshold
	default:
		return false
	}
}

// fillParallel evaluates one goroutine per volatility row, bounded by the
// configured worker count.
func (e *Engine) fillParallel(grid *SensitivityGrid, base OptionParams) {
	var sem chan struct{}
	if e.workers > 0 {
		sem = make(chan struct{}, e.workers)
	}
	var wg sync.WaitGroup
	for r := range grid.Vols {
		wg.Add(1)
		if sem != nil {
			sem <- struct{}{}
		}
		go func(row int) {
			defer wg.Done()
			fillRow(grid, base, row)
			if sem != nil {
				<-sem
			}
		}(r)
	}
	wg.Wait()
}

// fillRow prices every spot for one volatility row. Inputs were validated by
// Sweep, so Price cannot fail here.
func fillRow(grid *SensitivityGrid, base OptionParams, row int) {
	calls := make([]float64, len(grid.Spots))
	puts := make([]float64, len(grid.Spots))
	derived := base
	derived.Volatility = grid.Vols[row]
	for c, spot := range grid.Spots {
		derived.Spot = spot
		result, _ := Price(derived)
		calls[c] = result.Call
		puts[c] = result.Put
	}
	grid.Calls[row] = calls
	grid.Puts[row] = puts
}

// Sweep runs a serial sensitivity sweep with default settings. It is the
// package-level convenience form of (*Engine).Sweep.
func Sweep(base OptionParams, spotAxis, volAxis AxisRange) (*SensitivityGrid, error) {
	return (&Engine{mode: ExecutionModeSerial}).Sweep(base, spotAxis, volAxis)
}
