package pricing

import (
	"errors"
	"math"
	"testing"
)

var sweepBase = OptionParams{
	Spot:         100,
	Strike:       100,
	TimeToExpiry: 1,
	RiskFreeRate: 0.05,
	Volatility:   0.20,
}

func TestSweepDimensionsAndOrdering(t *testing.T) {
	grid, err := Sweep(sweepBase,
		AxisRange{Min: 80, Max: 120, Steps: 5},
		AxisRange{Min: 0.1, Max: 0.3, Steps: 4})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(grid.Calls) != 4 || len(grid.Puts) != 4 {
		t.Fatalf("row count = %d/%d, want 4", len(grid.Calls), len(grid.Puts))
	}
	for r := range grid.Calls {
		if len(grid.Calls[r]) != 5 || len(grid.Puts[r]) != 5 {
			t.Fatalf("row %d column count = %d/%d, want 5", r, len(grid.Calls[r]), len(grid.Puts[r]))
		}
	}

	if grid.Spots[0] != 80 || grid.Spots[4] != 120 {
		t.Errorf("spot axis endpoints = %g..%g, want 80..120", grid.Spots[0], grid.Spots[4])
	}
	if grid.Vols[0] != 0.1 || grid.Vols[3] != 0.3 {
		t.Errorf("vol axis endpoints = %g..%g, want 0.1..0.3", grid.Vols[0], grid.Vols[3])
	}
	for i := 1; i < len(grid.Spots); i++ {
		if grid.Spots[i] <= grid.Spots[i-1] {
			t.Fatalf("spot axis not ascending at %d: %v", i, grid.Spots)
		}
	}
}

func TestSweepCellsMatchPricer(t *testing.T) {
	grid, err := Sweep(sweepBase,
		AxisRange{Min: 80, Max: 120, Steps: 3},
		AxisRange{Min: 0.1, Max: 0.3, Steps: 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The center cell is the ATM scenario: ~10.4506 / ~5.5735.
	if math.Abs(grid.Calls[1][1]-10.4506) > 1e-3 {
		t.Errorf("center call = %v, want ~10.4506", grid.Calls[1][1])
	}
	if math.Abs(grid.Puts[1][1]-5.5735) > 1e-3 {
		t.Errorf("center put = %v, want ~5.5735", grid.Puts[1][1])
	}

	// Every cell must be bit-identical to a direct Price call.
	for r, vol := range grid.Vols {
		for c, spot := range grid.Spots {
			derived := sweepBase
			derived.Spot = spot
			derived.Volatility = vol
			result, err := Price(derived)
			if err != nil {
				t.Fatalf("unexpected error at [%d][%d]: %v", r, c, err)
			}
			if grid.Calls[r][c] != result.Call || grid.Puts[r][c] != result.Put {
				t.Errorf("cell [%d][%d] diverges from Price: got (%v,%v) want (%v,%v)",
					r, c, grid.Calls[r][c], grid.Puts[r][c], result.Call, result.Put)
			}
		}
	}
}

func TestSweepParallelMatchesSerial(t *testing.T) {
	spotAxis := AxisRange{Min: 50, Max: 150, Steps: 40}
	volAxis := AxisRange{Min: 0.05, Max: 0.95, Steps: 30}

	serial, err := NewEngine("serial", 0, 0).Sweep(sweepBase, spotAxis, volAxis)
	if err != nil {
		t.Fatalf("serial sweep failed: %v", err)
	}
	parallel, err := NewEngine("parallel", 4, 0).Sweep(sweepBase, spotAxis, volAxis)
	if err != nil {
		t.Fatalf("parallel sweep failed: %v", err)
	}

	for r := range serial.Calls {
		for c := range serial.Calls[r] {
			if serial.Calls[r][c] != parallel.Calls[r][c] || serial.Puts[r][c] != parallel.Puts[r][c] {
				t.Fatalf("serial/parallel mismatch at [%d][%d]", r, c)
			}
		}
	}
}

func TestSweepMonotoneInVolatility(t *testing.T) {
	// Option value increases with volatility, so each column is ascending.
	grid, err := Sweep(sweepBase,
		AxisRange{Min: 80, Max: 120, Steps: 7},
		AxisRange{Min: 0.05, Max: 0.60, Steps: 6})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for c := range grid.Spots {
		for r := 1; r < len(grid.Vols); r++ {
			if grid.Calls[r][c] < grid.Calls[r-1][c]-1e-12 {
				t.Errorf("call column %d not ascending in vol at row %d", c, r)
			}
			if grid.Puts[r][c] < grid.Puts[r-1][c]-1e-12 {
				t.Errorf("put column %d not ascending in vol at row %d", c, r)
			}
		}
	}
}

func TestSweepInvalidInputs(t *testing.T) {
	spotAxis := AxisRange{Min: 80, Max: 120, Steps: 3}
	volAxis := AxisRange{Min: 0.1, Max: 0.3, Steps: 3}

	cases := []struct {
		name  string
		run   func() (*SensitivityGrid, error)
		field string
	}{
		{
			"steps below 2",
			func() (*SensitivityGrid, error) {
				return Sweep(sweepBase, AxisRange{Min: 80, Max: 120, Steps: 1}, volAxis)
			},
			"spotAxis.steps",
		},
		{
			"min not below max",
			func() (*SensitivityGrid, error) {
				return Sweep(sweepBase, spotAxis, AxisRange{Min: 0.3, Max: 0.3, Steps: 3})
			},
			"volAxis.min",
		},
		{
			"vol axis reaches zero",
			func() (*SensitivityGrid, error) {
				return Sweep(sweepBase, spotAxis, AxisRange{Min: 0, Max: 0.3, Steps: 3})
			},
			"volAxis.min",
		},
		{
			"spot axis reaches below zero",
			func() (*SensitivityGrid, error) {
				return Sweep(sweepBase, AxisRange{Min: -10, Max: 120, Steps: 3}, volAxis)
			},
			"spotAxis.min",
		},
		{
			"base strike invalid",
			func() (*SensitivityGrid, error) {
				bad := sweepBase
				bad.Strike = 0
				return Sweep(bad, spotAxis, volAxis)
			},
			"strike",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			grid, err := tc.run()
			if grid != nil {
				t.Error("expected no grid on invalid input")
			}
			var invalid *InvalidParameterError
			if !errors.As(err, &invalid) {
				t.Fatalf("expected InvalidParameterError, got %v", err)
			}
			if invalid.Field != tc.field {
				t.Errorf("error field = %q, want %q", invalid.Field, tc.field)
			}
		})
	}
}

func TestAxisValues(t *testing.T) {
	values := AxisRange{Min: 0.1, Max: 0.3, Steps: 3}.Values()
	want := []float64{0.1, 0.2, 0.3}
	if len(values) != len(want) {
		t.Fatalf("len = %d, want %d", len(values), len(want))
	}
	for i := range want {
		if math.Abs(values[i]-want[i]) > 1e-12 {
			t.Errorf("values[%d] = %g, want %g", i, values[i], want[i])
		}
	}
	if values[2] != 0.3 {
		t.Errorf("endpoint not exact: %v", values[2])
	}
}
