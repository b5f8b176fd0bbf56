// Command gridcsv sweeps a spot/volatility grid from the command line and
// writes both price surfaces as CSV, without running the web server.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/tvogel/volgrid/internal/pricing"
)

func main() {
	spot := flag.Float64("spot", 100, "spot price of the underlying")
	strike := flag.Float64("strike", 100, "strike price")
	maturity := flag.Float64("maturity", 1.0, "time to expiry in years")
	rate := flag.Float64("rate", 0.05, "risk-free rate")
	vol := flag.Float64("vol", 0.20, "volatility")
	spotMin := flag.Float64("spot-min", 0, "spot axis minimum (default spot*0.8)")
	spotMax := flag.Float64("spot-max", 0, "spot axis maximum (default spot*1.2)")
	volMin := flag.Float64("vol-min", 0, "volatility axis minimum (default vol*0.5)")
	volMax := flag.Float64("vol-max", 0, "volatility axis maximum (default vol*1.5)")
	steps := flag.Int("steps", 10, "steps per axis")
	out := flag.String("out", "", "output file (default stdout)")
	flag.Parse()

	if *spotMin == 0 {
		*spotMin = *spot * 0.8
	}
	if *spotMax == 0 {
		*spotMax = *spot * 1.2
	}
	if *volMin == 0 {
		*volMin = *vol * 0.5
	}
	if *volMax == 0 {
		*volMax = *vol * 1.5
	}

	base := pricing.OptionParams{
		Spot:         *spot,
		Strike:       *strike,
		TimeToExpiry: *maturity,
		RiskFreeRate: *rate,
		Volatility:   *vol,
	}

	current, err := pricing.Price(base)
	if err != nil {
		log.Fatalf("pricing failed: %v", err)
	}
	fmt.Fprintf(os.Stderr, "call=%.4f put=%.4f\n", current.Call, current.Put)

	grid, err := pricing.Sweep(base,
		pricing.AxisRange{Min: *spotMin, Max: *spotMax, Steps: *steps},
		pricing.AxisRange{Min: *volMin, Max: *volMax, Steps: *steps})
	if err != nil {
		log.Fatalf("sweep failed: %v", err)
	}

	w := os.Stdout
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			log.Fatalf("creating %s: %v", *out, err)
		}
		defer f.Close()
		w = f
	}

	cw := csv.NewWriter(w)
	header := []string{"surface", "volatility"}
	for _, s := range grid.Spots {
		header = append(header, strconv.FormatFloat(s, 'g', -1, 64))
	}
	if err := cw.Write(header); err != nil {
		log.Fatalf("writing csv: %v", err)
	}
	writeSurface(cw, "call", grid)
	writeSurface(cw, "put", grid)
	cw.Flush()
	if err := cw.Error(); err != nil {
		log.Fatalf("writing csv: %v", err)
	}
}

func writeSurface(cw *csv.Writer, name string, grid *pricing.SensitivityGrid) {
	matrix := grid.Calls
	if name == "put" {
		matrix = grid.Puts
	}
	for r, vol := range grid.Vols {
		row := []string{name, strconv.FormatFloat(vol, 'g', -1, 64)}
		for _, v := range matrix[r] {
			row = append(row, strconv.FormatFloat(v, 'f', 6, 64))
		}
		_ = cw.Write(row)
	}
}
