// Command check-cdf spot-checks pricer accuracy against reference values.
// Handy when touching anything near the normal CDF.
package main

import (
	"fmt"
	"math"
	"os"

	"github.com/tvogel/volgrid/internal/pricing"
)

func main() {
	fmt.Println("Pricer accuracy check")
	fmt.Println("=====================")

	// Reference: Hull, Options, Futures and Other Derivatives. ATM one-year
	// option, 5% rate, 20% vol.
	params := pricing.OptionParams{
		Spot:         100,
		Strike:       100,
		TimeToExpiry: 1,
		RiskFreeRate: 0.05,
		Volatility:   0.20,
	}
	expectedCall := 10.450583572185565
	expectedPut := 5.573526022256971

	result, err := pricing.Price(params)
	if err != nil {
		fmt.Printf("FAIL: %v\n", err)
		os.Exit(1)
	}

	callErr := math.Abs(result.Call - expectedCall)
	putErr := math.Abs(result.Put - expectedPut)

	fmt.Printf("call: got %.12f want %.12f (err %.2e)\n", result.Call, expectedCall, callErr)
	fmt.Printf("put:  got %.12f want %.12f (err %.2e)\n", result.Put, expectedPut, putErr)

	parity := (result.Call - result.Put) - (params.Spot - params.Strike*math.Exp(-params.RiskFreeRate*params.TimeToExpiry))
	fmt.Printf("put-call parity residual: %.2e\n", parity)

	if callErr > 1e-9 || putErr > 1e-9 || math.Abs(parity) > 1e-9 {
		fmt.Println("FAIL: accuracy outside tolerance")
		os.Exit(1)
	}
	fmt.Println("OK")
}
