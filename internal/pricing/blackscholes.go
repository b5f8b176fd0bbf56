package pricing

import "math"

// Price computes the theoretical European call and put prices for params
// using the closed-form Black-Scholes model:
//
//	d1 = (ln(S/K) + (r + σ²/2)·T) / (σ·√T)
//	d2 = d1 - σ·√T
//	call = S·Φ(d1) - K·e^(-rT)·Φ(d2)
//	put  = K·e^(-rT)·Φ(-d2) - S·Φ(-d1)
//
// It returns an *InvalidParameterError if any of spot, strike, time to expiry
// or volatility is non-positive. Pure function: no state, no side effects,
// every call recomputes from its inputs.
func Price(params OptionParams) (PriceResult, error) {
	if err := params.Validate(); err != nil {
		return PriceResult{}, err
	}

	sqrtT := math.Sqrt(params.TimeToExpiry)
	d1 := (math.Log(params.Spot/params.Strike) +
		(params.RiskFreeRate+0.5*params.Volatility*params.Volatility)*params.TimeToExpiry) /
		(params.Volatility * sqrtT)
	d2 := d1 - params.Volatility*sqrtT

	discount := math.Exp(-params.RiskFreeRate * params.TimeToExpiry)

	return PriceResult{
		Call: params.Spot*normCDF(d1) - params.Strike*discount*normCDF(d2),
		Put:  params.Strike*discount*normCDF(-d2) - params.Spot*normCDF(-d1),
	}, nil
}

// normCDF computes the standard normal cumulative distribution function via
// the error function. math.Erf is correctly rounded, which keeps the absolute
// error below 1e-10 across the |x| <= 10 range the pricer produces; this is
// why no hand-rolled series approximation is used here.
func normCDF(x float64) float64 {
	return 0.5 * (1.0 + math.Erf(x/math.Sqrt2))
}
