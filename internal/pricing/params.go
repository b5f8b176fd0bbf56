package pricing

import "fmt"

// OptionParams holds the five Black-Scholes inputs for a European option.
type OptionParams struct {
	Spot         float64 `json:"spot"`           // current price of the underlying
	Strike       float64 `json:"strike"`         // exercise price
	TimeToExpiry float64 `json:"time_to_expiry"` // remaining life in years
	RiskFreeRate float64 `json:"risk_free_rate"` // continuously compounded, may be negative
	Volatility   float64 `json:"volatility"`     // annualized, as a decimal (0.20 = 20%)
}

// PriceResult holds the theoretical call and put prices for one parameter set.
// Both values are non-negative up to floating-point error; callers that need
// a hard guarantee should clamp tiny negatives to zero themselves.
type PriceResult struct {
	Call float64 `json:"call"`
	Put  float64 `json:"put"`
}

// InvalidParameterError reports a pricing precondition violation. Field names
// the offending input and Constraint states what was required of it, so the
// caller can surface a corrective message.
type InvalidParameterError struct {
	Field      string
	Constraint string
	Value      float64
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid parameter %s: must be %s, got %g", e.Field, e.Constraint, e.Value)
}

// Validate checks the Black-Scholes preconditions: spot, strike, time to
// expiry and volatility must all be strictly positive. The risk-free rate is
// unconstrained (negative rates are valid).
func (p OptionParams) Validate() error {
	checks := []struct {
		field string
		value float64
	}{
		{"spot", p.Spot},
		{"strike", p.Strike},
		{"timeToExpiry", p.TimeToExpiry},
		{"volatility", p.Volatility},
	}
	for _, c := range checks {
		if c.value <= 0 {
			return &InvalidParameterError{Field: c.field, Constraint: "> 0", Value: c.value}
		}
	}
	return nil
}
