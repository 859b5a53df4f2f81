package kernel

import "math"

// Round3 rounds a monetary amount to 3 decimal places. All fee and solde
// outputs of the settlement calculators pass through this helper so that
// persisted amounts match across calculators.
func Round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
