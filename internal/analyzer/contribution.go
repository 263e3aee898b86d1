package analyzer

import "math"

// Contribution approximates a holding's effect on the fund's daily move:
// weight on the 0-1 scale times the holding's percent change, in percentage
// points, rounded to 4 decimals.
func Contribution(weight, changePct float64) float64 {
	return round4(weight * changePct)
}

func round4(v float64) float64 { return math.Round(v*10000) / 10000 }
