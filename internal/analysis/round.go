package analysis

import "math"

// roundTo rounds v to the given number of decimal places, halves away from zero.
func roundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

// percentage returns part/total*100 rounded to places decimals.
// A zero or negative total yields 0.
func percentage(part, total, places int) float64 {
	if total <= 0 {
		return 0
	}
	return roundTo(float64(part)/float64(total)*100, places)
}
