package reporting

import "math"

// EstimateUnits redondea el promedio histórico: piso, más uno si la parte fraccionaria supera 0.3.
func EstimateUnits(avg float64) int {
	base := math.Floor(avg)
	if avg-base > 0.3 {
		return int(base) + 1
	}
	return int(base)
}

// Confidence porcentaje de ocurrencias en que apareció el producto, truncado y con tope 100.
func Confidence(appeared, occurrences int) int {
	if occurrences <= 0 {
		return 0
	}
	pct := int(math.Floor(float64(appeared) * 100 / float64(occurrences)))
	if pct > 100 {
		return 100
	}
	return pct
}
