package activity

// DefaultWeightKg is the body weight assumed when the caller does not
// provide one.
const DefaultWeightKg = 70

// AveragePace returns the average pace in seconds per kilometer. A zero
// distance yields the 0 sentinel ("pace undefined") rather than dividing
// by zero.
func AveragePace(durationSec, distanceM float64) float64 {
	if distanceM == 0 {
		return 0
	}
	return durationSec / (distanceM / 1000)
}

// EstimatedCalories returns the estimated energy expenditure in kcal:
// MET x weight x duration in hours. The distance argument is accepted for
// interface symmetry but does not enter the formula, so sessions of equal
// duration and different intensity estimate the same. Weights <= 0 fall
// back to DefaultWeightKg.
func EstimatedCalories(t Type, durationSec, distanceM, weightKg float64) float64 {
	if weightKg <= 0 {
		weightKg = DefaultWeightKg
	}
	return t.MET() * weightKg * (durationSec / 3600)
}
