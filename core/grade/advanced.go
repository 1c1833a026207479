package grade

// Statuses
const (
	StatusExcellent = "Excellent"
	StatusGood      = "Good"
	StatusPass      = "Pass"
	StatusFail      = "Fail"
)

// AdvancedCalculator extends Calculator with a status for an average score.
type AdvancedCalculator struct {
	Calculator
}

var _ Rater = AdvancedCalculator{}

func NewAdvancedCalculator() AdvancedCalculator {
	return AdvancedCalculator{}
}

func (AdvancedCalculator) Status(average float64) string {
	switch {
	case average >= 85:
		return StatusExcellent
	case average >= 70:
		return StatusGood
	case average >= 60:
		return StatusPass
	default:
		return StatusFail
	}
}
