// Package grade converts numeric scores into letter grades, GPAs and statuses.
//
// Calculator holds the base rules. New rules are added by embedding it in a new
// calculator (see AdvancedCalculator), never by editing it.
package grade

// Letter grades
const (
	LetterA = "A"
	LetterB = "B"
	LetterC = "C"
	LetterD = "D"
	LetterF = "F"
)

type band struct {
	min    float64 // inclusive
	letter string
	points float64
}

// bands is ordered from the highest to the lowest lower bound.
var bands = []band{
	{min: 90, letter: LetterA, points: 4.0},
	{min: 80, letter: LetterB, points: 3.0},
	{min: 70, letter: LetterC, points: 2.0},
	{min: 60, letter: LetterD, points: 1.0},
}

func bandFor(score float64) (band, bool) {
	for _, b := range bands {
		if score >= b.min {
			return b, true
		}
	}
	return band{}, false
}

type (
	// Calculator is the base letter grade & GPA calculator.
	Calculator struct{}

	// Rater is what a School needs from a calculator.
	Rater interface {
		LetterGrade(score float64) string
		GPA(grades map[string]float64) float64
		Status(average float64) string
	}
)

// LetterGrade maps a score to A (90+), B (80+), C (70+), D (60+) or F.
func (Calculator) LetterGrade(score float64) string {
	if b, ok := bandFor(score); ok {
		return b.letter
	}
	return LetterF
}

// Points maps a score to its grade points: 4.0, 3.0, 2.0, 1.0 or 0.0.
func (Calculator) Points(score float64) float64 {
	if b, ok := bandFor(score); ok {
		return b.points
	}
	return 0
}

// GPA averages the grade points of every subject. No grades means a GPA of 0.0.
func (c Calculator) GPA(grades map[string]float64) float64 {
	if len(grades) == 0 {
		return 0.0
	}
	var total float64
	for _, score := range grades {
		total += c.Points(score)
	}
	return total / float64(len(grades))
}
