package matcher

import (
	"fmt"
	"math"
)

type experienceBand struct {
	min, max int
}

var levelBands = map[AdaptiveLevel]experienceBand{
	LevelPara:         {0, 1},
	LevelAssociate:    {1, 3},
	LevelManager:      {3, 6},
	LevelProfessional: {6, 10},
	LevelExpert:       {10, 20},
}

var defaultBand = experienceBand{0, 5}

// midpoint is the representative experience of a band in years.
func (b experienceBand) midpoint() float64 {
	return float64(b.min+b.max) / 2
}

// ScoreLevel compares the profile's experience band with the years a job
// asks for. jobLevel is accepted for API compatibility and not consulted.
func ScoreLevel(level AdaptiveLevel, experienceYears *int, jobLevel string) (int, []string) {
	_ = jobLevel

	band, ok := levelBands[level]
	if !ok {
		band = defaultBand
	}

	if experienceYears == nil {
		return 70, []string{"Experience requirement not specified"}
	}

	diff := math.Abs(band.midpoint() - float64(*experienceYears))

	switch {
	case diff <= 1:
		return 100, []string{fmt.Sprintf("Perfect experience match: %s level", level)}
	case diff <= 2:
		return 80, []string{fmt.Sprintf("Good experience match: %s level", level)}
	case diff <= 3:
		return 60, []string{"Stretch role: May need skill development"}
	default:
		return 40, []string{"Significant experience gap: Consider skill building first"}
	}
}
