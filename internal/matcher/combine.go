package matcher

import "math"

const (
	skillWeight    = 0.35
	interestWeight = 0.30
	levelWeight    = 0.20
	salaryWeight   = 0.15

	maxMatchReasons = 7
	maxConfidence   = 0.95
)

// Combine folds the four sub-scores into the overall score, applies the
// DoersScore bonus and derives the recommendation and confidence.
func Combine(skill, interest, level, salary, doersScore int) (int, Recommendation, float64) {
	// Each product is converted on its own so it is rounded before the
	// sum and never fused into a multiply-add.
	weighted := float64(float64(skill)*skillWeight) +
		float64(float64(interest)*interestWeight) +
		float64(float64(level)*levelWeight) +
		float64(float64(salary)*salaryWeight)

	overall := int(math.Floor(weighted))

	switch {
	case doersScore >= 750:
		overall = min(100, overall+10)
	case doersScore >= 650:
		overall = min(100, overall+5)
	}

	return overall, Recommend(overall), math.Min(maxConfidence, float64(overall)/100)
}

// Recommend buckets an overall score.
func Recommend(overall int) Recommendation {
	switch {
	case overall >= 80:
		return PerfectMatch
	case overall >= 60:
		return GoodMatch
	case overall >= 40:
		return StretchRole
	default:
		return DevelopFirst
	}
}

// Suggestions lists improvement hints for every sub-score under its
// threshold, in skill, interest, level, salary order.
func Suggestions(skill, interest, level, salary int) []string {
	suggestions := make([]string, 0, 4)
	if skill < 60 {
		suggestions = append(suggestions, "Consider developing skills mentioned in job requirements")
	}
	if interest < 50 {
		suggestions = append(suggestions, "Explore roles aligned with your top career interests")
	}
	if level < 60 {
		suggestions = append(suggestions, "Build experience through internships or projects")
	}
	if salary < 50 {
		suggestions = append(suggestions, "Negotiate based on your DoersScore™ and proven skills")
	}
	return suggestions
}
