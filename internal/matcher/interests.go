package matcher

import (
	"fmt"
	"strings"
)

const (
	maxInterestReasons = 3
	// Interests below this affinity are ignored.
	significantInterest = 50
)

var interestKeywords = map[string][]string{
	"Artistic":      {"designer", "creative", "artist", "writer", "content"},
	"Enterprising":  {"manager", "sales", "business", "executive", "entrepreneur"},
	"Social":        {"counselor", "teacher", "hr", "social", "community"},
	"Realistic":     {"engineer", "technician", "mechanic", "operator", "driver"},
	"Investigative": {"researcher", "analyst", "scientist", "data", "investigator"},
	"Conventional":  {"accountant", "administrator", "clerk", "assistant", "coordinator"},
}

// ScoreInterests scores how well the job text aligns with the profile's
// significant career interests.
func ScoreInterests(interests Interests, title, description string) (int, []string) {
	if len(interests) == 0 {
		return 50, []string{"Career interests not specified"}
	}

	text := strings.ToLower(title + " " + description)

	var (
		matched []Interest
		total   int
	)
	for _, interest := range interests {
		if interest.Score < significantInterest {
			continue
		}
		if containsAny(text, interestKeywords[interest.Name]) {
			matched = append(matched, interest)
			total += interest.Score
		}
	}

	if len(matched) == 0 {
		return 30, []string{"Job doesn't align with top career interests"}
	}

	score := int(float64(total) / float64(len(matched)))

	reasons := make([]string, 0, min(len(matched), maxInterestReasons))
	for _, interest := range matched[:min(len(matched), maxInterestReasons)] {
		reasons = append(reasons, fmt.Sprintf("Aligns with %s interest (%d%%)", interest.Name, interest.Score))
	}

	return score, reasons
}
