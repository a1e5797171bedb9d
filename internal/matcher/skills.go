package matcher

import (
	"math"
	"strings"
)

const maxSkillReasons = 5

type skillBucket struct {
	name     string
	keywords []string
}

// skillBuckets is consulted when a job does not list its required skills.
var skillBuckets = []skillBucket{
	{"Fashion Design", []string{"fashion", "design", "apparel", "clothing", "textile", "garment"}},
	{"Software Development", []string{"software", "developer", "programming", "coding", "engineer"}},
	{"Data Analysis", []string{"data", "analyst", "analytics", "statistics", "excel", "sql"}},
	{"Marketing", []string{"marketing", "advertising", "brand", "digital", "social media"}},
	{"Management", []string{"manager", "management", "lead", "supervisor", "director"}},
	{"Sales", []string{"sales", "business development", "account", "client"}},
	{"Healthcare", []string{"health", "medical", "nursing", "hospital", "patient"}},
	{"Education", []string{"teacher", "education", "training", "instructor", "tutor"}},
	{"Finance", []string{"finance", "accounting", "banking", "investment", "financial"}},
	{"Engineering", []string{"engineer", "mechanical", "electrical", "civil", "technical"}},
}

// ScoreSkills scores profile skills against a job. When the job has no
// required skills they are inferred from the title and description.
func ScoreSkills(profileSkills, jobSkills []string, title, description string) (int, []string) {
	if len(jobSkills) == 0 {
		return scoreSkillsByKeywords(profileSkills, title, description)
	}

	jobLower := lowerAll(jobSkills)

	var matched []string
	for _, skill := range lowerAll(profileSkills) {
		for _, jobSkill := range jobLower {
			if strings.Contains(jobSkill, skill) || strings.Contains(skill, jobSkill) {
				// The lowercased form is reported here, unlike keyword mode.
				matched = append(matched, skill)
				break
			}
		}
	}

	return ratioScore(len(matched), len(jobLower)), skillReasons(matched)
}

func scoreSkillsByKeywords(profileSkills []string, title, description string) (int, []string) {
	if len(profileSkills) == 0 {
		return 50, []string{"Skills not specified - general match"}
	}

	text := strings.ToLower(title + " " + description)

	var matched []string
	for _, skill := range profileSkills {
		lower := strings.ToLower(skill)
		if strings.Contains(text, lower) {
			matched = append(matched, skill)
			continue
		}

		for _, bucket := range skillBuckets {
			related := strings.Contains(strings.ToLower(bucket.name), lower) || containsAny(lower, bucket.keywords)
			if related && containsAny(text, bucket.keywords) {
				matched = append(matched, skill)
				break
			}
		}
	}

	return ratioScore(len(matched), len(profileSkills)), skillReasons(matched)
}

func ratioScore(matched, total int) int {
	return int(math.Min(100, float64(matched)/float64(max(1, total))*100))
}

func skillReasons(matched []string) []string {
	reasons := make([]string, 0, min(len(matched), maxSkillReasons))
	for _, skill := range matched[:min(len(matched), maxSkillReasons)] {
		reasons = append(reasons, "Matched skill: "+skill)
	}
	return reasons
}

func lowerAll(values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strings.ToLower(v)
	}
	return out
}

// containsAny reports whether any of the needles occurs in text.
func containsAny(text string, needles []string) bool {
	for _, needle := range needles {
		if strings.Contains(text, needle) {
			return true
		}
	}
	return false
}
