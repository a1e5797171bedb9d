// Package matcher scores job postings against a candidate profile with a
// fixed weighted heuristic and ranks them by the result.
//
// Scoring is pure: a Matcher holds no state besides its logger and is safe
// for concurrent use.
package matcher

import (
	"sort"

	"go.uber.org/zap"
)

type Matcher struct {
	logger *zap.Logger
}

// New returns a Matcher. A nil logger disables logging.
func New(logger *zap.Logger) *Matcher {
	return &Matcher{logger: logger}
}

func (m *Matcher) log() *zap.Logger {
	if m == nil || m.logger == nil {
		return zap.NewNop()
	}
	return m.logger
}

// Score matches a single job against the profile.
func (m *Matcher) Score(profile ProfileMatchInput, job JobRecord) JobMatchResult {
	skill, skillReasons := ScoreSkills(profile.Skills, job.RequiredSkills, job.Title, job.Description)
	interest, interestReasons := ScoreInterests(profile.CareerInterests, job.Title, job.Description)
	level, levelReasons := ScoreLevel(profile.AdaptiveLevel, job.RequiredExperienceYears, experienceLevel(job))
	salary, salaryReasons := ScoreSalary(
		profile.SalaryExpectationMin,
		profile.SalaryExpectationMax,
		job.SalaryMin,
		job.SalaryMax,
	)

	overall, recommendation, confidence := Combine(skill, interest, level, salary, profile.DoersScore)

	reasons := make([]string, 0, len(skillReasons)+len(interestReasons)+len(levelReasons)+len(salaryReasons))
	reasons = append(reasons, skillReasons...)
	reasons = append(reasons, interestReasons...)
	reasons = append(reasons, levelReasons...)
	reasons = append(reasons, salaryReasons...)
	if len(reasons) > maxMatchReasons {
		reasons = reasons[:maxMatchReasons]
	}

	m.log().Debug("job scored",
		zap.String("job_id", job.ID),
		zap.Int("skill", skill),
		zap.Int("interest", interest),
		zap.Int("level", level),
		zap.Int("salary", salary),
		zap.Int("overall", overall),
		zap.String("recommendation", string(recommendation)),
	)

	return JobMatchResult{
		JobID:                  job.ID,
		JobTitle:               job.Title,
		CompanyName:            job.CompanyName,
		OverallMatchScore:      overall,
		SkillMatchScore:        skill,
		InterestMatchScore:     interest,
		LevelMatchScore:        level,
		SalaryMatchScore:       salary,
		MatchReasons:           reasons,
		ImprovementSuggestions: Suggestions(skill, interest, level, salary),
		Recommendation:         recommendation,
		Confidence:             confidence,
	}
}

// Rank scores every job and returns them by match score, best first.
// Ties keep their input order; duplicates are scored independently.
func (m *Matcher) Rank(profile ProfileMatchInput, jobs []JobRecord) []RankedJob {
	ranked := make([]RankedJob, 0, len(jobs))
	for _, job := range jobs {
		result := m.Score(profile, job)
		ranked = append(ranked, RankedJob{
			JobRecord:              job,
			MatchScore:             result.OverallMatchScore,
			SkillMatch:             result.SkillMatchScore,
			InterestMatch:          result.InterestMatchScore,
			LevelMatch:             result.LevelMatchScore,
			SalaryMatch:            result.SalaryMatchScore,
			MatchReasons:           result.MatchReasons,
			ImprovementSuggestions: result.ImprovementSuggestions,
			Recommendation:         result.Recommendation,
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].MatchScore > ranked[j].MatchScore
	})

	m.log().Debug("jobs ranked", zap.Int("count", len(ranked)))

	return ranked
}

func experienceLevel(job JobRecord) string {
	if job.ExperienceLevel == "" {
		return "entry"
	}
	return job.ExperienceLevel
}
