package matcher

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gopkg.in/yaml.v3"
)

func TestScoreEndToEnd(t *testing.T) {
	t.Parallel()

	profile := DefaultProfile()
	profile.Skills = []string{"Python"}

	job := JobRecord{
		ID:             "job-1",
		Title:          "Backend Engineer",
		CompanyName:    "Flipkart",
		RequiredSkills: []string{"python developer"},
	}

	result := New(nil).Score(profile, job)

	assert.Equal(t, "job-1", result.JobID)
	assert.Equal(t, "Backend Engineer", result.JobTitle)
	assert.Equal(t, "Flipkart", result.CompanyName)
	assert.Equal(t, 100, result.SkillMatchScore)
	assert.Equal(t, 50, result.InterestMatchScore)
	assert.Equal(t, 70, result.LevelMatchScore)
	assert.Equal(t, 50, result.SalaryMatchScore)
	// floor(35 + 15 + 14 + 7.5) = 71, plus 5 for a DoersScore of 650.
	assert.Equal(t, 76, result.OverallMatchScore)
	assert.Equal(t, GoodMatch, result.Recommendation)
	assert.InDelta(t, 0.76, result.Confidence, 1e-9)
	assert.Equal(t, []string{
		"Matched skill: python",
		"Career interests not specified",
		"Experience requirement not specified",
		"Salary not disclosed",
	}, result.MatchReasons)
	assert.Empty(t, result.ImprovementSuggestions)
}

func TestScoreTruncatesReasonsToSeven(t *testing.T) {
	t.Parallel()

	skills := []string{"go", "python", "sql", "docker", "kubernetes", "aws"}
	profile := ProfileMatchInput{
		DoersScore:    700,
		AdaptiveLevel: LevelManager,
		Skills:        skills,
		CareerInterests: Interests{
			{Name: "Investigative", Score: 90},
			{Name: "Realistic", Score: 80},
			{Name: "Enterprising", Score: 70},
			{Name: "Conventional", Score: 60},
		},
		SalaryExpectationMin: intPtr(1000000),
	}
	job := JobRecord{
		ID:                      "job-2",
		Title:                   "Data Engineer Manager",
		Description:             "business coordinator for platform teams",
		RequiredSkills:          skills,
		RequiredExperienceYears: intPtr(5),
		SalaryMin:               intPtr(2000000),
		SalaryMax:               intPtr(3000000),
	}

	result := New(nil).Score(profile, job)

	require.Len(t, result.MatchReasons, 7)
	assert.Equal(t, []string{
		"Matched skill: go",
		"Matched skill: python",
		"Matched skill: sql",
		"Matched skill: docker",
		"Matched skill: kubernetes",
		"Aligns with Investigative interest (90%)",
		"Aligns with Realistic interest (80%)",
	}, result.MatchReasons)
}

func TestScoreRanges(t *testing.T) {
	t.Parallel()

	m := New(nil)
	levels := []AdaptiveLevel{LevelPara, LevelAssociate, LevelManager, LevelProfessional, LevelExpert, "UNKNOWN"}
	doersScores := []int{300, 649, 650, 750, 900}
	jobs := []JobRecord{
		{},
		{Title: "Software Developer", Description: "coding in python", SalaryMin: intPtr(100)},
		{RequiredSkills: []string{"python", "sql"}, RequiredExperienceYears: intPtr(20), SalaryMax: intPtr(5000000)},
		{Title: "Creative Designer", RequiredExperienceYears: intPtr(0), SalaryMin: intPtr(300000), SalaryMax: intPtr(400000)},
	}

	for _, level := range levels {
		for _, doersScore := range doersScores {
			profile := ProfileMatchInput{
				DoersScore:           doersScore,
				AdaptiveLevel:        level,
				Skills:               []string{"Python", "Design"},
				CareerInterests:      Interests{{Name: "Artistic", Score: 100}, {Name: "Investigative", Score: 55}},
				SalaryExpectationMin: intPtr(350000),
			}
			for _, job := range jobs {
				r := m.Score(profile, job)
				for _, score := range []int{r.SkillMatchScore, r.InterestMatchScore, r.LevelMatchScore, r.SalaryMatchScore, r.OverallMatchScore} {
					assert.GreaterOrEqual(t, score, 0)
					assert.LessOrEqual(t, score, 100)
				}
				assert.GreaterOrEqual(t, r.Confidence, 0.0)
				assert.LessOrEqual(t, r.Confidence, 0.95)
				assert.LessOrEqual(t, len(r.MatchReasons), 7)
			}
		}
	}
}

func TestRankSortsDescendingAndKeepsTieOrder(t *testing.T) {
	t.Parallel()

	profile := DefaultProfile()
	profile.Skills = []string{"Python", "SQL"}

	jobs := []JobRecord{
		{ID: "weak", Title: "Delivery Executive", RequiredSkills: []string{"Bike Driving"}},
		{ID: "tie-a", Title: "Data Analyst", RequiredSkills: []string{"python"}},
		{ID: "tie-b", Title: "Data Analyst", RequiredSkills: []string{"python"}},
		{ID: "best", Title: "Data Analyst", RequiredSkills: []string{"python", "sql"}, RequiredExperienceYears: intPtr(2)},
		{ID: "tie-a", Title: "Data Analyst", RequiredSkills: []string{"python"}},
	}

	ranked := New(nil).Rank(profile, jobs)

	require.Len(t, ranked, len(jobs))
	ids := make([]string, 0, len(ranked))
	for _, job := range ranked {
		ids = append(ids, job.ID)
	}
	assert.Equal(t, []string{"best", "tie-a", "tie-b", "tie-a", "weak"}, ids)

	for i := 1; i < len(ranked); i++ {
		assert.GreaterOrEqual(t, ranked[i-1].MatchScore, ranked[i].MatchScore)
	}
	assert.Equal(t, ranked[1].MatchScore, ranked[2].MatchScore)
}

func TestRankAttachesMatchData(t *testing.T) {
	t.Parallel()

	profile := DefaultProfile()
	profile.Skills = []string{"Python"}
	job := JobRecord{ID: "job-1", Title: "Backend Engineer", RequiredSkills: []string{"python developer"}, ApplyURL: "https://example.com/apply"}

	m := New(nil)
	ranked := m.Rank(profile, []JobRecord{job})
	require.Len(t, ranked, 1)

	single := m.Score(profile, job)
	got := ranked[0]
	assert.Equal(t, job, got.JobRecord)
	assert.Equal(t, single.OverallMatchScore, got.MatchScore)
	assert.Equal(t, single.SkillMatchScore, got.SkillMatch)
	assert.Equal(t, single.InterestMatchScore, got.InterestMatch)
	assert.Equal(t, single.LevelMatchScore, got.LevelMatch)
	assert.Equal(t, single.SalaryMatchScore, got.SalaryMatch)
	assert.Equal(t, single.MatchReasons, got.MatchReasons)
	assert.Equal(t, single.Recommendation, got.Recommendation)

	data, err := json.Marshal(got)
	require.NoError(t, err)

	var flat map[string]any
	require.NoError(t, json.Unmarshal(data, &flat))
	assert.Equal(t, "job-1", flat["id"])
	assert.Equal(t, "https://example.com/apply", flat["apply_url"])
	assert.EqualValues(t, 76, flat["match_score"])
	assert.Equal(t, "good_match", flat["recommendation"])
}

func TestRankEmpty(t *testing.T) {
	t.Parallel()

	ranked := (&Matcher{}).Rank(DefaultProfile(), nil)
	assert.Empty(t, ranked)
}

func TestMatcherLogsScores(t *testing.T) {
	t.Parallel()

	core, observed := observer.New(zapcore.DebugLevel)
	m := New(zap.New(core))

	m.Rank(DefaultProfile(), []JobRecord{{ID: "a"}, {ID: "b"}})

	scored := observed.FilterMessage("job scored").All()
	require.Len(t, scored, 2)
	assert.Equal(t, "a", scored[0].ContextMap()["job_id"])
	assert.Len(t, observed.FilterMessage("jobs ranked").All(), 1)
}

func TestInterestsKeepDeclarationOrder(t *testing.T) {
	t.Parallel()

	var fromYAML struct {
		CareerInterests Interests `yaml:"career_interests"`
	}
	doc := "career_interests:\n  Social: 80\n  Artistic: 60\n  Conventional: broken\n  Investigative: 90\n"
	require.NoError(t, yaml.Unmarshal([]byte(doc), &fromYAML))
	assert.Equal(t, Interests{
		{Name: "Social", Score: 80},
		{Name: "Artistic", Score: 60},
		{Name: "Investigative", Score: 90},
	}, fromYAML.CareerInterests)

	var fromJSON ProfileMatchInput
	require.NoError(t, json.Unmarshal([]byte(`{"career_interests": {"Realistic": 70, "Enterprising": 85}}`), &fromJSON))
	assert.Equal(t, Interests{{Name: "Realistic", Score: 70}, {Name: "Enterprising", Score: 85}}, fromJSON.CareerInterests)

	encoded, err := json.Marshal(fromJSON.CareerInterests)
	require.NoError(t, err)
	assert.Equal(t, `{"Realistic":70,"Enterprising":85}`, string(encoded))
}
