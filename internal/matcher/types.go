package matcher

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// AdaptiveLevel is the seniority ladder of a profile.
type AdaptiveLevel string

const (
	LevelPara         AdaptiveLevel = "PARA"
	LevelAssociate    AdaptiveLevel = "ASSOCIATE"
	LevelManager      AdaptiveLevel = "MANAGER"
	LevelProfessional AdaptiveLevel = "PROFESSIONAL"
	LevelExpert       AdaptiveLevel = "EXPERT"
)

// Recommendation is a coarse bucket of the overall match score.
type Recommendation string

const (
	PerfectMatch Recommendation = "perfect_match"
	GoodMatch    Recommendation = "good_match"
	StretchRole  Recommendation = "stretch_role"
	DevelopFirst Recommendation = "develop_first"
)

// Interest is a single career interest with its affinity score.
type Interest struct {
	Name  string
	Score int
}

// Interests keeps career interests in the order they were declared.
// Reasons are reported in that order, so it must survive decoding.
type Interests []Interest

// ProfileMatchInput is the scorable snapshot of a candidate.
type ProfileMatchInput struct {
	DoersScore      int           `json:"doers_score" yaml:"doers_score"`
	EfficiencyValue int           `json:"efficiency_value" yaml:"efficiency_value"`
	AdaptiveLevel   AdaptiveLevel `json:"adaptive_level" yaml:"adaptive_level"`

	CareerInterests Interests `json:"career_interests" yaml:"career_interests"`

	Skills []string `json:"skills" yaml:"skills"`
	// SkillsScores is part of the profile contract but not consulted by scoring.
	SkillsScores map[string]int `json:"skills_scores,omitempty" yaml:"skills_scores,omitempty"`

	PreferredLocation    string `json:"preferred_location" yaml:"preferred_location"`
	SalaryExpectationMin *int   `json:"salary_expectation_min,omitempty" yaml:"salary_expectation_min,omitempty"`
	SalaryExpectationMax *int   `json:"salary_expectation_max,omitempty" yaml:"salary_expectation_max,omitempty"`
	OpenToRemote         bool   `json:"open_to_remote" yaml:"open_to_remote"`
}

// DefaultProfile returns a profile with the platform defaults filled in.
func DefaultProfile() ProfileMatchInput {
	return ProfileMatchInput{
		DoersScore:        650,
		EfficiencyValue:   70,
		AdaptiveLevel:     LevelAssociate,
		PreferredLocation: "India",
		OpenToRemote:      true,
	}
}

// JobRecord is the scorable snapshot of a job posting. Absent optional
// fields are nil.
type JobRecord struct {
	ID          string `json:"id" yaml:"id" mapstructure:"id"`
	Title       string `json:"title" yaml:"title" mapstructure:"title"`
	CompanyName string `json:"company_name" yaml:"company_name" mapstructure:"company_name"`
	Description string `json:"description" yaml:"description" mapstructure:"description"`

	RequiredSkills          []string `json:"required_skills" yaml:"required_skills" mapstructure:"required_skills"`
	RequiredExperienceYears *int     `json:"required_experience_years,omitempty" yaml:"required_experience_years,omitempty" mapstructure:"required_experience_years"`
	ExperienceLevel         string   `json:"experience_level" yaml:"experience_level" mapstructure:"experience_level"`

	SalaryMin *int `json:"salary_min,omitempty" yaml:"salary_min,omitempty" mapstructure:"salary_min"`
	SalaryMax *int `json:"salary_max,omitempty" yaml:"salary_max,omitempty" mapstructure:"salary_max"`

	Location string `json:"location,omitempty" yaml:"location,omitempty" mapstructure:"location"`
	IsRemote bool   `json:"is_remote,omitempty" yaml:"is_remote,omitempty" mapstructure:"is_remote"`
	Source   string `json:"source,omitempty" yaml:"source,omitempty" mapstructure:"source"`
	ApplyURL string `json:"apply_url,omitempty" yaml:"apply_url,omitempty" mapstructure:"apply_url"`
}

// JobMatchResult is the outcome of scoring one job against one profile.
type JobMatchResult struct {
	JobID       string `json:"job_id" yaml:"job_id"`
	JobTitle    string `json:"job_title" yaml:"job_title"`
	CompanyName string `json:"company_name" yaml:"company_name"`

	OverallMatchScore  int `json:"overall_match_score" yaml:"overall_match_score"`
	SkillMatchScore    int `json:"skill_match_score" yaml:"skill_match_score"`
	InterestMatchScore int `json:"interest_match_score" yaml:"interest_match_score"`
	LevelMatchScore    int `json:"level_match_score" yaml:"level_match_score"`
	SalaryMatchScore   int `json:"salary_match_score" yaml:"salary_match_score"`

	MatchReasons           []string `json:"match_reasons" yaml:"match_reasons"`
	ImprovementSuggestions []string `json:"improvement_suggestions" yaml:"improvement_suggestions"`

	Recommendation Recommendation `json:"recommendation" yaml:"recommendation"`
	Confidence     float64        `json:"confidence" yaml:"confidence"`
}

// RankedJob is a job with its match data attached.
type RankedJob struct {
	JobRecord `yaml:",inline"`

	MatchScore             int            `json:"match_score" yaml:"match_score"`
	SkillMatch             int            `json:"skill_match" yaml:"skill_match"`
	InterestMatch          int            `json:"interest_match" yaml:"interest_match"`
	LevelMatch             int            `json:"level_match" yaml:"level_match"`
	SalaryMatch            int            `json:"salary_match" yaml:"salary_match"`
	MatchReasons           []string       `json:"match_reasons" yaml:"match_reasons"`
	ImprovementSuggestions []string       `json:"improvement_suggestions" yaml:"improvement_suggestions"`
	Recommendation         Recommendation `json:"recommendation" yaml:"recommendation"`
}

// UnmarshalYAML decodes a mapping while keeping key order. Entries whose
// score is not an integer are dropped.
func (in *Interests) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode && value.Tag == "!!null" {
		*in = nil
		return nil
	}
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("career interests: expected a mapping, got %s", value.ShortTag())
	}

	result := make(Interests, 0, len(value.Content)/2)
	for i := 0; i+1 < len(value.Content); i += 2 {
		var score int
		if err := value.Content[i+1].Decode(&score); err != nil {
			continue
		}
		result = append(result, Interest{Name: value.Content[i].Value, Score: score})
	}

	*in = result
	return nil
}

// MarshalYAML renders interests as an ordered mapping.
func (in Interests) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, interest := range in {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: interest.Name},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: fmt.Sprintf("%d", interest.Score)},
		)
	}
	return node, nil
}

// UnmarshalJSON decodes a JSON object while keeping key order.
func (in *Interests) UnmarshalJSON(data []byte) error {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return fmt.Errorf("career interests: %w", err)
	}
	if len(node.Content) == 0 {
		*in = nil
		return nil
	}
	return in.UnmarshalYAML(node.Content[0])
}

// MarshalJSON renders interests as an ordered JSON object.
func (in Interests) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, interest := range in {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(interest.Name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		fmt.Fprintf(&buf, ":%d", interest.Score)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
