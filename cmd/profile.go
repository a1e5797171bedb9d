package cmd

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/rightdoers/doers-matcher/internal/jobsource"
	"github.com/rightdoers/doers-matcher/internal/matcher"
)

// profileBounds are the ranges a profile file must respect. The scorer
// itself accepts any values.
type profileBounds struct {
	DoersScore      int   `validate:"gte=0,lte=1000"`
	EfficiencyValue int   `validate:"gte=0,lte=100"`
	Interests       []int `validate:"dive,gte=0,lte=100"`
	SalaryMin       *int  `validate:"omitempty,gte=0"`
	SalaryMax       *int  `validate:"omitempty,gte=0"`
}

// loadProfile reads a profile from a YAML or JSON file on top of the
// platform defaults. An empty path yields the defaults.
func loadProfile(path string) (matcher.ProfileMatchInput, error) {
	profile := matcher.DefaultProfile()

	path = strings.TrimSpace(path)
	if path == "" {
		return profile, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return profile, fmt.Errorf("reading profile: %w", err)
	}

	// JSON documents are valid YAML, so one decoder serves both formats
	// and keeps career interests in document order.
	if err := yaml.Unmarshal(data, &profile); err != nil {
		return profile, fmt.Errorf("decoding profile %s: %w", path, err)
	}

	bounds := profileBounds{
		DoersScore:      profile.DoersScore,
		EfficiencyValue: profile.EfficiencyValue,
		SalaryMin:       profile.SalaryExpectationMin,
		SalaryMax:       profile.SalaryExpectationMax,
	}
	for _, interest := range profile.CareerInterests {
		bounds.Interests = append(bounds.Interests, interest.Score)
	}

	if err := validate.Struct(bounds); err != nil {
		return profile, fmt.Errorf("invalid profile %s: %w", path, err)
	}

	return profile, nil
}

// loadJobs reads job records from a YAML or JSON list. A document with a
// top level "jobs" key is accepted too.
func loadJobs(path string) ([]matcher.JobRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading jobs: %w", err)
	}

	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("decoding jobs %s: %w", path, err)
	}

	var raw []map[string]any
	if len(node.Content) > 0 {
		doc := node.Content[0]
		if doc.Kind == yaml.MappingNode {
			var wrapped struct {
				Jobs []map[string]any `yaml:"jobs"`
			}
			if err := doc.Decode(&wrapped); err != nil {
				return nil, fmt.Errorf("decoding jobs %s: %w", path, err)
			}
			raw = wrapped.Jobs
		} else if err := doc.Decode(&raw); err != nil {
			return nil, fmt.Errorf("decoding jobs %s: %w", path, err)
		}
	}

	records, err := jobsource.DecodeRecords(raw)
	if err != nil {
		return nil, fmt.Errorf("decoding jobs %s: %w", path, err)
	}

	return records, nil
}
