package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/rightdoers/doers-matcher/internal/matcher"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

func TestLoadProfileDefaults(t *testing.T) {
	profile, err := loadProfile("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(profile, matcher.DefaultProfile()) {
		t.Fatalf("expected defaults, got %+v", profile)
	}
}

func TestLoadProfile(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		check   func(t *testing.T, p matcher.ProfileMatchInput)
		wantErr bool
	}{
		{
			name: "yaml keeps interest order and defaults",
			file: "profile.yaml",
			content: `doers_score: 720
skills: [Python, SQL]
career_interests:
  Social: 60
  Investigative: 90
salary_expectation_min: 500000
`,
			check: func(t *testing.T, p matcher.ProfileMatchInput) {
				if p.DoersScore != 720 || p.AdaptiveLevel != matcher.LevelAssociate || p.PreferredLocation != "India" {
					t.Fatalf("unexpected profile: %+v", p)
				}
				want := matcher.Interests{{Name: "Social", Score: 60}, {Name: "Investigative", Score: 90}}
				if !reflect.DeepEqual(p.CareerInterests, want) {
					t.Fatalf("unexpected interests: %+v", p.CareerInterests)
				}
				if p.SalaryExpectationMin == nil || *p.SalaryExpectationMin != 500000 {
					t.Fatalf("unexpected salary: %v", p.SalaryExpectationMin)
				}
			},
		},
		{
			name:    "json",
			file:    "profile.json",
			content: `{"adaptive_level": "EXPERT", "career_interests": {"Realistic": 70, "Artistic": 80}}`,
			check: func(t *testing.T, p matcher.ProfileMatchInput) {
				if p.AdaptiveLevel != matcher.LevelExpert {
					t.Fatalf("unexpected level: %s", p.AdaptiveLevel)
				}
				if p.CareerInterests[0].Name != "Realistic" {
					t.Fatalf("unexpected interests order: %+v", p.CareerInterests)
				}
			},
		},
		{
			name:    "doers score out of range",
			file:    "profile.yaml",
			content: "doers_score: 1200\n",
			wantErr: true,
		},
		{
			name:    "interest score out of range",
			file:    "profile.yaml",
			content: "career_interests:\n  Social: 150\n",
			wantErr: true,
		},
		{
			name:    "not a mapping",
			file:    "profile.yaml",
			content: "- a\n- b\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile, err := loadProfile(writeFile(t, tt.file, tt.content))
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			tt.check(t, profile)
		})
	}
}

func TestLoadProfileMissingFile(t *testing.T) {
	if _, err := loadProfile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing profile")
	}
}

func TestLoadJobs(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantIDs []string
	}{
		{
			name:    "yaml list",
			content: "- id: a\n  title: Data Analyst\n- id: b\n  title: Courier\n",
			wantIDs: []string{"a", "b"},
		},
		{
			name:    "wrapped json",
			content: `{"jobs": [{"id": "c", "salary_min": "oops"}]}`,
			wantIDs: []string{"c"},
		},
		{
			name:    "empty document",
			content: "",
			wantIDs: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := loadJobs(writeFile(t, "jobs.yaml", tt.content))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			ids := make([]string, 0, len(records))
			for _, record := range records {
				ids = append(ids, record.ID)
				if record.SalaryMin != nil {
					t.Fatalf("expected malformed salary to be dropped, got %d", *record.SalaryMin)
				}
			}
			if !reflect.DeepEqual(ids, tt.wantIDs) {
				t.Fatalf("expected %v, got %v", tt.wantIDs, ids)
			}
		})
	}
}

func TestWriteOutput(t *testing.T) {
	ranked := []matcher.RankedJob{{
		JobRecord:      matcher.JobRecord{ID: "a", Title: "Data Analyst"},
		MatchScore:     76,
		Recommendation: matcher.GoodMatch,
	}}

	var yamlOut bytes.Buffer
	if err := writeOutput(&yamlOut, formatYAML, ranked); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(yamlOut.String(), "- id: a\n") || !strings.Contains(yamlOut.String(), "match_score: 76") {
		t.Fatalf("unexpected yaml output:\n%s", yamlOut.String())
	}

	var jsonOut bytes.Buffer
	if err := writeOutput(&jsonOut, formatJSON, ranked); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(jsonOut.String(), `"recommendation": "good_match"`) {
		t.Fatalf("unexpected json output:\n%s", jsonOut.String())
	}

	if err := writeOutput(&bytes.Buffer{}, "xml", ranked); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestValidateConfig(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Search:  &SearchConfig{Location: "India", Page: 1},
			Filters: &FiltersConfig{MinimumMatchScore: 60},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "missing search", mutate: func(c *Config) { c.Search = nil }, wantErr: "Search"},
		{name: "page below one", mutate: func(c *Config) { c.Search.Page = 0 }, wantErr: "Page"},
		{name: "minimum score too high", mutate: func(c *Config) { c.Filters.MinimumMatchScore = 101 }, wantErr: "MinimumMatchScore"},
		{name: "empty company", mutate: func(c *Config) { c.Filters.ExcludedCompanies = []string{""} }, wantErr: "ExcludedCompanies"},
		{
			name:    "bad date posted",
			mutate:  func(c *Config) { c.Sources = &SourcesConfig{JSearch: &JSearchConfig{DatePosted: "yesterday"}} },
			wantErr: "DatePosted",
		},
		{
			name:    "bad country",
			mutate:  func(c *Config) { c.Sources = &SourcesConfig{Adzuna: &AdzunaConfig{Country: "india"}} },
			wantErr: "Country",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := valid()
			tt.mutate(config)

			err := validateConfig(config)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error mentioning %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestSelectJobs(t *testing.T) {
	records := []matcher.JobRecord{{ID: "a"}, {ID: "b"}}

	all, err := selectJobs(records, "")
	if err != nil || len(all) != 2 {
		t.Fatalf("expected all jobs, got %v, %v", all, err)
	}

	one, err := selectJobs(records, "b")
	if err != nil || len(one) != 1 || one[0].ID != "b" {
		t.Fatalf("expected job b, got %v, %v", one, err)
	}

	if _, err := selectJobs(records, "c"); err == nil {
		t.Fatal("expected error for unknown id")
	}
}

func TestNewAggregatorReadsKeyFiles(t *testing.T) {
	t.Setenv("RAPIDAPI_KEY", "")
	t.Setenv("ADZUNA_APP_KEY", "")

	keyFile := writeFile(t, "rapidapi", "secret\n")
	config := &Config{Sources: &SourcesConfig{JSearch: &JSearchConfig{APIKeyFile: keyFile}}}

	if _, err := newAggregator(config, zap.NewNop()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	config.Sources.JSearch.APIKeyFile = filepath.Join(t.TempDir(), "missing")
	if _, err := newAggregator(config, zap.NewNop()); err == nil {
		t.Fatal("expected error for missing key file")
	}

	if _, err := newAggregator(&Config{}, zap.NewNop()); err != nil {
		t.Fatalf("sources are optional, got %v", err)
	}
}

func TestPrepareFilters(t *testing.T) {
	profile := matcher.DefaultProfile()
	config := &Config{Filters: &FiltersConfig{RemoteOnly: true}}

	statuses := prepareFilters(config, matcher.New(nil), &profile, zap.NewNop()).Describe()

	names := make([]string, 0, len(statuses))
	for _, status := range statuses {
		names = append(names, status.Name)
	}
	want := []string{"remote_only", "excluded_companies", "exclude_file", "match_fit"}
	if !reflect.DeepEqual(names, want) {
		t.Fatalf("expected %v, got %v", want, names)
	}
	if statuses[3].Enabled {
		t.Fatal("match filter must be disabled without a minimum score")
	}
}

func TestRankedRecords(t *testing.T) {
	ranked := []matcher.RankedJob{{JobRecord: matcher.JobRecord{ID: "x"}}, {JobRecord: matcher.JobRecord{ID: "y"}}}
	records := rankedRecords(ranked)
	if len(records) != 2 || records[1].ID != "y" {
		t.Fatalf("unexpected records: %+v", records)
	}
}
