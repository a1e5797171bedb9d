package jobsource

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDecodeRecordsDropsMalformedNumbers(t *testing.T) {
	t.Parallel()

	doc := `
- id: job-1
  title: Data Analyst
  company_name: Flipkart
  required_skills: [Python, SQL]
  required_experience_years: "two"
  salary_min: 800000
  salary_max: "1400000"
- id: 42
  title: Courier
  salary_min: 1.5e5
  salary_max: [1, 2]
  is_remote: true
`
	var raw []map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(doc), &raw))

	records, err := DecodeRecords(raw)
	require.NoError(t, err)
	require.Len(t, records, 2)

	first := records[0]
	assert.Equal(t, "job-1", first.ID)
	assert.Equal(t, []string{"Python", "SQL"}, first.RequiredSkills)
	assert.Nil(t, first.RequiredExperienceYears)
	require.NotNil(t, first.SalaryMin)
	assert.Equal(t, 800000, *first.SalaryMin)
	require.NotNil(t, first.SalaryMax)
	assert.Equal(t, 1400000, *first.SalaryMax)

	second := records[1]
	assert.Equal(t, "42", second.ID)
	require.NotNil(t, second.SalaryMin)
	assert.Equal(t, 150000, *second.SalaryMin)
	assert.Nil(t, second.SalaryMax)
	assert.True(t, second.IsRemote)
}

func TestDecodeRecordsFromJSON(t *testing.T) {
	t.Parallel()

	var raw []map[string]any
	require.NoError(t, json.Unmarshal([]byte(`[{"id": "a", "salary_min": null, "required_experience_years": 3}]`), &raw))

	records, err := DecodeRecords(raw)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Nil(t, records[0].SalaryMin)
	require.NotNil(t, records[0].RequiredExperienceYears)
	assert.Equal(t, 3, *records[0].RequiredExperienceYears)
}

func TestToInt(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		in     any
		want   int
		wantOK bool
	}{
		{"int", 5, 5, true},
		{"float truncates", 7.9, 7, true},
		{"json integer", json.Number("12"), 12, true},
		{"json float", json.Number("12.5"), 12, true},
		{"numeric string", " 30 ", 30, true},
		{"garbage string", "n/a", 0, false},
		{"bool", true, 0, false},
		{"nil", nil, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := toInt(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
