package jobsource

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdzunaSearch(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/in/search/1", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "id", q.Get("app_id"))
		assert.Equal(t, "key", q.Get("app_key"))
		assert.Equal(t, "20", q.Get("results_per_page"))
		assert.Equal(t, "golang", q.Get("what"))
		assert.Equal(t, "Pune", q.Get("where"))
		assert.Equal(t, "1", q.Get("full_time"))
		assert.False(t, q.Has("part_time"))
		assert.False(t, q.Has("salary_min"))
		_, _ = w.Write([]byte(`{"results": [
			{
				"id": 4123456789,
				"title": "Remote Go Developer",
				"company": {"display_name": "Acme"},
				"location": {"display_name": "Pune, Maharashtra"},
				"description": "Build services",
				"salary_min": 950000.5,
				"salary_max": 0,
				"redirect_url": "https://adzuna/apply",
				"created": "2026-02-01T10:00:00Z"
			},
			{
				"id": "77",
				"title": "Backend Engineer",
				"company": {},
				"location": {"display_name": "Pune"}
			}
		]}`))
	}))
	defer server.Close()

	source := NewAdzuna(nil, AdzunaConfig{AppID: "id", AppKey: "key", BaseURL: server.URL, FullTime: true})

	jobs, err := source.Search(context.Background(), Query{Text: "golang", Location: "Pune"})
	require.NoError(t, err)
	require.Len(t, jobs, 2)

	first := jobs[0]
	assert.Equal(t, "adzuna_4123456789", first.ID)
	assert.Equal(t, "4123456789", first.SourceJobID)
	assert.Equal(t, "Acme", first.CompanyName)
	assert.Equal(t, "Pune, Maharashtra", first.Location)
	assert.True(t, first.IsRemote)
	assert.Equal(t, "India", first.Country)
	require.NotNil(t, first.SalaryMin)
	assert.Equal(t, 950000, *first.SalaryMin)
	assert.Nil(t, first.SalaryMax)
	assert.Equal(t, "https://adzuna/apply", first.ApplyURL)
	assert.Equal(t, "2026-02-01T10:00:00Z", first.PostedDate)

	second := jobs[1]
	assert.Equal(t, "adzuna_77", second.ID)
	assert.False(t, second.IsRemote)
	assert.Empty(t, second.CompanyName)
}

func TestAdzunaRequiresBothCredentials(t *testing.T) {
	t.Parallel()

	source := NewAdzuna(nil, AdzunaConfig{AppID: "id"})
	assert.False(t, source.Configured())

	jobs, err := source.Search(context.Background(), Query{Text: "golang"})
	require.NoError(t, err)
	assert.Empty(t, jobs)
}

func TestAdzunaSearchFailure(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	source := NewAdzuna(nil, AdzunaConfig{AppID: "id", AppKey: "key", BaseURL: server.URL})
	_, err := source.Search(context.Background(), Query{Text: "golang"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "adzuna search")
}
