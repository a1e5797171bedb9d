package jobsource

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/rightdoers/doers-matcher/internal/logger"
	"github.com/rightdoers/doers-matcher/internal/utils"
)

const (
	jsearchURL  = "https://jsearch.p.rapidapi.com"
	jsearchHost = "jsearch.p.rapidapi.com"
)

var jsearchEmploymentTypes = map[string]string{
	"FULLTIME":   "full-time",
	"PARTTIME":   "part-time",
	"CONTRACTOR": "contract",
	"INTERN":     "internship",
}

type JSearchConfig struct {
	APIKey string
	// BaseURL overrides the public endpoint.
	BaseURL string
	// NumPages defaults to 1.
	NumPages int
	// DatePosted is one of all, today, 3days, week, month. Defaults to all.
	DatePosted      string
	RemoteOnly      bool
	EmploymentTypes string
	RequestsPerSec  float64
}

// JSearch queries the RapidAPI JSearch aggregator.
type JSearch struct {
	config JSearchConfig
	client *Client
	logger *zap.Logger
}

func NewJSearch(log *zap.Logger, cfg JSearchConfig) *JSearch {
	log = logger.WithSource(log, SourceJSearch)

	base := cfg.BaseURL
	if base == "" {
		base = jsearchURL
	}
	if cfg.NumPages <= 0 {
		cfg.NumPages = 1
	}
	if cfg.DatePosted == "" {
		cfg.DatePosted = "all"
	}

	return &JSearch{
		config: cfg,
		client: NewClient(log, base, cfg.RequestsPerSec),
		logger: log,
	}
}

func (s *JSearch) Name() string { return SourceJSearch }

func (s *JSearch) SetUserAgent(ua string) { s.client.UserAgent = ua }

func (s *JSearch) Configured() bool { return strings.TrimSpace(s.config.APIKey) != "" }

type jsearchResponse struct {
	Data []map[string]any `json:"data"`
}

type jsearchListing struct {
	JobID          string   `mapstructure:"job_id"`
	Title          string   `mapstructure:"job_title"`
	EmployerName   string   `mapstructure:"employer_name"`
	EmployerLogo   string   `mapstructure:"employer_logo"`
	City           string   `mapstructure:"job_city"`
	Country        string   `mapstructure:"job_country"`
	IsRemote       bool     `mapstructure:"job_is_remote"`
	Description    string   `mapstructure:"job_description"`
	EmploymentType string   `mapstructure:"job_employment_type"`
	MinSalary      *int     `mapstructure:"job_min_salary"`
	MaxSalary      *int     `mapstructure:"job_max_salary"`
	SalaryCurrency string   `mapstructure:"job_salary_currency"`
	SalaryPeriod   string   `mapstructure:"job_salary_period"`
	RequiredSkills []string `mapstructure:"job_required_skills"`

	RequiredExperience map[string]any `mapstructure:"job_required_experience"`
	RequiredEducation  map[string]any `mapstructure:"job_required_education"`

	ApplyLink  string `mapstructure:"job_apply_link"`
	GoogleLink string `mapstructure:"job_google_link"`
	PostedAt   string `mapstructure:"job_posted_at_datetime_utc"`
	ExpiresAt  string `mapstructure:"job_offer_expiration_datetime_utc"`
}

// Search returns the listings for q. Without an API key it logs a warning
// and returns nothing.
func (s *JSearch) Search(ctx context.Context, q Query) ([]AggregatedJob, error) {
	if !s.Configured() {
		s.logger.Warn("JSearch API key not configured")
		return nil, nil
	}

	location := q.Location
	if location == "" {
		location = "India"
	}
	page := max(q.Page, 1)

	params := url.Values{}
	params.Set("query", fmt.Sprintf("%s in %s", q.Text, location))
	params.Set("page", strconv.Itoa(page))
	params.Set("num_pages", strconv.Itoa(s.config.NumPages))
	params.Set("date_posted", s.config.DatePosted)
	if s.config.RemoteOnly {
		params.Set("remote_jobs_only", "true")
	}
	if s.config.EmploymentTypes != "" {
		params.Set("employment_types", s.config.EmploymentTypes)
	}

	headers := http.Header{}
	headers.Set("X-RapidAPI-Key", s.config.APIKey)
	headers.Set("X-RapidAPI-Host", jsearchHost)

	var response jsearchResponse
	if err := s.client.getJSON(ctx, "/search", params, headers, &response); err != nil {
		return nil, fmt.Errorf("jsearch search: %w", err)
	}

	jobs := make([]AggregatedJob, 0, len(response.Data))
	for idx, item := range response.Data {
		job, err := s.toJob(item)
		if err != nil {
			s.logger.Error("skipping malformed listing", zap.Int("index", idx), zap.Error(err))
			continue
		}
		jobs = append(jobs, job)
	}

	s.logger.Debug("got listings", zap.Int("count", len(jobs)))

	return jobs, nil
}

func (s *JSearch) toJob(item map[string]any) (AggregatedJob, error) {
	var listing jsearchListing
	if err := decode(item, &listing); err != nil {
		return AggregatedJob{}, err
	}

	job := newJob(SourceJSearch, listing.JobID)
	job.Title = listing.Title
	job.CompanyName = listing.EmployerName
	job.CompanyLogo = listing.EmployerLogo
	job.IsRemote = listing.IsRemote
	job.Description = utils.TruncateRunes(listing.Description, maxDescriptionLength)
	job.JobType = employmentType(listing.EmploymentType)
	job.SalaryMin = listing.MinSalary
	job.SalaryMax = listing.MaxSalary
	job.ApplyURL = listing.ApplyLink
	job.SourceURL = listing.GoogleLink
	job.PostedDate = listing.PostedAt
	job.ExpiresDate = listing.ExpiresAt

	if listing.Country != "" {
		job.Country = listing.Country
	}
	job.Location = listing.City
	if job.Location == "" {
		job.Location = job.Country
	}
	if listing.SalaryCurrency != "" {
		job.SalaryCurrency = listing.SalaryCurrency
	}
	if listing.SalaryPeriod != "" {
		job.SalaryPeriod = listing.SalaryPeriod
	}
	if listing.RequiredSkills != nil {
		job.RequiredSkills = listing.RequiredSkills
	}
	// An empty requirement object means the requirement is unknown.
	if exp := listing.RequiredExperience; len(exp) > 0 {
		months, _ := toInt(exp["required_experience_in_months"])
		years := months / 12
		job.RequiredExperienceYears = &years
	}
	if level, ok := listing.RequiredEducation["required_education_level"].(string); ok {
		job.RequiredEducation = level
	}

	return job, nil
}

func employmentType(value string) string {
	if mapped, ok := jsearchEmploymentTypes[value]; ok {
		return mapped
	}
	return "full-time"
}
