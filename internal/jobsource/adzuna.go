package jobsource

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/rightdoers/doers-matcher/internal/logger"
	"github.com/rightdoers/doers-matcher/internal/utils"
)

const adzunaURL = "https://api.adzuna.com/v1/api/jobs"

type AdzunaConfig struct {
	AppID  string
	AppKey string
	// BaseURL overrides the public endpoint.
	BaseURL string
	// Country is the Adzuna country code. Defaults to "in".
	Country        string
	ResultsPerPage int
	SalaryMin      int
	FullTime       bool
	PartTime       bool
	RequestsPerSec float64
}

// Adzuna queries the Adzuna job search API.
type Adzuna struct {
	config AdzunaConfig
	client *Client
	logger *zap.Logger
}

func NewAdzuna(log *zap.Logger, cfg AdzunaConfig) *Adzuna {
	log = logger.WithSource(log, SourceAdzuna)

	base := cfg.BaseURL
	if base == "" {
		base = adzunaURL
	}
	if cfg.Country == "" {
		cfg.Country = "in"
	}
	if cfg.ResultsPerPage <= 0 {
		cfg.ResultsPerPage = 20
	}

	return &Adzuna{
		config: cfg,
		client: NewClient(log, base, cfg.RequestsPerSec),
		logger: log,
	}
}

func (s *Adzuna) Name() string { return SourceAdzuna }

func (s *Adzuna) SetUserAgent(ua string) { s.client.UserAgent = ua }

func (s *Adzuna) Configured() bool {
	return strings.TrimSpace(s.config.AppID) != "" && strings.TrimSpace(s.config.AppKey) != ""
}

type adzunaResponse struct {
	Results []map[string]any `json:"results"`
}

type adzunaListing struct {
	ID      string `mapstructure:"id"`
	Title   string `mapstructure:"title"`
	Company struct {
		DisplayName string `mapstructure:"display_name"`
	} `mapstructure:"company"`
	Location struct {
		DisplayName string `mapstructure:"display_name"`
	} `mapstructure:"location"`
	Description string `mapstructure:"description"`
	SalaryMin   *int   `mapstructure:"salary_min"`
	SalaryMax   *int   `mapstructure:"salary_max"`
	RedirectURL string `mapstructure:"redirect_url"`
	Created     string `mapstructure:"created"`
}

// Search returns the listings for q. Without credentials it logs a warning
// and returns nothing.
func (s *Adzuna) Search(ctx context.Context, q Query) ([]AggregatedJob, error) {
	if !s.Configured() {
		s.logger.Warn("Adzuna API credentials not configured")
		return nil, nil
	}

	params := url.Values{}
	params.Set("app_id", s.config.AppID)
	params.Set("app_key", s.config.AppKey)
	params.Set("results_per_page", strconv.Itoa(s.config.ResultsPerPage))
	params.Set("what", q.Text)
	if q.Location != "" {
		params.Set("where", q.Location)
	}
	if s.config.SalaryMin > 0 {
		params.Set("salary_min", strconv.Itoa(s.config.SalaryMin))
	}
	if s.config.FullTime {
		params.Set("full_time", "1")
	}
	if s.config.PartTime {
		params.Set("part_time", "1")
	}

	path := fmt.Sprintf("/%s/search/%d", url.PathEscape(s.config.Country), max(q.Page, 1))

	var response adzunaResponse
	if err := s.client.getJSON(ctx, path, params, nil, &response); err != nil {
		return nil, fmt.Errorf("adzuna search: %w", err)
	}

	jobs := make([]AggregatedJob, 0, len(response.Results))
	for idx, item := range response.Results {
		var listing adzunaListing
		if err := decode(item, &listing); err != nil {
			s.logger.Error("skipping malformed listing", zap.Int("index", idx), zap.Error(err))
			continue
		}
		jobs = append(jobs, listing.toJob())
	}

	s.logger.Debug("got listings", zap.Int("count", len(jobs)))

	return jobs, nil
}

func (l adzunaListing) toJob() AggregatedJob {
	job := newJob(SourceAdzuna, l.ID)
	job.Title = l.Title
	job.CompanyName = l.Company.DisplayName
	job.Location = l.Location.DisplayName
	job.IsRemote = strings.Contains(strings.ToLower(l.Title), "remote")
	job.Description = utils.TruncateRunes(l.Description, maxDescriptionLength)
	job.ApplyURL = l.RedirectURL
	job.PostedDate = l.Created

	// Adzuna reports zero for unknown salaries.
	if given := l.SalaryMin; given != nil && *given != 0 {
		job.SalaryMin = given
	}
	if given := l.SalaryMax; given != nil && *given != 0 {
		job.SalaryMax = given
	}

	return job
}
