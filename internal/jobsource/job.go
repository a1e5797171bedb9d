package jobsource

import (
	"time"

	"github.com/rightdoers/doers-matcher/internal/matcher"
)

const (
	SourceJSearch  = "jsearch"
	SourceAdzuna   = "adzuna"
	SourceInternal = "internal"

	// Listing descriptions are cut to this many runes.
	maxDescriptionLength = 2000
)

// AggregatedJob is a listing normalised from any job source.
type AggregatedJob struct {
	ID          string `json:"id" yaml:"id"`
	Source      string `json:"source" yaml:"source"`
	SourceJobID string `json:"source_job_id" yaml:"source_job_id"`

	Title       string `json:"title" yaml:"title"`
	CompanyName string `json:"company_name" yaml:"company_name"`
	CompanyLogo string `json:"company_logo,omitempty" yaml:"company_logo,omitempty"`

	Location string `json:"location" yaml:"location"`
	IsRemote bool   `json:"is_remote" yaml:"is_remote"`
	Country  string `json:"country" yaml:"country"`

	Description     string `json:"description" yaml:"description"`
	JobType         string `json:"job_type" yaml:"job_type"`
	ExperienceLevel string `json:"experience_level" yaml:"experience_level"`

	SalaryMin      *int   `json:"salary_min,omitempty" yaml:"salary_min,omitempty"`
	SalaryMax      *int   `json:"salary_max,omitempty" yaml:"salary_max,omitempty"`
	SalaryCurrency string `json:"salary_currency" yaml:"salary_currency"`
	SalaryPeriod   string `json:"salary_period" yaml:"salary_period"`

	RequiredSkills          []string `json:"required_skills" yaml:"required_skills"`
	RequiredExperienceYears *int     `json:"required_experience_years,omitempty" yaml:"required_experience_years,omitempty"`
	RequiredEducation       string   `json:"required_education,omitempty" yaml:"required_education,omitempty"`

	ApplyURL  string `json:"apply_url" yaml:"apply_url"`
	SourceURL string `json:"source_url,omitempty" yaml:"source_url,omitempty"`

	PostedDate  string    `json:"posted_date,omitempty" yaml:"posted_date,omitempty"`
	ExpiresDate string    `json:"expires_date,omitempty" yaml:"expires_date,omitempty"`
	FetchedAt   time.Time `json:"fetched_at" yaml:"fetched_at"`
}

func newJob(source, sourceID string) AggregatedJob {
	return AggregatedJob{
		ID:              source + "_" + sourceID,
		Source:          source,
		SourceJobID:     sourceID,
		Country:         "India",
		JobType:         "full-time",
		ExperienceLevel: "entry",
		SalaryCurrency:  "INR",
		SalaryPeriod:    "yearly",
		RequiredSkills:  []string{},
		FetchedAt:       time.Now().UTC(),
	}
}

// Record returns the scorable view of the listing.
func (j AggregatedJob) Record() matcher.JobRecord {
	return matcher.JobRecord{
		ID:                      j.ID,
		Title:                   j.Title,
		CompanyName:             j.CompanyName,
		Description:             j.Description,
		RequiredSkills:          j.RequiredSkills,
		RequiredExperienceYears: j.RequiredExperienceYears,
		ExperienceLevel:         j.ExperienceLevel,
		SalaryMin:               j.SalaryMin,
		SalaryMax:               j.SalaryMax,
		Location:                j.Location,
		IsRemote:                j.IsRemote,
		Source:                  j.Source,
		ApplyURL:                j.ApplyURL,
	}
}

// Records converts listings into job records keeping their order.
func Records(jobs []AggregatedJob) []matcher.JobRecord {
	records := make([]matcher.JobRecord, 0, len(jobs))
	for _, job := range jobs {
		records = append(records, job.Record())
	}
	return records
}
