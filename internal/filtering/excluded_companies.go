package filtering

import (
	"context"
	"strings"

	"github.com/rightdoers/doers-matcher/internal/jobsource"
)

type excludedCompaniesFilter struct {
	companies []string
}

// NewExcludedCompanies creates a filter that removes jobs posted by the given companies.
func NewExcludedCompanies(companies []string) Filter {
	return &excludedCompaniesFilter{
		companies: companies,
	}
}

func (f *excludedCompaniesFilter) Name() string { return "excluded_companies" }

func (f *excludedCompaniesFilter) Disable(string) {}

func (f *excludedCompaniesFilter) IsEnabled() bool { return true }

func (f *excludedCompaniesFilter) Validate() error { return nil }

func (f *excludedCompaniesFilter) Apply(_ context.Context, jobs *jobsource.Jobs) (*jobsource.Jobs, Step, error) {
	initial := jobs.Len()
	if len(f.companies) == 0 {
		return jobs, Step{Initial: initial, Dropped: 0, Left: jobs.Len()}, nil
	}

	excluded := jobs.Exclude(jobsource.JobCompanyField, f.companies)

	return jobs, Step{Initial: initial, Dropped: len(excluded), Left: jobs.Len()}, nil
}

func (f *excludedCompaniesFilter) Status() Status {
	details := map[string]string{}
	if len(f.companies) > 0 {
		details["companies"] = strings.Join(f.companies, ",")
	}
	return Status{Name: f.Name(), Enabled: true, Details: details}
}
