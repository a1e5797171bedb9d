package filtering

import (
	"context"

	"github.com/rightdoers/doers-matcher/internal/jobsource"
	"github.com/rightdoers/doers-matcher/internal/matcher"
)

type remoteOnlyFilter struct {
	enabled bool
	reason  string
}

// NewRemoteOnly creates a filter that keeps remote jobs only.
func NewRemoteOnly(enabled bool) Filter {
	return &remoteOnlyFilter{enabled: enabled}
}

func (f *remoteOnlyFilter) Name() string { return "remote_only" }

func (f *remoteOnlyFilter) Disable(reason string) {
	f.enabled = false
	f.reason = reason
}

func (f *remoteOnlyFilter) IsEnabled() bool { return f.enabled }

func (f *remoteOnlyFilter) Validate() error { return nil }

func (f *remoteOnlyFilter) Apply(_ context.Context, jobs *jobsource.Jobs) (*jobsource.Jobs, Step, error) {
	initial := jobs.Len()
	dropped := jobs.Keep(func(job matcher.JobRecord) bool { return job.IsRemote })

	return jobs, Step{Initial: initial, Dropped: len(dropped), Left: jobs.Len()}, nil
}

func (f *remoteOnlyFilter) Status() Status {
	return Status{Name: f.Name(), Enabled: f.enabled, Reason: f.reason}
}
