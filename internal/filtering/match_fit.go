package filtering

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/rightdoers/doers-matcher/internal/jobsource"
	"github.com/rightdoers/doers-matcher/internal/matcher"
)

type matchFitFilter struct {
	enabled bool
	reason  string
	config  *MatchFitFilterConfig
	deps    *MatchFitFilterDeps
}

type MatchFitFilterConfig struct {
	Enabled bool
	// MinimumMatchScore is the lowest overall score a job may have to stay.
	MinimumMatchScore int
}

type MatchFitFilterDeps struct {
	Logger  *zap.Logger
	Matcher *matcher.Matcher
	Profile *matcher.ProfileMatchInput
	// ExcludeFile receives rejected jobs when set.
	ExcludeFile string
}

// NewMatchFit creates the step that drops jobs scoring under the minimum
// overall match score.
func NewMatchFit(cfg *MatchFitFilterConfig, deps *MatchFitFilterDeps) Filter {
	if cfg == nil {
		cfg = &MatchFitFilterConfig{}
	}
	return &matchFitFilter{
		enabled: cfg.Enabled,
		config:  cfg,
		deps:    deps,
	}
}

func (f *matchFitFilter) Name() string { return "match_fit" }

func (f *matchFitFilter) Disable(reason string) {
	f.enabled = false
	f.reason = reason
}

func (f *matchFitFilter) IsEnabled() bool { return f.enabled }

func (f *matchFitFilter) Validate() error {
	if f.deps == nil || f.deps.Profile == nil {
		return fmt.Errorf("profile is required when match filter is enabled")
	}
	if f.config.MinimumMatchScore < 0 || f.config.MinimumMatchScore > 100 {
		return fmt.Errorf("minimum match score must be within [0, 100], got %d", f.config.MinimumMatchScore)
	}
	return nil
}

func (f *matchFitFilter) Apply(_ context.Context, jobs *jobsource.Jobs) (*jobsource.Jobs, Step, error) {
	initial := jobs.Len()
	log := f.logger()

	rejected := &jobsource.Jobs{}
	reasons := make(map[string]string)

	jobs.Keep(func(job matcher.JobRecord) bool {
		result := f.deps.Matcher.Score(*f.deps.Profile, job)
		if result.OverallMatchScore >= f.config.MinimumMatchScore {
			log.Debug("job approved by matcher",
				zap.String("job_id", job.ID),
				zap.Int("match_score", result.OverallMatchScore),
			)
			return true
		}

		reason := fmt.Sprintf("overall match score %d is below %d", result.OverallMatchScore, f.config.MinimumMatchScore)
		log.Info("job rejected by matcher",
			zap.String("job_id", job.ID),
			zap.Int("match_score", result.OverallMatchScore),
			zap.String("recommendation", string(result.Recommendation)),
		)

		rejected.Items = append(rejected.Items, job)
		reasons[job.ID] = reason
		return false
	})

	if err := f.appendToExcludeFile(rejected, reasons); err != nil {
		log.Warn("failed to append jobs to exclude file", zap.Error(err))
	}

	left := jobs.Len()
	return jobs, Step{Initial: initial, Dropped: initial - left, Left: left}, nil
}

func (f *matchFitFilter) appendToExcludeFile(rejected *jobsource.Jobs, reasons map[string]string) error {
	path := strings.TrimSpace(f.deps.ExcludeFile)
	if path == "" || rejected.Len() == 0 {
		return nil
	}

	excluded, err := jobsource.LoadExcludedJobs(path)
	if err != nil {
		return fmt.Errorf("load excluded jobs: %w", err)
	}

	for _, job := range rejected.Items {
		single := jobsource.NewJobs([]matcher.JobRecord{job})
		excluded.Append(single.ToExcluded(jobsource.ExcludeActorMatcher, reasons[job.ID]))
	}

	if err := excluded.ToFile(path); err != nil {
		return fmt.Errorf("write excluded jobs: %w", err)
	}

	f.logger().Info("jobs appended to exclude file",
		zap.Int("count", rejected.Len()),
		zap.String("exclude_file", path),
	)

	return nil
}

func (f *matchFitFilter) logger() *zap.Logger {
	if f.deps == nil || f.deps.Logger == nil {
		return zap.NewNop()
	}
	return f.deps.Logger
}

func (f *matchFitFilter) Status() Status {
	details := map[string]string{
		"minimum_match_score": strconv.Itoa(f.config.MinimumMatchScore),
	}
	if f.deps != nil && f.deps.ExcludeFile != "" {
		details["exclude_file"] = f.deps.ExcludeFile
	}
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason, Details: details}
}
