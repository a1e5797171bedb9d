package jobsource

import (
	"context"
	"slices"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/rightdoers/doers-matcher/internal/matcher"
)

const (
	defaultInterest = "technology"
	fallbackQuery   = "jobs"
	// Number of profile skills appended to a profile query.
	querySkills = 3
)

var interestQueries = map[string]string{
	"Artistic":      "creative design fashion",
	"Enterprising":  "business management sales",
	"Social":        "teaching counseling HR",
	"Realistic":     "engineering manufacturing",
	"Investigative": "research analyst data",
	"Conventional":  "accounting administration finance",
}

// Aggregator searches every configured source at once and merges the
// results with the built-in samples.
type Aggregator struct {
	sources []Source
	logger  *zap.Logger
}

func NewAggregator(logger *zap.Logger, sources ...Source) *Aggregator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Aggregator{sources: sources, logger: logger}
}

// Search queries all configured sources concurrently. A failing source is
// logged and skipped. Samples matching query are appended when
// includeSample is set or nothing was found. Listings repeating an
// earlier title and company are dropped.
func (a *Aggregator) Search(ctx context.Context, query, location string, page int, includeSample bool) ([]AggregatedJob, error) {
	q := Query{Text: query, Location: location, Page: page}

	results := make([][]AggregatedJob, len(a.sources))
	g, gCtx := errgroup.WithContext(ctx)
	for idx, source := range a.sources {
		if !source.Configured() {
			continue
		}

		g.Go(func() error {
			jobs, err := source.Search(gCtx, q)
			if err != nil {
				a.logger.Error("job fetch error", zap.String("source", source.Name()), zap.Error(err))
				return nil
			}
			results[idx] = jobs
			return nil
		})
	}

	// Sources never fail the group.
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var all []AggregatedJob
	for _, jobs := range results {
		all = append(all, jobs...)
	}

	a.logger.Debug("fetched external jobs", zap.Int("count", len(all)))

	if includeSample || len(all) == 0 {
		all = append(all, matchingSamples(query)...)
	}

	return dedup(all), nil
}

// ForProfile searches with a query derived from the profile's strongest
// career interest and first skills.
func (a *Aggregator) ForProfile(ctx context.Context, interests matcher.Interests, skills []string, location string) ([]AggregatedJob, error) {
	query := ProfileQuery(interests, skills)
	a.logger.Info("searching jobs for profile", zap.String("query", query))

	return a.Search(ctx, query, location, 1, true)
}

// ProfileQuery builds the search text for a profile.
func ProfileQuery(interests matcher.Interests, skills []string) string {
	query, ok := interestQueries[topInterest(interests)]
	if !ok {
		query = fallbackQuery
	}

	if len(skills) > 0 {
		query += " " + strings.Join(skills[:min(len(skills), querySkills)], " ")
	}

	return query
}

// topInterest returns the highest scored interest, the earliest declared
// one on ties.
func topInterest(interests matcher.Interests) string {
	if len(interests) == 0 {
		return defaultInterest
	}

	top := interests[0]
	for _, interest := range interests[1:] {
		if interest.Score > top.Score {
			top = interest
		}
	}
	return top.Name
}

// matchingSamples returns the samples mentioning query in their title,
// description or skills, or all samples when none does.
func matchingSamples(query string) []AggregatedJob {
	samples := Samples()
	needle := strings.ToLower(query)

	matched := make([]AggregatedJob, 0, len(samples))
	for _, job := range samples {
		if strings.Contains(strings.ToLower(job.Title), needle) ||
			strings.Contains(strings.ToLower(job.Description), needle) ||
			slices.ContainsFunc(job.RequiredSkills, func(skill string) bool {
				return strings.Contains(strings.ToLower(skill), needle)
			}) {
			matched = append(matched, job)
		}
	}

	if len(matched) == 0 {
		return samples
	}
	return matched
}

func dedup(jobs []AggregatedJob) []AggregatedJob {
	seen := make(map[string]struct{}, len(jobs))
	unique := make([]AggregatedJob, 0, len(jobs))
	for _, job := range jobs {
		key := strings.ToLower(job.Title + "_" + job.CompanyName)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, job)
	}
	return unique
}
