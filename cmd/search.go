package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/rightdoers/doers-matcher/internal/jobsource"
)

var searchFlags = map[string]string{
	"search.query":           "query",
	"search.location":        "location",
	"search.page":            "page",
	"search.include-samples": "samples",
}

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Fetch jobs from the configured sources without scoring them",
	PreRun: func(cmd *cobra.Command, _ []string) {
		bindFlags(cmd, searchFlags)
	},
	Run: func(cmd *cobra.Command, _ []string) {
		search(cmd)
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().StringP("query", "q", "", "search text. Built from the profile when unset.")
	searchCmd.Flags().StringP("location", "l", "India", "search location")
	searchCmd.Flags().Int("page", 1, "result page to fetch")
	searchCmd.Flags().Bool("samples", false, "always include the built-in sample jobs")
}

func search(cmd *cobra.Command) {
	rt := newRuntime(cmd)

	jobs, err := searchJobs(rt)
	if err != nil {
		rt.logger.Fatal("searching jobs", zap.Error(err))
	}

	rt.logger.Info("jobs found", zap.Int("count", len(jobs)))

	if err := writeOutput(os.Stdout, viper.GetString("output"), jobs); err != nil {
		rt.logger.Fatal("writing output", zap.Error(err))
	}
}

// searchJobs queries the sources with the configured query, or with one
// derived from the profile when no query is set.
func searchJobs(rt *runtime) ([]jobsource.AggregatedJob, error) {
	aggregator, err := newAggregator(rt.config, rt.logger)
	if err != nil {
		return nil, err
	}

	s := rt.config.Search
	if s.Query != "" {
		rt.logger.Info("starting the search", zap.String("query", s.Query), zap.String("location", s.Location))
		return aggregator.Search(rt.ctx, s.Query, s.Location, s.Page, s.IncludeSamples)
	}

	profile, err := loadProfile(rt.config.Profile)
	if err != nil {
		return nil, err
	}

	return aggregator.ForProfile(rt.ctx, profile.CareerInterests, profile.Skills, s.Location)
}
