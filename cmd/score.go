package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/rightdoers/doers-matcher/internal/logger"
	"github.com/rightdoers/doers-matcher/internal/matcher"
)

var scoreFlags = map[string]string{
	"jobs": "jobs",
}

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Print the full match breakdown of jobs from a file, in file order",
	PreRun: func(cmd *cobra.Command, _ []string) {
		bindFlags(cmd, scoreFlags)
	},
	Run: func(cmd *cobra.Command, _ []string) {
		score(cmd)
	},
}

func init() {
	rootCmd.AddCommand(scoreCmd)

	scoreCmd.Flags().StringP("jobs", "f", "", "a file with jobs in YAML or JSON")
	scoreCmd.Flags().String("job-id", "", "score only the job with this id")
}

func score(cmd *cobra.Command) {
	rt := newRuntime(cmd)

	if rt.config.Jobs == "" {
		rt.logger.Fatal("jobs file is required", zap.String("hint", "pass --jobs or set 'jobs' in the config"))
	}

	profile, err := loadProfile(rt.config.Profile)
	if err != nil {
		rt.logger.Fatal("loading profile", zap.Error(err))
	}

	records, err := loadJobs(rt.config.Jobs)
	if err != nil {
		rt.logger.Fatal("loading jobs", zap.Error(err))
	}

	jobID, _ := cmd.Flags().GetString("job-id")
	records, err = selectJobs(records, jobID)
	if err != nil {
		rt.logger.Fatal("selecting jobs", zap.Error(err))
	}

	m := matcher.New(logger.WithFields(rt.logger, logger.MatchFields(string(profile.AdaptiveLevel), profile.DoersScore)...))

	results := make([]matcher.JobMatchResult, 0, len(records))
	for _, job := range records {
		results = append(results, m.Score(profile, job))
	}

	if err := writeOutput(os.Stdout, viper.GetString("output"), results); err != nil {
		rt.logger.Fatal("writing output", zap.Error(err))
	}
}

// selectJobs narrows records to the one with id. An empty id keeps all.
func selectJobs(records []matcher.JobRecord, id string) ([]matcher.JobRecord, error) {
	if id == "" {
		return records, nil
	}

	for _, job := range records {
		if job.ID == id {
			return []matcher.JobRecord{job}, nil
		}
	}

	return nil, fmt.Errorf("there is no such job id %s", id)
}
