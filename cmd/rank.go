package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/rightdoers/doers-matcher/internal/filtering"
	"github.com/rightdoers/doers-matcher/internal/jobsource"
	"github.com/rightdoers/doers-matcher/internal/logger"
	"github.com/rightdoers/doers-matcher/internal/matcher"
)

const (
	PromptPrint               = "Print ranked jobs"
	PromptInspect             = "Inspect a job"
	PromptAppendToExcludeFile = "Append all jobs to exclude file"
	PromptJobsToFile          = "Dump jobs to file"
	PromptExit                = "Exit"
	PromptBack                = "back"
)

var errExit = errors.New("exit requested")

var rankFlags = map[string]string{
	"jobs":                        "jobs",
	"search.query":                "query",
	"exclude-file":                "exclude-file",
	"filters.remote-only":         "remote-only",
	"filters.minimum-match-score": "min-score",
}

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Score jobs against the profile and print them best first",
	PreRun: func(cmd *cobra.Command, _ []string) {
		bindFlags(cmd, rankFlags)
	},
	Run: func(cmd *cobra.Command, _ []string) {
		rank(cmd)
	},
}

func init() {
	rootCmd.AddCommand(rankCmd)

	rankCmd.Flags().StringP("jobs", "f", "", "a file with jobs in YAML or JSON. Jobs are searched when unset.")
	rankCmd.Flags().StringP("query", "q", "", "search text when searching. Built from the profile when unset.")
	rankCmd.Flags().StringP("exclude-file", "e", "", "special file with jobs to exclude. Default is unset.")
	rankCmd.Flags().Bool("remote-only", false, "keep remote jobs only")
	rankCmd.Flags().Int("min-score", 0, "drop jobs with an overall match score below this value")
	rankCmd.Flags().Int("top", 0, "print only the best N jobs. 0 prints all.")
	rankCmd.Flags().BoolP("interactive", "i", false, "browse the ranked jobs interactively")
}

func rank(cmd *cobra.Command) {
	rt := newRuntime(cmd)

	profile, err := loadProfile(rt.config.Profile)
	if err != nil {
		rt.logger.Fatal("loading profile", zap.Error(err))
	}

	l := logger.WithFields(rt.logger, logger.MatchFields(string(profile.AdaptiveLevel), profile.DoersScore)...)

	records, err := collectJobs(rt)
	if err != nil {
		l.Fatal("getting jobs", zap.Error(err))
	}

	if len(records) == 0 {
		l.Info("exiting", zap.String("reason", "no jobs found"))
		return
	}

	m := matcher.New(l)

	jobs, err := prepareFilters(rt.config, m, &profile, l).RunFilters(rt.ctx, jobsource.NewJobs(records))
	if err != nil {
		l.Fatal("filtering failed", zap.Error(err))
	}

	if jobs.Len() == 0 {
		l.Info("exiting", zap.String("reason", "no jobs left after filters"))
		return
	}

	ranked := m.Rank(profile, jobs.Items)
	if top, _ := cmd.Flags().GetInt("top"); top > 0 && top < len(ranked) {
		ranked = ranked[:top]
	}

	l.Info("jobs ranked", zap.Int("count", len(ranked)))

	format := viper.GetString("output")
	if interactive, _ := cmd.Flags().GetBool("interactive"); !interactive {
		if err := writeOutput(os.Stdout, format, ranked); err != nil {
			l.Fatal("writing output", zap.Error(err))
		}
		return
	}

	b := &browser{logger: l, matcher: m, profile: profile, ranked: ranked, format: format, excludeFile: rt.config.ExcludeFile}
	for {
		items := []string{PromptPrint, PromptInspect, PromptJobsToFile}
		if b.excludeFile != "" && len(b.ranked) != 0 {
			items = append(items, PromptAppendToExcludeFile)
		}

		prompt := promptui.Select{
			Label: "What next?",
			Items: append(items, PromptExit),
		}

		_, action, err := prompt.Run()
		if err != nil {
			l.Fatal("exiting", zap.Error(err))
		}

		if err := b.handleAction(action); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			l.Fatal("exiting", zap.Error(err))
		}
	}
}

// collectJobs reads the jobs file when one is configured and searches the
// sources otherwise.
func collectJobs(rt *runtime) ([]matcher.JobRecord, error) {
	if rt.config.Jobs != "" {
		records, err := loadJobs(rt.config.Jobs)
		if err != nil {
			return nil, err
		}
		rt.logger.Info("jobs loaded", zap.String("file", rt.config.Jobs), zap.Int("count", len(records)))
		return records, nil
	}

	found, err := searchJobs(rt)
	if err != nil {
		return nil, err
	}

	rt.logger.Info("jobs found", zap.Int("count", len(found)))
	return jobsource.Records(found), nil
}

func prepareFilters(config *Config, m *matcher.Matcher, profile *matcher.ProfileMatchInput, l *zap.Logger) *filtering.Filtering {
	steps := []filtering.Filter{
		filtering.NewRemoteOnly(config.Filters.RemoteOnly),
		filtering.NewExcludedCompanies(config.Filters.ExcludedCompanies),
		filtering.NewExcludeFile(config.ExcludeFile),
		filtering.NewMatchFit(&filtering.MatchFitFilterConfig{
			Enabled:           config.Filters.MinimumMatchScore > 0,
			MinimumMatchScore: config.Filters.MinimumMatchScore,
		}, &filtering.MatchFitFilterDeps{
			Logger:      l,
			Matcher:     m,
			Profile:     profile,
			ExcludeFile: config.ExcludeFile,
		}),
	}

	f := filtering.New(steps, l)
	for _, status := range f.Describe() {
		l.Debug("filter configured", zap.String("name", status.Name), zap.Bool("enabled", status.Enabled), zap.Any("details", status.Details))
	}

	return f
}

// browser drives the interactive mode of rank.
type browser struct {
	logger      *zap.Logger
	matcher     *matcher.Matcher
	profile     matcher.ProfileMatchInput
	ranked      []matcher.RankedJob
	format      string
	excludeFile string
}

func (b *browser) handleAction(action string) error {
	switch action {
	case PromptPrint:
		return writeOutput(os.Stdout, b.format, b.ranked)
	case PromptInspect:
		return b.inspect()
	case PromptJobsToFile:
		filename, err := dumpToTmpFile(b.ranked)
		if err != nil {
			return fmt.Errorf("dump results to file: %w", err)
		}
		b.logger.Info("dumping result to file", zap.String("filename", filename))
		return nil
	case PromptAppendToExcludeFile:
		if err := jobsource.AppendExcluded(b.excludeFile, jobsource.NewJobs(rankedRecords(b.ranked)), jobsource.ExcludeActorUser, ""); err != nil {
			return err
		}
		b.logger.Info("appended to exclude file", zap.String("filename", b.excludeFile), zap.Int("count", len(b.ranked)))
		b.ranked = nil
		return nil
	case PromptExit:
		b.logger.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

func (b *browser) inspect() error {
	for {
		items := make([]string, 0, len(b.ranked)+1)
		for _, job := range b.ranked {
			items = append(items, fmt.Sprintf("%s %s / %s / %d%% %s",
				job.ID, job.Title, job.CompanyName, job.MatchScore, job.Recommendation,
			))
		}

		jobPrompt := promptui.Select{
			Label: "Choose a job and press ENTER",
			Items: append(items, PromptBack),
		}

		_, selected, err := jobPrompt.Run()
		if err != nil {
			return err
		}

		if selected == PromptBack {
			return nil
		}

		jobID := strings.Split(selected, " ")[0]
		job := jobsource.NewJobs(rankedRecords(b.ranked)).FindByID(jobID)
		if job == nil {
			return fmt.Errorf("there is no such job id %s", jobID)
		}

		if err := writeOutput(os.Stdout, b.format, b.matcher.Score(b.profile, *job)); err != nil {
			return err
		}
	}
}

func rankedRecords(ranked []matcher.RankedJob) []matcher.JobRecord {
	records := make([]matcher.JobRecord, 0, len(ranked))
	for _, job := range ranked {
		records = append(records, job.JobRecord)
	}
	return records
}
