package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/rightdoers/doers-matcher/internal/jobsource"
	"github.com/rightdoers/doers-matcher/internal/logger"
	"github.com/rightdoers/doers-matcher/internal/secrets"
)

// runtime carries what every command needs once flags and config are parsed.
type runtime struct {
	ctx    context.Context
	logger *zap.Logger
	config *Config
	runID  string
}

func newRuntime(cmd *cobra.Command) *runtime {
	base, err := logger.New(logger.Options{
		JSON:  viper.GetBool("json"),
		Debug: viper.GetBool("debug"),
	})
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	runID := uuid.NewString()
	l := logger.WithFields(base, logger.StringFields(logger.StringField{Key: logger.FieldRunID, Value: runID})...)

	config, err := getConfig()
	if err != nil {
		l.Fatal("getting a config", zap.Error(err))
	}

	l.Info("starting the doers-matcher", zap.String("version", version), zap.String("command", cmd.Name()))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	l.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	return &runtime{ctx: ctx, logger: l, config: config, runID: runID}
}

// newAggregator builds the job aggregator from the sources section.
// Sources without credentials stay registered and report themselves as
// unconfigured.
func newAggregator(config *Config, l *zap.Logger) (*jobsource.Aggregator, error) {
	sources := config.Sources
	if sources == nil {
		sources = &SourcesConfig{}
	}

	jsearchCfg := sources.JSearch
	if jsearchCfg == nil {
		jsearchCfg = &JSearchConfig{}
	}

	apiKey, err := secrets.Optional(secrets.Source{
		Name: "RapidAPI key",
		File: jsearchCfg.APIKeyFile,
		Env:  "RAPIDAPI_KEY",
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set sources.jsearch.api-key-file or RAPIDAPI_KEY_FILE)", err)
	}

	adzunaCfg := sources.Adzuna
	if adzunaCfg == nil {
		adzunaCfg = &AdzunaConfig{}
	}

	appKey, err := secrets.Optional(secrets.Source{
		Name: "Adzuna app key",
		File: adzunaCfg.AppKeyFile,
		Env:  "ADZUNA_APP_KEY",
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set sources.adzuna.app-key-file or ADZUNA_APP_KEY_FILE)", err)
	}

	jsearch := jobsource.NewJSearch(l, jobsource.JSearchConfig{
		APIKey:          apiKey,
		NumPages:        jsearchCfg.NumPages,
		DatePosted:      jsearchCfg.DatePosted,
		RemoteOnly:      jsearchCfg.RemoteOnly,
		EmploymentTypes: jsearchCfg.EmploymentTypes,
		RequestsPerSec:  jsearchCfg.RequestsPerSecond,
	})

	adzuna := jobsource.NewAdzuna(l, jobsource.AdzunaConfig{
		AppID:          strings.TrimSpace(adzunaCfg.AppID),
		AppKey:         appKey,
		Country:        adzunaCfg.Country,
		ResultsPerPage: adzunaCfg.ResultsPerPage,
		SalaryMin:      adzunaCfg.SalaryMin,
		FullTime:       adzunaCfg.FullTime,
		PartTime:       adzunaCfg.PartTime,
		RequestsPerSec: adzunaCfg.RequestsPerSecond,
	})

	if config.UserAgent != "" {
		jsearch.SetUserAgent(config.UserAgent)
		adzuna.SetUserAgent(config.UserAgent)
	}

	for _, source := range []jobsource.Source{jsearch, adzuna} {
		if !source.Configured() {
			l.Debug("job source is not configured", zap.String("source", source.Name()))
		}
	}

	return jobsource.NewAggregator(l, jsearch, adzuna), nil
}
