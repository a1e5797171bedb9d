package cmd

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app       = "doers-matcher"
	envPrefix = "DOERS"
)

type Config struct {
	Profile     string         `mapstructure:"profile"`
	Jobs        string         `mapstructure:"jobs"`
	ExcludeFile string         `mapstructure:"exclude-file"`
	UserAgent   string         `mapstructure:"user-agent"`
	Search      *SearchConfig  `mapstructure:"search" validate:"required"`
	Filters     *FiltersConfig `mapstructure:"filters" validate:"required"`
	Sources     *SourcesConfig `mapstructure:"sources"`
}

type SearchConfig struct {
	Query          string `mapstructure:"query"`
	Location       string `mapstructure:"location"`
	Page           int    `mapstructure:"page" validate:"gte=1"`
	IncludeSamples bool   `mapstructure:"include-samples"`
}

type FiltersConfig struct {
	RemoteOnly        bool     `mapstructure:"remote-only"`
	ExcludedCompanies []string `mapstructure:"excluded-companies" validate:"dive,required"`
	MinimumMatchScore int      `mapstructure:"minimum-match-score" validate:"gte=0,lte=100"`
}

type SourcesConfig struct {
	JSearch *JSearchConfig `mapstructure:"jsearch"`
	Adzuna  *AdzunaConfig  `mapstructure:"adzuna"`
}

type JSearchConfig struct {
	APIKeyFile        string  `mapstructure:"api-key-file"`
	NumPages          int     `mapstructure:"num-pages" validate:"gte=0,lte=20"`
	DatePosted        string  `mapstructure:"date-posted" validate:"omitempty,oneof=all today 3days week month"`
	RemoteOnly        bool    `mapstructure:"remote-only"`
	EmploymentTypes   string  `mapstructure:"employment-types"`
	RequestsPerSecond float64 `mapstructure:"requests-per-second" validate:"gte=0"`
}

type AdzunaConfig struct {
	AppID             string  `mapstructure:"app-id"`
	AppKeyFile        string  `mapstructure:"app-key-file"`
	Country           string  `mapstructure:"country" validate:"omitempty,len=2"`
	ResultsPerPage    int     `mapstructure:"results-per-page" validate:"gte=0,lte=50"`
	SalaryMin         int     `mapstructure:"salary-min" validate:"gte=0"`
	FullTime          bool    `mapstructure:"full-time"`
	PartTime          bool    `mapstructure:"part-time"`
	RequestsPerSecond float64 `mapstructure:"requests-per-second" validate:"gte=0"`
}

// Environment variables read without the DOERS_ prefix.
var envBindings = map[string]string{
	"sources.jsearch.api-key-file": "RAPIDAPI_KEY_FILE",
	"sources.adzuna.app-id":        "ADZUNA_APP_ID",
	"sources.adzuna.app-key-file":  "ADZUNA_APP_KEY_FILE",
}

var (
	// Used for flags.
	cfgFile string

	validate = validator.New()

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "doers-matcher scores and ranks job postings against a DoersProfile",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// A missing .env file is fine.
	_ = godotenv.Load()

	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv()

	for key, env := range envBindings {
		if err := viper.BindEnv(key, env); err != nil {
			log.Fatalf("binding %s environment variable: %v", env, err)
		}
	}

	setDefaults()

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is doers-matcher.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")
	rootCmd.PersistentFlags().StringP("profile", "p", "", "a profile file in YAML or JSON. Defaults are used when unset.")
	rootCmd.PersistentFlags().StringP("output", "o", formatYAML, "output format: yaml or json")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
	viper.BindPFlag("profile", rootCmd.PersistentFlags().Lookup("profile"))
	viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output"))
}

func setDefaults() {
	viper.SetDefault("search.location", "India")
	viper.SetDefault("search.page", 1)
	viper.SetDefault("filters.minimum-match-score", 0)
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
	}

	// Every setting has a default or a flag, so only an explicitly given or
	// unparseable config file is fatal.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return
		}
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	var config *Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	if config == nil {
		config = &Config{}
	}

	if err := validateConfig(config); err != nil {
		return config, err
	}

	return config, nil
}

func validateConfig(config *Config) error {
	if err := validate.Struct(config); err != nil {
		var invalid validator.ValidationErrors
		if errors.As(err, &invalid) {
			fields := make([]string, 0, len(invalid))
			for _, fe := range invalid {
				fields = append(fields, fmt.Sprintf("%s (%s=%s)", fe.Namespace(), fe.Tag(), fe.Param()))
			}
			return fmt.Errorf("invalid config: %s", strings.Join(fields, ", "))
		}
		return fmt.Errorf("invalid config: %w", err)
	}

	return nil
}
