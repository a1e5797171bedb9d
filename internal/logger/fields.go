package logger

import (
	"strings"

	"go.uber.org/zap"
)

const (
	// FieldRunID correlates every entry of a single CLI invocation.
	FieldRunID = "run_id"
	// FieldProfileLevel is the adaptive level of the profile being matched.
	FieldProfileLevel = "profile_level"
	// FieldDoersScore is the DoersScore of the profile being matched.
	FieldDoersScore = "doers_score"
	// FieldSource is the job source a log entry relates to.
	FieldSource = "job_source"
)

// StringField describes a string-valued structured logging field.
type StringField struct {
	Key   string
	Value string
}

// StringFields converts key/value pairs into zap fields, trimming
// whitespace and omitting entries with empty keys or values.
func StringFields(fields ...StringField) []zap.Field {
	result := make([]zap.Field, 0, len(fields))
	for _, field := range fields {
		key := strings.TrimSpace(field.Key)
		if key == "" {
			continue
		}

		value := strings.TrimSpace(field.Value)
		if value == "" {
			continue
		}

		result = append(result, zap.String(key, value))
	}

	return result
}

// WithFields attaches fields to the logger, defaulting to a no-op logger
// when nil.
func WithFields(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}

	if len(fields) == 0 {
		return logger
	}

	return logger.With(fields...)
}

// MatchFields describes the profile a matching run is performed for.
func MatchFields(profileLevel string, doersScore int) []zap.Field {
	fields := StringFields(StringField{Key: FieldProfileLevel, Value: profileLevel})
	return append(fields, zap.Int(FieldDoersScore, doersScore))
}

// WithSource tags the logger with a job source name.
func WithSource(logger *zap.Logger, source string) *zap.Logger {
	return WithFields(logger, StringFields(StringField{Key: FieldSource, Value: source})...)
}
