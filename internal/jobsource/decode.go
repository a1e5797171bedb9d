package jobsource

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"

	"github.com/rightdoers/doers-matcher/internal/matcher"
)

var optionalIntType = reflect.TypeOf((*int)(nil))

// optionalIntHook turns malformed values for optional integer fields into
// absent values instead of decode errors.
func optionalIntHook(_ reflect.Type, to reflect.Type, data any) (any, error) {
	if to != optionalIntType {
		return data, nil
	}

	n, ok := toInt(data)
	if !ok {
		return nil, nil
	}
	return n, nil
}

func toInt(data any) (int, bool) {
	switch v := data.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case uint64:
		if v > math.MaxInt {
			return 0, false
		}
		return int(v), true
	case float64:
		return floatToInt(v)
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return int(n), true
		}
		f, err := v.Float64()
		if err != nil {
			return 0, false
		}
		return floatToInt(f)
	case string:
		s := strings.TrimSpace(v)
		if n, err := strconv.Atoi(s); err == nil {
			return n, true
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return floatToInt(f)
	default:
		return 0, false
	}
}

func floatToInt(f float64) (int, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || math.Abs(f) >= math.MaxInt64 {
		return 0, false
	}
	return int(f), true
}

func decode(input, output any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       optionalIntHook,
		WeaklyTypedInput: true,
		Result:           output,
	})
	if err != nil {
		return err
	}

	return dec.Decode(input)
}

// DecodeRecords converts loosely typed job documents, as read from JSON or
// YAML files, into job records. Malformed optional numbers are dropped.
func DecodeRecords(raw []map[string]any) ([]matcher.JobRecord, error) {
	records := make([]matcher.JobRecord, 0, len(raw))
	for idx, item := range raw {
		var record matcher.JobRecord
		if err := decode(item, &record); err != nil {
			return nil, fmt.Errorf("job #%d: %w", idx, err)
		}
		records = append(records, record)
	}

	return records, nil
}
