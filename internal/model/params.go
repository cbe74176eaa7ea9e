package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
)

const (
	hoursPerDay  = 24
	hoursPerWeek = 168
)

// SchedulingParams defines one resident duty-rostering problem instance.
// Time is measured in hours from the start of the horizon; weeks are fixed
// 168-hour blocks starting at hour 0.
type SchedulingParams struct {
	NResidents        int   `mapstructure:"n_residents" validate:"gte=1"`           // total residents available
	NHours            int   `mapstructure:"n_hours" validate:"gte=1"`               // length of the horizon in hours
	MinOnDuty         int   `mapstructure:"min_on_duty" validate:"gte=0"`           // N: minimum residents on duty at every hour
	MinRest           int   `mapstructure:"min_rest" validate:"gte=0"`              // M: minimum rest hours between two shifts
	MaxConsecutive    int   `mapstructure:"max_consecutive" validate:"gte=1"`       // K: maximum consecutive working hours
	MaxWeekly         int   `mapstructure:"max_weekly" validate:"gte=0"`            // L: maximum working hours per 168-hour week
	TeachingHours     []int `mapstructure:"teaching_hours"`                         // hour indices that count as teaching time
	MinTeaching       int   `mapstructure:"min_teaching" validate:"gte=0"`          // P: minimum teaching hours per resident
	MinShiftLength    int   `mapstructure:"min_shift_length" validate:"gte=1"`      // S: minimum duration of a single shift
	MinDaysOffPerWeek int   `mapstructure:"min_days_off_per_week" validate:"gte=0"` // D: minimum full 24-hour rest windows per week
}

var paramsValidator = newParamsValidator()

func newParamsValidator() *validator.Validate {
	v := validator.New()
	// Report fields under their wire names rather than Go struct names.
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		return strings.SplitN(field.Tag.Get("mapstructure"), ",", 2)[0]
	})
	return v
}

// Validate checks every scalar bound and cross-field invariant, returning a
// ConfigurationError for the first violation found.
func (params SchedulingParams) Validate() error {
	if err := paramsValidator.Struct(params); err != nil {
		var fieldErrors validator.ValidationErrors
		if errors.As(err, &fieldErrors) && len(fieldErrors) > 0 {
			first := fieldErrors[0]
			return &ConfigurationError{
				Field:  first.Field(),
				Reason: fmt.Sprintf("value %v fails the %q bound", first.Value(), first.Tag()),
			}
		}
		return err
	}

	if params.MinShiftLength > params.NHours {
		return &ConfigurationError{
			Field:  "min_shift_length",
			Reason: fmt.Sprintf("%v exceeds the %v-hour horizon", params.MinShiftLength, params.NHours),
		}
	}
	for _, hour := range params.TeachingHours {
		if hour < 0 || hour >= params.NHours {
			return &ConfigurationError{
				Field:  "teaching_hours",
				Reason: fmt.Sprintf("hour %v outside the horizon [0, %v)", hour, params.NHours),
			}
		}
	}

	return nil
}

// ParamsFromJSON decodes a problem instance from a JSON file.
func ParamsFromJSON(file string) (SchedulingParams, error) {
	bytes, err := os.ReadFile(file)
	if err != nil {
		return SchedulingParams{}, err
	}

	var raw map[string]any
	if err := json.Unmarshal(bytes, &raw); err != nil {
		return SchedulingParams{}, err
	}

	var params SchedulingParams
	if err := mapstructure.Decode(raw, &params); err != nil {
		return SchedulingParams{}, fmt.Errorf("cannot decode parameters: %v", err)
	}

	return params, nil
}
