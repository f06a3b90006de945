package service

import (
	"fmt"

	"github.com/jestephe2/rootedwellness-workout-app/internal/config"
	"github.com/jestephe2/rootedwellness-workout-app/internal/domain"
)

// Validation rule identifiers. Surfaced to the admin UI so a failed
// import names exactly which rule broke.
const (
	RuleVariationCount  = "variation_count"
	RuleVariationFields = "variation_fields"
	RuleWeekCount       = "week_count"
	RuleDayUnique       = "day_unique"
	RuleExerciseFields  = "exercise_fields"
)

// ValidationError reports the first violated rule for a library that
// failed publish or import validation. Checks run in a fixed order, so
// the same bad input always produces the same error.
type ValidationError struct {
	Rule    string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func validationErrorf(rule, format string, args ...any) *ValidationError {
	return &ValidationError{Rule: rule, Message: fmt.Sprintf(format, args...)}
}

// validateLibrary checks a library against the publish rules: exact
// variation count, required variation fields, exact week count, unique
// day numbers per week, and complete exercise definitions.
func validateLibrary(library *domain.ProgramLibrary, cfg config.ProgramConfig) error {
	if library == nil || library.Variations == nil {
		return validationErrorf(RuleVariationCount, `invalid format: must have "variations" array`)
	}
	if len(library.Variations) != cfg.VariationCount {
		return validationErrorf(RuleVariationCount,
			"must have exactly %d program variations, got %d", cfg.VariationCount, len(library.Variations))
	}

	for i, variation := range library.Variations {
		// 1-based index in messages, matching what the admin screen shows.
		n := i + 1
		if variation.ID == "" || variation.Name == "" || variation.Program.Weeks == nil {
			return validationErrorf(RuleVariationFields, "variation %d missing required fields", n)
		}
		if len(variation.Program.Weeks) != cfg.Weeks {
			return validationErrorf(RuleWeekCount,
				"variation %d must have exactly %d weeks, got %d", n, cfg.Weeks, len(variation.Program.Weeks))
		}
		for _, week := range variation.Program.Weeks {
			seen := make(map[int]bool, len(week.Days))
			for _, day := range week.Days {
				if day.Day < 1 {
					return validationErrorf(RuleDayUnique,
						"variation %d week %d has invalid day number %d", n, week.Week, day.Day)
				}
				if seen[day.Day] {
					return validationErrorf(RuleDayUnique,
						"variation %d week %d has duplicate day number %d", n, week.Week, day.Day)
				}
				seen[day.Day] = true
				for _, exercise := range day.Exercises {
					if exercise.Name == "" || exercise.Sets < 1 {
						return validationErrorf(RuleExerciseFields,
							"variation %d week %d day %d has an exercise missing name or sets",
							n, week.Week, day.Day)
					}
				}
			}
		}
	}
	return nil
}
