// internal/domain/program.go
package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Reps is a rep prescription that may be a plain number ("12") or a
// free-form range ("8-10", "12 per leg"). The wire format preserves the
// original JSON shape: numeric prescriptions round-trip as JSON numbers,
// everything else as strings.
type Reps struct {
	Value   string `bson:"value" json:"-"`
	Numeric bool   `bson:"numeric" json:"-"`
}

// NumericReps builds a Reps from a plain rep count.
func NumericReps(n int) Reps {
	return Reps{Value: strconv.Itoa(n), Numeric: true}
}

// TextReps builds a Reps from a free-form prescription like "8-10".
func TextReps(s string) Reps {
	return Reps{Value: s}
}

func (r Reps) String() string {
	return r.Value
}

// MarshalJSON emits a JSON number for numeric prescriptions and a JSON
// string otherwise, so exported programs re-import byte-equivalent.
func (r Reps) MarshalJSON() ([]byte, error) {
	if r.Numeric {
		if _, err := strconv.Atoi(r.Value); err != nil {
			return nil, fmt.Errorf("numeric reps %q is not an integer", r.Value)
		}
		return []byte(r.Value), nil
	}
	return json.Marshal(r.Value)
}

// UnmarshalJSON accepts either a JSON number or a JSON string.
func (r *Reps) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" || trimmed == "" {
		*r = Reps{}
		return nil
	}
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*r = Reps{Value: s}
		return nil
	}
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("reps must be a number or string: %w", err)
	}
	*r = Reps{Value: strconv.Itoa(n), Numeric: true}
	return nil
}

// IsZero reports whether no prescription was provided.
func (r Reps) IsZero() bool {
	return r.Value == ""
}

// Exercise is a single prescribed movement within a program day.
// Immutable once part of a published day; edited only via admin replace.
type Exercise struct {
	Name      string `bson:"name" json:"name"`
	Sets      int    `bson:"sets" json:"sets"`
	Reps      Reps   `bson:"reps" json:"reps"`
	Equipment string `bson:"equipment,omitempty" json:"equipment,omitempty"`
}

// ProgramDay is one training day within a week. Day numbers are unique
// within a week but not necessarily contiguous or sorted in storage;
// lookups always match on the Day field, never on slice position.
type ProgramDay struct {
	Day       int        `bson:"day" json:"day"`
	Title     string     `bson:"title" json:"title"` // e.g. "Lower A", "Upper B"
	Exercises []Exercise `bson:"exercises" json:"exercises"`
}

// TotalSets returns the number of (exercise, set) slots in the day.
func (d ProgramDay) TotalSets() int {
	total := 0
	for _, ex := range d.Exercises {
		total += ex.Sets
	}
	return total
}

// ProgramWeek is one week of the program.
type ProgramWeek struct {
	Week int          `bson:"week" json:"week"`
	Days []ProgramDay `bson:"days" json:"days"`
}

// TrainingProgram is the full multi-week schedule of one variation.
type TrainingProgram struct {
	Weeks []ProgramWeek `bson:"weeks" json:"weeks"`
}

// ProgramVariation is a named alternative full program (e.g. three-day
// vs four-day split).
type ProgramVariation struct {
	ID          string          `bson:"id" json:"id"`
	Name        string          `bson:"name" json:"name"`
	Description string          `bson:"description" json:"description"`
	Program     TrainingProgram `bson:"program" json:"program"`
}

// ProgramLibrary holds every available variation. Exactly one library is
// active process-wide: the published override when present, otherwise the
// built-in default.
type ProgramLibrary struct {
	Variations []ProgramVariation `bson:"variations" json:"variations"`
}

// Variation returns the variation with the given id, matching by the ID
// field.
func (l ProgramLibrary) Variation(id string) (ProgramVariation, bool) {
	for _, v := range l.Variations {
		if v.ID == id {
			return v, true
		}
	}
	return ProgramVariation{}, false
}

// Week returns the given week of a variation, matching on the Week field.
func (l ProgramLibrary) Week(variationID string, week int) (ProgramWeek, bool) {
	variation, ok := l.Variation(variationID)
	if !ok {
		return ProgramWeek{}, false
	}
	for _, w := range variation.Program.Weeks {
		if w.Week == week {
			return w, true
		}
	}
	return ProgramWeek{}, false
}

// Day returns the given day of a week, matching on the Day field.
func (l ProgramLibrary) Day(variationID string, week, day int) (ProgramDay, bool) {
	programWeek, ok := l.Week(variationID, week)
	if !ok {
		return ProgramDay{}, false
	}
	for _, d := range programWeek.Days {
		if d.Day == day {
			return d, true
		}
	}
	return ProgramDay{}, false
}
