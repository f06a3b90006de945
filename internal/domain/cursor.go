// internal/domain/cursor.go
package domain

import "time"

// WorkoutState tracks the lifecycle of the current day's attempt. It is
// per-day only: advancing to a new day always resets it to not started.
type WorkoutState string

const (
	WorkoutNotStarted WorkoutState = "not_started"
	WorkoutInProgress WorkoutState = "in_progress"
	WorkoutCompleted  WorkoutState = "completed"
)

// ProgressCursor is a user's position within the program: which variation
// they follow, which week/day they are on, and how many days per week
// they train. Invariant: Day <= DaysPerWeek at all times.
type ProgressCursor struct {
	Email       string       `bson:"email" json:"email"` // unique per user
	VariationID string       `bson:"variationId" json:"variationId"`
	Week        int          `bson:"week" json:"week"`
	Day         int          `bson:"day" json:"day"`
	DaysPerWeek int          `bson:"daysPerWeek" json:"daysPerWeek"`
	Phase       CyclePhase   `bson:"phase,omitempty" json:"phase,omitempty"`
	State       WorkoutState `bson:"state" json:"state"`
	UpdatedAt   time.Time    `bson:"updatedAt" json:"updatedAt"`
}
