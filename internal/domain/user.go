package domain

import (
	"strconv"
	"time"
)

// TargetDaysNotSure is the onboarding answer for users who have not
// picked a split yet. Every other accepted value is a plain number.
const TargetDaysNotSure = "not_sure"

// User is a member profile as captured during onboarding. Users identify
// by email only; there is no member password.
type User struct {
	Email             string    `bson:"_id" json:"email"` // unique key
	FirstName         string    `bson:"firstName" json:"first_name"`
	PrimaryGoal       string    `bson:"primaryGoal" json:"primary_goal"`
	TargetDaysPerWeek string    `bson:"targetDaysPerWeek" json:"target_days_per_week"` // "2", "3", "4" or "not_sure"
	BiggestObstacle   string    `bson:"biggestObstacle,omitempty" json:"biggest_obstacle,omitempty"`
	CreatedAt         time.Time `bson:"createdAt" json:"created_at"`
	LastActiveAt      time.Time `bson:"lastActiveAt" json:"last_active_at"`
}

// TargetDays returns the numeric target days per week, or false when the
// user answered "not_sure" (or the value is unparseable).
func (u User) TargetDays() (int, bool) {
	if u.TargetDaysPerWeek == TargetDaysNotSure {
		return 0, false
	}
	n, err := strconv.Atoi(u.TargetDaysPerWeek)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}
