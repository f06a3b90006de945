// internal/domain/workout_log.go
package domain

import "time"

// WorkoutLogEntry is one logged weight for one set of an exercise.
// The ledger is append-only: entries are never mutated or deleted.
type WorkoutLogEntry struct {
	LogID        string    `bson:"logId" json:"log_id"`
	Email        string    `bson:"email" json:"email"`
	Week         int       `bson:"week" json:"week"`
	Day          int       `bson:"day" json:"day"`
	ExerciseName string    `bson:"exerciseName" json:"exercise_name"`
	SetNumber    int       `bson:"setNumber,omitempty" json:"set_number,omitempty"` // 1-based, 0 if unknown
	Weight       float64   `bson:"weight" json:"weight"`
	Timestamp    time.Time `bson:"timestamp" json:"timestamp"`
	// Seq is the local insertion order, used as the tiebreak when two
	// entries carry the same timestamp.
	Seq int64 `bson:"seq" json:"-"`
	// Synced reports whether the remote write for this entry succeeded.
	// The local ledger stays authoritative either way.
	Synced bool `bson:"synced" json:"synced"`
}
