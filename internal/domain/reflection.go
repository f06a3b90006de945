package domain

import "time"

// Reflection is the post-workout check-in captured after a day is
// completed: mood tags plus a free-text note. It is a side record and
// never feeds back into progression.
type Reflection struct {
	Email string    `bson:"email" json:"email"`
	Week  int       `bson:"week" json:"week"`
	Day   int       `bson:"day" json:"day"`
	Moods []string  `bson:"moods,omitempty" json:"moods,omitempty"`
	Note  string    `bson:"note,omitempty" json:"note,omitempty"`
	Date  time.Time `bson:"date" json:"date"`
}
