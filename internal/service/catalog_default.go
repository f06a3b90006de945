package service

import (
	"fmt"

	"github.com/jestephe2/rootedwellness-workout-app/internal/domain"
)

// DefaultLibrary builds the built-in program library: a three-day and a
// four-day split, six weeks each. It is what users see until an admin
// publishes an override, and what RevertToDefault falls back to.
func DefaultLibrary() *domain.ProgramLibrary {
	return &domain.ProgramLibrary{
		Variations: []domain.ProgramVariation{
			{
				ID:          "three-day",
				Name:        "3-Day Split",
				Description: "Standard 6-week strength training program, three sessions per week",
				Program:     buildProgram(threeDayTemplate),
			},
			{
				ID:          "four-day",
				Name:        "4-Day Split",
				Description: "Standard 6-week strength training program, four sessions per week",
				Program:     buildProgram(fourDayTemplate),
			},
		},
	}
}

const defaultProgramWeeks = 6

func buildProgram(template []domain.ProgramDay) domain.TrainingProgram {
	weeks := make([]domain.ProgramWeek, 0, defaultProgramWeeks)
	for week := 1; week <= defaultProgramWeeks; week++ {
		days := make([]domain.ProgramDay, len(template))
		for i, day := range template {
			days[i] = domain.ProgramDay{
				Day:       day.Day,
				Title:     day.Title,
				Exercises: append([]domain.Exercise(nil), day.Exercises...),
			}
			if week > 1 {
				days[i].Title = fmt.Sprintf("%s - Week %d", day.Title, week)
			}
		}
		weeks = append(weeks, domain.ProgramWeek{Week: week, Days: days})
	}
	return domain.TrainingProgram{Weeks: weeks}
}

var lowerA = domain.ProgramDay{
	Day:   1,
	Title: "Lower A",
	Exercises: []domain.Exercise{
		{Name: "Back Squat", Sets: 4, Reps: domain.NumericReps(8), Equipment: "Barbell"},
		{Name: "Romanian Deadlift", Sets: 3, Reps: domain.NumericReps(10), Equipment: "Barbell"},
		{Name: "Walking Lunges", Sets: 3, Reps: domain.TextReps("12 per leg"), Equipment: "Dumbbells"},
		{Name: "Leg Curl", Sets: 3, Reps: domain.NumericReps(12), Equipment: "Machine"},
	},
}

var upperA = domain.ProgramDay{
	Day:   2,
	Title: "Upper A",
	Exercises: []domain.Exercise{
		{Name: "Bench Press", Sets: 4, Reps: domain.NumericReps(8), Equipment: "Barbell"},
		{Name: "Bent Over Row", Sets: 4, Reps: domain.NumericReps(8), Equipment: "Barbell"},
		{Name: "Overhead Press", Sets: 3, Reps: domain.NumericReps(10), Equipment: "Dumbbells"},
		{Name: "Lat Pulldown", Sets: 3, Reps: domain.NumericReps(12), Equipment: "Cable"},
	},
}

var lowerB = domain.ProgramDay{
	Day:   3,
	Title: "Lower B",
	Exercises: []domain.Exercise{
		{Name: "Front Squat", Sets: 4, Reps: domain.NumericReps(8), Equipment: "Barbell"},
		{Name: "Sumo Deadlift", Sets: 3, Reps: domain.NumericReps(8), Equipment: "Barbell"},
		{Name: "Bulgarian Split Squat", Sets: 3, Reps: domain.TextReps("10 per leg"), Equipment: "Dumbbells"},
		{Name: "Glute Bridge", Sets: 3, Reps: domain.NumericReps(15), Equipment: "Barbell"},
	},
}

var upperB = domain.ProgramDay{
	Day:   4,
	Title: "Upper B",
	Exercises: []domain.Exercise{
		{Name: "Incline Bench Press", Sets: 4, Reps: domain.NumericReps(8), Equipment: "Barbell"},
		{Name: "Seated Cable Row", Sets: 4, Reps: domain.NumericReps(10), Equipment: "Cable"},
		{Name: "Arnold Press", Sets: 3, Reps: domain.NumericReps(10), Equipment: "Dumbbells"},
		{Name: "Face Pull", Sets: 3, Reps: domain.TextReps("12-15"), Equipment: "Cable"},
	},
}

var threeDayTemplate = []domain.ProgramDay{lowerA, upperA, lowerB}

var fourDayTemplate = []domain.ProgramDay{lowerA, upperA, lowerB, upperB}
