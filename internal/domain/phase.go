package domain

// CyclePhase is a user-selected advisory label. It only changes the
// guidance text shown alongside a workout, never the program content.
type CyclePhase string

const (
	PhaseMenstrual  CyclePhase = "Menstrual"
	PhaseFollicular CyclePhase = "Follicular"
	PhaseOvulatory  CyclePhase = "Ovulatory"
	PhaseLuteal     CyclePhase = "Luteal"
)

// PhaseGuidance is the advisory text for one cycle phase.
type PhaseGuidance struct {
	Phase           CyclePhase `json:"phase"`
	Guidance        string     `json:"guidance"`
	Recommendations []string   `json:"recommendations"`
}

var phaseGuidance = map[CyclePhase]PhaseGuidance{
	PhaseMenstrual: {
		Phase:    PhaseMenstrual,
		Guidance: "Light to moderate effort. Stop 2-3 reps shy of failure.",
		Recommendations: []string{
			"Reduce intensity if needed",
			"Focus on movement quality",
			"Reduce sets if energy is low",
			"Prioritize rest between sets",
		},
	},
	PhaseFollicular: {
		Phase:    PhaseFollicular,
		Guidance: "Build load gradually. Focus on crisp technique.",
		Recommendations: []string{
			"Great time to progress weights",
			"Energy should be building",
			"Focus on movement precision",
			"Build momentum this week",
		},
	},
	PhaseOvulatory: {
		Phase:    PhaseOvulatory,
		Guidance: "Option to push intensity if energy is high.",
		Recommendations: []string{
			"Peak performance window",
			"Can handle higher intensity",
			"Consider pushing effort levels",
			"Recovery should be strong",
		},
	},
	PhaseLuteal: {
		Phase:    PhaseLuteal,
		Guidance: "Prioritize control and recovery. Slightly reduce load and extend rest.",
		Recommendations: []string{
			"Maintain consistency over intensity",
			"Extend rest periods as needed",
			"Focus on controlled movement",
			"Honor your body's signals",
		},
	},
}

// GuidanceForPhase returns the advisory text for a phase.
func GuidanceForPhase(phase CyclePhase) (PhaseGuidance, bool) {
	g, ok := phaseGuidance[phase]
	return g, ok
}

// ValidPhase reports whether the given label is a known cycle phase.
func ValidPhase(phase CyclePhase) bool {
	_, ok := phaseGuidance[phase]
	return ok
}
