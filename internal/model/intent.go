package model

// ComparisonMode describes how a question relates the two subjects
type ComparisonMode string

const (
	ModeGeneral        ComparisonMode = "general"         // No comparison cue detected
	ModeComparison     ComparisonMode = "comparison"      // Explicit comparison ("who has more", "vs")
	ModeSubjectAOnly   ComparisonMode = "subject_a_only"  // Only subject A is mentioned
	ModeSubjectBOnly   ComparisonMode = "subject_b_only"  // Only subject B is mentioned
	ModeDirectQuestion ComparisonMode = "direct_question" // A known direct phrase ("who has world cup")
)

// Side returns the subject side for single-subject modes
func (m ComparisonMode) Side() (Side, bool) {
	switch m {
	case ModeSubjectAOnly:
		return SideA, true
	case ModeSubjectBOnly:
		return SideB, true
	default:
		return SideA, false
	}
}

// Intent is the classifier output for one question.
// Empty Category means the question could not be classified.
type Intent struct {
	Category     string         `json:"category,omitempty"`
	SpecificStat string         `json:"specific_stat,omitempty"`
	Mode         ComparisonMode `json:"comparison_mode"`
}

// Classified reports whether a category was detected
func (i Intent) Classified() bool {
	return i.Category != ""
}
