package model

// AnswerKind tags which resolution path produced an answer
type AnswerKind string

const (
	KindClarification      AnswerKind = "clarification"
	KindNotFound           AnswerKind = "not_found"
	KindDirectAnswer       AnswerKind = "direct_answer"
	KindSinglePlayer       AnswerKind = "single_player"
	KindSpecificComparison AnswerKind = "specific_comparison"
	KindCategoryComparison AnswerKind = "category_comparison"
)

// Answer is the response for one question.
//
// Data holds []StatRecord for single_player and category_comparison answers,
// StatComparison for specific_comparison answers, and nil otherwise.
type Answer struct {
	Answer   string     `json:"answer"`
	Type     AnswerKind `json:"type"`
	Data     any        `json:"data,omitempty"`
	Question string     `json:"question"`
	Player   string     `json:"player,omitempty"`   // Subject key for single_player answers
	Category string     `json:"category,omitempty"` // Display name of the resolved category
}

// Records returns the record payload, if the answer carries one
func (a *Answer) Records() []StatRecord {
	records, _ := a.Data.([]StatRecord)
	return records
}
