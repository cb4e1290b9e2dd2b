package model

// Category groups stat records under a stable key
type Category struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`         // Stable key (e.g., "goals", "hat_tricks")
	DisplayName string `json:"display_name"` // Human label (e.g., "Hat Tricks")
}

// StatRecord is one row of the fact table.
// Values are text because they mix counts, percentages and markers like "N/A".
type StatRecord struct {
	ID          int64  `json:"id"`
	CategoryID  int64  `json:"category_id"`
	Description string `json:"description"`
	ValueA      string `json:"value_a"`
	ValueB      string `json:"value_b"`
	LastUpdated string `json:"last_updated,omitempty"`
}

// Value returns the record value for the given side
func (s StatRecord) Value(side Side) string {
	if side == SideB {
		return s.ValueB
	}
	return s.ValueA
}

// StatComparison is the data payload of a specific_comparison answer
type StatComparison struct {
	Description string `json:"description"`
	ValueA      string `json:"value_a"`
	ValueB      string `json:"value_b"`
}
