package model

// Side identifies one of the two tracked subjects
type Side int

const (
	SideA Side = iota
	SideB
)

// Subject is one of the two athletes being compared
type Subject struct {
	Key     string   `json:"key" yaml:"key" mapstructure:"key"`             // Stable key (e.g., "messi")
	Name    string   `json:"name" yaml:"name" mapstructure:"name"`          // Full name used in sentences
	Short   string   `json:"short" yaml:"short" mapstructure:"short"`       // Short name used in comparisons
	Aliases []string `json:"aliases" yaml:"aliases" mapstructure:"aliases"` // Lower-case names that identify the subject in a question
}

// Roster is the ordered pair of subjects. A is always reported first.
type Roster struct {
	A Subject `json:"a" yaml:"a" mapstructure:"a"`
	B Subject `json:"b" yaml:"b" mapstructure:"b"`
}

// DefaultRoster returns the reference deployment pair
func DefaultRoster() Roster {
	return Roster{
		A: Subject{
			Key:     "messi",
			Name:    "Lionel Messi",
			Short:   "Messi",
			Aliases: []string{"messi", "lionel"},
		},
		B: Subject{
			Key:     "ronaldo",
			Name:    "Cristiano Ronaldo",
			Short:   "Ronaldo",
			Aliases: []string{"ronaldo", "cristiano"},
		},
	}
}

// Subject returns the subject on the given side
func (r Roster) Subject(side Side) Subject {
	if side == SideB {
		return r.B
	}
	return r.A
}
