package models

// TracingMode selects the glyph set of a tracing run
type TracingMode string

const (
	TracingLetters TracingMode = "letters"
	TracingNumbers TracingMode = "numbers"
)

// SessionType returns the history type recorded for the mode
func (m TracingMode) SessionType() SessionType {
	if m == TracingNumbers {
		return SessionTracingNumbers
	}
	return SessionTracingLetters
}

// TracingAggregate is the persisted summary of a tracing run
type TracingAggregate struct {
	Mode   TracingMode `json:"mode"`
	Items  []string    `json:"items"`
	Scores []int       `json:"scores"`
}
