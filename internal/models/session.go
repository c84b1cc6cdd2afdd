package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// SessionType names the kind of exercise a session recorded
type SessionType string

const (
	SessionMountains      SessionType = "Math Mountains"
	SessionWordProblems   SessionType = "Word Problems"
	SessionTracingLetters SessionType = "Tracing Letters"
	SessionTracingNumbers SessionType = "Tracing Numbers"
)

const sessionTracingPrefix = "Tracing"

// IsTracing reports whether the session came from a tracing run
func (t SessionType) IsTracing() bool {
	return strings.HasPrefix(string(t), sessionTracingPrefix)
}

// dateLayout mirrors a browser's toLocaleString in en-US
const dateLayout = "1/2/2006, 3:04:05 PM"

// Session is one completed, scored exercise. Sessions are never mutated after creation.
type Session struct {
	ID          int64           `json:"id"`
	Type        SessionType     `json:"type"`
	Date        string          `json:"date"`
	SetID       string          `json:"setId,omitempty"`
	Problems    json.RawMessage `json:"problems"`
	UserAnswers []AnswerRecord  `json:"userAnswers"`
	Correct     int             `json:"correct"`
	Incorrect   int             `json:"incorrect"`
	Total       int             `json:"total"`
	Percentage  int             `json:"percentage"`
}

// NewSession snapshots problems and answers into a Session. Total and Percentage are
// derived from correct and incorrect, which must not both be zero.
func NewSession(kind SessionType, setID string, problems any, answers []AnswerRecord, correct, incorrect int, now time.Time) (*Session, error) {
	total := correct + incorrect
	if total <= 0 {
		return nil, fmt.Errorf("session %q has no graded problems", kind)
	}

	snapshot, err := json.Marshal(problems)
	if err != nil {
		return nil, fmt.Errorf("failed to snapshot problems: %w", err)
	}

	recorded := make([]AnswerRecord, len(answers))
	copy(recorded, answers)

	return &Session{
		ID:          now.UnixMilli(),
		Type:        kind,
		Date:        now.Format(dateLayout),
		SetID:       setID,
		Problems:    snapshot,
		UserAnswers: recorded,
		Correct:     correct,
		Incorrect:   incorrect,
		Total:       total,
		Percentage:  RoundPercent(correct, total),
	}, nil
}

// RoundPercent returns correct/total*100 rounded half up. total must be positive.
func RoundPercent(correct, total int) int {
	return (correct*200 + total) / (2 * total)
}

// MountainProblems decodes the problem snapshot of a mountains session
func (s *Session) MountainProblems() ([]MountainProblem, error) {
	if s.Type != SessionMountains {
		return nil, fmt.Errorf("session %d is %q, not %q", s.ID, s.Type, SessionMountains)
	}
	var problems []MountainProblem
	if err := json.Unmarshal(s.Problems, &problems); err != nil {
		return nil, fmt.Errorf("failed to decode mountain problems: %w", err)
	}
	return problems, nil
}

// WordProblems decodes the problem snapshot of a word-problem session
func (s *Session) WordProblems() ([]WordProblem, error) {
	if s.Type != SessionWordProblems {
		return nil, fmt.Errorf("session %d is %q, not %q", s.ID, s.Type, SessionWordProblems)
	}
	var problems []WordProblem
	if err := json.Unmarshal(s.Problems, &problems); err != nil {
		return nil, fmt.Errorf("failed to decode word problems: %w", err)
	}
	return problems, nil
}

// TracingAggregate decodes the aggregate stored by a tracing session
func (s *Session) TracingAggregate() (*TracingAggregate, error) {
	if !s.Type.IsTracing() {
		return nil, fmt.Errorf("session %d is %q, not a tracing session", s.ID, s.Type)
	}
	var aggregates []TracingAggregate
	if err := json.Unmarshal(s.Problems, &aggregates); err != nil {
		return nil, fmt.Errorf("failed to decode tracing aggregate: %w", err)
	}
	if len(aggregates) != 1 {
		return nil, fmt.Errorf("tracing session %d holds %d aggregates", s.ID, len(aggregates))
	}
	return &aggregates[0], nil
}

// Badge is the history score class for the session's percentage
func (s *Session) Badge() string {
	switch {
	case s.Percentage == 100:
		return "perfect"
	case s.Percentage >= 80:
		return "good"
	case s.Percentage >= 60:
		return "okay"
	default:
		return "needs-work"
	}
}
