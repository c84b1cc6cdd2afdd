package service

import (
	"strings"

	"github.com/google/uuid"

	"mathmountain/internal/grading"
	"mathmountain/internal/models"
	"mathmountain/internal/tracing"
	"mathmountain/internal/utils"
)

// ExerciseKind identifies which graded exercise a command targets
type ExerciseKind string

const (
	KindMountains    ExerciseKind = "mountains"
	KindWordProblems ExerciseKind = "words"
)

// ParseKind accepts mountains or words in any case
func ParseKind(raw string) (ExerciseKind, error) {
	switch kind := ExerciseKind(strings.ToLower(strings.TrimSpace(raw))); kind {
	case KindMountains, KindWordProblems:
		return kind, nil
	}
	return "", utils.ValidationError{Field: "kind", Message: "must be mountains or words"}
}

func (k ExerciseKind) sessionType() models.SessionType {
	if k == KindWordProblems {
		return models.SessionWordProblems
	}
	return models.SessionMountains
}

// ProblemSet is one generated (or restored) list of problems with its answer buffer.
// Exactly one of Mountains and Words is populated, according to Kind.
type ProblemSet struct {
	ID   uuid.UUID
	Kind ExerciseKind
	Tier string

	Mountains []models.MountainProblem
	Words     []models.WordProblem

	// Answers holds the raw text typed for each problem
	Answers []string

	// Records is set when the set was restored from history
	Records []models.AnswerRecord
}

// Len returns the number of problems in the set
func (p *ProblemSet) Len() int {
	if p == nil {
		return 0
	}
	if p.Kind == KindWordProblems {
		return len(p.Words)
	}
	return len(p.Mountains)
}

func (p *ProblemSet) grade() grading.Result {
	if p.Kind == KindWordProblems {
		return grading.Grade(p.Words, p.Answers)
	}
	return grading.Grade(p.Mountains, p.Answers)
}

func (p *ProblemSet) snapshot() any {
	if p.Kind == KindWordProblems {
		return p.Words
	}
	return p.Mountains
}

// AppState is everything the presentation layer keeps between commands
type AppState struct {
	Mountains    *ProblemSet
	WordProblems *ProblemSet

	// ViewingHistory is set while a stored session is shown read-only
	ViewingHistory bool
	Viewed         *models.Session

	Tracing *tracing.Session
}

// NewAppState returns an empty state
func NewAppState() *AppState {
	return &AppState{}
}

// Set returns the active problem set for kind, or nil
func (s *AppState) Set(kind ExerciseKind) *ProblemSet {
	if kind == KindWordProblems {
		return s.WordProblems
	}
	return s.Mountains
}

func (s *AppState) setSet(kind ExerciseKind, set *ProblemSet) {
	if kind == KindWordProblems {
		s.WordProblems = set
	} else {
		s.Mountains = set
	}
}
