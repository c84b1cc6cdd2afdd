package service

import (
	"mathmountain/internal/grading"
	"mathmountain/internal/models"
	"mathmountain/internal/tracing"
)

// Command is a typed user intent handled by ExerciseService.Dispatch
type Command interface {
	commandName() string
}

// Generate replaces the active set of Kind with Count problems at Tier.
// Count is read like a form field and clamped to the allowed range.
type Generate struct {
	Kind  ExerciseKind
	Tier  string
	Count string
}

// Submit stores the raw answer text for problem Index
type Submit struct {
	Kind  ExerciseKind
	Index int
	Value string
}

// Grade scores the active set of Kind. A non-empty SetID must match the active set.
type Grade struct {
	Kind  ExerciseKind
	SetID string
}

// StartTracing begins a new tracing run
type StartTracing struct {
	Mode models.TracingMode
}

// Trace replays a full stroke on a Width x Height canvas
type Trace struct {
	Path   []tracing.Point
	Width  float64
	Height float64
}

// ActivateTarget touches counting object Index
type ActivateTarget struct {
	Index int
}

// NextGlyph moves the tracing run forward
type NextGlyph struct{}

// ClearTrace erases the current stroke
type ClearTrace struct{}

// ViewSession shows stored session ID read-only
type ViewSession struct {
	ID int64
}

// ClearHistory empties the session store
type ClearHistory struct{}

func (Generate) commandName() string { return "generate" }
func (Submit) commandName() string { return "submit" }
func (Grade) commandName() string { return "grade" }
func (StartTracing) commandName() string { return "start-tracing" }
func (Trace) commandName() string { return "trace" }
func (ActivateTarget) commandName() string { return "activate-target" }
func (NextGlyph) commandName() string { return "next-glyph" }
func (ClearTrace) commandName() string { return "clear-trace" }
func (ViewSession) commandName() string { return "view-session" }
func (ClearHistory) commandName() string { return "clear-history" }

// Result is the plain-data outcome of a dispatched command
type Result interface {
	resultName() string
}

// GeneratedResult carries the new active set
type GeneratedResult struct {
	Set *ProblemSet
}

// SubmittedResult echoes the stored answer
type SubmittedResult struct {
	Index int
	Value string
}

// GradedResult is the outcome of grading a set and the session it produced
type GradedResult struct {
	Grading    grading.Result
	Percentage int
	Feedback   grading.Tier
	Session    *models.Session
}

// GlyphResult describes the tracing run after a command
type GlyphResult struct {
	Glyph      tracing.Glyph
	Evaluation *tracing.Evaluation
	Progress   *tracing.CountProgress
}

// TracingCompleteResult is returned when the last glyph has been passed
type TracingCompleteResult struct {
	Summary *tracing.Summary
	Session *models.Session
}

// ViewedResult carries the stored session now on screen
type ViewedResult struct {
	Session *models.Session
	Set     *ProblemSet
	Tracing *models.TracingAggregate
}

// ClearedResult acknowledges a history clear
type ClearedResult struct{}

func (GeneratedResult) resultName() string { return "generated" }
func (SubmittedResult) resultName() string { return "submitted" }
func (GradedResult) resultName() string { return "graded" }
func (GlyphResult) resultName() string { return "glyph" }
func (TracingCompleteResult) resultName() string { return "tracing-complete" }
func (ViewedResult) resultName() string { return "viewed" }
func (ClearedResult) resultName() string { return "cleared" }
