package tracing

import (
	"fmt"
	"strconv"
	"time"

	"mathmountain/internal/generator"
	"mathmountain/internal/models"
	"mathmountain/internal/utils"
)

// State is the position of a tracing run in its lifecycle
type State int

const (
	StateIdle State = iota
	StateActive
	StateScored
	StateSkipped
	StateComplete
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateActive:
		return "active"
	case StateScored:
		return "scored"
	case StateSkipped:
		return "skipped"
	case StateComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// PassingAverage is the average trace score a run needs to count as correct
const PassingAverage = 80

const (
	msgCountFirst    = "Please count all the objects first by touching them!"
	msgZeroCount     = "🎉 Zero means no objects! Nothing to count! 🎉"
	msgCountedAll    = "🎉 Perfect! You counted them all! 🎉"
	msgNotStarted    = "tracing has not been started"
	msgRunComplete   = "tracing run is already complete"
	msgRunIncomplete = "tracing run is not complete yet"
)

// Glyph describes the item currently being traced
type Glyph struct {
	Char  string
	Index int
	Total int

	// Picture is set in letters mode
	Picture *Picture

	// Targets is the number of counting objects in numbers mode, all showing Emoji
	Targets int
	Emoji   string
}

// CountProgress reports counting state after a target is activated
type CountProgress struct {
	Counted  int
	Target   int
	Complete bool
	Message  string
}

// Summary is the result of a finished tracing run
type Summary struct {
	Aggregate models.TracingAggregate
	Average   int
	Passed    bool
	Message   string
}

// Session walks one tracing run glyph by glyph. It is driven by discrete
// pointer and click events and is not safe for concurrent use.
type Session struct {
	src   *generator.Source
	mode  models.TracingMode
	items []string

	state  State
	index  int
	scores []int
	scored []bool

	drawing bool
	path    []Point

	emoji   string
	targets []bool
	counted int
	// counting gates Next in numbers mode
	counting bool

	recorded bool
}

// NewSession prepares an idle run; any mode other than letters traces digits
func NewSession(mode models.TracingMode, src *generator.Source) *Session {
	if mode != models.TracingLetters {
		mode = models.TracingNumbers
	}
	return &Session{
		src:   src,
		mode:  mode,
		items: Glyphs(mode),
	}
}

// Mode returns the glyph set being traced
func (s *Session) Mode() models.TracingMode {
	return s.mode
}

// State returns the lifecycle state
func (s *Session) State() State {
	return s.state
}

// Start (re)starts the run at the first glyph
func (s *Session) Start() Glyph {
	s.index = 0
	s.recorded = false
	s.scores = make([]int, len(s.items))
	s.scored = make([]bool, len(s.items))
	s.load()
	return s.glyph()
}

// load resets per-glyph state for the glyph at s.index
func (s *Session) load() {
	s.state = StateActive
	s.drawing = false
	s.path = nil
	s.counted = 0
	s.targets = nil
	s.counting = true

	if s.mode != models.TracingNumbers {
		return
	}

	n, _ := strconv.Atoi(s.items[s.index])
	s.emoji = generator.Pick(s.src, countingEmojis)
	s.targets = make([]bool, n)
	s.counting = n == 0
}

func (s *Session) glyph() Glyph {
	g := Glyph{
		Char:  s.items[s.index],
		Index: s.index,
		Total: len(s.items),
	}
	if s.mode == models.TracingLetters {
		p := PictureFor(g.Char)
		g.Picture = &p
	} else {
		g.Targets = len(s.targets)
		g.Emoji = s.emoji
	}
	return g
}

// Current returns the glyph being traced; ok is false when idle or complete
func (s *Session) Current() (Glyph, bool) {
	if s.state == StateIdle || s.state == StateComplete {
		return Glyph{}, false
	}
	return s.glyph(), true
}

func (s *Session) requireActive(action string) error {
	switch s.state {
	case StateIdle:
		return &models.PreconditionError{Action: action, Message: msgNotStarted}
	case StateComplete:
		return &models.PreconditionError{Action: action, Message: msgRunComplete}
	}
	return nil
}

// Counting reports the counting progress of the current glyph
func (s *Session) Counting() CountProgress {
	progress := CountProgress{Counted: s.counted, Target: len(s.targets), Complete: s.counting}
	switch {
	case len(s.targets) == 0 && s.mode == models.TracingNumbers:
		progress.Message = msgZeroCount
	case s.counting && len(s.targets) > 0:
		progress.Message = msgCountedAll
	case s.counted > 0:
		progress.Message = fmt.Sprintf("%d of %d", s.counted, len(s.targets))
	}
	return progress
}

// Activate marks counting target i as touched. Touching a target twice changes nothing.
func (s *Session) Activate(i int) (CountProgress, error) {
	if err := s.requireActive("count"); err != nil {
		return CountProgress{}, err
	}
	if i < 0 || i >= len(s.targets) {
		return CountProgress{}, utils.ValidationError{
			Field:   "target",
			Message: fmt.Sprintf("index %d out of range [0, %d)", i, len(s.targets)),
		}
	}

	if !s.targets[i] {
		s.targets[i] = true
		s.counted++
		if s.counted == len(s.targets) {
			s.counting = true
		}
	}
	return s.Counting(), nil
}

// PointerDown begins a new stroke, discarding any previous one
func (s *Session) PointerDown(p Point) error {
	if err := s.requireActive("trace"); err != nil {
		return err
	}
	s.drawing = true
	s.path = []Point{p}
	return nil
}

// PointerMove extends the stroke in progress
func (s *Session) PointerMove(p Point) {
	if !s.drawing {
		return
	}
	s.path = append(s.path, p)
}

// PointerUp ends the stroke and scores it against a width x height canvas
func (s *Session) PointerUp(width, height float64) (Evaluation, bool) {
	if !s.drawing {
		return Evaluation{}, false
	}
	s.drawing = false
	eval, ok := s.Evaluate(s.path, width, height)
	return eval, ok
}

// Evaluate scores a complete stroke for the current glyph. A stroke that is too
// short leaves any earlier score in place.
func (s *Session) Evaluate(path []Point, width, height float64) (Evaluation, bool) {
	if s.requireActive("trace") != nil {
		return Evaluation{}, false
	}
	eval, ok := EvaluateTrace(path, width, height)
	if !ok {
		return Evaluation{}, false
	}
	s.scores[s.index] = eval.Score
	s.scored[s.index] = true
	s.state = StateScored
	return eval, true
}

// Clear discards the current stroke
func (s *Session) Clear() {
	s.drawing = false
	s.path = nil
}

// Path returns a copy of the stroke captured so far
func (s *Session) Path() []Point {
	out := make([]Point, len(s.path))
	copy(out, s.path)
	return out
}

// Next advances to the following glyph. In numbers mode it refuses until every
// counting target has been touched. An unscored glyph is recorded as 0.
// done is true once the last glyph has been passed.
func (s *Session) Next() (next Glyph, done bool, err error) {
	if err := s.requireActive("next"); err != nil {
		return Glyph{}, false, err
	}
	if s.mode == models.TracingNumbers && !s.counting {
		return Glyph{}, false, &models.PreconditionError{Action: "next", Message: msgCountFirst}
	}

	if !s.scored[s.index] {
		s.scores[s.index] = 0
		s.state = StateSkipped
	}

	s.index++
	if s.index >= len(s.items) {
		s.state = StateComplete
		s.path = nil
		return Glyph{}, true, nil
	}

	s.load()
	return s.glyph(), false, nil
}

// MarkRecorded notes that the finished run's session has been saved
func (s *Session) MarkRecorded() {
	s.recorded = true
}

// Pending reports whether the run is complete but its session has not been saved
func (s *Session) Pending() bool {
	return s.state == StateComplete && !s.recorded
}

// Scores returns the per-glyph scores recorded so far
func (s *Session) Scores() []int {
	out := make([]int, len(s.scores))
	copy(out, s.scores)
	return out
}

// Summary reduces a complete run to its average and pass/fail outcome
func (s *Session) Summary() (*Summary, error) {
	if s.state != StateComplete {
		return nil, &models.PreconditionError{Action: "summary", Message: msgRunIncomplete}
	}

	average := roundAverage(s.scores)
	items := make([]string, len(s.items))
	copy(items, s.items)

	return &Summary{
		Aggregate: models.TracingAggregate{Mode: s.mode, Items: items, Scores: s.Scores()},
		Average:   average,
		Passed:    average >= PassingAverage,
		Message:   summaryMessage(average),
	}, nil
}

// Session converts the summary into the pass/fail history entry
func (sum *Summary) Session(now time.Time) (*models.Session, error) {
	correct, incorrect := 0, 1
	if sum.Passed {
		correct, incorrect = 1, 0
	}
	records := []models.AnswerRecord{{
		UserAnswer:    models.NewAnswer(sum.Average),
		CorrectAnswer: 100,
		IsCorrect:     sum.Passed,
	}}
	return models.NewSession(sum.Aggregate.Mode.SessionType(), "", []models.TracingAggregate{sum.Aggregate}, records, correct, incorrect, now)
}

func roundAverage(scores []int) int {
	if len(scores) == 0 {
		return 0
	}
	sum := 0
	for _, v := range scores {
		sum += v
	}
	return (2*sum + len(scores)) / (2 * len(scores))
}

func summaryMessage(average int) string {
	switch {
	case average >= 90:
		return "🎉 AMAZING! You're a tracing superstar! 🎉"
	case average >= 75:
		return "🌟 Fantastic Work! Great tracing! 🌟"
	case average >= 60:
		return "👍 Good Job! Keep practicing! 👍"
	default:
		return "💪 Nice Try! Practice makes perfect! 💪"
	}
}
