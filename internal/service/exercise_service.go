package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"mathmountain/internal/generator"
	"mathmountain/internal/grading"
	"mathmountain/internal/models"
	"mathmountain/internal/problems"
	"mathmountain/internal/tracing"
	"mathmountain/internal/utils"
)

// ErrNoProblems is returned when grading a set that holds no problems
var ErrNoProblems = errors.New("no problems to grade")

const (
	msgViewingHistory = "a stored session is being viewed; generate new problems first"
	msgStaleSet       = "these problems have been replaced; grade the current set"
	msgNoTracing      = "start a tracing run first"
)

// ExerciseService applies commands to an AppState. It owns no UI state itself.
type ExerciseService struct {
	src     *generator.Source
	factory *problems.Factory
	history *HistoryService
	log     zerolog.Logger
	now     func() time.Time
}

// NewExerciseService wires the generator and session store together
func NewExerciseService(src *generator.Source, history *HistoryService, log zerolog.Logger) *ExerciseService {
	return &ExerciseService{
		src:     src,
		factory: problems.NewFactory(src),
		history: history,
		log:     log.With().Str("component", "exercise").Logger(),
		now:     time.Now,
	}
}

// Dispatch applies cmd to state. On error the state is left as it was, except that
// a tracing run finished by NextGlyph stays finished when its session cannot be
// saved; the next NextGlyph retries the save.
func (s *ExerciseService) Dispatch(ctx context.Context, state *AppState, cmd Command) (Result, error) {
	s.log.Debug().Str("command", cmd.commandName()).Msg("Dispatching command")

	var (
		res Result
		err error
	)
	switch c := cmd.(type) {
	case Generate:
		res, err = s.generate(state, c)
	case Submit:
		res, err = s.submit(state, c)
	case Grade:
		res, err = s.grade(ctx, state, c)
	case StartTracing:
		res, err = s.startTracing(state, c)
	case Trace:
		res, err = s.trace(state, c)
	case ActivateTarget:
		res, err = s.activateTarget(state, c)
	case NextGlyph:
		res, err = s.nextGlyph(ctx, state)
	case ClearTrace:
		res, err = s.clearTrace(state)
	case ViewSession:
		res, err = s.viewSession(state, c)
	case ClearHistory:
		res, err = s.clearHistory(ctx)
	default:
		return nil, fmt.Errorf("unknown command %T", cmd)
	}

	if err != nil {
		s.log.Debug().Err(err).Str("command", cmd.commandName()).Msg("Command refused")
		return nil, err
	}
	s.log.Debug().Str("result", res.resultName()).Msg("Command applied")
	return res, nil
}

// GenerateMountainSet draws a fresh set of mountains
func (s *ExerciseService) GenerateMountainSet(tier models.MountainTier, count int) []models.MountainProblem {
	return s.factory.MountainSet(tier, count)
}

// GenerateWordProblemSet draws a fresh set of word problems
func (s *ExerciseService) GenerateWordProblemSet(tier models.WordTier, count int) []models.WordProblem {
	return s.factory.WordProblemSet(tier, count)
}

func (s *ExerciseService) generate(state *AppState, c Generate) (Result, error) {
	count := problems.ValidateProblemCount(c.Count)
	set := &ProblemSet{ID: uuid.New(), Kind: c.Kind}

	switch c.Kind {
	case KindMountains:
		tier, err := problems.ParseMountainTier(c.Tier)
		if err != nil {
			return nil, err
		}
		set.Tier = string(tier)
		set.Mountains = s.factory.MountainSet(tier, count)
	case KindWordProblems:
		tier, err := problems.ParseWordTier(c.Tier)
		if err != nil {
			return nil, err
		}
		set.Tier = string(tier)
		set.Words = s.factory.WordProblemSet(tier, count)
	default:
		return nil, utils.ValidationError{Field: "kind", Message: fmt.Sprintf("unknown exercise %q", c.Kind)}
	}
	set.Answers = make([]string, set.Len())

	state.setSet(c.Kind, set)
	state.ViewingHistory = false
	state.Viewed = nil

	s.log.Info().
		Str("kind", string(c.Kind)).
		Str("tier", set.Tier).
		Int("count", set.Len()).
		Str("set_id", set.ID.String()).
		Msg("Problem set generated")
	return GeneratedResult{Set: set}, nil
}

func (s *ExerciseService) submit(state *AppState, c Submit) (Result, error) {
	if state.ViewingHistory {
		return nil, &models.PreconditionError{Action: "submit", Message: msgViewingHistory}
	}
	set := state.Set(c.Kind)
	if set.Len() == 0 {
		return nil, ErrNoProblems
	}
	if c.Index < 0 || c.Index >= set.Len() {
		return nil, utils.ValidationError{
			Field:   "index",
			Message: fmt.Sprintf("problem %d out of range [0, %d)", c.Index, set.Len()),
		}
	}

	set.Answers[c.Index] = c.Value
	return SubmittedResult{Index: c.Index, Value: c.Value}, nil
}

func (s *ExerciseService) grade(ctx context.Context, state *AppState, c Grade) (Result, error) {
	if state.ViewingHistory {
		return nil, &models.PreconditionError{Action: "grade", Message: msgViewingHistory}
	}
	set := state.Set(c.Kind)
	if set.Len() == 0 {
		return nil, ErrNoProblems
	}
	if c.SetID != "" && c.SetID != set.ID.String() {
		return nil, &models.PreconditionError{Action: "grade", Message: msgStaleSet}
	}

	result := set.grade()
	session, err := models.NewSession(c.Kind.sessionType(), set.ID.String(), set.snapshot(), result.Records, result.Correct, result.Incorrect, s.now())
	if err != nil {
		return nil, err
	}
	if err := s.history.Append(ctx, session); err != nil {
		return nil, err
	}

	percentage := grading.Percentage(result.Correct, result.Total())
	return GradedResult{
		Grading:    result,
		Percentage: percentage,
		Feedback:   grading.Feedback(percentage),
		Session:    session,
	}, nil
}

func (s *ExerciseService) startTracing(state *AppState, c StartTracing) (Result, error) {
	mode, err := tracing.ParseMode(string(c.Mode))
	if err != nil {
		return nil, err
	}
	run := tracing.NewSession(mode, s.src)
	glyph := run.Start()
	state.Tracing = run

	s.log.Info().Str("mode", string(mode)).Msg("Tracing started")
	return GlyphResult{Glyph: glyph}, nil
}

func (s *ExerciseService) activeTracing(state *AppState, action string) (*tracing.Session, tracing.Glyph, error) {
	if state.Tracing == nil {
		return nil, tracing.Glyph{}, &models.PreconditionError{Action: action, Message: msgNoTracing}
	}
	glyph, ok := state.Tracing.Current()
	if !ok {
		return nil, tracing.Glyph{}, &models.PreconditionError{Action: action, Message: msgNoTracing}
	}
	return state.Tracing, glyph, nil
}

func (s *ExerciseService) trace(state *AppState, c Trace) (Result, error) {
	run, glyph, err := s.activeTracing(state, "trace")
	if err != nil {
		return nil, err
	}
	if len(c.Path) == 0 {
		return GlyphResult{Glyph: glyph}, nil
	}

	if err := run.PointerDown(c.Path[0]); err != nil {
		return nil, err
	}
	for _, p := range c.Path[1:] {
		run.PointerMove(p)
	}

	res := GlyphResult{Glyph: glyph}
	if eval, ok := run.PointerUp(c.Width, c.Height); ok {
		res.Evaluation = &eval
	}
	return res, nil
}

func (s *ExerciseService) activateTarget(state *AppState, c ActivateTarget) (Result, error) {
	run, glyph, err := s.activeTracing(state, "count")
	if err != nil {
		return nil, err
	}
	progress, err := run.Activate(c.Index)
	if err != nil {
		return nil, err
	}
	return GlyphResult{Glyph: glyph, Progress: &progress}, nil
}

func (s *ExerciseService) nextGlyph(ctx context.Context, state *AppState) (Result, error) {
	// A finished run whose save failed is retried rather than refused
	if state.Tracing != nil && state.Tracing.Pending() {
		return s.recordTracing(ctx, state.Tracing)
	}

	run, _, err := s.activeTracing(state, "next")
	if err != nil {
		return nil, err
	}

	glyph, done, err := run.Next()
	if err != nil {
		return nil, err
	}
	if !done {
		return GlyphResult{Glyph: glyph}, nil
	}
	return s.recordTracing(ctx, run)
}

// recordTracing saves a complete run's session. The run is only marked saved once
// the append succeeds.
func (s *ExerciseService) recordTracing(ctx context.Context, run *tracing.Session) (Result, error) {
	summary, err := run.Summary()
	if err != nil {
		return nil, err
	}
	session, err := summary.Session(s.now())
	if err != nil {
		return nil, err
	}
	if err := s.history.Append(ctx, session); err != nil {
		s.log.Warn().Err(err).Msg("Tracing result not saved; next will retry")
		return nil, err
	}
	run.MarkRecorded()
	return TracingCompleteResult{Summary: summary, Session: session}, nil
}

func (s *ExerciseService) clearTrace(state *AppState) (Result, error) {
	run, glyph, err := s.activeTracing(state, "clear")
	if err != nil {
		return nil, err
	}
	run.Clear()
	return GlyphResult{Glyph: glyph}, nil
}

func (s *ExerciseService) viewSession(state *AppState, c ViewSession) (Result, error) {
	session, err := s.history.Get(c.ID)
	if err != nil {
		return nil, err
	}
	if err := checkSessionShape(session); err != nil {
		return nil, fmt.Errorf("cannot show stored session: %w", err)
	}

	res := ViewedResult{Session: session}
	switch session.Type {
	case models.SessionMountains:
		mountains, err := session.MountainProblems()
		if err != nil {
			return nil, err
		}
		res.Set = restoredSet(KindMountains, session)
		res.Set.Mountains = mountains
	case models.SessionWordProblems:
		words, err := session.WordProblems()
		if err != nil {
			return nil, err
		}
		res.Set = restoredSet(KindWordProblems, session)
		res.Set.Words = words
	default:
		agg, err := session.TracingAggregate()
		if err != nil {
			return nil, err
		}
		res.Tracing = agg
	}

	if res.Set != nil {
		state.setSet(res.Set.Kind, res.Set)
	}
	state.ViewingHistory = true
	state.Viewed = session
	return res, nil
}

func restoredSet(kind ExerciseKind, session *models.Session) *ProblemSet {
	set := &ProblemSet{Kind: kind, Records: session.UserAnswers}
	if id, err := uuid.Parse(session.SetID); err == nil {
		set.ID = id
	}
	set.Answers = make([]string, len(session.UserAnswers))
	for i, r := range session.UserAnswers {
		set.Answers[i] = r.UserAnswer.String()
	}
	return set
}

func (s *ExerciseService) clearHistory(ctx context.Context) (Result, error) {
	if err := s.history.Clear(ctx); err != nil {
		return nil, err
	}
	return ClearedResult{}, nil
}
