package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"mathmountain/internal/models"
	"mathmountain/internal/service"
	"mathmountain/internal/tracing"
	"mathmountain/internal/utils"
)

// Canvas size used for terminal strokes
const (
	canvasWidth  = 400
	canvasHeight = 400
)

var errQuit = errors.New("quit")

// repl is the terminal presentation layer. It parses lines into commands,
// dispatches them, and renders the results.
type repl struct {
	svc     *service.ExerciseService
	history *service.HistoryService
	state   *service.AppState
	in      *bufio.Scanner
	out     io.Writer
}

func newREPL(svc *service.ExerciseService, history *service.HistoryService, in io.Reader, out io.Writer) *repl {
	return &repl{
		svc:     svc,
		history: history,
		state:   service.NewAppState(),
		in:      bufio.NewScanner(in),
		out:     out,
	}
}

func (r *repl) run(ctx context.Context) error {
	fmt.Fprintln(r.out, "🏔️  Math Mountain. Type 'help' for commands.")
	for {
		fmt.Fprint(r.out, "> ")
		if !r.in.Scan() {
			return r.in.Err()
		}
		if ctx.Err() != nil {
			return nil
		}

		err := r.handle(ctx, r.in.Text())
		if errors.Is(err, errQuit) {
			return nil
		}
		if err != nil {
			r.renderError(err)
		}
	}
}

func (r *repl) handle(ctx context.Context, line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}

	switch fields[0] {
	case "quit", "exit":
		return errQuit
	case "help":
		r.printHelp()
		return nil
	case "history":
		r.renderHistory()
		return nil
	case "show":
		r.renderSets()
		return nil
	}

	cmd, err := parseCommand(fields)
	if err != nil {
		return err
	}
	res, err := r.svc.Dispatch(ctx, r.state, cmd)
	if err != nil {
		return err
	}
	r.render(res)
	return nil
}

// parseCommand turns a tokenized line into a typed command. Problem numbers are 1-based.
func parseCommand(fields []string) (service.Command, error) {
	args := fields[1:]
	switch fields[0] {
	case "gen", "generate":
		if len(args) < 2 {
			return nil, usage("gen <mountains|words> <tier> [count]")
		}
		kind, err := service.ParseKind(args[0])
		if err != nil {
			return nil, err
		}
		cmd := service.Generate{Kind: kind, Tier: args[1]}
		if len(args) > 2 {
			cmd.Count = args[2]
		}
		return cmd, nil

	case "ans", "answer":
		if len(args) < 2 {
			return nil, usage("ans <mountains|words> <problem> [value]")
		}
		kind, err := service.ParseKind(args[0])
		if err != nil {
			return nil, err
		}
		n, err := strconv.Atoi(args[1])
		if err != nil {
			return nil, utils.ValidationError{Field: "problem", Message: "must be a number"}
		}
		cmd := service.Submit{Kind: kind, Index: n - 1}
		if len(args) > 2 {
			cmd.Value = strings.Join(args[2:], " ")
		}
		return cmd, nil

	case "grade", "check":
		if len(args) < 1 {
			return nil, usage("grade <mountains|words>")
		}
		kind, err := service.ParseKind(args[0])
		if err != nil {
			return nil, err
		}
		return service.Grade{Kind: kind}, nil

	case "trace":
		if len(args) < 1 {
			return nil, usage("trace <letters|numbers>")
		}
		mode, err := tracing.ParseMode(args[0])
		if err != nil {
			return nil, err
		}
		return service.StartTracing{Mode: mode}, nil

	case "stroke":
		if len(args) < 1 {
			return nil, usage("stroke <x,y>... | stroke circle <radius>")
		}
		path, err := parseStroke(args)
		if err != nil {
			return nil, err
		}
		return service.Trace{Path: path, Width: canvasWidth, Height: canvasHeight}, nil

	case "touch":
		if len(args) < 1 {
			return nil, usage("touch <object>")
		}
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return nil, utils.ValidationError{Field: "object", Message: "must be a number"}
		}
		return service.ActivateTarget{Index: n - 1}, nil

	case "next":
		return service.NextGlyph{}, nil

	case "erase":
		return service.ClearTrace{}, nil

	case "view":
		if len(args) < 1 {
			return nil, usage("view <session id>")
		}
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return nil, utils.ValidationError{Field: "id", Message: "must be a session id"}
		}
		return service.ViewSession{ID: id}, nil

	case "clear-history":
		return service.ClearHistory{}, nil
	}

	return nil, utils.ValidationError{Field: "command", Message: fmt.Sprintf("unknown command %q (try 'help')", fields[0])}
}

func usage(text string) error {
	return utils.ValidationError{Field: "usage", Message: text}
}

// parseStroke reads "x,y" pairs, or "circle <radius>" for a 100-point circle around the canvas center
func parseStroke(args []string) ([]tracing.Point, error) {
	if args[0] == "circle" {
		radius := 40.0
		if len(args) > 1 {
			v, err := strconv.ParseFloat(args[1], 64)
			if err != nil || v < 0 {
				return nil, utils.ValidationError{Field: "radius", Message: "must be a non-negative number"}
			}
			radius = v
		}
		return circle(canvasWidth/2, canvasHeight/2, radius, 100), nil
	}

	path := make([]tracing.Point, 0, len(args))
	for _, a := range args {
		xs, ys, ok := strings.Cut(a, ",")
		if !ok {
			return nil, utils.ValidationError{Field: "point", Message: fmt.Sprintf("%q is not x,y", a)}
		}
		x, errX := strconv.ParseFloat(xs, 64)
		y, errY := strconv.ParseFloat(ys, 64)
		if errX != nil || errY != nil {
			return nil, utils.ValidationError{Field: "point", Message: fmt.Sprintf("%q is not x,y", a)}
		}
		path = append(path, tracing.Point{X: x, Y: y})
	}
	return path, nil
}

func circle(cx, cy, radius float64, n int) []tracing.Point {
	path := make([]tracing.Point, n)
	for i := range path {
		angle := 2 * math.Pi * float64(i) / float64(n)
		path[i] = tracing.Point{X: cx + radius*math.Cos(angle), Y: cy + radius*math.Sin(angle)}
	}
	return path
}

func (r *repl) render(res service.Result) {
	switch v := res.(type) {
	case service.GeneratedResult:
		fmt.Fprintf(r.out, "New %s set (%s, %d problems)\n", v.Set.Kind, v.Set.Tier, v.Set.Len())
		r.renderSet(v.Set)
	case service.SubmittedResult:
		fmt.Fprintf(r.out, "Answer %d: %q\n", v.Index+1, v.Value)
	case service.GradedResult:
		r.renderGrade(v)
	case service.GlyphResult:
		r.renderGlyph(v)
	case service.TracingCompleteResult:
		fmt.Fprintln(r.out, v.Summary.Message)
		fmt.Fprintf(r.out, "Average score: %d%%\n", v.Summary.Average)
	case service.ViewedResult:
		r.renderViewed(v)
	case service.ClearedResult:
		fmt.Fprintln(r.out, "History cleared.")
	}
}

func (r *repl) renderSets() {
	shown := false
	for _, set := range []*service.ProblemSet{r.state.Mountains, r.state.WordProblems} {
		if set.Len() > 0 {
			r.renderSet(set)
			shown = true
		}
	}
	if !shown {
		fmt.Fprintln(r.out, "No problems yet. Try 'gen mountains medium 10'.")
	}
}

func (r *repl) renderSet(set *service.ProblemSet) {
	for i := 0; i < set.Len(); i++ {
		answer := set.Answers[i]
		if answer == "" {
			answer = "_"
		}
		if set.Kind == service.KindWordProblems {
			fmt.Fprintf(r.out, "%2d. %s  [%s]\n", i+1, set.Words[i].Text, answer)
			continue
		}
		m := set.Mountains[i]
		fmt.Fprintf(r.out, "%2d. %s\n", i+1, mountainLine(m, answer))
	}
}

// mountainLine renders top over base1 + base2 with the hidden value replaced by the answer slot
func mountainLine(m models.MountainProblem, answer string) string {
	values := [3]string{strconv.Itoa(m.Top), strconv.Itoa(m.Base1), strconv.Itoa(m.Base2)}
	values[m.HidePosition] = "[" + answer + "]"
	return fmt.Sprintf("top %s = %s + %s", values[0], values[1], values[2])
}

func (r *repl) renderGrade(v service.GradedResult) {
	for i, rec := range v.Grading.Records {
		mark := "✗"
		if rec.IsCorrect {
			mark = "✓"
		}
		given := rec.UserAnswer.String()
		if given == "" {
			given = "(blank)"
		}
		fmt.Fprintf(r.out, "%2d. %s %s (answer %d)\n", i+1, mark, given, rec.CorrectAnswer)
	}
	fmt.Fprintf(r.out, "Score: %d/%d (%d%%)\n", v.Grading.Correct, v.Grading.Total(), v.Percentage)
	fmt.Fprintln(r.out, v.Feedback.Message())
}

func (r *repl) renderGlyph(v service.GlyphResult) {
	g := v.Glyph
	if v.Evaluation != nil {
		fmt.Fprintf(r.out, "Score %d, %s %s\n", v.Evaluation.Score, strings.Repeat("⭐", v.Evaluation.Stars), tracing.StarFeedback(v.Evaluation.Stars))
		return
	}
	if v.Progress != nil {
		if v.Progress.Message != "" {
			fmt.Fprintln(r.out, v.Progress.Message)
		}
		return
	}

	fmt.Fprintf(r.out, "Trace %q (%d of %d)\n", g.Char, g.Index+1, g.Total)
	if g.Picture != nil {
		fmt.Fprintf(r.out, "%s %s\n", g.Picture.Emoji, g.Picture.Label)
	}
	if g.Targets > 0 {
		fmt.Fprintf(r.out, "Touch each object: %s\n", strings.Repeat(g.Emoji, g.Targets))
	} else if r.state.Tracing != nil && r.state.Tracing.Mode() == models.TracingNumbers {
		fmt.Fprintln(r.out, r.state.Tracing.Counting().Message)
	}
}

func (r *repl) renderViewed(v service.ViewedResult) {
	s := v.Session
	fmt.Fprintf(r.out, "%s on %s: %d/%d (%d%%)\n", s.Type, s.Date, s.Correct, s.Total, s.Percentage)
	if v.Set != nil {
		r.renderSet(v.Set)
	}
	if v.Tracing != nil {
		for i, item := range v.Tracing.Items {
			fmt.Fprintf(r.out, "%s:%d ", item, v.Tracing.Scores[i])
		}
		fmt.Fprintln(r.out)
	}
	fmt.Fprintln(r.out, "(read only; 'gen' starts a new set)")
}

func (r *repl) renderHistory() {
	sessions := r.history.List()
	if len(sessions) == 0 {
		fmt.Fprintln(r.out, "No practice sessions yet.")
		return
	}
	for _, s := range sessions {
		fmt.Fprintf(r.out, "%d  %-16s %s  %d/%d  %d%% [%s]\n", s.ID, s.Type, s.Date, s.Correct, s.Total, s.Percentage, s.Badge())
	}
}

func (r *repl) renderError(err error) {
	var pe *models.PreconditionError
	var ve utils.ValidationError
	switch {
	case errors.As(err, &pe):
		fmt.Fprintln(r.out, pe.Message)
	case errors.As(err, &ve):
		fmt.Fprintln(r.out, ve.Error())
	case errors.Is(err, service.ErrNoProblems):
		fmt.Fprintln(r.out, "Please generate problems first!")
	default:
		fmt.Fprintf(r.out, "Error: %v\n", err)
	}
}

func (r *repl) printHelp() {
	fmt.Fprint(r.out, `Commands:
  gen <mountains|words> <tier> [count]   new problem set (tiers: low/medium/high, easy/medium/hard)
  ans <mountains|words> <n> [value]      answer problem n
  grade <mountains|words>                check answers and save the session
  show                                   show the active problem sets
  trace <letters|numbers>                start tracing practice
  stroke x,y x,y ... | stroke circle [r] trace the current glyph
  touch <n>                              count object n
  next                                   move to the next glyph
  erase                                  clear the current stroke
  history                                list saved sessions
  view <id>                              review a saved session
  clear-history                          delete all saved sessions
  quit
`)
}
