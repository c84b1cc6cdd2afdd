package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"mathmountain/internal/generator"
	"mathmountain/internal/models"
	"mathmountain/internal/service"
)

type mapSlots map[string]string

func (m mapSlots) Get(ctx context.Context, key string) (string, bool, error) {
	v, ok := m[key]
	return v, ok, nil
}

func (m mapSlots) Set(ctx context.Context, key, payload string) error {
	m[key] = payload
	return nil
}

func TestParseCommand(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		want    service.Command
		wantErr bool
	}{
		{name: "generate", line: "gen mountains high 20", want: service.Generate{Kind: service.KindMountains, Tier: "high", Count: "20"}},
		{name: "generate default count", line: "gen words easy", want: service.Generate{Kind: service.KindWordProblems, Tier: "easy"}},
		{name: "answer is 1-based", line: "ans words 3 42", want: service.Submit{Kind: service.KindWordProblems, Index: 2, Value: "42"}},
		{name: "blank answer", line: "ans mountains 1", want: service.Submit{Kind: service.KindMountains, Index: 0}},
		{name: "grade", line: "grade mountains", want: service.Grade{Kind: service.KindMountains}},
		{name: "trace", line: "trace NUMBERS", want: service.StartTracing{Mode: models.TracingNumbers}},
		{name: "touch", line: "touch 2", want: service.ActivateTarget{Index: 1}},
		{name: "next", line: "next", want: service.NextGlyph{}},
		{name: "erase", line: "erase", want: service.ClearTrace{}},
		{name: "view", line: "view 1700000000000", want: service.ViewSession{ID: 1700000000000}},
		{name: "clear history", line: "clear-history", want: service.ClearHistory{}},
		{name: "unknown kind", line: "gen tracing low", wantErr: true},
		{name: "missing args", line: "gen", wantErr: true},
		{name: "bad touch", line: "touch two", wantErr: true},
		{name: "unknown command", line: "dance", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseCommand(strings.Fields(tt.line))
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseCommand(%q) error = %v, wantErr %v", tt.line, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("parseCommand(%q) = %#v, want %#v", tt.line, got, tt.want)
			}
		})
	}
}

func TestParseStroke(t *testing.T) {
	path, err := parseStroke([]string{"1,2", "3.5,4"})
	if err != nil {
		t.Fatalf("parseStroke() error = %v", err)
	}
	if len(path) != 2 || path[1].X != 3.5 || path[1].Y != 4 {
		t.Errorf("parseStroke() = %v", path)
	}

	if _, err := parseStroke([]string{"12"}); err == nil {
		t.Error("parseStroke(12) error = nil")
	}

	circ, err := parseStroke([]string{"circle", "10"})
	if err != nil || len(circ) != 100 {
		t.Fatalf("parseStroke(circle) = %d points, %v", len(circ), err)
	}
}

func TestMountainLine(t *testing.T) {
	m := models.MountainProblem{Top: 15, Base1: 7, Base2: 8, HidePosition: models.HideBase1, CorrectAnswer: 7}
	if got := mountainLine(m, "_"); got != "top 15 = [_] + 8" {
		t.Errorf("mountainLine() = %q", got)
	}
}

func TestREPLSession(t *testing.T) {
	history := service.NewHistoryService(mapSlots{}, "mathMountainHistory", 50, zerolog.Nop())
	svc := service.NewExerciseService(generator.New(1), history, zerolog.Nop())

	input := strings.Join([]string{
		"grade mountains",
		"gen mountains low 10",
		"grade mountains",
		"trace letters",
		"stroke circle 10",
		"history",
		"quit",
	}, "\n")
	var out bytes.Buffer

	if err := newREPL(svc, history, strings.NewReader(input), &out).run(context.Background()); err != nil {
		t.Fatalf("run() error = %v", err)
	}

	text := out.String()
	for _, want := range []string{
		"Please generate problems first!",
		"New mountains set (low, 10 problems)",
		"Score: 0/10 (0%)",
		`Trace "A" (1 of 26)`,
		"Score 100",
		"Math Mountains",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("output missing %q\n%s", want, text)
		}
	}
	if len(history.List()) != 1 {
		t.Errorf("history has %d sessions, want 1", len(history.List()))
	}
}
