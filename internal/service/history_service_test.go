package service

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"mathmountain/internal/models"
)

// memorySlots is an in-memory SlotStore
type memorySlots struct {
	data   map[string]string
	setErr error
}

func newMemorySlots() *memorySlots {
	return &memorySlots{data: make(map[string]string)}
}

func (m *memorySlots) Get(ctx context.Context, key string) (string, bool, error) {
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memorySlots) Set(ctx context.Context, key, payload string) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.data[key] = payload
	return nil
}

const testSlot = "mathMountainHistory"

var testEpoch = time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)

func testSession(t *testing.T, n int) *models.Session {
	t.Helper()
	problems := []models.MountainProblem{{Top: 10, Base1: 4, Base2: 6, HidePosition: models.HideTop, CorrectAnswer: 10}}
	records := []models.AnswerRecord{{UserAnswer: models.NewAnswer(10), CorrectAnswer: 10, IsCorrect: true}}
	s, err := models.NewSession(models.SessionMountains, "", problems, records, 1, 0, testEpoch.Add(time.Duration(n)*time.Millisecond))
	if err != nil {
		t.Fatalf("NewSession() error = %v", err)
	}
	return s
}

func TestHistoryLoadMissingSlot(t *testing.T) {
	h := NewHistoryService(newMemorySlots(), testSlot, 0, zerolog.Nop())
	sessions, err := h.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(sessions) != 0 {
		t.Errorf("Load() = %d sessions, want 0", len(sessions))
	}
	if h.Cap() != DefaultHistoryCap {
		t.Errorf("Cap() = %d, want %d", h.Cap(), DefaultHistoryCap)
	}
}

func TestHistoryAppendCapsMostRecentFirst(t *testing.T) {
	ctx := context.Background()
	slots := newMemorySlots()
	h := NewHistoryService(slots, testSlot, 50, zerolog.Nop())

	for i := 0; i < 60; i++ {
		if err := h.Append(ctx, testSession(t, i)); err != nil {
			t.Fatalf("Append(%d) error = %v", i, err)
		}
	}

	list := h.List()
	if len(list) != 50 {
		t.Fatalf("List() = %d sessions, want 50", len(list))
	}
	newest := testEpoch.Add(59 * time.Millisecond).UnixMilli()
	oldest := testEpoch.Add(10 * time.Millisecond).UnixMilli()
	if list[0].ID != newest || list[49].ID != oldest {
		t.Errorf("List() spans %d..%d, want %d..%d", list[0].ID, list[49].ID, newest, oldest)
	}

	// A fresh store over the same slot sees the persisted list
	reloaded, err := NewHistoryService(slots, testSlot, 50, zerolog.Nop()).Load(ctx)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(reloaded) != 50 || reloaded[0].ID != newest {
		t.Errorf("reloaded %d sessions starting at %d", len(reloaded), reloaded[0].ID)
	}
	if !reloaded[0].UserAnswers[0].UserAnswer.Matches(10) {
		t.Errorf("reloaded answer = %+v", reloaded[0].UserAnswers[0])
	}
}

func mountainJSON(hide int) string {
	return `{"top":3,"base1":1,"base2":2,"hidePosition":` + strconv.Itoa(hide) + `,"correctAnswer":3}`
}

func TestHistoryLoadCorruptIsEmpty(t *testing.T) {
	valid := `{"id":1,"type":"Math Mountains","date":"x","problems":[],"userAnswers":[],"correct":1,"incorrect":0,"total":1,"percentage":100}`

	tests := []struct {
		name    string
		payload string
		want    int
	}{
		{name: "valid", payload: "[" + valid + "]", want: 1},
		{name: "empty list", payload: "[]", want: 0},
		{name: "not json", payload: "{{{", want: 0},
		{name: "object not list", payload: valid, want: 0},
		{name: "missing total", payload: `[{"id":1,"type":"Math Mountains","correct":1,"incorrect":0,"percentage":100}]`, want: 0},
		{name: "totals disagree", payload: `[{"id":1,"type":"Math Mountains","correct":1,"incorrect":1,"total":3,"percentage":33}]`, want: 0},
		{name: "one bad record poisons all", payload: "[" + valid + `,{"id":2}]`, want: 0},
		{name: "answer record missing correctAnswer", payload: `[{"id":1,"type":"Math Mountains","userAnswers":[{"userAnswer":3}],"correct":1,"incorrect":0,"total":1,"percentage":100}]`, want: 0},
		{name: "mountain answers shorter than problems", payload: `[{"id":1,"type":"Math Mountains","problems":[` + mountainJSON(0) + `,` + mountainJSON(1) + `],"userAnswers":[{"userAnswer":3,"correctAnswer":3}],"correct":1,"incorrect":0,"total":1,"percentage":100}]`, want: 0},
		{name: "hide position out of range", payload: `[{"id":1,"type":"Math Mountains","problems":[` + mountainJSON(7) + `],"userAnswers":[{"userAnswer":3,"correctAnswer":3}],"correct":1,"incorrect":0,"total":1,"percentage":100}]`, want: 0},
		{name: "tracing scores shorter than items", payload: `[{"id":1,"type":"Tracing Numbers","problems":[{"mode":"numbers","items":["0","1"],"scores":[90]}],"userAnswers":[{"userAnswer":90,"correctAnswer":100,"isCorrect":true}],"correct":1,"incorrect":0,"total":1,"percentage":100}]`, want: 0},
		{name: "unknown session type", payload: `[{"id":1,"type":"Spelling","problems":[],"userAnswers":[],"correct":1,"incorrect":0,"total":1,"percentage":100}]`, want: 0},
		{name: "unknown fields ignored", payload: `[{"extra":true,` + valid[1:] + "]", want: 1},
		{name: "null user answer", payload: `[{"id":1,"type":"Word Problems","problems":[{"text":"t","answer":5,"explanation":"e"}],"userAnswers":[{"userAnswer":null,"correctAnswer":5,"isCorrect":false}],"correct":0,"incorrect":1,"total":1,"percentage":0}]`, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slots := newMemorySlots()
			slots.data[testSlot] = tt.payload

			sessions, err := NewHistoryService(slots, testSlot, 50, zerolog.Nop()).Load(context.Background())
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if len(sessions) != tt.want {
				t.Errorf("Load() = %d sessions, want %d", len(sessions), tt.want)
			}
		})
	}
}

func TestHistoryClear(t *testing.T) {
	ctx := context.Background()
	slots := newMemorySlots()
	h := NewHistoryService(slots, testSlot, 50, zerolog.Nop())
	h.Append(ctx, testSession(t, 1))

	if err := h.Clear(ctx); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if len(h.List()) != 0 {
		t.Errorf("List() after Clear = %d sessions", len(h.List()))
	}
	if slots.data[testSlot] != "[]" {
		t.Errorf("slot = %q, want []", slots.data[testSlot])
	}
}

func TestHistoryAppendFailureKeepsState(t *testing.T) {
	ctx := context.Background()
	slots := newMemorySlots()
	h := NewHistoryService(slots, testSlot, 50, zerolog.Nop())
	h.Append(ctx, testSession(t, 1))

	slots.setErr = errors.New("disk full")
	if err := h.Append(ctx, testSession(t, 2)); err == nil {
		t.Fatal("Append() error = nil, want failure")
	}
	if len(h.List()) != 1 {
		t.Errorf("List() = %d sessions, want 1", len(h.List()))
	}
}

func TestHistoryGet(t *testing.T) {
	ctx := context.Background()
	h := NewHistoryService(newMemorySlots(), testSlot, 50, zerolog.Nop())
	s := testSession(t, 5)
	h.Append(ctx, s)

	got, err := h.Get(s.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.ID != s.ID {
		t.Errorf("Get() = %d, want %d", got.ID, s.ID)
	}

	if _, err := h.Get(42); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Get(42) error = %v, want ErrSessionNotFound", err)
	}
}

func TestHistoryListIsCopy(t *testing.T) {
	ctx := context.Background()
	h := NewHistoryService(newMemorySlots(), testSlot, 50, zerolog.Nop())
	h.Append(ctx, testSession(t, 1))

	list := h.List()
	list[0].Correct = 99
	if h.List()[0].Correct != 1 {
		t.Error("mutating List() result changed the store")
	}
}

func TestHistoryPersistedShape(t *testing.T) {
	ctx := context.Background()
	slots := newMemorySlots()
	h := NewHistoryService(slots, testSlot, 50, zerolog.Nop())
	h.Append(ctx, testSession(t, 0))

	var raw []map[string]any
	if err := json.Unmarshal([]byte(slots.data[testSlot]), &raw); err != nil {
		t.Fatalf("slot is not a JSON list: %v", err)
	}
	for _, key := range []string{"id", "type", "date", "problems", "userAnswers", "correct", "incorrect", "total", "percentage"} {
		if _, ok := raw[0][key]; !ok {
			t.Errorf("persisted session missing %q", key)
		}
	}
	if raw[0]["date"] != "3/14/2026, 3:09:26 PM" {
		t.Errorf("date = %v", raw[0]["date"])
	}
}

func TestHistoryAppendSameMillisecond(t *testing.T) {
	ctx := context.Background()
	h := NewHistoryService(newMemorySlots(), testSlot, 50, zerolog.Nop())

	first := testSession(t, 0)
	second := testSession(t, 0)
	third := testSession(t, -5)
	for _, s := range []*models.Session{first, second, third} {
		if err := h.Append(ctx, s); err != nil {
			t.Fatalf("Append() error = %v", err)
		}
	}

	base := testEpoch.UnixMilli()
	if first.ID != base || second.ID != base+1 || third.ID != base+2 {
		t.Errorf("IDs = %d, %d, %d; want %d, %d, %d", first.ID, second.ID, third.ID, base, base+1, base+2)
	}
	for _, s := range []*models.Session{first, second, third} {
		got, err := h.Get(s.ID)
		if err != nil {
			t.Errorf("Get(%d) error = %v", s.ID, err)
			continue
		}
		if got.ID != s.ID {
			t.Errorf("Get(%d) = %d", s.ID, got.ID)
		}
	}
}
