package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	govalidator "github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"mathmountain/internal/models"
	"mathmountain/internal/validator"
)

// DefaultHistoryCap bounds the number of sessions kept
const DefaultHistoryCap = 50

// ErrSessionNotFound is returned when no stored session has the requested ID
var ErrSessionNotFound = errors.New("session not found")

// SlotStore is a durable key-value slot holding the serialized history
type SlotStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, payload string) error
}

// storedRecord is the persisted shape of an AnswerRecord. isCorrect may be absent.
type storedRecord struct {
	UserAnswer    models.Answer `json:"userAnswer"`
	CorrectAnswer *int          `json:"correctAnswer" validate:"required"`
	IsCorrect     bool          `json:"isCorrect"`
}

// storedSession is the persisted shape of a Session used to check a loaded blob
type storedSession struct {
	ID          *int64          `json:"id" validate:"required"`
	Type        string          `json:"type" validate:"required"`
	Date        string          `json:"date"`
	SetID       string          `json:"setId"`
	Problems    json.RawMessage `json:"problems"`
	UserAnswers []storedRecord  `json:"userAnswers" validate:"dive"`
	Correct     *int            `json:"correct" validate:"required,min=0"`
	Incorrect   *int            `json:"incorrect" validate:"required,min=0"`
	Total       *int            `json:"total" validate:"required,min=1"`
	Percentage  *int            `json:"percentage" validate:"required,min=0,max=100"`
}

func validateSessionTotals(sl govalidator.StructLevel) {
	s := sl.Current().Interface().(storedSession)
	if s.Correct == nil || s.Incorrect == nil || s.Total == nil {
		return
	}
	if *s.Total != *s.Correct+*s.Incorrect {
		sl.ReportError(s.Total, "total", "Total", "eqcsfield", "correct+incorrect")
	}
}

func (s storedSession) session() models.Session {
	records := make([]models.AnswerRecord, len(s.UserAnswers))
	for i, r := range s.UserAnswers {
		records[i] = models.AnswerRecord{
			UserAnswer:    r.UserAnswer,
			CorrectAnswer: *r.CorrectAnswer,
			IsCorrect:     r.IsCorrect,
		}
	}
	return models.Session{
		ID:          *s.ID,
		Type:        models.SessionType(s.Type),
		Date:        s.Date,
		SetID:       s.SetID,
		Problems:    s.Problems,
		UserAnswers: records,
		Correct:     *s.Correct,
		Incorrect:   *s.Incorrect,
		Total:       *s.Total,
		Percentage:  *s.Percentage,
	}
}

// HistoryCodec decodes and validates serialized session lists
type HistoryCodec struct {
	validate *validator.Validator
}

func NewHistoryCodec() *HistoryCodec {
	v := validator.New()
	v.RegisterStructValidation(validateSessionTotals, storedSession{})
	return &HistoryCodec{validate: v}
}

// Decode parses a serialized history, rejecting the whole list if any record is malformed
func (c *HistoryCodec) Decode(data []byte) ([]models.Session, error) {
	var stored []storedSession
	if err := json.Unmarshal(data, &stored); err != nil {
		return nil, fmt.Errorf("failed to parse history: %w", err)
	}
	return c.convert(stored)
}

func (c *HistoryCodec) convert(stored []storedSession) ([]models.Session, error) {
	sessions := make([]models.Session, 0, len(stored))
	for i := range stored {
		if err := c.validate.Struct(stored[i]); err != nil {
			return nil, fmt.Errorf("history record %d: %w", i, err)
		}
		session := stored[i].session()
		if err := checkSessionShape(&session); err != nil {
			return nil, fmt.Errorf("history record %d: %w", i, err)
		}
		sessions = append(sessions, session)
	}
	return sessions, nil
}

// HistoryService is the session store: an ordered, most-recent-first list of
// completed sessions persisted to a single slot.
type HistoryService struct {
	store SlotStore
	slot  string
	cap   int
	codec *HistoryCodec
	log   zerolog.Logger

	mu       sync.Mutex
	sessions []models.Session
}

// NewHistoryService creates a store over slot; a non-positive capacity uses DefaultHistoryCap
func NewHistoryService(store SlotStore, slot string, capacity int, log zerolog.Logger) *HistoryService {
	if capacity <= 0 {
		capacity = DefaultHistoryCap
	}
	return &HistoryService{
		store: store,
		slot:  slot,
		cap:   capacity,
		codec: NewHistoryCodec(),
		log:   log.With().Str("component", "history").Str("slot", slot).Logger(),
	}
}

// Slot returns the storage key the history is kept under
func (s *HistoryService) Slot() string {
	return s.slot
}

// Cap returns the maximum number of sessions kept
func (s *HistoryService) Cap() int {
	return s.cap
}

// Load reads the stored history. A missing or corrupt slot yields an empty history;
// only a failure to reach the store is returned as an error.
func (s *HistoryService) Load(ctx context.Context) ([]models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	payload, found, err := s.store.Get(ctx, s.slot)
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}

	s.sessions = nil
	if found {
		sessions, err := s.codec.Decode([]byte(payload))
		if err != nil {
			s.log.Warn().Err(err).Msg("Discarding unreadable history")
		} else {
			s.sessions = sessions
		}
	}

	if len(s.sessions) > s.cap {
		s.sessions = s.sessions[:s.cap]
	}

	s.log.Debug().Int("sessions", len(s.sessions)).Msg("History loaded")
	return s.copySessions(), nil
}

// Append records a session as the most recent entry and persists the list.
// IDs stay unique and descending: a session whose ID is not newer than the
// current head is moved just past it, and session.ID is updated to match.
func (s *HistoryService) Append(ctx context.Context, session *models.Session) error {
	if session == nil {
		return errors.New("nil session")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entry := *session
	if len(s.sessions) > 0 && entry.ID <= s.sessions[0].ID {
		entry.ID = s.sessions[0].ID + 1
	}

	next := make([]models.Session, 0, len(s.sessions)+1)
	next = append(next, entry)
	next = append(next, s.sessions...)
	if len(next) > s.cap {
		next = next[:s.cap]
	}

	if err := s.persist(ctx, next); err != nil {
		return err
	}
	s.sessions = next
	session.ID = entry.ID

	s.log.Info().
		Int64("id", session.ID).
		Str("type", string(session.Type)).
		Int("percentage", session.Percentage).
		Msg("Session recorded")
	return nil
}

// Replace overwrites the stored history, keeping at most Cap sessions
func (s *HistoryService) Replace(ctx context.Context, sessions []models.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]models.Session, len(sessions))
	copy(next, sessions)
	if len(next) > s.cap {
		next = next[:s.cap]
	}

	if err := s.persist(ctx, next); err != nil {
		return err
	}
	s.sessions = next
	return nil
}

// Clear empties the history and persists the empty list
func (s *HistoryService) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.persist(ctx, []models.Session{}); err != nil {
		return err
	}
	s.sessions = nil
	s.log.Info().Msg("History cleared")
	return nil
}

// List returns the in-memory history, most recent first
func (s *HistoryService) List() []models.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.copySessions()
}

// Get returns the session with the given ID
func (s *HistoryService) Get(id int64) (*models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.sessions {
		if s.sessions[i].ID == id {
			session := s.sessions[i]
			return &session, nil
		}
	}
	return nil, fmt.Errorf("session %d: %w", id, ErrSessionNotFound)
}

func (s *HistoryService) persist(ctx context.Context, sessions []models.Session) error {
	if sessions == nil {
		sessions = []models.Session{}
	}
	data, err := json.Marshal(sessions)
	if err != nil {
		return fmt.Errorf("failed to encode history: %w", err)
	}
	if err := s.store.Set(ctx, s.slot, string(data)); err != nil {
		return fmt.Errorf("failed to save history: %w", err)
	}
	return nil
}

func (s *HistoryService) copySessions() []models.Session {
	out := make([]models.Session, len(s.sessions))
	copy(out, s.sessions)
	return out
}
