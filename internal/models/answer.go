package models

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Answer is a learner's parsed answer. The zero value is the invalid (blank or
// non-numeric) answer, which never equals a correct answer.
type Answer struct {
	Value int
	Valid bool
}

// NewAnswer returns a valid answer holding v
func NewAnswer(v int) Answer {
	return Answer{Value: v, Valid: true}
}

// Matches reports whether the answer is valid and equal to expected
func (a Answer) Matches(expected int) bool {
	return a.Valid && a.Value == expected
}

func (a Answer) String() string {
	if !a.Valid {
		return ""
	}
	return strconv.Itoa(a.Value)
}

// MarshalJSON writes invalid answers as null
func (a Answer) MarshalJSON() ([]byte, error) {
	if !a.Valid {
		return []byte("null"), nil
	}
	return []byte(strconv.Itoa(a.Value)), nil
}

// UnmarshalJSON reads null as an invalid answer
func (a *Answer) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*a = Answer{}
		return nil
	}
	var v int
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*a = NewAnswer(v)
	return nil
}

// AnswerRecord is the graded outcome of one problem
type AnswerRecord struct {
	UserAnswer    Answer `json:"userAnswer"`
	CorrectAnswer int    `json:"correctAnswer"`
	IsCorrect     bool   `json:"isCorrect"`
}
