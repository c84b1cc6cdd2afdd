// Package grading scores learner answers against generated problems.
package grading

import (
	"strconv"
	"strings"

	"mathmountain/internal/models"
)

// Gradable is any problem with a single integer answer
type Gradable interface {
	Expected() int
}

// Result is the outcome of one grading pass. Correct + Incorrect == len(Records).
type Result struct {
	Records   []models.AnswerRecord
	Correct   int
	Incorrect int
}

// Total returns the number of graded problems
func (r Result) Total() int {
	return r.Correct + r.Incorrect
}

// ParseAnswer reads a trimmed, optionally signed base-10 integer. Blank or
// non-numeric input yields the invalid answer.
func ParseAnswer(raw string) models.Answer {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return models.Answer{}
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return models.Answer{}
	}
	return models.NewAnswer(n)
}

// Grade compares inputs[i] against problems[i] by exact integer equality.
// Missing inputs count as blank; invalid answers are always incorrect.
func Grade[P Gradable](problems []P, inputs []string) Result {
	res := Result{Records: make([]models.AnswerRecord, len(problems))}

	for i, p := range problems {
		var raw string
		if i < len(inputs) {
			raw = inputs[i]
		}
		answer := ParseAnswer(raw)
		correct := answer.Matches(p.Expected())

		res.Records[i] = models.AnswerRecord{
			UserAnswer:    answer,
			CorrectAnswer: p.Expected(),
			IsCorrect:     correct,
		}
		if correct {
			res.Correct++
		} else {
			res.Incorrect++
		}
	}

	return res
}

// Percentage returns correct/total*100 rounded half up. Callers must not pass a zero total.
func Percentage(correct, total int) int {
	return models.RoundPercent(correct, total)
}

// Tier is the feedback band for a percentage score
type Tier int

const (
	KeepTrying Tier = iota
	Good
	Great
	Perfect
)

// Feedback returns the band for percentage; thresholds are checked from the top down
func Feedback(percentage int) Tier {
	switch {
	case percentage == 100:
		return Perfect
	case percentage >= 80:
		return Great
	case percentage >= 60:
		return Good
	default:
		return KeepTrying
	}
}

func (t Tier) String() string {
	switch t {
	case Perfect:
		return "perfect"
	case Great:
		return "great"
	case Good:
		return "good"
	default:
		return "keep_trying"
	}
}

// Message is the learner-facing headline for the band
func (t Tier) Message() string {
	switch t {
	case Perfect:
		return "🎉 AMAZING! Perfect Score! 🎉"
	case Great:
		return "🌟 Fantastic Job! Keep it up! 🌟"
	case Good:
		return "👍 Good Work! Practice makes perfect! 👍"
	default:
		return "💪 Keep Trying! You can do it! 💪"
	}
}
