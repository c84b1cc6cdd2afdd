package service

import (
	"fmt"

	"mathmountain/internal/models"
)

// checkSessionShape verifies that a session's problem snapshot lines up with its
// answer records, so a restored session can be shown index by index.
func checkSessionShape(s *models.Session) error {
	switch s.Type {
	case models.SessionMountains:
		problems, err := s.MountainProblems()
		if err != nil {
			return err
		}
		if len(problems) != len(s.UserAnswers) {
			return fmt.Errorf("session %d has %d problems but %d answers", s.ID, len(problems), len(s.UserAnswers))
		}
		for i, p := range problems {
			if p.HidePosition < models.HideTop || p.HidePosition > models.HideBase2 {
				return fmt.Errorf("session %d problem %d has hide position %d", s.ID, i, p.HidePosition)
			}
		}

	case models.SessionWordProblems:
		problems, err := s.WordProblems()
		if err != nil {
			return err
		}
		if len(problems) != len(s.UserAnswers) {
			return fmt.Errorf("session %d has %d problems but %d answers", s.ID, len(problems), len(s.UserAnswers))
		}

	case models.SessionTracingLetters, models.SessionTracingNumbers:
		agg, err := s.TracingAggregate()
		if err != nil {
			return err
		}
		if len(agg.Scores) != len(agg.Items) {
			return fmt.Errorf("session %d traced %d items but holds %d scores", s.ID, len(agg.Items), len(agg.Scores))
		}

	default:
		return fmt.Errorf("session %d has unknown type %q", s.ID, s.Type)
	}
	return nil
}
