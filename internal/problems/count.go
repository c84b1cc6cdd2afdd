package problems

import (
	"strings"

	"mathmountain/internal/models"
	"mathmountain/internal/utils"
)

const (
	MinProblemCount = 10
	MaxProblemCount = 50
)

// ValidateProblemCount reads the leading integer of raw and clamps it to
// [MinProblemCount, MaxProblemCount]. Unreadable input yields MinProblemCount.
func ValidateProblemCount(raw string) int {
	n, ok := utils.ParseLeadingInt(raw)
	if !ok {
		return MinProblemCount
	}
	return ClampProblemCount(n)
}

// ClampProblemCount clamps n to [MinProblemCount, MaxProblemCount]
func ClampProblemCount(n int) int {
	if n < MinProblemCount {
		return MinProblemCount
	}
	if n > MaxProblemCount {
		return MaxProblemCount
	}
	return n
}

// ParseMountainTier accepts low, medium or high in any case
func ParseMountainTier(raw string) (models.MountainTier, error) {
	switch tier := models.MountainTier(strings.ToLower(strings.TrimSpace(raw))); tier {
	case models.TierLow, models.TierMedium, models.TierHigh:
		return tier, nil
	}
	return "", utils.ValidationError{Field: "tier", Message: "must be low, medium or high"}
}

// ParseWordTier accepts easy, medium or hard in any case
func ParseWordTier(raw string) (models.WordTier, error) {
	switch tier := models.WordTier(strings.ToLower(strings.TrimSpace(raw))); tier {
	case models.WordEasy, models.WordMedium, models.WordHard:
		return tier, nil
	}
	return "", utils.ValidationError{Field: "tier", Message: "must be easy, medium or hard"}
}
