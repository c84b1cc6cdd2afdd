// Package tracing scores freehand glyph traces and drives a tracing run.
package tracing

import "math"

const (
	// MinTracePoints is the smallest stroke that gets a score
	MinTracePoints = 10

	// optimalPoints saturates the length component
	optimalPoints = 100

	maxLengthScore    = 30.0
	maxProximityScore = 70.0

	// boundsFraction of the center-to-corner distance counts as on the glyph
	boundsFraction = 0.4
)

// Point is one captured pointer position in canvas coordinates
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Evaluation is the score of a single stroke
type Evaluation struct {
	Score          int
	Stars          int
	LengthScore    float64
	ProximityScore float64
	PointsInBounds int

	// Closeness sums 1 - d/radius over in-bounds points. Score does not use it.
	Closeness float64
}

// EvaluateTrace scores path against the glyph drawn at the center of a width x height
// canvas. ok is false, and nothing is scored, when the path has fewer than MinTracePoints.
func EvaluateTrace(path []Point, width, height float64) (Evaluation, bool) {
	if len(path) < MinTracePoints {
		return Evaluation{}, false
	}

	n := float64(len(path))
	lengthScore := math.Min(maxLengthScore, n/optimalPoints*maxLengthScore)

	centerX := width / 2
	centerY := height / 2
	radius := math.Sqrt(centerX*centerX+centerY*centerY) * boundsFraction

	var inBounds int
	var closeness float64
	for _, p := range path {
		d := math.Hypot(p.X-centerX, p.Y-centerY)
		if d < radius {
			inBounds++
			closeness += 1 - d/radius
		}
	}

	proximityScore := float64(inBounds) / n * maxProximityScore
	score := int(math.Floor(math.Min(100, lengthScore+proximityScore)))

	return Evaluation{
		Score:          score,
		Stars:          Stars(score),
		LengthScore:    lengthScore,
		ProximityScore: proximityScore,
		PointsInBounds: inBounds,
		Closeness:      closeness,
	}, true
}

// Stars converts a trace score to a 0-3 star rating
func Stars(score int) int {
	switch {
	case score >= 90:
		return 3
	case score >= 70:
		return 2
	case score >= 50:
		return 1
	default:
		return 0
	}
}

// StarFeedback is the message shown next to a star rating
func StarFeedback(stars int) string {
	switch stars {
	case 3:
		return "🌟 Excellent! Great tracing! 🌟"
	case 2:
		return "👍 Good job! Keep practicing! 👍"
	case 1:
		return "💪 Keep trying! You can do it! 💪"
	default:
		return "🎯 Try tracing more carefully!"
	}
}
