// Package problems builds math mountains and word problems from the shared random source.
package problems

import (
	"mathmountain/internal/generator"
	"mathmountain/internal/models"
)

// Factory generates problem instances. Each problem is immutable once returned.
type Factory struct {
	src *generator.Source
}

// NewFactory creates a factory drawing from src
func NewFactory(src *generator.Source) *Factory {
	return &Factory{src: src}
}

// Mountain draws two operands for the tier and hides one of the three values
func (f *Factory) Mountain(tier models.MountainTier) models.MountainProblem {
	base1 := f.src.Operand(tier)
	base2 := f.src.Operand(tier)

	p := models.MountainProblem{
		Top:          base1 + base2,
		Base1:        base1,
		Base2:        base2,
		HidePosition: models.HidePosition(f.src.Intn(3)),
	}
	p.CorrectAnswer = p.ValueAt(p.HidePosition)
	return p
}

// MountainSet generates count mountains after clamping count to the allowed range
func (f *Factory) MountainSet(tier models.MountainTier, count int) []models.MountainProblem {
	count = ClampProblemCount(count)
	set := make([]models.MountainProblem, count)
	for i := range set {
		set[i] = f.Mountain(tier)
	}
	return set
}

// WordProblem picks one of the templates uniformly and fills it for the tier
func (f *Factory) WordProblem(tier models.WordTier) models.WordProblem {
	t := generator.Pick(f.src, wordTemplates)
	return t.build(f.src, tier)
}

// WordProblemSet generates count word problems after clamping count to the allowed range
func (f *Factory) WordProblemSet(tier models.WordTier, count int) []models.WordProblem {
	count = ClampProblemCount(count)
	set := make([]models.WordProblem, count)
	for i := range set {
		set[i] = f.WordProblem(tier)
	}
	return set
}
