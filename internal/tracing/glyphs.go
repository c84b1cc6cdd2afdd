package tracing

import (
	"strings"

	"mathmountain/internal/models"
	"mathmountain/internal/utils"
)

const (
	letterGlyphs = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digitGlyphs  = "0123456789"
)

// Picture is the decorative emoji and label shown beside a letter
type Picture struct {
	Emoji string
	Label string
}

var unknownPicture = Picture{Emoji: "❓", Label: "Unknown"}

var letterPictures = map[string]Picture{
	"A": {"🍎", "Apple"},
	"B": {"🐻", "Bear"},
	"C": {"🐱", "Cat"},
	"D": {"🐶", "Dog"},
	"E": {"🐘", "Elephant"},
	"F": {"🐸", "Frog"},
	"G": {"🦒", "Giraffe"},
	"H": {"🐴", "Horse"},
	"I": {"🍦", "Ice Cream"},
	"J": {"🕹️", "Joystick"},
	"K": {"🔑", "Key"},
	"L": {"🦁", "Lion"},
	"M": {"🐵", "Monkey"},
	"N": {"🥜", "Nut"},
	"O": {"🦉", "Owl"},
	"P": {"🐼", "Panda"},
	"Q": {"👸", "Queen"},
	"R": {"🌈", "Rainbow"},
	"S": {"⭐", "Star"},
	"T": {"🐯", "Tiger"},
	"U": {"☂️", "Umbrella"},
	"V": {"🎻", "Violin"},
	"W": {"🍉", "Watermelon"},
	"X": {"❌", "X-mark"},
	"Y": {"🧶", "Yarn"},
	"Z": {"🦓", "Zebra"},
}

// PictureFor returns the picture for a letter, or a placeholder
func PictureFor(letter string) Picture {
	if p, ok := letterPictures[letter]; ok {
		return p
	}
	return unknownPicture
}

var countingEmojis = []string{"🌟", "🎈", "🎁", "🍭", "🎨", "🎵", "⚽", "🎪", "🎯", "🎲"}

// Glyphs returns the ordered items traced in a mode
func Glyphs(mode models.TracingMode) []string {
	if mode == models.TracingLetters {
		return strings.Split(letterGlyphs, "")
	}
	return strings.Split(digitGlyphs, "")
}

// ParseMode accepts letters or numbers in any case
func ParseMode(raw string) (models.TracingMode, error) {
	switch mode := models.TracingMode(strings.ToLower(strings.TrimSpace(raw))); mode {
	case models.TracingLetters, models.TracingNumbers:
		return mode, nil
	}
	return "", utils.ValidationError{Field: "mode", Message: "must be letters or numbers"}
}
