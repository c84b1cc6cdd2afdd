package models

// MountainTier is the difficulty level for math mountains
type MountainTier string

const (
	TierLow    MountainTier = "low"
	TierMedium MountainTier = "medium"
	TierHigh   MountainTier = "high"
)

// WordTier is the difficulty level for word problems
type WordTier string

const (
	WordEasy   WordTier = "easy"
	WordMedium WordTier = "medium"
	WordHard   WordTier = "hard"
)

// HidePosition identifies which value of a mountain the learner must supply
type HidePosition int

const (
	HideTop HidePosition = iota
	HideBase1
	HideBase2
)

func (p HidePosition) String() string {
	switch p {
	case HideTop:
		return "top"
	case HideBase1:
		return "base1"
	case HideBase2:
		return "base2"
	default:
		return "unknown"
	}
}

// MountainProblem is an addition triple with one hidden value. Base1 + Base2 == Top.
type MountainProblem struct {
	Top           int          `json:"top"`
	Base1         int          `json:"base1"`
	Base2         int          `json:"base2"`
	HidePosition  HidePosition `json:"hidePosition"`
	CorrectAnswer int          `json:"correctAnswer"`
}

// Expected returns the value the learner has to supply
func (p MountainProblem) Expected() int {
	return p.CorrectAnswer
}

// ValueAt returns the mountain value at a position
func (p MountainProblem) ValueAt(pos HidePosition) int {
	switch pos {
	case HideBase1:
		return p.Base1
	case HideBase2:
		return p.Base2
	default:
		return p.Top
	}
}

// WordProblem is a templated story problem with a single integer answer
type WordProblem struct {
	Template    string `json:"template,omitempty"`
	Text        string `json:"text"`
	Answer      int    `json:"answer"`
	Explanation string `json:"explanation"`
}

// Expected returns the value the learner has to supply
func (p WordProblem) Expected() int {
	return p.Answer
}
