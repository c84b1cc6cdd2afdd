package problems

import (
	"fmt"

	"mathmountain/internal/generator"
	"mathmountain/internal/models"
)

var (
	names = []string{
		"Alex", "Jordan", "Taylor", "Morgan", "Casey", "Riley", "Avery", "Quinn", "Sam", "Jamie",
		"Emma", "Liam", "Olivia", "Noah", "Sophia", "Mason", "Isabella", "Ethan", "Mia", "Lucas",
	}
	shopItems    = []string{"book", "toy", "pencil", "notebook", "backpack", "water bottle", "lunch box", "hat", "ball", "game"}
	collectibles = []string{"stickers", "trading cards", "marbles", "stamps", "coins", "buttons", "rocks", "shells", "beads"}
	foods        = []string{"cookies", "candies", "grapes", "strawberries", "crackers", "chips", "pretzels", "blueberries"}
)

// activity pairs the past tense used in the story with the verb used in the question
type activity struct {
	past, base string
}

var activities = []activity{
	{"walked", "walk"},
	{"biked", "bike"},
	{"ran", "run"},
	{"jogged", "jog"},
	{"hiked", "hike"},
}

// Template names
const (
	TemplateCards      = "cards"
	TemplateShopping   = "shopping"
	TemplateCollection = "collection"
	TemplateDistance   = "distance"
	TemplateSharing    = "sharing"
)

// span is an inclusive parameter range per word tier
type span struct {
	easy, medium, hard [2]int
}

func (s span) draw(src *generator.Source, tier models.WordTier) int {
	r := s.hard
	switch tier {
	case models.WordEasy:
		r = s.easy
	case models.WordMedium:
		r = s.medium
	}
	return src.Between(r[0], r[1])
}

type wordTemplate struct {
	name  string
	build func(src *generator.Source, tier models.WordTier) models.WordProblem
}

var wordTemplates = []wordTemplate{
	{name: TemplateCards, build: buildCards},
	{name: TemplateShopping, build: buildShopping},
	{name: TemplateCollection, build: buildCollection},
	{name: TemplateDistance, build: buildDistance},
	{name: TemplateSharing, build: buildSharing},
}

// TemplateNames lists the available word-problem templates in selection order
func TemplateNames() []string {
	out := make([]string, len(wordTemplates))
	for i, t := range wordTemplates {
		out[i] = t.name
	}
	return out
}

// BuildTemplate fills the named template; ok is false for an unknown name
func BuildTemplate(src *generator.Source, name string, tier models.WordTier) (models.WordProblem, bool) {
	for _, t := range wordTemplates {
		if t.name == name {
			return t.build(src, tier), true
		}
	}
	return models.WordProblem{}, false
}

var cardTotals = span{easy: [2]int{5, 15}, medium: [2]int{10, 30}, hard: [2]int{20, 50}}

// green = (total1 - red1) + (total2 - red2)
func buildCards(src *generator.Source, tier models.WordTier) models.WordProblem {
	person1 := generator.Pick(src, names)
	person2 := generator.Pick(src, names)
	total1 := cardTotals.draw(src, tier)
	total2 := cardTotals.draw(src, tier)
	red1 := src.Between(1, total1-1)
	red2 := src.Between(1, total2-1)
	green1 := total1 - red1
	green2 := total2 - red2
	answer := green1 + green2

	return models.WordProblem{
		Template: TemplateCards,
		Text: fmt.Sprintf("%s has %d cards out of which %d are red cards. %s has %d cards out of which %d are red. "+
			"They both have only two colored cards, either red or green. How many total green cards are there between them?",
			person1, total1, red1, person2, total2, red2),
		Answer: answer,
		Explanation: fmt.Sprintf("%s has %d green cards (%d - %d). %s has %d green cards (%d - %d). Total green = %d + %d = %d",
			person1, green1, total1, red1, person2, green2, total2, red2, green1, green2, answer),
	}
}

var (
	shopPrices = span{easy: [2]int{2, 10}, medium: [2]int{5, 25}, hard: [2]int{15, 50}}
	shopExtra  = span{easy: [2]int{1, 5}, medium: [2]int{5, 15}, hard: [2]int{10, 30}}
)

// left = money - price1 - price2
func buildShopping(src *generator.Source, tier models.WordTier) models.WordProblem {
	person := generator.Pick(src, names)
	item1 := generator.Pick(src, shopItems)
	item2 := generator.Pick(src, shopItems)
	price1 := shopPrices.draw(src, tier)
	price2 := shopPrices.draw(src, tier)
	money := price1 + price2 + shopExtra.draw(src, tier)
	answer := money - price1 - price2

	return models.WordProblem{
		Template: TemplateShopping,
		Text: fmt.Sprintf("%s went shopping with $%d. %s bought a %s for $%d and a %s for $%d. How much money does %s have left?",
			person, money, person, item1, price1, item2, price2, person),
		Answer:      answer,
		Explanation: fmt.Sprintf("Money left = $%d - $%d - $%d = $%d", money, price1, price2, answer),
	}
}

var (
	collectionStart  = span{easy: [2]int{10, 30}, medium: [2]int{20, 60}, hard: [2]int{50, 150}}
	collectionGained = span{easy: [2]int{3, 10}, medium: [2]int{10, 30}, hard: [2]int{20, 50}}
	collectionLost   = span{easy: [2]int{2, 8}, medium: [2]int{5, 20}, hard: [2]int{10, 40}}
)

// now = start + gained - lost
func buildCollection(src *generator.Source, tier models.WordTier) models.WordProblem {
	person := generator.Pick(src, names)
	item := generator.Pick(src, collectibles)
	start := collectionStart.draw(src, tier)
	gained := collectionGained.draw(src, tier)
	lost := collectionLost.draw(src, tier)
	answer := start + gained - lost

	return models.WordProblem{
		Template: TemplateCollection,
		Text: fmt.Sprintf("%s had %d %s. %s got %d more %s as gifts and gave away %d %s to friends. How many %s does %s have now?",
			person, start, item, person, gained, item, lost, item, item, person),
		Answer:      answer,
		Explanation: fmt.Sprintf("Total = %d + %d - %d = %d %s", start, gained, lost, answer, item),
	}
}

var distanceLegs = span{easy: [2]int{5, 15}, medium: [2]int{10, 40}, hard: [2]int{30, 80}}

// total = morning + afternoon
func buildDistance(src *generator.Source, tier models.WordTier) models.WordProblem {
	person := generator.Pick(src, names)
	act := generator.Pick(src, activities)
	morning := distanceLegs.draw(src, tier)
	afternoon := distanceLegs.draw(src, tier)
	answer := morning + afternoon

	return models.WordProblem{
		Template: TemplateDistance,
		Text: fmt.Sprintf("%s %s %d miles in the morning and %d miles in the afternoon. How many total miles did %s %s?",
			person, act.past, morning, afternoon, person, act.base),
		Answer:      answer,
		Explanation: fmt.Sprintf("Total miles = %d + %d = %d miles", morning, afternoon, answer),
	}
}

var sharingTotal = span{easy: [2]int{10, 24}, medium: [2]int{20, 60}, hard: [2]int{50, 120}}

// second person's share = total - first person's share
func buildSharing(src *generator.Source, tier models.WordTier) models.WordProblem {
	person1 := generator.Pick(src, names)
	person2 := generator.Pick(src, names)
	food := generator.Pick(src, foods)
	total := sharingTotal.draw(src, tier)
	eaten := src.Between(total*3/10, total*7/10)
	answer := total - eaten

	return models.WordProblem{
		Template:    TemplateSharing,
		Text:        fmt.Sprintf("%s and %s shared %d %s. %s ate %d %s. How many %s did %s eat?", person1, person2, total, food, person1, eaten, food, food, person2),
		Answer:      answer,
		Explanation: fmt.Sprintf("%s ate = %d - %d = %d %s", person2, total, eaten, answer, food),
	}
}
