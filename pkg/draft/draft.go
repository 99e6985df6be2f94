package draft

import "fmt"

// RecipeDraft is the parsed form of one draft document. It is built
// once by Parse and never mutated afterwards; re-parsing a file
// produces a fresh instance.
type RecipeDraft struct {
	Path        string
	Title       string
	Category    string
	Image       string
	Description string
	Metadata    map[string]string // all front-matter keys, raw values

	Ingredients       []string
	Steps             []string
	Nutrition         []NutritionFact
	BadNutritionLines []BadLine

	HasIngredients bool
	HasSteps       bool
	HasNutrition   bool

	Body string // raw body text for advisory augmentation
}

// NutritionFact is one parsed nutrition declaration, e.g.
// "Sodium: 250mg (11%)". Percent is nil when no suffix was present.
type NutritionFact struct {
	Label   string
	Value   float64
	Unit    string
	Percent *float64
}

// BadLine records a nutrition line that did not match the expected
// pattern. Kept on the draft so the rule engine can report it; a bad
// line never fails the parse.
type BadLine struct {
	Line    int
	Content string
}

// MalformedDraftError reports a structural parse failure and the
// section it occurred in.
type MalformedDraftError struct {
	Section string
	Reason  string
}

func (e *MalformedDraftError) Error() string {
	return fmt.Sprintf("malformed draft (%s): %s", e.Section, e.Reason)
}
