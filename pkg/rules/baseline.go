package rules

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/user/draftcheck/pkg/draft"
)

// BaselineOptions configures checks that depend on the environment:
// the known category set and the site asset location for images.
type BaselineOptions struct {
	KnownCategories []string
	AssetsDir       string
}

// knownFields are the front-matter keys the site templates understand.
// Anything else is probably a typo.
var knownFields = []string{
	"title", "category", "image", "description",
	"layout", "type", "origin", "source", "notes", "author", "yield",
}

// Baseline returns the standard rule set in registration order.
// duplicate-title registers last so its post-pass issues keep rule
// ordering when appended.
func Baseline(opts BaselineOptions) []Rule {
	return []Rule{
		{
			ID:          "missing-title",
			Severity:    SeverityError,
			Description: "every draft needs a title before publication",
			Check: func(d *draft.RecipeDraft, _ *TitleRegistry) []Issue {
				if strings.TrimSpace(d.Title) != "" {
					return nil
				}
				return []Issue{{
					Document: d.Path,
					Rule:     "missing-title",
					Severity: SeverityError,
					Message:  "title is absent or empty",
					Location: "front matter",
				}}
			},
		},
		{
			ID:          "missing-category",
			Severity:    SeverityError,
			Description: "category must be one of the known site categories",
			Check: func(d *draft.RecipeDraft, _ *TitleRegistry) []Issue {
				cat := strings.TrimSpace(d.Category)
				if cat == "" {
					return []Issue{{
						Document: d.Path,
						Rule:     "missing-category",
						Severity: SeverityError,
						Message:  "category is absent",
						Location: "front matter",
					}}
				}
				for _, known := range opts.KnownCategories {
					if strings.EqualFold(known, cat) {
						return nil
					}
				}
				return []Issue{{
					Document: d.Path,
					Rule:     "missing-category",
					Severity: SeverityError,
					Message:  fmt.Sprintf("category %q is not in the known set (%s)", cat, strings.Join(opts.KnownCategories, ", ")),
					Location: "front matter",
				}}
			},
		},
		{
			ID:          "missing-description",
			Severity:    SeverityWarning,
			Description: "drafts should carry a description for the site index",
			Check: func(d *draft.RecipeDraft, _ *TitleRegistry) []Issue {
				if strings.TrimSpace(d.Description) != "" {
					return nil
				}
				return []Issue{{
					Document: d.Path,
					Rule:     "missing-description",
					Severity: SeverityWarning,
					Message:  "description is absent or empty",
					Location: "front matter",
				}}
			},
		},
		{
			ID:          "unknown-field",
			Severity:    SeverityWarning,
			Description: "front-matter keys outside the known set are probably typos",
			Check: func(d *draft.RecipeDraft, _ *TitleRegistry) []Issue {
				var issues []Issue
				for _, key := range sortedKeys(d.Metadata) {
					if isKnownField(key) {
						continue
					}
					msg := fmt.Sprintf("unknown field %q", key)
					if suggestion := closestField(key); suggestion != "" {
						msg += fmt.Sprintf(", did you mean %q?", suggestion)
					}
					issues = append(issues, Issue{
						Document: d.Path,
						Rule:     "unknown-field",
						Severity: SeverityWarning,
						Message:  msg,
						Location: "front matter",
					})
				}
				return issues
			},
		},
		{
			ID:          "empty-ingredients",
			Severity:    SeverityError,
			Description: "a recipe without ingredients cannot be published",
			Check: func(d *draft.RecipeDraft, _ *TitleRegistry) []Issue {
				if d.HasIngredients && len(d.Ingredients) > 0 {
					return nil
				}
				msg := "ingredients section is absent"
				if d.HasIngredients {
					msg = "ingredients section has zero entries"
				}
				return []Issue{{
					Document: d.Path,
					Rule:     "empty-ingredients",
					Severity: SeverityError,
					Message:  msg,
					Location: "ingredients",
				}}
			},
		},
		{
			ID:          "empty-steps",
			Severity:    SeverityError,
			Description: "a recipe without preparation steps cannot be published",
			Check: func(d *draft.RecipeDraft, _ *TitleRegistry) []Issue {
				if d.HasSteps && len(d.Steps) > 0 {
					return nil
				}
				msg := "steps section is absent"
				if d.HasSteps {
					msg = "steps section has zero entries"
				}
				return []Issue{{
					Document: d.Path,
					Rule:     "empty-steps",
					Severity: SeverityError,
					Message:  msg,
					Location: "steps",
				}}
			},
		},
		{
			ID:          "unparsable-nutrition-line",
			Severity:    SeverityWarning,
			Description: "nutrition lines must look like '<label>: <number><unit> (<percent>%)'",
			Check: func(d *draft.RecipeDraft, _ *TitleRegistry) []Issue {
				var issues []Issue
				for _, bad := range d.BadNutritionLines {
					issues = append(issues, Issue{
						Document: d.Path,
						Rule:     "unparsable-nutrition-line",
						Severity: SeverityWarning,
						Message:  fmt.Sprintf("nutrition line %q does not match the expected pattern", bad.Content),
						Location: fmt.Sprintf("nutrition, line %d", bad.Line),
					})
				}
				return issues
			},
		},
		{
			ID:          "nutrition-percent-out-of-range",
			Severity:    SeverityWarning,
			Description: "declared daily-value percentages must be between 0 and 100",
			Check: func(d *draft.RecipeDraft, _ *TitleRegistry) []Issue {
				var issues []Issue
				for _, fact := range d.Nutrition {
					if fact.Percent == nil || (*fact.Percent >= 0 && *fact.Percent <= 100) {
						continue
					}
					issues = append(issues, Issue{
						Document: d.Path,
						Rule:     "nutrition-percent-out-of-range",
						Severity: SeverityWarning,
						Message:  fmt.Sprintf("%s declares %g%%, outside 0-100", fact.Label, *fact.Percent),
						Location: "nutrition",
					})
				}
				return issues
			},
		},
		{
			ID:          "missing-image-file",
			Severity:    SeverityWarning,
			Description: "a referenced image must exist at the site asset location",
			Check: func(d *draft.RecipeDraft, _ *TitleRegistry) []Issue {
				img := strings.TrimSpace(d.Image)
				if img == "" {
					return nil
				}
				candidate := filepath.Join(opts.AssetsDir, filepath.FromSlash(img))
				if _, err := os.Stat(candidate); err == nil {
					return nil
				}
				return []Issue{{
					Document: d.Path,
					Rule:     "missing-image-file",
					Severity: SeverityWarning,
					Message:  fmt.Sprintf("image %q not found under %s", img, opts.AssetsDir),
					Location: "front matter",
				}}
			},
		},
		{
			ID:          "duplicate-title",
			Severity:    SeverityError,
			Description: "titles must be unique across the run (case-insensitive)",
			Check: func(d *draft.RecipeDraft, titles *TitleRegistry) []Issue {
				// Registration only; collisions are resolved by a
				// post-pass once every document has been seen.
				titles.Register(d.Title, d.Path)
				return nil
			},
		},
	}
}

func isKnownField(key string) bool {
	for _, k := range knownFields {
		if k == key {
			return true
		}
	}
	return false
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// closestField suggests a known field within edit distance 2.
func closestField(key string) string {
	best := ""
	bestDist := 3
	for _, k := range knownFields {
		if d := editDistance(key, k); d < bestDist {
			best, bestDist = k, d
		}
	}
	return best
}

func editDistance(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min3(curr[j-1]+1, prev[j]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
