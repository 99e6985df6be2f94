package augment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/user/draftcheck/pkg/draft"
)

func TestParseSuggestionsBulletList(t *testing.T) {
	text := "- Mention pot size.\n- Clarify simmer time.\n\n- Add salt to taste.\n"
	assert.Equal(t, []string{
		"Mention pot size.",
		"Clarify simmer time.",
		"Add salt to taste.",
	}, parseSuggestions(text))
}

func TestParseSuggestionsStripsCodeFence(t *testing.T) {
	text := "```markdown\n- Mention pot size.\n```"
	assert.Equal(t, []string{"Mention pot size."}, parseSuggestions(text))
}

func TestParseSuggestionsNone(t *testing.T) {
	assert.Empty(t, parseSuggestions("NONE"))
	assert.Empty(t, parseSuggestions("  none \n"))
	assert.Empty(t, parseSuggestions(""))
}

func TestParseSuggestionsCapped(t *testing.T) {
	var text string
	for i := 0; i < 20; i++ {
		text += "- suggestion\n"
	}
	assert.Len(t, parseSuggestions(text), maxSuggestions)
}

func TestParseSuggestionsSkipsHeadings(t *testing.T) {
	text := "# Suggestions\n- Clarify simmer time.\n"
	assert.Equal(t, []string{"Clarify simmer time."}, parseSuggestions(text))
}

func TestNoopAdvisor(t *testing.T) {
	got, err := NoopAdvisor{}.Review(context.Background(), &draft.RecipeDraft{Path: "a.md"})
	assert.NoError(t, err)
	assert.Empty(t, got)
}

func TestBuildReviewPromptIncludesBody(t *testing.T) {
	d := &draft.RecipeDraft{Title: "Chicken Soup", Body: "## Ingredients\n- chicken"}
	prompt := buildReviewPrompt(d)
	assert.Contains(t, prompt, "Chicken Soup")
	assert.Contains(t, prompt, "- chicken")
	assert.Contains(t, prompt, "one suggestion per line")
}
