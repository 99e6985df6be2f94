package augment

import (
	_ "embed"
	"fmt"

	"github.com/user/draftcheck/pkg/draft"
)

//go:embed prompts/advisory_prompt.md
var advisoryPrompt string

func buildReviewPrompt(d *draft.RecipeDraft) string {
	return fmt.Sprintf("%s\n\nDraft title: %s\n\nDraft body:\n%s", advisoryPrompt, d.Title, d.Body)
}
