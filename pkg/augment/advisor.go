package augment

import (
	"context"
	"strings"

	"github.com/user/draftcheck/pkg/draft"
)

// Advisor is the external text-generation capability. The pipeline
// depends only on this interface: a real implementation wraps a
// network call, NoopAdvisor satisfies the disabled case, and tests
// substitute a deterministic fake.
type Advisor interface {
	Name() string
	// Review returns best-effort editorial suggestions for one draft.
	// Suggestions never affect pass/fail.
	Review(ctx context.Context, d *draft.RecipeDraft) ([]string, error)
}

// NoopAdvisor contributes no suggestions and makes no external call.
type NoopAdvisor struct{}

func (NoopAdvisor) Name() string { return "noop" }

func (NoopAdvisor) Review(ctx context.Context, d *draft.RecipeDraft) ([]string, error) {
	return nil, nil
}

const maxSuggestions = 8

// stripCodeFence removes a wrapping markdown fence if the model added
// one despite the prompt forbidding it.
func stripCodeFence(text string) string {
	stripped := strings.TrimSpace(text)
	lines := strings.Split(stripped, "\n")
	if len(lines) >= 2 && strings.HasPrefix(strings.TrimSpace(lines[0]), "```") && strings.TrimSpace(lines[len(lines)-1]) == "```" {
		return strings.TrimSpace(strings.Join(lines[1:len(lines)-1], "\n"))
	}
	return stripped
}

// parseSuggestions extracts one suggestion per list line from a model
// response. "NONE" (alone) means the draft needs nothing.
func parseSuggestions(text string) []string {
	text = stripCodeFence(text)
	if strings.EqualFold(strings.TrimSpace(text), "NONE") {
		return nil
	}

	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		for _, marker := range []string{"- ", "* ", "• "} {
			if strings.HasPrefix(line, marker) {
				line = strings.TrimSpace(strings.TrimPrefix(line, marker))
				break
			}
		}
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
		if len(out) == maxSuggestions {
			break
		}
	}
	return out
}
