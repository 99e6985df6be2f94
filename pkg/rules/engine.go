package rules

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/user/draftcheck/pkg/draft"
)

// Rule is a named, stateless check bound to a pure evaluation
// function. The rule set is data: adding a rule never touches the
// engine's control flow.
type Rule struct {
	ID          string
	Severity    Severity
	Description string
	Check       func(d *draft.RecipeDraft, titles *TitleRegistry) []Issue
}

// TitleRegistry is the only cross-document state of a run: titles seen
// so far, keyed by their normalized form. Constructed at run start,
// passed into each evaluation, discarded at run end. Access is
// synchronized so document processing may be parallelized.
type TitleRegistry struct {
	mu     sync.Mutex
	titles map[string][]string // normalized title -> document paths
}

func NewTitleRegistry() *TitleRegistry {
	return &TitleRegistry{titles: make(map[string][]string)}
}

func normalizeTitle(title string) string {
	return strings.ToLower(strings.TrimSpace(title))
}

// Register records a document's title. Empty titles are not tracked;
// missing-title covers those.
func (r *TitleRegistry) Register(title, docPath string) {
	key := normalizeTitle(title)
	if key == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.titles[key] = append(r.titles[key], docPath)
}

// Duplicates returns, per document, the titles that collided with
// another document in this run. Every colliding document is included.
func (r *TitleRegistry) Duplicates() map[string][]string {
	r.mu.Lock()
	defer r.mu.Unlock()

	dups := make(map[string][]string)
	for title, docs := range r.titles {
		if len(docs) < 2 {
			continue
		}
		for _, doc := range docs {
			dups[doc] = append(dups[doc], title)
		}
	}
	for _, titles := range dups {
		sort.Strings(titles)
	}
	return dups
}

// Engine evaluates the registered rule set against drafts. Issue order
// follows rule registration order, then position within the document.
type Engine struct {
	rules []Rule
}

func NewEngine(rules []Rule) *Engine {
	return &Engine{rules: rules}
}

// Rules returns the registered set in registration order.
func (e *Engine) Rules() []Rule {
	return e.rules
}

// Evaluate runs every rule against one draft. Rules never abort the
// run: a panicking rule is converted into a single evaluation-gap
// warning for that document.
func (e *Engine) Evaluate(d *draft.RecipeDraft, titles *TitleRegistry) []Issue {
	var issues []Issue
	for _, rule := range e.rules {
		issues = append(issues, evaluateOne(rule, d, titles)...)
	}
	return issues
}

func evaluateOne(rule Rule, d *draft.RecipeDraft, titles *TitleRegistry) (issues []Issue) {
	defer func() {
		if r := recover(); r != nil {
			issues = []Issue{{
				Document: d.Path,
				Rule:     RuleEvaluationGap,
				Severity: SeverityWarning,
				Message:  fmt.Sprintf("rule %s could not evaluate: %v", rule.ID, r),
			}}
		}
	}()
	return rule.Check(d, titles)
}

// DuplicateTitleIssues produces the cross-document duplicate-title
// errors once every document of the run has been evaluated.
func DuplicateTitleIssues(titles *TitleRegistry) map[string]Issue {
	out := make(map[string]Issue)
	for doc, collided := range titles.Duplicates() {
		out[doc] = Issue{
			Document: doc,
			Rule:     "duplicate-title",
			Severity: SeverityError,
			Message:  fmt.Sprintf("title %q collides with another draft in this run", strings.Join(collided, ", ")),
		}
	}
	return out
}
