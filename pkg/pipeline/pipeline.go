package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/user/draftcheck/pkg/augment"
	"github.com/user/draftcheck/pkg/draft"
	"github.com/user/draftcheck/pkg/logging"
	"github.com/user/draftcheck/pkg/report"
	"github.com/user/draftcheck/pkg/rules"
)

// State tracks the driver through one run.
type State string

const (
	StateIdle        State = "idle"
	StateScanning    State = "scanning"
	StateProcessing  State = "processing"
	StateAggregating State = "aggregating"
	StateWriting     State = "writing"
	StateDone        State = "done"
	StateFailed      State = "failed"
)

// IOError is an environment-level failure (unreadable input root,
// unwritable output). It is fatal, unlike per-document failures which
// become issues.
type IOError struct {
	Stage string
	Path  string
	Err   error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Stage, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

const defaultAdvisorTimeout = 30 * time.Second

// Options configures one run.
type Options struct {
	InputDir   string
	OutputPath string
	Rules      []rules.Rule
	// Advisor enables advisory augmentation. nil means disabled: no
	// issues contributed and no external call made.
	Advisor        augment.Advisor
	AdvisorTimeout time.Duration
}

// Driver walks the input directory, runs parse -> rules -> (augment)
// per document with per-document failure isolation, aggregates, and
// writes the report.
type Driver struct {
	opts  Options
	state State
}

func New(opts Options) *Driver {
	if opts.AdvisorTimeout <= 0 {
		opts.AdvisorTimeout = defaultAdvisorTimeout
	}
	return &Driver{opts: opts, state: StateIdle}
}

func (p *Driver) State() State { return p.state }

// Run executes one end-to-end validation run and returns the report.
// A non-nil error means the tool itself failed; the report is only
// written (and returned) on a clean run.
func (p *Driver) Run(ctx context.Context) (*report.Report, error) {
	p.state = StateScanning
	paths, err := p.scan()
	if err != nil {
		p.state = StateFailed
		return nil, err
	}
	logging.Debugf("scan found %d drafts under %s", len(paths), p.opts.InputDir)

	engine := rules.NewEngine(p.opts.Rules)
	titles := rules.NewTitleRegistry()

	p.state = StateProcessing
	results := make([]report.DocumentResult, 0, len(paths))
	for _, path := range paths {
		// Abort between documents; no partial report is persisted.
		if err := ctx.Err(); err != nil {
			p.state = StateFailed
			return nil, err
		}
		results = append(results, p.processDocument(ctx, engine, titles, path))
	}

	// duplicate-title resolves only after every title is registered.
	dups := rules.DuplicateTitleIssues(titles)
	for i := range results {
		if issue, ok := dups[results[i].Document]; ok {
			results[i].Issues = append(results[i].Issues, issue)
		}
	}

	p.state = StateAggregating
	rep := report.Build(results)

	p.state = StateWriting
	if err := rep.WriteFile(p.opts.OutputPath); err != nil {
		p.state = StateFailed
		return nil, &IOError{Stage: "writing report to", Path: p.opts.OutputPath, Err: err}
	}

	p.state = StateDone
	return rep, nil
}

// scan enumerates candidate drafts, sorted ascending by path. An empty
// result set is not an error.
func (p *Driver) scan() ([]string, error) {
	entries, err := os.ReadDir(p.opts.InputDir)
	if err != nil {
		return nil, &IOError{Stage: "scanning", Path: p.opts.InputDir, Err: err}
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".md") {
			continue
		}
		paths = append(paths, filepath.Join(p.opts.InputDir, entry.Name()))
	}
	return paths, nil
}

func (p *Driver) processDocument(ctx context.Context, engine *rules.Engine, titles *rules.TitleRegistry, path string) report.DocumentResult {
	result := report.DocumentResult{Document: path}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Issues = []rules.Issue{rules.ParseErrorIssue(path, err)}
		return result
	}

	d, err := draft.Parse(path, data)
	if err != nil {
		result.Issues = []rules.Issue{rules.ParseErrorIssue(path, err)}
		return result
	}

	result.Issues = engine.Evaluate(d, titles)

	if p.opts.Advisor != nil {
		result.Issues = append(result.Issues, p.augmentDocument(ctx, d)...)
	}
	return result
}

// augmentDocument consults the advisor for one draft. Any failure is
// converted into a single advisory issue; augmentation can never flip
// pass to fail and never blocks on retries.
func (p *Driver) augmentDocument(ctx context.Context, d *draft.RecipeDraft) []rules.Issue {
	callCtx, cancel := context.WithTimeout(ctx, p.opts.AdvisorTimeout)
	defer cancel()

	suggestions, err := p.opts.Advisor.Review(callCtx, d)
	if err != nil {
		logging.Debugf("advisor %s failed for %s: %v", p.opts.Advisor.Name(), d.Path, err)
		return []rules.Issue{rules.AugmentationUnavailableIssue(d.Path, err.Error())}
	}

	issues := make([]rules.Issue, 0, len(suggestions))
	for _, s := range suggestions {
		issues = append(issues, rules.Issue{
			Document: d.Path,
			Rule:     rules.RuleAdvisory,
			Severity: rules.SeverityAdvisory,
			Message:  s,
		})
	}
	return issues
}
