package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/draftcheck/pkg/augment"
	"github.com/user/draftcheck/pkg/draft"
	"github.com/user/draftcheck/pkg/report"
	"github.com/user/draftcheck/pkg/rules"
)

// fakeAdvisor is the deterministic test double for the external
// text-generation capability.
type fakeAdvisor struct {
	suggestions []string
	err         error
	calls       int
}

func (f *fakeAdvisor) Name() string { return "fake" }

func (f *fakeAdvisor) Review(ctx context.Context, d *draft.RecipeDraft) ([]string, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.suggestions, nil
}

func writeDraft(t *testing.T, dir, name, title string) string {
	t.Helper()
	doc := fmt.Sprintf(`---
title: %s
category: soups
description: Something warm.
---

## Ingredients

- 1 chicken

## Steps

1. Boil it.
`, title)
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(doc), 0644))
	return path
}

func testRules(t *testing.T) []rules.Rule {
	t.Helper()
	return rules.Baseline(rules.BaselineOptions{
		KnownCategories: []string{"soups"},
		AssetsDir:       t.TempDir(),
	})
}

func runPipeline(t *testing.T, opts Options) (*report.Report, *Driver, error) {
	t.Helper()
	if opts.OutputPath == "" {
		opts.OutputPath = filepath.Join(t.TempDir(), "report.md")
	}
	if opts.Rules == nil {
		opts.Rules = testRules(t)
	}
	driver := New(opts)
	rep, err := driver.Run(context.Background())
	return rep, driver, err
}

func TestRunValidDrafts(t *testing.T) {
	dir := t.TempDir()
	writeDraft(t, dir, "a.md", "Soup A")
	writeDraft(t, dir, "b.md", "Soup B")

	rep, driver, err := runPipeline(t, Options{InputDir: dir})
	require.NoError(t, err)
	assert.Equal(t, StateDone, driver.State())
	assert.Equal(t, report.StatusPass, rep.Status)
	assert.Len(t, rep.Documents, 2)
	assert.Zero(t, rep.Errors)
}

func TestRunEmptyDirectoryPasses(t *testing.T) {
	out := filepath.Join(t.TempDir(), "report.md")
	rep, _, err := runPipeline(t, Options{InputDir: t.TempDir(), OutputPath: out})
	require.NoError(t, err)
	assert.Equal(t, report.StatusPass, rep.Status)
	assert.Empty(t, rep.Documents)

	written, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(written), "status: PASS")
}

func TestRunMissingInputRootFails(t *testing.T) {
	_, driver, err := runPipeline(t, Options{InputDir: filepath.Join(t.TempDir(), "nope")})
	require.Error(t, err)
	var ioErr *IOError
	assert.True(t, errors.As(err, &ioErr))
	assert.Equal(t, StateFailed, driver.State())
}

func TestRunIsolatesMalformedDocument(t *testing.T) {
	dir := t.TempDir()
	writeDraft(t, dir, "a.md", "Soup A")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.md"), []byte("no front matter here"), 0644))
	writeDraft(t, dir, "c.md", "Soup C")

	rep, _, err := runPipeline(t, Options{InputDir: dir})
	require.NoError(t, err)
	require.Len(t, rep.Documents, 3)

	assert.Empty(t, rep.Documents[0].Issues)
	assert.Empty(t, rep.Documents[2].Issues)

	broken := rep.Documents[1]
	require.Len(t, broken.Issues, 1)
	assert.Equal(t, rules.RuleParseError, broken.Issues[0].Rule)
	assert.Equal(t, rules.SeverityError, broken.Issues[0].Severity)
	assert.Equal(t, report.StatusFail, rep.Status)
}

func TestRunDuplicateTitlesFlagBothDocuments(t *testing.T) {
	dir := t.TempDir()
	writeDraft(t, dir, "a.md", "Chicken Soup")
	writeDraft(t, dir, "b.md", "chicken soup ")

	rep, _, err := runPipeline(t, Options{InputDir: dir})
	require.NoError(t, err)

	for _, doc := range rep.Documents {
		var found bool
		for _, issue := range doc.Issues {
			if issue.Rule == "duplicate-title" {
				found = true
				assert.Equal(t, rules.SeverityError, issue.Severity)
			}
		}
		assert.True(t, found, "%s should carry a duplicate-title error", doc.Document)
	}
	assert.Equal(t, report.StatusFail, rep.Status)
}

func TestRunIsDeterministic(t *testing.T) {
	dir := t.TempDir()
	writeDraft(t, dir, "b.md", "Soup B")
	writeDraft(t, dir, "a.md", "Soup A")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.md"), []byte("nope"), 0644))

	out1 := filepath.Join(t.TempDir(), "r1.md")
	out2 := filepath.Join(t.TempDir(), "r2.md")
	assets := t.TempDir()
	mkRules := func() []rules.Rule {
		return rules.Baseline(rules.BaselineOptions{KnownCategories: []string{"soups"}, AssetsDir: assets})
	}

	_, err := New(Options{InputDir: dir, OutputPath: out1, Rules: mkRules()}).Run(context.Background())
	require.NoError(t, err)
	_, err = New(Options{InputDir: dir, OutputPath: out2, Rules: mkRules()}).Run(context.Background())
	require.NoError(t, err)

	first, err := os.ReadFile(out1)
	require.NoError(t, err)
	second, err := os.ReadFile(out2)
	require.NoError(t, err)
	assert.Equal(t, first, second, "identical input must produce a byte-identical report")
}

func TestRunWithAdvisorSuggestions(t *testing.T) {
	dir := t.TempDir()
	writeDraft(t, dir, "a.md", "Soup A")

	advisor := &fakeAdvisor{suggestions: []string{"Mention pot size.", "Clarify simmer time."}}
	rep, _, err := runPipeline(t, Options{InputDir: dir, Advisor: advisor})
	require.NoError(t, err)

	assert.Equal(t, 1, advisor.calls)
	assert.Equal(t, 2, rep.Advisories)
	assert.Equal(t, report.StatusPass, rep.Status, "advisories never affect pass/fail")

	issues := rep.Documents[0].Issues
	require.Len(t, issues, 2)
	assert.Equal(t, rules.RuleAdvisory, issues[0].Rule)
	assert.Equal(t, "Mention pot size.", issues[0].Message)
}

func TestRunWithUnreachableAdvisor(t *testing.T) {
	dir := t.TempDir()
	writeDraft(t, dir, "a.md", "Soup A")
	writeDraft(t, dir, "b.md", "Soup B")

	advisor := &fakeAdvisor{err: errors.New("connection refused")}
	rep, driver, err := runPipeline(t, Options{InputDir: dir, Advisor: advisor})
	require.NoError(t, err, "augmentation failure never fails the pipeline")
	assert.Equal(t, StateDone, driver.State())
	assert.Equal(t, report.StatusPass, rep.Status)

	for _, doc := range rep.Documents {
		require.Len(t, doc.Issues, 1)
		assert.Equal(t, rules.RuleAugmentationUnavailable, doc.Issues[0].Rule)
		assert.Equal(t, rules.SeverityAdvisory, doc.Issues[0].Severity)
	}
}

func TestRunWithoutAdvisorMakesNoCalls(t *testing.T) {
	dir := t.TempDir()
	writeDraft(t, dir, "a.md", "Soup A")

	rep, _, err := runPipeline(t, Options{InputDir: dir})
	require.NoError(t, err)
	assert.Zero(t, rep.Advisories)
}

func TestRunCancelledBetweenDocuments(t *testing.T) {
	dir := t.TempDir()
	writeDraft(t, dir, "a.md", "Soup A")
	out := filepath.Join(t.TempDir(), "report.md")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	driver := New(Options{InputDir: dir, OutputPath: out, Rules: testRules(t)})
	_, err := driver.Run(ctx)
	require.Error(t, err)
	assert.Equal(t, StateFailed, driver.State())

	_, statErr := os.Stat(out)
	assert.True(t, os.IsNotExist(statErr), "no partial report is persisted")
}

func TestRunUnwritableOutputFails(t *testing.T) {
	dir := t.TempDir()
	writeDraft(t, dir, "a.md", "Soup A")

	driver := New(Options{
		InputDir:   dir,
		OutputPath: filepath.Join(t.TempDir(), "missing-subdir", "report.md"),
		Rules:      testRules(t),
	})
	_, err := driver.Run(context.Background())
	require.Error(t, err)
	var ioErr *IOError
	assert.True(t, errors.As(err, &ioErr))
	assert.Equal(t, StateFailed, driver.State())
}

func TestScanIgnoresNonMarkdownAndSubdirs(t *testing.T) {
	dir := t.TempDir()
	writeDraft(t, dir, "a.md", "Soup A")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "archive"), 0755))

	rep, _, err := runPipeline(t, Options{InputDir: dir})
	require.NoError(t, err)
	assert.Len(t, rep.Documents, 1)
}

var _ augment.Advisor = (*fakeAdvisor)(nil)
