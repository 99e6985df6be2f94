package report

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/user/draftcheck/pkg/rules"
)

// Status is the overall outcome of a run.
type Status string

const (
	StatusPass Status = "pass"
	StatusFail Status = "fail"
)

// DocumentResult pairs one processed document with its ordered issues.
type DocumentResult struct {
	Document string        `json:"document"`
	Issues   []rules.Issue `json:"issues"`
}

// Report is the consolidated output of one run. Identical inputs
// always produce a byte-identical report: documents are sorted
// ascending by path and issue order is preserved as evaluated.
type Report struct {
	Documents  []DocumentResult `json:"documents"`
	Errors     int              `json:"errors"`
	Warnings   int              `json:"warnings"`
	Advisories int              `json:"advisories"`
	Status     Status           `json:"status"`
}

// Build aggregates all (document, issues) pairs of a completed run.
// Overall status is fail iff at least one error-severity issue exists;
// warnings and advisories never fail a run.
func Build(results []DocumentResult) *Report {
	sorted := append([]DocumentResult(nil), results...)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Document < sorted[j].Document
	})

	r := &Report{Documents: sorted, Status: StatusPass}
	for _, doc := range sorted {
		for _, issue := range doc.Issues {
			switch issue.Severity {
			case rules.SeverityError:
				r.Errors++
			case rules.SeverityWarning:
				r.Warnings++
			case rules.SeverityAdvisory:
				r.Advisories++
			}
		}
	}
	if r.Errors > 0 {
		r.Status = StatusFail
	}
	return r
}

func severityMarker(s rules.Severity) string {
	switch s {
	case rules.SeverityError:
		return "ERROR"
	case rules.SeverityWarning:
		return "WARN"
	case rules.SeverityAdvisory:
		return "ADVISE"
	}
	return strings.ToUpper(string(s))
}

// Render produces the human-readable markdown report.
func (r *Report) Render() string {
	var sb strings.Builder
	sb.WriteString("# Draft Validation Report\n\n")

	if len(r.Documents) == 0 {
		sb.WriteString("No draft documents found.\n\n")
	}

	for _, doc := range r.Documents {
		sb.WriteString(fmt.Sprintf("## %s\n\n", doc.Document))
		if len(doc.Issues) == 0 {
			sb.WriteString("No issues.\n\n")
			continue
		}
		for _, issue := range doc.Issues {
			sb.WriteString(fmt.Sprintf("- [%s] %s: %s", severityMarker(issue.Severity), issue.Rule, issue.Message))
			if issue.Location != "" {
				sb.WriteString(fmt.Sprintf(" (%s)", issue.Location))
			}
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}

	sb.WriteString("## Summary\n\n")
	sb.WriteString(fmt.Sprintf("- documents: %d\n", len(r.Documents)))
	sb.WriteString(fmt.Sprintf("- errors: %d\n", r.Errors))
	sb.WriteString(fmt.Sprintf("- warnings: %d\n", r.Warnings))
	sb.WriteString(fmt.Sprintf("- advisories: %d\n", r.Advisories))
	sb.WriteString(fmt.Sprintf("- status: %s\n", strings.ToUpper(string(r.Status))))
	return sb.String()
}

// WriteFile writes the rendered report to the output destination.
func (r *Report) WriteFile(path string) error {
	return os.WriteFile(path, []byte(r.Render()), 0644)
}
