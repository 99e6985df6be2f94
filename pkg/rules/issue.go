package rules

// Severity classifies a validation issue. Errors fail the run,
// warnings and advisories never do.
type Severity string

const (
	SeverityError    Severity = "error"
	SeverityWarning  Severity = "warning"
	SeverityAdvisory Severity = "advisory"
)

// Rule identifiers produced outside the registered rule set.
const (
	RuleParseError              = "parse-error"
	RuleEvaluationGap           = "rule-evaluation-gap"
	RuleAugmentationUnavailable = "augmentation-unavailable"
	RuleAdvisory                = "advisory"
)

// Issue represents one normalized validation finding for one document
type Issue struct {
	Document string   `json:"document"`
	Rule     string   `json:"rule"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
	Location string   `json:"location,omitempty"`
}

// ParseErrorIssue converts a per-document parse failure into data so
// one malformed file never aborts the run.
func ParseErrorIssue(path string, err error) Issue {
	return Issue{
		Document: path,
		Rule:     RuleParseError,
		Severity: SeverityError,
		Message:  err.Error(),
	}
}

// AugmentationUnavailableIssue reports degraded advisory augmentation.
func AugmentationUnavailableIssue(path string, reason string) Issue {
	return Issue{
		Document: path,
		Rule:     RuleAugmentationUnavailable,
		Severity: SeverityAdvisory,
		Message:  "advisory augmentation unavailable: " + reason,
	}
}
