package types

// ValidationIssue is a single invariant finding. Issues are reported, not
// raised: callers decide which severities are fatal.
type ValidationIssue struct {
	Rule     string    `yaml:"rule"`
	Kind     IssueKind `yaml:"kind"`
	Severity Severity  `yaml:"severity"`
	Field    string    `yaml:"field"`
	Message  string    `yaml:"message"`
}

// HasErrors reports whether any issue has error severity.
func HasErrors(issues []ValidationIssue) bool {
	for _, issue := range issues {
		if issue.Severity == SeverityError {
			return true
		}
	}
	return false
}
