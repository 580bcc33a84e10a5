package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestValidationIssueYAML(t *testing.T) {
	data, err := yaml.Marshal(ValidationIssue{
		Rule:     "sdk-order",
		Kind:     IssueKindInvariantViolation,
		Severity: SeverityError,
		Field:    "targetSdk",
		Message:  "minSdk 35 is greater than targetSdk 34",
	})
	require.NoError(t, err)
	want := "rule: sdk-order\nkind: invariant_violation\nseverity: error\nfield: targetSdk\nmessage: minSdk 35 is greater than targetSdk 34\n"
	assert.Equal(t, want, string(data))
}

func TestHasErrors(t *testing.T) {
	assert.False(t, HasErrors(nil))
	assert.False(t, HasErrors([]ValidationIssue{{Severity: SeverityWarning}}))
	assert.True(t, HasErrors([]ValidationIssue{{Severity: SeverityWarning}, {Severity: SeverityError}}))
}
