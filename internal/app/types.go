package app

import "flutter-buildcfg/internal/types"

type LoadRequest struct {
	Path string
}

type LoadResult struct {
	Layout types.ProjectLayout
	Config types.BuildConfig
}

type ValidateRequest struct {
	Path string
}

type ValidateResult struct {
	Path   string
	Config types.BuildConfig
	Issues []types.ValidationIssue
}

// Failed reports whether the issues should fail the run. Warnings only
// count when failOnWarning is set.
func (r ValidateResult) Failed(failOnWarning bool) bool {
	if failOnWarning {
		return len(r.Issues) > 0
	}
	return types.HasErrors(r.Issues)
}

type ValidateAllRequest struct {
	Paths []string
}

type ValidateAllResult struct {
	Results []ValidateResult
}

// Failed reports whether any of the results failed.
func (r ValidateAllResult) Failed(failOnWarning bool) bool {
	for _, result := range r.Results {
		if result.Failed(failOnWarning) {
			return true
		}
	}
	return false
}

type ExportRequest struct {
	Path   string
	Format types.DescriptorFormat
	// Output is the destination file. When empty the rendered descriptor
	// is only returned.
	Output string
}

type ExportResult struct {
	Format types.DescriptorFormat
	Output string
	Data   []byte
}
