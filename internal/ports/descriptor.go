package ports

import (
	"context"

	"flutter-buildcfg/internal/types"
)

// DescriptorSourcePort loads a build configuration from a file. Parse and
// missing-field errors are fatal; invariant problems are left to the
// validator.
type DescriptorSourcePort interface {
	Load(ctx context.Context, path string) (types.BuildConfig, error)
}

// DescriptorWriterPort serializes a build configuration.
type DescriptorWriterPort interface {
	Render(config types.BuildConfig, format types.DescriptorFormat) ([]byte, error)
	Write(path string, config types.BuildConfig, format types.DescriptorFormat) error
}
