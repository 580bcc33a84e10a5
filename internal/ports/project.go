package ports

import "flutter-buildcfg/internal/types"

// ProjectPort discovers Flutter projects and their Android module scripts.
type ProjectPort interface {
	LayoutFor(path string) (types.ProjectLayout, error)
	FindAppScripts(root string) ([]string, error)
}
