package adapters

import (
	"sort"
	"strings"

	"flutter-buildcfg/internal/ports"
	"flutter-buildcfg/internal/types"
)

// SigningRegistryAdapter holds the signing configs available outside the
// build script: the implicit Android debug config plus configured names.
type SigningRegistryAdapter struct {
	names []string
}

func NewSigningRegistryAdapter(extra ...string) SigningRegistryAdapter {
	seen := map[string]struct{}{types.DebugSigningConfig: {}}
	names := []string{types.DebugSigningConfig}
	for _, name := range extra {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	sort.Strings(names)
	return SigningRegistryAdapter{names: names}
}

func (a SigningRegistryAdapter) Names() []string {
	return append([]string(nil), a.names...)
}

var _ ports.SigningRegistryPort = SigningRegistryAdapter{}
