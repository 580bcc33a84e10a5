package core

import (
	"fmt"
	"strings"

	"flutter-buildcfg/internal/types"
)

const (
	desugarGroup          = "com.android.tools"
	desugarArtifactPrefix = "desugar_jdk_libs"
)

// ParseCoordinate splits a group:artifact:version[:classifier][@ext]
// dependency notation.
func ParseCoordinate(notation string) (types.Coordinate, error) {
	value := strings.TrimSpace(notation)
	if at := strings.LastIndex(value, "@"); at >= 0 {
		value = value[:at]
	}
	parts := strings.Split(value, ":")
	if len(parts) < 3 || len(parts) > 4 {
		return types.Coordinate{}, fmt.Errorf("dependency %q is not group:artifact:version", notation)
	}
	for _, part := range parts {
		if strings.TrimSpace(part) == "" {
			return types.Coordinate{}, fmt.Errorf("dependency %q has an empty segment", notation)
		}
	}
	return types.Coordinate{
		Group:    strings.TrimSpace(parts[0]),
		Artifact: strings.TrimSpace(parts[1]),
		Version:  strings.TrimSpace(parts[2]),
	}, nil
}

// IsDesugaringCoordinate reports whether the coordinate names one of the
// core library desugaring artifacts (desugar_jdk_libs, _nio, _minimal).
func IsDesugaringCoordinate(c types.Coordinate) bool {
	return c.Group == desugarGroup && strings.HasPrefix(c.Artifact, desugarArtifactPrefix)
}
