package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flutter-buildcfg/internal/types"
)

func TestParseCoordinate(t *testing.T) {
	coord, err := ParseCoordinate("com.android.tools:desugar_jdk_libs:2.1.5")
	require.NoError(t, err)
	assert.Equal(t, types.Coordinate{Group: "com.android.tools", Artifact: "desugar_jdk_libs", Version: "2.1.5"}, coord)
	assert.True(t, IsDesugaringCoordinate(coord))
	assert.Equal(t, "com.android.tools:desugar_jdk_libs:2.1.5", coord.String())

	coord, err = ParseCoordinate("org.example:lib:1.0:sources@jar")
	require.NoError(t, err)
	assert.Equal(t, "1.0", coord.Version)
	assert.False(t, IsDesugaringCoordinate(coord))
}

func TestParseCoordinateRejects(t *testing.T) {
	for _, notation := range []string{"", "androidx.core", "a:b", "a::1.0", "a:b:c:d:e"} {
		_, err := ParseCoordinate(notation)
		assert.Error(t, err, notation)
	}
}
