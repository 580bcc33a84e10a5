package adapters

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlutterProjectLayoutForRoot(t *testing.T) {
	layout, err := NewFlutterProjectAdapter().LayoutFor(projectFixture)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(projectFixture, "android", "app", "build.gradle.kts"), layout.AppScript)
	assert.Equal(t, filepath.Join(projectFixture, "pubspec.yaml"), layout.Pubspec)
	assert.Equal(t, filepath.Join(projectFixture, "android", "local.properties"), layout.LocalProperties)
}

func TestFlutterProjectLayoutForScript(t *testing.T) {
	script := filepath.Join(projectFixture, "android", "app", "build.gradle.kts")
	layout, err := NewFlutterProjectAdapter().LayoutFor(script)
	require.NoError(t, err)
	assert.Equal(t, script, layout.AppScript)
	assert.Equal(t, projectFixture, layout.Root)
	assert.Equal(t, filepath.Join(projectFixture, "pubspec.yaml"), layout.Pubspec)
}

func TestFlutterProjectLayoutForMissingPath(t *testing.T) {
	_, err := NewFlutterProjectAdapter().LayoutFor(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)

	_, err = NewFlutterProjectAdapter().LayoutFor(t.TempDir())
	require.Error(t, err)
}

func TestFlutterProjectFindAppScripts(t *testing.T) {
	root := t.TempDir()
	app := filepath.Join(root, "android", "app")
	lib := filepath.Join(root, "android", "plugin")
	skipped := filepath.Join(root, "build", "app")
	for _, dir := range []string{app, lib, skipped} {
		require.NoError(t, os.MkdirAll(dir, 0755))
	}
	appScript := `plugins { id("com.android.application") }`
	require.NoError(t, os.WriteFile(filepath.Join(app, "build.gradle.kts"), []byte(appScript), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(lib, "build.gradle"), []byte("apply plugin: 'com.android.library'"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(skipped, "build.gradle.kts"), []byte(appScript), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "android", "build.gradle.kts"), []byte("allprojects {}"), 0644))

	paths, err := NewFlutterProjectAdapter().FindAppScripts(root)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(app, "build.gradle.kts")}, paths)
}
