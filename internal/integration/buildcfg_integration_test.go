package integration

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"flutter-buildcfg/internal/adapters"
	"flutter-buildcfg/internal/core"
	"flutter-buildcfg/internal/types"
)

func repoRoot(t *testing.T) string {
	t.Helper()
	dir, err := os.Getwd()
	require.NoError(t, err)
	return filepath.Clean(filepath.Join(dir, "..", ".."))
}

// TestFlutterProjectIntegration drives a project through discovery,
// provider layering, evaluation, validation and every export format.
func TestFlutterProjectIntegration(t *testing.T) {
	root := filepath.Join(repoRoot(t), "fixtures", "flutter_project")
	project := adapters.NewFlutterProjectAdapter()

	scripts, err := project.FindAppScripts(root)
	require.NoError(t, err)
	require.Len(t, scripts, 1)

	layout, err := project.LayoutFor(scripts[0])
	require.NoError(t, err)
	provider := adapters.NewLayeredFlutterProvider(
		adapters.NewStaticFlutterProvider(adapters.DefaultFlutterValues()),
		adapters.NewPubspecProvider(layout.Pubspec),
		adapters.NewLocalPropertiesProvider(layout.LocalProperties),
	)
	source := adapters.NewDescriptorFileAdapter(provider)
	cfg, err := source.Load(t.Context(), layout.AppScript)
	require.NoError(t, err)

	registry := adapters.NewSigningRegistryAdapter()
	validator := core.NewValidator(registry, core.WithReleaseSigningCheck(true))
	issues := validator.Validate(t.Context(), cfg)
	require.Len(t, issues, 1)
	require.Equal(t, types.SeverityWarning, issues[0].Severity)
	require.False(t, types.HasErrors(issues))

	outDir := t.TempDir()
	for _, format := range []types.DescriptorFormat{types.DescriptorFormatKotlin, types.DescriptorFormatYAML, types.DescriptorFormatTOML} {
		path := filepath.Join(outDir, "build."+string(format))
		require.NoError(t, source.Write(path, cfg, format))

		reloaded, err := adapters.NewDescriptorFileAdapter(nil).Load(t.Context(), path)
		require.NoError(t, err)
		if diff := cmp.Diff(cfg, reloaded); diff != "" {
			t.Fatalf("unexpected %s descriptor (-want +got):\n%s", format, diff)
		}
		if diff := cmp.Diff(issues, validator.Validate(t.Context(), reloaded)); diff != "" {
			t.Fatalf("unexpected %s issues (-want +got):\n%s", format, diff)
		}
	}
}

// TestGroovyScriptWithoutProject evaluates a legacy script that reads its
// versions from local.properties through a temp project.
func TestGroovyScriptWithoutProject(t *testing.T) {
	src, err := os.ReadFile(filepath.Join(repoRoot(t), "fixtures", "groovy", "build.gradle"))
	require.NoError(t, err)

	dir := t.TempDir()
	appDir := filepath.Join(dir, "android", "app")
	require.NoError(t, os.MkdirAll(appDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(appDir, "build.gradle"), src, 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "android", "local.properties"), []byte("flutter.versionCode=12\nflutter.versionName=3.1.0\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "pubspec.yaml"), []byte("name: legacy_app\nversion: 3.0.0+10\n"), 0644))

	layout, err := adapters.NewFlutterProjectAdapter().LayoutFor(dir)
	require.NoError(t, err)
	provider := adapters.NewLayeredFlutterProvider(
		adapters.NewStaticFlutterProvider(adapters.DefaultFlutterValues()),
		adapters.NewPubspecProvider(layout.Pubspec),
		adapters.NewLocalPropertiesProvider(layout.LocalProperties),
	)
	cfg, err := adapters.NewDescriptorFileAdapter(provider).Load(t.Context(), layout.AppScript)
	require.NoError(t, err)
	require.Equal(t, 12, cfg.VersionCode)
	require.Equal(t, "3.1.0", cfg.VersionName)

	issues := core.NewValidator(adapters.NewSigningRegistryAdapter()).Validate(t.Context(), cfg)
	require.Empty(t, issues)
}
