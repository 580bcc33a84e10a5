package adapters

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flutter-buildcfg/internal/core"
	"flutter-buildcfg/internal/types"
)

func TestLayeredFlutterProviderLaterLayersWin(t *testing.T) {
	provider := NewLayeredFlutterProvider(
		NewStaticFlutterProvider(DefaultFlutterValues()),
		NewStaticFlutterProvider(types.FlutterValues{MinSdkVersion: 24, VersionName: "2.0.0"}),
		nil,
		NewStaticFlutterProvider(types.FlutterValues{VersionName: "2.0.1"}),
	)
	values, err := provider.FlutterValues(t.Context())
	require.NoError(t, err)

	want := DefaultFlutterValues()
	want.MinSdkVersion = 24
	want.VersionName = "2.0.1"
	if diff := cmp.Diff(want, values); diff != "" {
		t.Fatalf("unexpected values (-want +got):\n%s", diff)
	}
}

func TestLocalPropertiesProvider(t *testing.T) {
	values, err := NewLocalPropertiesProvider(filepath.Join(projectFixture, "android", "local.properties")).FlutterValues(t.Context())
	require.NoError(t, err)
	assert.Equal(t, types.FlutterValues{VersionCode: 1, VersionName: "1.0.0"}, values)

	path := filepath.Join(t.TempDir(), "local.properties")
	require.NoError(t, os.WriteFile(path, []byte("flutter.minSdkVersion=23\nflutter.ndkVersion=26.1.10909125\n"), 0644))
	values, err = NewLocalPropertiesProvider(path).FlutterValues(t.Context())
	require.NoError(t, err)
	assert.Equal(t, 23, values.MinSdkVersion)
	assert.Equal(t, "26.1.10909125", values.NdkVersion)
}

func TestLocalPropertiesProviderMissingFile(t *testing.T) {
	values, err := NewLocalPropertiesProvider(filepath.Join(t.TempDir(), "local.properties")).FlutterValues(t.Context())
	require.NoError(t, err)
	assert.Equal(t, types.FlutterValues{}, values)
}

func TestLocalPropertiesProviderRejectsNonInteger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "local.properties")
	require.NoError(t, os.WriteFile(path, []byte("flutter.versionCode=first\n"), 0644))
	_, err := NewLocalPropertiesProvider(path).FlutterValues(t.Context())
	require.Error(t, err)
	assert.True(t, core.IsParseError(err))
	assert.Contains(t, err.Error(), "flutter.versionCode")
	assert.Contains(t, err.Error(), "first")
}

func TestLocalPropertiesProviderReadsEveryFlutterKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "local.properties")
	content := `# written by the Flutter tool
sdk.dir=C:\\Users\\dev\\Android\\sdk
flutter.sdk=/opt/flutter
flutter.compileSdkVersion=34
flutter.minSdkVersion = 23
flutter.targetSdkVersion:34
flutter.ndkVersion=26.1.10909125
flutter.versionCode=12
flutter.versionName=2.4.0
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	values, err := NewLocalPropertiesProvider(path).FlutterValues(t.Context())
	require.NoError(t, err)
	want := types.FlutterValues{
		CompileSdkVersion: 34,
		MinSdkVersion:     23,
		TargetSdkVersion:  34,
		NdkVersion:        "26.1.10909125",
		VersionCode:       12,
		VersionName:       "2.4.0",
	}
	if diff := cmp.Diff(want, values); diff != "" {
		t.Fatalf("unexpected values (-want +got):\n%s", diff)
	}
}

func TestPubspecProvider(t *testing.T) {
	values, err := NewPubspecProvider(filepath.Join(projectFixture, "pubspec.yaml")).FlutterValues(t.Context())
	require.NoError(t, err)
	assert.Equal(t, types.FlutterValues{VersionCode: 7, VersionName: "1.2.3"}, values)
}

func TestParsePubspecVersion(t *testing.T) {
	tests := []struct {
		raw     string
		want    types.FlutterValues
		wantErr bool
	}{
		{raw: "1.0.0+1", want: types.FlutterValues{VersionName: "1.0.0", VersionCode: 1}},
		{raw: "2.1.0", want: types.FlutterValues{VersionName: "2.1.0"}},
		{raw: "3.0.0-beta.2+40", want: types.FlutterValues{VersionName: "3.0.0-beta.2", VersionCode: 40}},
		{raw: "1.0", wantErr: true},
		{raw: "1.0.0+build", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParsePubspecVersion(tt.raw)
		if tt.wantErr {
			require.Error(t, err, tt.raw)
			continue
		}
		require.NoError(t, err, tt.raw)
		assert.Equal(t, tt.want, got, tt.raw)
	}
}

func TestSigningRegistryAdapter(t *testing.T) {
	registry := NewSigningRegistryAdapter("upload", " ", "debug", "upload")
	assert.Equal(t, []string{"debug", "upload"}, registry.Names())
}
