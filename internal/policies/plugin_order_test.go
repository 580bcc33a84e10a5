package policies

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"flutter-buildcfg/internal/types"
)

func TestFlutterPluginOrderPolicy(t *testing.T) {
	tests := []struct {
		name    string
		plugins []string
		want    []string
	}{
		{
			name:    "template order",
			plugins: []string{types.PluginAndroidApplication, types.PluginKotlinAndroid, types.PluginFlutterGradle},
		},
		{
			name:    "full kotlin plugin id",
			plugins: []string{types.PluginAndroidApplication, types.PluginKotlinAndroidFull, types.PluginFlutterGradle},
		},
		{
			name:    "no flutter plugin",
			plugins: []string{types.PluginKotlinAndroid},
		},
		{
			name:    "flutter before kotlin",
			plugins: []string{types.PluginAndroidApplication, types.PluginFlutterGradle, types.PluginKotlinAndroid},
			want:    []string{"dev.flutter.flutter-gradle-plugin must be applied after kotlin-android"},
		},
		{
			name:    "missing android plugin",
			plugins: []string{types.PluginKotlinAndroid, types.PluginFlutterGradle},
			want:    []string{"dev.flutter.flutter-gradle-plugin requires com.android.application to be applied"},
		},
		{
			name:    "duplicate plugin",
			plugins: []string{types.PluginAndroidApplication, types.PluginKotlinAndroid, types.PluginKotlinAndroid, types.PluginFlutterGradle},
			want:    []string{"plugin kotlin-android is applied more than once"},
		},
	}

	policy := NewFlutterPluginOrderPolicy()
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, policy.Check(tt.plugins))
		})
	}
}
