package core

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"flutter-buildcfg/internal/types"
)

type staticRegistry []string

func (r staticRegistry) Names() []string {
	return r
}

func TestValidatorCases(t *testing.T) {
	validator := NewValidator(staticRegistry{"debug"})

	tests := []struct {
		name      string
		build     func() types.BuildConfig
		wantRules []string
	}{
		{
			name:  "valid config",
			build: baseConfig,
		},
		{
			name: "min sdk above target sdk",
			build: func() types.BuildConfig {
				cfg := baseConfig()
				cfg.MinSdk = 35
				return cfg
			},
			wantRules: []string{RuleSdkOrder},
		},
		{
			name: "target sdk above compile sdk",
			build: func() types.BuildConfig {
				cfg := baseConfig()
				cfg.TargetSdk = 35
				return cfg
			},
			wantRules: []string{RuleSdkOrder},
		},
		{
			name: "jvm target disagrees",
			build: func() types.BuildConfig {
				cfg := baseConfig()
				cfg.JvmTarget = types.JavaVersion11
				return cfg
			},
			wantRules: []string{RuleJavaCompatibility},
		},
		{
			name: "unset language levels are ignored",
			build: func() types.BuildConfig {
				cfg := baseConfig()
				cfg.JvmTarget = types.JavaVersionUnset
				return cfg
			},
		},
		{
			name: "negative version code",
			build: func() types.BuildConfig {
				cfg := baseConfig()
				cfg.VersionCode = -1
				return cfg
			},
			wantRules: []string{RuleVersionCode},
		},
		{
			name: "desugaring without library",
			build: func() types.BuildConfig {
				cfg := baseConfig()
				cfg.Dependencies = nil
				return cfg
			},
			wantRules: []string{RuleDesugaringDependency},
		},
		{
			name: "desugaring library outside coreLibraryDesugaring",
			build: func() types.BuildConfig {
				cfg := baseConfig()
				cfg.Dependencies = []types.Dependency{
					{Configuration: "implementation", Coordinate: "com.android.tools:desugar_jdk_libs:2.1.5"},
				}
				return cfg
			},
			wantRules: []string{RuleDesugaringDependency},
		},
		{
			name: "desugaring nio variant accepted",
			build: func() types.BuildConfig {
				cfg := baseConfig()
				cfg.Dependencies = []types.Dependency{
					{Configuration: types.ConfigurationDesugaring, Coordinate: "com.android.tools:desugar_jdk_libs_nio:2.1.5"},
				}
				return cfg
			},
		},
		{
			name: "malformed coordinate",
			build: func() types.BuildConfig {
				cfg := baseConfig()
				cfg.Dependencies = append(cfg.Dependencies, types.Dependency{Configuration: "implementation", Coordinate: "androidx.core"})
				return cfg
			},
			wantRules: []string{RuleDependencyNotation},
		},
		{
			name: "dangling signing config",
			build: func() types.BuildConfig {
				cfg := baseConfig()
				cfg.BuildTypeSigning = map[string]string{"release": "upload"}
				return cfg
			},
			wantRules: []string{RuleSigningReference},
		},
		{
			name: "signing config declared in script",
			build: func() types.BuildConfig {
				cfg := baseConfig()
				cfg.SigningConfigs = []string{"upload"}
				cfg.BuildTypeSigning = map[string]string{"release": "upload"}
				return cfg
			},
		},
		{
			name: "flutter plugin before kotlin",
			build: func() types.BuildConfig {
				cfg := baseConfig()
				cfg.PluginIDs = []string{types.PluginAndroidApplication, types.PluginFlutterGradle, types.PluginKotlinAndroid}
				return cfg
			},
			wantRules: []string{RulePluginOrder},
		},
		{
			name: "release signed with debug is not flagged by default",
			build: func() types.BuildConfig {
				cfg := baseConfig()
				cfg.BuildTypeSigning = map[string]string{"release": "debug"}
				return cfg
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			issues := validator.Validate(t.Context(), tt.build())
			if diff := cmp.Diff(tt.wantRules, issueRules(issues)); diff != "" {
				t.Fatalf("unexpected rules (-want +got):\n%s", diff)
			}
		})
	}
}

func TestValidatorExampleWithoutDesugaringDependency(t *testing.T) {
	cfg := types.BuildConfig{
		ApplicationID:                "com.example.app",
		CompileSdk:                   34,
		MinSdk:                       21,
		TargetSdk:                    34,
		VersionCode:                  1,
		VersionName:                  "1.0.0",
		CoreLibraryDesugaringEnabled: true,
		Dependencies: []types.Dependency{
			{Configuration: types.ConfigurationDesugaring, Coordinate: "com.android.tools:desugar_jdk_libs:2.1.5"},
		},
	}
	validator := NewValidator(nil)
	assert.Empty(t, validator.Validate(t.Context(), cfg))

	cfg.Dependencies = nil
	issues := validator.Validate(t.Context(), cfg)
	require.Len(t, issues, 1)
	assert.Equal(t, types.IssueKindMissingField, issues[0].Kind)
	assert.Equal(t, RuleDesugaringDependency, issues[0].Rule)
}

func TestValidatorReleaseSigningCheck(t *testing.T) {
	validator := NewValidator(staticRegistry{"debug"}, WithReleaseSigningCheck(true))
	cfg := baseConfig()
	cfg.BuildTypeSigning = map[string]string{"release": "debug"}

	issues := validator.Validate(t.Context(), cfg)
	require.Len(t, issues, 1)
	assert.Equal(t, RuleReleaseDebugSigning, issues[0].Rule)
	assert.Equal(t, types.SeverityWarning, issues[0].Severity)
	assert.False(t, types.HasErrors(issues))
}

func TestValidatorSdkOrderProperty(t *testing.T) {
	validator := NewValidator(nil)
	rapid.Check(t, func(t *rapid.T) {
		cfg := baseConfig()
		cfg.MinSdk = rapid.IntRange(1, 40).Draw(t, "minSdk")
		cfg.TargetSdk = rapid.IntRange(1, 40).Draw(t, "targetSdk")
		cfg.CompileSdk = rapid.IntRange(1, 40).Draw(t, "compileSdk")

		ordered := cfg.MinSdk <= cfg.TargetSdk && cfg.TargetSdk <= cfg.CompileSdk
		flagged := containsString(issueRules(validator.Validate(context.Background(), cfg)), RuleSdkOrder)
		if ordered == flagged {
			t.Fatalf("min=%d target=%d compile=%d ordered=%v flagged=%v",
				cfg.MinSdk, cfg.TargetSdk, cfg.CompileSdk, ordered, flagged)
		}
	})
}

func TestValidatorJavaCompatibilityProperty(t *testing.T) {
	validator := NewValidator(nil)
	levels := []types.JavaVersion{types.JavaVersion1_8, types.JavaVersion11, types.JavaVersion17, types.JavaVersion21}
	rapid.Check(t, func(t *rapid.T) {
		cfg := baseConfig()
		cfg.SourceCompatibility = rapid.SampledFrom(levels).Draw(t, "source")
		cfg.TargetCompatibility = rapid.SampledFrom(levels).Draw(t, "target")
		cfg.JvmTarget = rapid.SampledFrom(levels).Draw(t, "jvm")

		agree := cfg.SourceCompatibility == cfg.TargetCompatibility && cfg.TargetCompatibility == cfg.JvmTarget
		flagged := containsString(issueRules(validator.Validate(context.Background(), cfg)), RuleJavaCompatibility)
		if agree == flagged {
			t.Fatalf("levels %s/%s/%s agree=%v flagged=%v",
				cfg.SourceCompatibility, cfg.TargetCompatibility, cfg.JvmTarget, agree, flagged)
		}
	})
}

func TestValidatorSigningReferenceProperty(t *testing.T) {
	registry := staticRegistry{"debug", "upload"}
	validator := NewValidator(registry)
	rapid.Check(t, func(t *rapid.T) {
		cfg := baseConfig()
		name := rapid.SampledFrom([]string{"debug", "upload", "release", "missing"}).Draw(t, "signingConfig")
		cfg.BuildTypeSigning = map[string]string{"release": name}

		known := containsString(registry, name)
		flagged := containsString(issueRules(validator.Validate(context.Background(), cfg)), RuleSigningReference)
		if known == flagged {
			t.Fatalf("signing config %q known=%v flagged=%v", name, known, flagged)
		}
	})
}

func issueRules(issues []types.ValidationIssue) []string {
	var rules []string
	for _, issue := range issues {
		rules = append(rules, issue.Rule)
	}
	return rules
}

func baseConfig() types.BuildConfig {
	return types.BuildConfig{
		PluginIDs: []string{
			types.PluginAndroidApplication,
			types.PluginKotlinAndroid,
			types.PluginFlutterGradle,
		},
		Namespace:                    "com.example.pos_transfer_module",
		ApplicationID:                "com.example.pos_transfer_module",
		CompileSdk:                   34,
		MinSdk:                       21,
		TargetSdk:                    34,
		VersionCode:                  1,
		VersionName:                  "1.0.0",
		SourceCompatibility:          types.JavaVersion17,
		TargetCompatibility:          types.JavaVersion17,
		JvmTarget:                    types.JavaVersion17,
		CoreLibraryDesugaringEnabled: true,
		Dependencies: []types.Dependency{
			{Configuration: types.ConfigurationDesugaring, Coordinate: "com.android.tools:desugar_jdk_libs:2.1.5"},
		},
		FlutterSourceRoot: "../..",
	}
}

func TestValidatorDesugaringIssueIsMissingField(t *testing.T) {
	cfg := baseConfig()
	cfg.Dependencies = []types.Dependency{
		{Configuration: "implementation", Coordinate: "com.android.tools:desugar_jdk_libs:2.1.5"},
	}
	issues := NewValidator(staticRegistry{"debug"}).Validate(t.Context(), cfg)
	require.Len(t, issues, 1)
	assert.Equal(t, types.IssueKindMissingField, issues[0].Kind)
	assert.Contains(t, issues[0].Message, types.ConfigurationDesugaring)
}
