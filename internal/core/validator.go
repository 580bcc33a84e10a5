package core

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"flutter-buildcfg/internal/policies"
	"flutter-buildcfg/internal/ports"
	"flutter-buildcfg/internal/types"
)

// Rule identifiers reported on ValidationIssue.Rule.
const (
	RuleSdkOrder             = "sdk-order"
	RuleJavaCompatibility    = "java-compat"
	RuleVersionCode          = "version-code"
	RuleDesugaringDependency = "desugaring-dependency"
	RuleDependencyNotation   = "dependency-coordinate"
	RuleSigningReference     = "signing-reference"
	RulePluginOrder          = "plugin-order"
	RuleReleaseDebugSigning  = "release-debug-signing"
)

type Validator struct {
	Registry    ports.SigningRegistryPort
	PluginOrder policies.PluginOrderPolicy

	releaseSigningCheck bool
}

type ValidatorOption func(*Validator)

// WithReleaseSigningCheck adds a warning when the release build type signs
// with the debug identity.
func WithReleaseSigningCheck(enabled bool) ValidatorOption {
	return func(v *Validator) {
		v.releaseSigningCheck = enabled
	}
}

func NewValidator(registry ports.SigningRegistryPort, opts ...ValidatorOption) Validator {
	v := Validator{
		Registry:    registry,
		PluginOrder: policies.NewFlutterPluginOrderPolicy(),
	}
	for _, opt := range opts {
		opt(&v)
	}
	return v
}

// Validate checks the descriptor invariants and returns every issue found,
// in rule order. It never fails: an empty result means the descriptor is
// consistent.
func (v Validator) Validate(ctx context.Context, cfg types.BuildConfig) []types.ValidationIssue {
	var issues []types.ValidationIssue
	issues = append(issues, checkSdkOrder(cfg)...)
	issues = append(issues, checkJavaCompatibility(cfg)...)
	issues = append(issues, checkVersionCode(cfg)...)
	issues = append(issues, checkDesugaring(cfg)...)
	issues = append(issues, checkCoordinates(cfg)...)
	issues = append(issues, v.checkSigning(cfg)...)
	for _, problem := range v.PluginOrder.Check(cfg.PluginIDs) {
		issues = append(issues, violation(RulePluginOrder, "plugins", problem))
	}
	if v.releaseSigningCheck && policies.ReleaseSignedWithDebug(cfg.BuildTypeSigning) {
		issues = append(issues, types.ValidationIssue{
			Rule:     RuleReleaseDebugSigning,
			Kind:     types.IssueKindInvariantViolation,
			Severity: types.SeverityWarning,
			Field:    "buildTypes.release.signingConfig",
			Message:  "release build type is signed with the debug signing config",
		})
	}
	log.Ctx(ctx).Debug().
		Str("application_id", cfg.ApplicationID).
		Int("issues", len(issues)).
		Msg("build config validated")
	return issues
}

func checkSdkOrder(cfg types.BuildConfig) []types.ValidationIssue {
	var issues []types.ValidationIssue
	if cfg.MinSdk < 1 {
		issues = append(issues, violation(RuleSdkOrder, "minSdk",
			fmt.Sprintf("minSdk must be at least 1, got %d", cfg.MinSdk)))
	}
	if cfg.MinSdk > cfg.TargetSdk {
		issues = append(issues, violation(RuleSdkOrder, "targetSdk",
			fmt.Sprintf("minSdk %d is greater than targetSdk %d", cfg.MinSdk, cfg.TargetSdk)))
	}
	if cfg.TargetSdk > cfg.CompileSdk {
		issues = append(issues, violation(RuleSdkOrder, "compileSdk",
			fmt.Sprintf("targetSdk %d is greater than compileSdk %d", cfg.TargetSdk, cfg.CompileSdk)))
	}
	return issues
}

func checkJavaCompatibility(cfg types.BuildConfig) []types.ValidationIssue {
	levels := []struct {
		field string
		value types.JavaVersion
	}{
		{"sourceCompatibility", cfg.SourceCompatibility},
		{"targetCompatibility", cfg.TargetCompatibility},
		{"jvmTarget", cfg.JvmTarget},
	}
	var set []string
	var first types.JavaVersion
	mismatch := false
	for _, level := range levels {
		if level.value == types.JavaVersionUnset {
			continue
		}
		if first == types.JavaVersionUnset {
			first = level.value
		} else if level.value != first {
			mismatch = true
		}
		set = append(set, fmt.Sprintf("%s=%s", level.field, level.value))
	}
	if !mismatch {
		return nil
	}
	return []types.ValidationIssue{violation(RuleJavaCompatibility, "compileOptions",
		"language levels disagree: "+strings.Join(set, ", "))}
}

func checkVersionCode(cfg types.BuildConfig) []types.ValidationIssue {
	if cfg.VersionCode >= 0 {
		return nil
	}
	return []types.ValidationIssue{violation(RuleVersionCode, "versionCode",
		fmt.Sprintf("versionCode must be positive, got %d", cfg.VersionCode))}
}

func checkDesugaring(cfg types.BuildConfig) []types.ValidationIssue {
	if !cfg.CoreLibraryDesugaringEnabled {
		return nil
	}
	for _, dep := range cfg.DependenciesIn(types.ConfigurationDesugaring) {
		coord, err := ParseCoordinate(dep.Coordinate)
		if err == nil && IsDesugaringCoordinate(coord) {
			return nil
		}
	}
	return []types.ValidationIssue{{
		Rule:     RuleDesugaringDependency,
		Kind:     types.IssueKindMissingField,
		Severity: types.SeverityError,
		Field:    "dependencies",
		Message:  "core library desugaring is enabled but no " + types.ConfigurationDesugaring + " dependency on " + desugarGroup + ":" + desugarArtifactPrefix + " is declared",
	}}
}

func checkCoordinates(cfg types.BuildConfig) []types.ValidationIssue {
	var issues []types.ValidationIssue
	for _, dep := range cfg.Dependencies {
		if _, err := ParseCoordinate(dep.Coordinate); err != nil {
			issues = append(issues, violation(RuleDependencyNotation, "dependencies."+dep.Configuration, err.Error()))
		}
	}
	return issues
}

func (v Validator) checkSigning(cfg types.BuildConfig) []types.ValidationIssue {
	var registered []string
	if v.Registry != nil {
		registered = v.Registry.Names()
	}
	policy := policies.NewSigningPolicy(registered, cfg.SigningConfigs)
	var issues []types.ValidationIssue
	for _, ref := range policy.Unresolved(cfg.BuildTypeSigning) {
		issues = append(issues, violation(RuleSigningReference, "buildTypes."+ref.BuildType+".signingConfig",
			fmt.Sprintf("build type %s refers to unknown signing config %q", ref.BuildType, ref.SigningConfig)))
	}
	return issues
}

func violation(rule string, field string, message string) types.ValidationIssue {
	return types.ValidationIssue{
		Rule:     rule,
		Kind:     types.IssueKindInvariantViolation,
		Severity: types.SeverityError,
		Field:    field,
		Message:  message,
	}
}
