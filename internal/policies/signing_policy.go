package policies

import (
	"sort"

	"flutter-buildcfg/internal/types"
)

// SigningPolicy resolves build-type signing references against the set of
// known signing-config names.
type SigningPolicy struct {
	known map[string]struct{}
}

func NewSigningPolicy(known ...[]string) SigningPolicy {
	policy := SigningPolicy{known: map[string]struct{}{}}
	for _, names := range known {
		for _, name := range names {
			policy.known[name] = struct{}{}
		}
	}
	return policy
}

// BuildTypeReference is a build type and the signing config it names.
type BuildTypeReference struct {
	BuildType     string
	SigningConfig string
}

// Unresolved lists, sorted by build type, the references whose signing
// config is not known.
func (p SigningPolicy) Unresolved(buildTypeSigning map[string]string) []BuildTypeReference {
	var out []BuildTypeReference
	for buildType, name := range buildTypeSigning {
		if _, ok := p.known[name]; !ok {
			out = append(out, BuildTypeReference{BuildType: buildType, SigningConfig: name})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].BuildType < out[j].BuildType
	})
	return out
}

// ReleaseSignedWithDebug reports the template placeholder where the
// release build type reuses the debug signing identity.
func ReleaseSignedWithDebug(buildTypeSigning map[string]string) bool {
	return buildTypeSigning[types.ReleaseBuildType] == types.DebugSigningConfig
}
