package types

// BuildConfig is the evaluated app-module build configuration of a Flutter
// Android project. It is built once per load and treated as read-only.
type BuildConfig struct {
	PluginIDs []string `yaml:"plugins" toml:"plugins"`

	Namespace     string `yaml:"namespace" toml:"namespace"`
	ApplicationID string `yaml:"application_id" toml:"application_id"`
	CompileSdk    int    `yaml:"compile_sdk" toml:"compile_sdk"`
	MinSdk        int    `yaml:"min_sdk" toml:"min_sdk"`
	TargetSdk     int    `yaml:"target_sdk" toml:"target_sdk"`
	NdkVersion    string `yaml:"ndk_version,omitempty" toml:"ndk_version,omitempty"`
	VersionCode   int    `yaml:"version_code,omitempty" toml:"version_code,omitempty"`
	VersionName   string `yaml:"version_name,omitempty" toml:"version_name,omitempty"`

	SourceCompatibility          JavaVersion `yaml:"source_compatibility,omitempty" toml:"source_compatibility,omitempty"`
	TargetCompatibility          JavaVersion `yaml:"target_compatibility,omitempty" toml:"target_compatibility,omitempty"`
	JvmTarget                    JavaVersion `yaml:"jvm_target,omitempty" toml:"jvm_target,omitempty"`
	CoreLibraryDesugaringEnabled bool        `yaml:"core_library_desugaring" toml:"core_library_desugaring"`

	// BuildTypeSigning maps a build type ("release", "debug") to the name
	// of the signing config it uses.
	BuildTypeSigning map[string]string `yaml:"build_type_signing,omitempty" toml:"build_type_signing,omitempty"`

	// SigningConfigs lists the signing configs declared by the script
	// itself. The implicit "debug" config is not listed here.
	SigningConfigs []string `yaml:"signing_configs,omitempty" toml:"signing_configs,omitempty"`

	Dependencies      []Dependency `yaml:"dependencies,omitempty" toml:"dependencies,omitempty"`
	FlutterSourceRoot string       `yaml:"flutter_source,omitempty" toml:"flutter_source,omitempty"`
}

// Dependency is one entry of the dependencies block.
type Dependency struct {
	Configuration string `yaml:"configuration" toml:"configuration"`
	Coordinate    string `yaml:"coordinate" toml:"coordinate"`
}

// Coordinate is a parsed group:artifact:version string.
type Coordinate struct {
	Group    string
	Artifact string
	Version  string
}

func (c Coordinate) String() string {
	return c.Group + ":" + c.Artifact + ":" + c.Version
}

// DependenciesIn returns the dependencies declared under a configuration.
func (c BuildConfig) DependenciesIn(configuration string) []Dependency {
	var out []Dependency
	for _, dep := range c.Dependencies {
		if dep.Configuration == configuration {
			out = append(out, dep)
		}
	}
	return out
}
