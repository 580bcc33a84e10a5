package types

// FlutterValues holds the values the Flutter Gradle plugin exposes to the
// build script through its "flutter" extension object. Zero values mean
// the provider does not know the value.
type FlutterValues struct {
	CompileSdkVersion int    `mapstructure:"compile_sdk"`
	MinSdkVersion     int    `mapstructure:"min_sdk"`
	TargetSdkVersion  int    `mapstructure:"target_sdk"`
	NdkVersion        string `mapstructure:"ndk_version"`
	VersionCode       int    `mapstructure:"version_code"`
	VersionName       string `mapstructure:"version_name"`
}

// Merge overlays the non-zero fields of other onto v.
func (v FlutterValues) Merge(other FlutterValues) FlutterValues {
	if other.CompileSdkVersion != 0 {
		v.CompileSdkVersion = other.CompileSdkVersion
	}
	if other.MinSdkVersion != 0 {
		v.MinSdkVersion = other.MinSdkVersion
	}
	if other.TargetSdkVersion != 0 {
		v.TargetSdkVersion = other.TargetSdkVersion
	}
	if other.NdkVersion != "" {
		v.NdkVersion = other.NdkVersion
	}
	if other.VersionCode != 0 {
		v.VersionCode = other.VersionCode
	}
	if other.VersionName != "" {
		v.VersionName = other.VersionName
	}
	return v
}
