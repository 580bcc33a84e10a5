package types

type JavaVersion string

const (
	JavaVersionUnset JavaVersion = ""
	JavaVersion1_8   JavaVersion = "1.8"
	JavaVersion11    JavaVersion = "11"
	JavaVersion17    JavaVersion = "17"
	JavaVersion21    JavaVersion = "21"
)

type IssueKind string

const (
	IssueKindMissingField       IssueKind = "missing_field"
	IssueKindInvariantViolation IssueKind = "invariant_violation"
)

type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

type DescriptorFormat string

const (
	DescriptorFormatKotlin DescriptorFormat = "kts"
	DescriptorFormatGroovy DescriptorFormat = "gradle"
	DescriptorFormatYAML   DescriptorFormat = "yaml"
	DescriptorFormatTOML   DescriptorFormat = "toml"
)

// Well-known identifiers used by Flutter app modules.
const (
	PluginAndroidApplication = "com.android.application"
	PluginKotlinAndroid      = "kotlin-android"
	PluginKotlinAndroidFull  = "org.jetbrains.kotlin.android"
	PluginFlutterGradle      = "dev.flutter.flutter-gradle-plugin"

	ConfigurationDesugaring = "coreLibraryDesugaring"
	DebugSigningConfig      = "debug"
	ReleaseBuildType        = "release"
)
