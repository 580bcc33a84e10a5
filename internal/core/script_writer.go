package core

import (
	"fmt"
	"sort"
	"strings"

	"flutter-buildcfg/internal/types"
)

// RenderKotlinScript writes a build.gradle.kts equivalent of cfg. Values
// the original script read from the flutter extension are written as
// literals; comments and layout are not preserved.
func RenderKotlinScript(cfg types.BuildConfig) string {
	w := &scriptWriter{}

	if len(cfg.PluginIDs) > 0 {
		w.open("plugins")
		for _, id := range cfg.PluginIDs {
			w.line("id(%s)", quote(id))
		}
		w.close()
		w.blank()
	}

	w.open("android")
	if cfg.Namespace != "" {
		w.line("namespace = %s", quote(cfg.Namespace))
	}
	if cfg.CompileSdk != 0 {
		w.line("compileSdk = %d", cfg.CompileSdk)
	}
	if cfg.NdkVersion != "" {
		w.line("ndkVersion = %s", quote(cfg.NdkVersion))
	}

	if cfg.SourceCompatibility != "" || cfg.TargetCompatibility != "" || cfg.CoreLibraryDesugaringEnabled {
		w.blank()
		w.open("compileOptions")
		if cfg.SourceCompatibility != "" {
			w.line("sourceCompatibility = %s", javaVersionConstant(cfg.SourceCompatibility))
		}
		if cfg.TargetCompatibility != "" {
			w.line("targetCompatibility = %s", javaVersionConstant(cfg.TargetCompatibility))
		}
		if cfg.CoreLibraryDesugaringEnabled {
			w.line("isCoreLibraryDesugaringEnabled = true")
		}
		w.close()
	}

	if cfg.JvmTarget != "" {
		w.blank()
		w.open("kotlinOptions")
		w.line("jvmTarget = %s", quote(string(cfg.JvmTarget)))
		w.close()
	}

	w.blank()
	w.open("defaultConfig")
	if cfg.ApplicationID != "" {
		w.line("applicationId = %s", quote(cfg.ApplicationID))
	}
	if cfg.MinSdk != 0 {
		w.line("minSdk = %d", cfg.MinSdk)
	}
	if cfg.TargetSdk != 0 {
		w.line("targetSdk = %d", cfg.TargetSdk)
	}
	if cfg.VersionCode != 0 {
		w.line("versionCode = %d", cfg.VersionCode)
	}
	if cfg.VersionName != "" {
		w.line("versionName = %s", quote(cfg.VersionName))
	}
	w.close()

	if len(cfg.SigningConfigs) > 0 {
		w.blank()
		w.open("signingConfigs")
		for _, name := range cfg.SigningConfigs {
			w.line("create(%s) {", quote(name))
			w.line("}")
		}
		w.close()
	}

	if len(cfg.BuildTypeSigning) > 0 {
		w.blank()
		w.open("buildTypes")
		buildTypes := make([]string, 0, len(cfg.BuildTypeSigning))
		for name := range cfg.BuildTypeSigning {
			buildTypes = append(buildTypes, name)
		}
		sort.Strings(buildTypes)
		for _, name := range buildTypes {
			accessor := "create"
			if name == types.ReleaseBuildType || name == types.DebugSigningConfig {
				accessor = "getByName"
			}
			w.open(fmt.Sprintf("%s(%s)", accessor, quote(name)))
			w.line("signingConfig = signingConfigs.getByName(%s)", quote(cfg.BuildTypeSigning[name]))
			w.close()
		}
		w.close()
	}
	w.close()

	if cfg.FlutterSourceRoot != "" {
		w.blank()
		w.open("flutter")
		w.line("source = %s", quote(cfg.FlutterSourceRoot))
		w.close()
	}

	if len(cfg.Dependencies) > 0 {
		w.blank()
		w.open("dependencies")
		for _, dep := range cfg.Dependencies {
			w.line("%s(%s)", dep.Configuration, quote(dep.Coordinate))
		}
		w.close()
	}
	return w.b.String()
}

type scriptWriter struct {
	b     strings.Builder
	depth int
}

func (w *scriptWriter) line(format string, args ...any) {
	w.b.WriteString(strings.Repeat("    ", w.depth))
	fmt.Fprintf(&w.b, format, args...)
	w.b.WriteByte('\n')
}

func (w *scriptWriter) blank() {
	w.b.WriteByte('\n')
}

func (w *scriptWriter) open(header string) {
	w.line("%s {", header)
	w.depth++
}

func (w *scriptWriter) close() {
	w.depth--
	w.line("}")
}

func quote(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`, `$`, `\$`, "\n", `\n`)
	return `"` + r.Replace(s) + `"`
}
