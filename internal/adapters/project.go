package adapters

import (
	"bytes"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"flutter-buildcfg/internal/ports"
	"flutter-buildcfg/internal/types"
)

const (
	pubspecFileName         = "pubspec.yaml"
	localPropertiesFileName = "local.properties"
)

var appScriptNames = []string{"build.gradle.kts", "build.gradle"}

type FlutterProjectAdapter struct{}

func NewFlutterProjectAdapter() FlutterProjectAdapter {
	return FlutterProjectAdapter{}
}

// LayoutFor resolves the project around path, which is either a Flutter
// project root or a module build script inside one.
func (a FlutterProjectAdapter) LayoutFor(path string) (types.ProjectLayout, error) {
	if path == "" {
		return types.ProjectLayout{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("project path is empty")
	}
	info, err := os.Stat(path)
	if err != nil {
		return types.ProjectLayout{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("project path not found: " + path).
			WithCause(err)
	}

	layout := types.ProjectLayout{}
	if info.IsDir() {
		layout.Root = path
		for _, name := range appScriptNames {
			candidate := filepath.Join(path, "android", "app", name)
			if fileExists(candidate) {
				layout.AppScript = candidate
				break
			}
		}
		if layout.AppScript == "" {
			return types.ProjectLayout{}, errbuilder.New().
				WithCode(errbuilder.CodeNotFound).
				WithMsg("no android/app build script under " + path)
		}
	} else {
		layout.AppScript = path
		layout.Root = findProjectRoot(filepath.Dir(path))
	}

	if layout.Root != "" {
		if candidate := filepath.Join(layout.Root, pubspecFileName); fileExists(candidate) {
			layout.Pubspec = candidate
		}
		if candidate := filepath.Join(layout.Root, "android", localPropertiesFileName); fileExists(candidate) {
			layout.LocalProperties = candidate
		}
	}
	if layout.LocalProperties == "" {
		// Scripts outside a Flutter tree may still sit next to their properties.
		for _, dir := range []string{filepath.Dir(layout.AppScript), filepath.Dir(filepath.Dir(layout.AppScript))} {
			if candidate := filepath.Join(dir, localPropertiesFileName); fileExists(candidate) {
				layout.LocalProperties = candidate
				break
			}
		}
	}
	return layout, nil
}

// FindAppScripts walks root for Gradle scripts that apply the Android
// application plugin.
func (a FlutterProjectAdapter) FindAppScripts(root string) ([]string, error) {
	if root == "" {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("project root is empty")
	}
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && shouldSkipProjectDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if !isScriptName(d.Name()) {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		if bytes.Contains(data, []byte(types.PluginAndroidApplication)) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to scan project").
			WithCause(err)
	}
	return paths, nil
}

// findProjectRoot walks up from dir to the nearest directory holding a
// pubspec.yaml, at most three levels (android/app/ -> project root).
func findProjectRoot(dir string) string {
	current := dir
	for i := 0; i <= 3; i++ {
		if fileExists(filepath.Join(current, pubspecFileName)) {
			return current
		}
		parent := filepath.Dir(current)
		if parent == current {
			break
		}
		current = parent
	}
	return ""
}

func shouldSkipProjectDir(name string) bool {
	switch name {
	case "build", ".dart_tool", ".gradle", ".git", ".idea", "node_modules", "ios", "macos", "linux", "windows", "web":
		return true
	default:
		return false
	}
}

func isScriptName(name string) bool {
	for _, candidate := range appScriptNames {
		if name == candidate {
			return true
		}
	}
	return false
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

var _ ports.ProjectPort = FlutterProjectAdapter{}
