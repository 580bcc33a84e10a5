package adapters

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"flutter-buildcfg/internal/core"
	"flutter-buildcfg/internal/ports"
	"flutter-buildcfg/internal/types"
)

// PubspecProvider derives versionName and versionCode from the
// `version: 1.2.3+45` entry of pubspec.yaml, as `flutter build` does.
type PubspecProvider struct {
	Path string
}

func NewPubspecProvider(path string) PubspecProvider {
	return PubspecProvider{Path: path}
}

type pubspecFile struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
}

func (p PubspecProvider) FlutterValues(ctx context.Context) (types.FlutterValues, error) {
	data, err := os.ReadFile(p.Path)
	if errors.Is(err, os.ErrNotExist) {
		log.Ctx(ctx).Debug().Str("path", p.Path).Msg("pubspec.yaml not found")
		return types.FlutterValues{}, nil
	}
	if err != nil {
		return types.FlutterValues{}, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to read pubspec.yaml").
			WithCause(err)
	}
	var pubspec pubspecFile
	if err := yaml.Unmarshal(data, &pubspec); err != nil {
		return types.FlutterValues{}, core.NewParseError(0, "pubspec.yaml: %v", err)
	}
	if strings.TrimSpace(pubspec.Version) == "" {
		return types.FlutterValues{}, nil
	}
	return ParsePubspecVersion(pubspec.Version)
}

// ParsePubspecVersion splits a pubspec version into the Android
// versionName (the semantic version) and versionCode (the build number).
func ParsePubspecVersion(raw string) (types.FlutterValues, error) {
	version, err := semver.StrictNewVersion(strings.TrimSpace(raw))
	if err != nil {
		return types.FlutterValues{}, core.NewParseError(0, "pubspec.yaml: version %q is not a semantic version", raw)
	}
	name := fmt.Sprintf("%d.%d.%d", version.Major(), version.Minor(), version.Patch())
	if pre := version.Prerelease(); pre != "" {
		name += "-" + pre
	}
	values := types.FlutterValues{VersionName: name}
	if build := version.Metadata(); build != "" {
		code, err := strconv.Atoi(build)
		if err != nil {
			return types.FlutterValues{}, core.NewParseError(0, "pubspec.yaml: build number %q is not an integer", build)
		}
		values.VersionCode = code
	}
	return values, nil
}

var _ ports.FlutterProviderPort = PubspecProvider{}
