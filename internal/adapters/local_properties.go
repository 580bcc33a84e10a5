package adapters

import (
	"context"
	"errors"
	"os"
	"strconv"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/magiconair/properties"
	"github.com/rs/zerolog/log"

	"flutter-buildcfg/internal/core"
	"flutter-buildcfg/internal/ports"
	"flutter-buildcfg/internal/types"
)

// LocalPropertiesProvider reads the flutter.* entries the Flutter tool
// writes to android/local.properties. A missing file yields no values.
type LocalPropertiesProvider struct {
	Path string
}

func NewLocalPropertiesProvider(path string) LocalPropertiesProvider {
	return LocalPropertiesProvider{Path: path}
}

func (p LocalPropertiesProvider) FlutterValues(ctx context.Context) (types.FlutterValues, error) {
	data, err := os.ReadFile(p.Path)
	if errors.Is(err, os.ErrNotExist) {
		log.Ctx(ctx).Debug().Str("path", p.Path).Msg("local.properties not found")
		return types.FlutterValues{}, nil
	}
	if err != nil {
		return types.FlutterValues{}, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to read local.properties").
			WithCause(err)
	}
	loader := properties.Loader{Encoding: properties.UTF8, DisableExpansion: true}
	props, err := loader.LoadBytes(data)
	if err != nil {
		return types.FlutterValues{}, core.NewParseError(0, "local.properties: %v", err)
	}
	lookup := func(key string) string {
		value, _ := props.Get(key)
		return strings.TrimSpace(value)
	}

	var values types.FlutterValues
	ints := []struct {
		key string
		dst *int
	}{
		{"flutter.compileSdkVersion", &values.CompileSdkVersion},
		{"flutter.minSdkVersion", &values.MinSdkVersion},
		{"flutter.targetSdkVersion", &values.TargetSdkVersion},
		{"flutter.versionCode", &values.VersionCode},
	}
	for _, entry := range ints {
		raw := lookup(entry.key)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return types.FlutterValues{}, core.NewParseError(0, "local.properties: %s is not an integer: %q", entry.key, raw)
		}
		*entry.dst = n
	}
	values.NdkVersion = lookup("flutter.ndkVersion")
	values.VersionName = lookup("flutter.versionName")
	return values, nil
}

var _ ports.FlutterProviderPort = LocalPropertiesProvider{}
