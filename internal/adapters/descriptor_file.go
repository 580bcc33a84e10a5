package adapters

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	assert "github.com/ZanzyTHEbar/assert-lib"
	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"flutter-buildcfg/internal/core"
	"flutter-buildcfg/internal/ports"
	"flutter-buildcfg/internal/types"
)

// DescriptorFileAdapter loads build configurations from Gradle scripts or
// YAML/TOML descriptors and writes them back out.
type DescriptorFileAdapter struct {
	Flutter ports.FlutterProviderPort
}

func NewDescriptorFileAdapter(flutter ports.FlutterProviderPort) DescriptorFileAdapter {
	return DescriptorFileAdapter{Flutter: flutter}
}

// FormatForPath picks the descriptor format from a file name.
func FormatForPath(path string) (types.DescriptorFormat, error) {
	name := strings.ToLower(filepath.Base(path))
	switch {
	case strings.HasSuffix(name, ".kts"):
		return types.DescriptorFormatKotlin, nil
	case strings.HasSuffix(name, ".gradle"):
		return types.DescriptorFormatGroovy, nil
	case strings.HasSuffix(name, ".yaml"), strings.HasSuffix(name, ".yml"):
		return types.DescriptorFormatYAML, nil
	case strings.HasSuffix(name, ".toml"):
		return types.DescriptorFormatTOML, nil
	}
	return "", core.NewParseError(0, "unsupported descriptor file %s", filepath.Base(path))
}

func (a DescriptorFileAdapter) Load(ctx context.Context, path string) (types.BuildConfig, error) {
	format, err := FormatForPath(path)
	if err != nil {
		return types.BuildConfig{}, err
	}
	assert.NotEmpty(ctx, string(format), "descriptor format must be resolved")
	data, err := os.ReadFile(path)
	if err != nil {
		return types.BuildConfig{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("build configuration not found: %s", path)).
			WithCause(err)
	}
	switch format {
	case types.DescriptorFormatKotlin, types.DescriptorFormatGroovy:
		return core.NewScriptReader(a.Flutter).Read(ctx, string(data))
	case types.DescriptorFormatYAML:
		var cfg types.BuildConfig
		decoder := yaml.NewDecoder(bytes.NewReader(data))
		decoder.KnownFields(true)
		if err := decoder.Decode(&cfg); err != nil {
			return types.BuildConfig{}, core.NewParseError(0, "%s: %v", filepath.Base(path), err)
		}
		return normalizeDescriptor(cfg)
	default:
		var cfg types.BuildConfig
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return types.BuildConfig{}, core.NewParseError(0, "%s: %v", filepath.Base(path), err)
		}
		return normalizeDescriptor(cfg)
	}
}

// normalizeDescriptor brings hand-written language levels ("VERSION_17",
// "8") to their canonical form and enforces the required fields.
func normalizeDescriptor(cfg types.BuildConfig) (types.BuildConfig, error) {
	for _, level := range []*types.JavaVersion{&cfg.SourceCompatibility, &cfg.TargetCompatibility, &cfg.JvmTarget} {
		if *level == types.JavaVersionUnset {
			continue
		}
		parsed, err := core.ParseJavaVersion(string(*level))
		if err != nil {
			return types.BuildConfig{}, core.NewParseError(0, "%v", err)
		}
		*level = parsed
	}
	if err := core.RequireFields(cfg); err != nil {
		return types.BuildConfig{}, err
	}
	return cfg, nil
}

func (a DescriptorFileAdapter) Render(cfg types.BuildConfig, format types.DescriptorFormat) ([]byte, error) {
	switch format {
	case types.DescriptorFormatKotlin:
		return []byte(core.RenderKotlinScript(cfg)), nil
	case types.DescriptorFormatYAML:
		var buf bytes.Buffer
		encoder := yaml.NewEncoder(&buf)
		encoder.SetIndent(2)
		if err := encoder.Encode(cfg); err != nil {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("failed to encode yaml descriptor").
				WithCause(err)
		}
		if err := encoder.Close(); err != nil {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("failed to encode yaml descriptor").
				WithCause(err)
		}
		return buf.Bytes(), nil
	case types.DescriptorFormatTOML:
		data, err := toml.Marshal(cfg)
		if err != nil {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("failed to encode toml descriptor").
				WithCause(err)
		}
		return data, nil
	}
	return nil, errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg(fmt.Sprintf("unsupported output format: %s", format))
}

func (a DescriptorFileAdapter) Write(path string, cfg types.BuildConfig, format types.DescriptorFormat) error {
	data, err := a.Render(cfg, format)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("failed to create output directory").
				WithCause(err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(fmt.Sprintf("failed to write %s", path)).
			WithCause(err)
	}
	return nil
}

var (
	_ ports.DescriptorSourcePort = DescriptorFileAdapter{}
	_ ports.DescriptorWriterPort = DescriptorFileAdapter{}
)
