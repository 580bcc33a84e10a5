package app

import (
	"flutter-buildcfg/internal/adapters"
	"flutter-buildcfg/internal/core"
	"flutter-buildcfg/internal/ports"
	"flutter-buildcfg/internal/types"
)

// Options tune a Service beyond its adapters.
type Options struct {
	// SigningConfigs are signing-config names available outside the build
	// script, e.g. injected by CI.
	SigningConfigs []string
	// Flutter overrides the values discovered from the project.
	Flutter types.FlutterValues
	// StrictSigning warns when the release build type signs with debug keys.
	StrictSigning bool
	Workers       int
}

type Service struct {
	Project   ports.ProjectPort
	Registry  ports.SigningRegistryPort
	Writer    ports.DescriptorWriterPort
	Validator core.Validator
	Overrides ports.FlutterProviderPort
	Workers   int
}

func NewService(opts Options) Service {
	registry := adapters.NewSigningRegistryAdapter(opts.SigningConfigs...)
	workers := opts.Workers
	if workers <= 0 {
		workers = 4
	}
	return Service{
		Project:   adapters.NewFlutterProjectAdapter(),
		Registry:  registry,
		Writer:    adapters.NewDescriptorFileAdapter(nil),
		Validator: core.NewValidator(registry, core.WithReleaseSigningCheck(opts.StrictSigning)),
		Overrides: adapters.NewStaticFlutterProvider(opts.Flutter),
		Workers:   workers,
	}
}

// flutterProvider layers toolchain defaults, pubspec.yaml, local.properties
// and configured overrides, in increasing precedence.
func (s Service) flutterProvider(layout types.ProjectLayout) ports.FlutterProviderPort {
	layers := []ports.FlutterProviderPort{adapters.NewStaticFlutterProvider(adapters.DefaultFlutterValues())}
	if layout.Pubspec != "" {
		layers = append(layers, adapters.NewPubspecProvider(layout.Pubspec))
	}
	if layout.LocalProperties != "" {
		layers = append(layers, adapters.NewLocalPropertiesProvider(layout.LocalProperties))
	}
	if s.Overrides != nil {
		layers = append(layers, s.Overrides)
	}
	return adapters.NewLayeredFlutterProvider(layers...)
}
