package adapters

import (
	"context"

	"flutter-buildcfg/internal/ports"
	"flutter-buildcfg/internal/types"
)

// DefaultFlutterValues are the SDK levels the Flutter Gradle plugin
// publishes on its extension object when the project overrides nothing.
func DefaultFlutterValues() types.FlutterValues {
	return types.FlutterValues{
		CompileSdkVersion: 35,
		MinSdkVersion:     21,
		TargetSdkVersion:  35,
		NdkVersion:        "27.0.12077973",
	}
}

// StaticFlutterProvider answers with fixed values.
type StaticFlutterProvider struct {
	Values types.FlutterValues
}

func NewStaticFlutterProvider(values types.FlutterValues) StaticFlutterProvider {
	return StaticFlutterProvider{Values: values}
}

func (p StaticFlutterProvider) FlutterValues(context.Context) (types.FlutterValues, error) {
	return p.Values, nil
}

// LayeredFlutterProvider merges several providers. Later layers override
// earlier ones per field; zero values never override.
type LayeredFlutterProvider struct {
	Layers []ports.FlutterProviderPort
}

func NewLayeredFlutterProvider(layers ...ports.FlutterProviderPort) LayeredFlutterProvider {
	return LayeredFlutterProvider{Layers: layers}
}

func (p LayeredFlutterProvider) FlutterValues(ctx context.Context) (types.FlutterValues, error) {
	var merged types.FlutterValues
	for _, layer := range p.Layers {
		if layer == nil {
			continue
		}
		values, err := layer.FlutterValues(ctx)
		if err != nil {
			return types.FlutterValues{}, err
		}
		merged = merged.Merge(values)
	}
	return merged, nil
}

var (
	_ ports.FlutterProviderPort = StaticFlutterProvider{}
	_ ports.FlutterProviderPort = LayeredFlutterProvider{}
)
