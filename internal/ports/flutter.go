package ports

import (
	"context"

	"flutter-buildcfg/internal/types"
)

// FlutterProviderPort supplies the values a build script reads from the
// "flutter" extension object (flutter.compileSdkVersion and friends).
type FlutterProviderPort interface {
	FlutterValues(ctx context.Context) (types.FlutterValues, error)
}
