package cli

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"

	"flutter-buildcfg/internal/app"
	"flutter-buildcfg/internal/types"
)

func newAppService() app.Service {
	return app.NewService(app.Options{
		SigningConfigs: viper.GetStringSlice("signing_configs"),
		Flutter:        flutterOverrides(),
		StrictSigning:  viper.GetBool("strict_signing"),
		Workers:        viper.GetInt("workers"),
	})
}

// flutterOverrides reads the flutter.* keys of the tool configuration.
func flutterOverrides() types.FlutterValues {
	var values types.FlutterValues
	if err := viper.UnmarshalKey("flutter", &values); err != nil {
		log.Warn().Err(err).Msg("ignoring invalid flutter overrides")
		return types.FlutterValues{}
	}
	return values
}
