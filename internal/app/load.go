package app

import (
	"context"
	"strings"

	assert "github.com/ZanzyTHEbar/assert-lib"
	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"flutter-buildcfg/internal/adapters"
)

func (s Service) Load(ctx context.Context, req LoadRequest) (LoadResult, error) {
	path := strings.TrimSpace(req.Path)
	if path == "" {
		return LoadResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("build configuration path is required")
	}
	layout, err := s.Project.LayoutFor(path)
	if err != nil {
		return LoadResult{}, err
	}
	assert.NotEmpty(ctx, layout.AppScript, "project layout must name a build script")
	source := adapters.NewDescriptorFileAdapter(s.flutterProvider(layout))
	cfg, err := source.Load(ctx, layout.AppScript)
	if err != nil {
		return LoadResult{}, err
	}
	log.Ctx(ctx).Debug().
		Str("script", layout.AppScript).
		Str("pubspec", layout.Pubspec).
		Str("local_properties", layout.LocalProperties).
		Msg("build configuration loaded")
	return LoadResult{Layout: layout, Config: cfg}, nil
}
