package app

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"flutter-buildcfg/internal/types"
)

func (s Service) Export(ctx context.Context, req ExportRequest) (ExportResult, error) {
	format := req.Format
	if format == "" {
		format = types.DescriptorFormatYAML
	}
	loaded, err := s.Load(ctx, LoadRequest{Path: req.Path})
	if err != nil {
		return ExportResult{}, err
	}
	data, err := s.Writer.Render(loaded.Config, format)
	if err != nil {
		return ExportResult{}, err
	}
	output := strings.TrimSpace(req.Output)
	if output != "" {
		if err := s.Writer.Write(output, loaded.Config, format); err != nil {
			return ExportResult{}, err
		}
		log.Ctx(ctx).Info().Str("output", output).Str("format", string(format)).Msg("descriptor exported")
	}
	return ExportResult{Format: format, Output: output, Data: data}, nil
}
