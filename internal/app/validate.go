package app

import (
	"context"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"golang.org/x/sync/errgroup"
)

func (s Service) Validate(ctx context.Context, req ValidateRequest) (ValidateResult, error) {
	loaded, err := s.Load(ctx, LoadRequest{Path: req.Path})
	if err != nil {
		return ValidateResult{}, err
	}
	return ValidateResult{
		Path:   loaded.Layout.AppScript,
		Config: loaded.Config,
		Issues: s.Validator.Validate(ctx, loaded.Config),
	}, nil
}

// ValidateAll validates several module scripts concurrently. Results keep
// the order of req.Paths; the first load error aborts the run.
func (s Service) ValidateAll(ctx context.Context, req ValidateAllRequest) (ValidateAllResult, error) {
	if len(req.Paths) == 0 {
		return ValidateAllResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("at least one build configuration path is required")
	}
	results := make([]ValidateResult, len(req.Paths))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(max(s.Workers, 1))
	for i, path := range req.Paths {
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			result, err := s.Validate(groupCtx, ValidateRequest{Path: path})
			if err != nil {
				return err
			}
			results[i] = result
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return ValidateAllResult{}, err
	}
	return ValidateAllResult{Results: results}, nil
}

// Discover lists the app-module scripts below root.
func (s Service) Discover(root string) ([]string, error) {
	paths, err := s.Project.FindAppScripts(root)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("no android application build script found under " + root)
	}
	return paths, nil
}
