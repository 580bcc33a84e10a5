package cli

import (
	"context"
	"fmt"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/spf13/cobra"

	"flutter-buildcfg/internal/app"
	"flutter-buildcfg/internal/types"
)

type exportOptions struct {
	Format string
	Output string
}

func newExportCommand() *cobra.Command {
	opts := exportOptions{}
	cmd := &cobra.Command{
		Use:   "export [path]",
		Short: "Write the build configuration as a Kotlin script, yaml or toml descriptor",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd.Context(), cmd, args, opts)
		},
	}
	cmd.Flags().StringVar(&opts.Format, "format", string(types.DescriptorFormatYAML), "Output format (kts, yaml, toml)")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "Output file")
	return cmd
}

func runExport(ctx context.Context, cmd *cobra.Command, args []string, opts exportOptions) error {
	if opts.Output == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("--output is required")
	}
	service := newAppService()
	result, err := service.Export(ctx, app.ExportRequest{
		Path:   pathArg(args),
		Format: types.DescriptorFormat(resolveString(cmd, opts.Format, "output_format", "format")),
		Output: opts.Output,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "exported %s descriptor to %s\n", result.Format, result.Output)
	return nil
}
