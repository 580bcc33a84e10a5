package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"flutter-buildcfg/internal/app"
	"flutter-buildcfg/internal/types"
)

type showOptions struct {
	Format string
}

func newShowCommand() *cobra.Command {
	opts := showOptions{}
	cmd := &cobra.Command{
		Use:   "show [path]",
		Short: "Print the evaluated build configuration",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(cmd.Context(), cmd, args, opts)
		},
	}
	cmd.Flags().StringVar(&opts.Format, "format", string(types.DescriptorFormatYAML), "Output format (yaml, toml, kts)")
	return cmd
}

func runShow(ctx context.Context, cmd *cobra.Command, args []string, opts showOptions) error {
	service := newAppService()
	result, err := service.Export(ctx, app.ExportRequest{
		Path:   pathArg(args),
		Format: types.DescriptorFormat(resolveString(cmd, opts.Format, "output_format", "format")),
	})
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), string(result.Data))
	return nil
}

// pathArg returns the positional path, falling back to the project root.
func pathArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return viper.GetString("project_root")
}
