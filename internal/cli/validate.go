package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"flutter-buildcfg/internal/app"
	"flutter-buildcfg/internal/types"
)

type validateOptions struct {
	FailOnWarning  bool
	StrictSigning  bool
	SigningConfigs []string
}

func newValidateCommand() *cobra.Command {
	opts := validateOptions{}
	cmd := &cobra.Command{
		Use:   "validate [paths...]",
		Short: "Validate app-module build configurations",
		Long: "Validate app-module build scripts or descriptors. Each path is a Flutter project root, " +
			"a build.gradle(.kts) script or a yaml/toml descriptor. Without paths every app module " +
			"below --project-root is validated.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd.Context(), cmd, args, opts)
		},
	}
	cmd.Flags().BoolVar(&opts.FailOnWarning, "fail-on-warning", false, "Fail when warnings are reported")
	cmd.Flags().BoolVar(&opts.StrictSigning, "strict-signing", true, "Warn when release builds are signed with debug keys")
	cmd.Flags().StringSliceVar(&opts.SigningConfigs, "signing-config", nil, "Signing configs available outside the build script")
	_ = viper.BindPFlag("fail_on_warning", cmd.Flags().Lookup("fail-on-warning"))
	return cmd
}

func runValidate(ctx context.Context, cmd *cobra.Command, args []string, opts validateOptions) error {
	viper.Set("strict_signing", resolveBool(cmd, opts.StrictSigning, "strict_signing", "strict-signing"))
	viper.Set("signing_configs", resolveStrings(cmd, opts.SigningConfigs, "signing_configs", "signing-config"))
	service := newAppService()

	paths := args
	if len(paths) == 0 {
		discovered, err := service.Discover(viper.GetString("project_root"))
		if err != nil {
			return err
		}
		paths = discovered
	}
	result, err := service.ValidateAll(ctx, app.ValidateAllRequest{Paths: paths})
	if err != nil {
		return err
	}

	out := io.Discard
	if cmd != nil {
		out = cmd.OutOrStdout()
	}
	failOnWarning := resolveBool(cmd, opts.FailOnWarning, "fail_on_warning", "fail-on-warning")
	issues := 0
	for _, res := range result.Results {
		writeValidateResult(out, res)
		issues += len(res.Issues)
	}
	if result.Failed(failOnWarning) {
		return errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg(fmt.Sprintf("validation failed: %d issue(s)", issues))
	}
	return nil
}

func writeValidateResult(w io.Writer, result app.ValidateResult) {
	if len(result.Issues) == 0 {
		color.New(color.FgGreen, color.Bold).Fprintf(w, "✓ %s\n", result.Path)
		return
	}
	color.New(color.Bold).Fprintf(w, "%s\n", result.Path)
	for _, issue := range result.Issues {
		fmt.Fprintln(w, formatIssue(issue))
	}
}

func formatIssue(issue types.ValidationIssue) string {
	severity := color.New(color.FgRed, color.Bold)
	if issue.Severity == types.SeverityWarning {
		severity = color.New(color.FgYellow, color.Bold)
	}
	gray := color.New(color.FgHiBlack)
	return fmt.Sprintf("  %s %s %s %s",
		severity.Sprint(strings.ToUpper(string(issue.Severity))),
		gray.Sprintf("[%s]", issue.Rule),
		issue.Field+":",
		issue.Message)
}

func resolveString(cmd *cobra.Command, value string, key string, flagName string) string {
	if cmd == nil {
		if value != "" {
			return value
		}
		return viper.GetString(key)
	}
	if flagChanged(cmd, flagName) {
		return value
	}
	return viper.GetString(key)
}

func resolveStrings(cmd *cobra.Command, values []string, key string, flagName string) []string {
	if cmd == nil {
		if len(values) > 0 {
			return values
		}
		return viper.GetStringSlice(key)
	}
	if flagChanged(cmd, flagName) {
		return values
	}
	return viper.GetStringSlice(key)
}

func resolveBool(cmd *cobra.Command, value bool, key string, flagName string) bool {
	if cmd == nil {
		return value
	}
	if flagChanged(cmd, flagName) {
		return value
	}
	return viper.GetBool(key)
}

func flagChanged(cmd *cobra.Command, name string) bool {
	if cmd == nil || strings.TrimSpace(name) == "" {
		return false
	}
	if flag := cmd.Flags().Lookup(name); flag != nil {
		return flag.Changed
	}
	if flag := cmd.PersistentFlags().Lookup(name); flag != nil {
		return flag.Changed
	}
	return false
}
