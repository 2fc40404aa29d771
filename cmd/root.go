package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mj1618/switcher/internal/config"
	"github.com/mj1618/switcher/internal/logging"
	"github.com/mj1618/switcher/internal/output"
	"github.com/mj1618/switcher/internal/version"
	"github.com/spf13/cobra"
)

// appConfig is loaded from the environment before any subcommand runs.
var appConfig = &config.Config{}

var rootCmd = &cobra.Command{
	Use:   "switcher",
	Short: "Keep task switcher buttons in sync with the open windows",
	Long: `A task switcher core for X11 desktops. It watches the window manager's client
list and maintains one button per switchable window, in a stable order, and
can raise or close windows on request.`,
	SilenceUsage: true,
}

// Execute runs the root command. SIGINT and SIGTERM cancel its context.
func Execute() {
	ctx, stop := signalContext(context.Background())
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version.Version, version.Commit, version.BuildDate)
	rootCmd.PersistentFlags().String("format", "yaml", "Output format: yaml, json")
	rootCmd.PersistentFlags().Bool("pretty", false, "Pretty-print JSON output")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error (default from LOG_LEVEL)")
	rootCmd.PersistentFlags().String("log-format", "", "Log format: text, json (default from LOG_FORMAT)")
	rootCmd.PersistentFlags().String("display", "", "X display to connect to (default from SWITCHER_DISPLAY or DISPLAY)")
	rootCmd.PersistentPreRunE = setup
}

// setup loads configuration, applies flag overrides and initializes logging
// and output.
func setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	flags := rootCmd.PersistentFlags()
	if level, _ := flags.GetString("log-level"); level != "" {
		cfg.LogLevel = level
	}
	if format, _ := flags.GetString("log-format"); format != "" {
		cfg.LogFormat = format
	}
	if display, _ := flags.GetString("display"); display != "" {
		cfg.Display = display
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	appConfig = cfg
	logging.Init(cfg.LogLevel, cfg.LogFormat)

	format, _ := flags.GetString("format")
	f, err := output.ParseFormat(format)
	if err != nil {
		return err
	}
	output.OutputFormat = f
	output.PrettyOutput, _ = flags.GetBool("pretty")
	return nil
}
