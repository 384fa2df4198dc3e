package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/oshokin/d3s/internal/config"
	"github.com/oshokin/d3s/internal/logger"
)

var (
	//nolint:gochecknoglobals // It is required for configuration initialization before the application starts.
	configFilenameFromFlag string

	//nolint:gochecknoglobals,lll // It is initialized once during the application's startup and shared across the command execution logic.
	appConfig *config.Config

	//nolint:gochecknoglobals,lll // Cobra command requires a global definition for proper command-line parsing and execution.
	rootCmd = &cobra.Command{
		Use:   "d3s",
		Short: "Pass a 3-D Secure authentication in a browser and print the result.",
		Long: `d3s opens the card issuer's Access Control Server page in a browser,
lets the cardholder complete the 3-D Secure challenge and captures the result.

Both protocol versions are supported:
- 3-D Secure 1 (MD + PaReq in, MD + PaRes out)
- 3-D Secure 2 (CReq + threeDSSessionData in, CRes + threeDSSessionData out)

The result is printed as YAML or JSON, or saved to a file.`,
		PersistentPreRun: initConfig,
	}
)

// Execute executes the root command.
func Execute() {
	signals := []os.Signal{syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM}
	ctx, stop := signal.NotifyContext(context.Background(), signals...)

	defer func() {
		_ = logger.Logger().Sync()
	}()

	defer stop()

	go func() {
		defer stop()

		err := rootCmd.ExecuteContext(ctx)
		cobra.CheckErr(err)
	}()

	<-ctx.Done()
}

//nolint:gochecknoinits // Cobra requires the init function to set up flags before the command is executed.
func init() {
	rootCmd.PersistentFlags().StringVarP(
		&configFilenameFromFlag,
		"config",
		"c",
		"",
		fmt.Sprintf("path to the configuration file (default is '%s')",
			config.DefaultConfigFilename))
}

func initConfig(cmd *cobra.Command, _ []string) {
	var err error

	appConfig, err = config.LoadConfig(configFilenameFromFlag)
	if err != nil {
		logger.Fatalf(cmd.Context(), "Failed to load configuration: %v", err)
	}

	if level, ok := logger.ParseLogLevel(appConfig.LogLevel); ok {
		logger.SetLevel(level)
	}
}

// addOutputFlags registers the flags shared by every authorization command.
func addOutputFlags(flags *pflag.FlagSet) {
	flags.StringP(
		"output",
		"o",
		"",
		"file to save the result to (the folder will be created if it doesn’t exist), stdout if empty.")

	flags.StringP(
		"format",
		"f",
		"",
		"result format: yaml or json.")

	flags.Bool(
		"headless",
		false,
		"run the browser without a window (only for frictionless flows).")
}

func bindFlagsToConfig(flags *pflag.FlagSet, cfg *config.Config) error {
	if flag := flags.Lookup("output"); flag != nil && flag.Changed {
		cfg.OutputPath, _ = flags.GetString("output")
	}

	if flag := flags.Lookup("format"); flag != nil && flag.Changed {
		cfg.OutputFormat, _ = flags.GetString("format")
	}

	if flag := flags.Lookup("headless"); flag != nil && flag.Changed {
		cfg.Headless, _ = flags.GetBool("headless")
	}

	return config.ValidateConfig(cfg)
}

// prepareConfig applies the command flags and the resulting log level.
func prepareConfig(cmd *cobra.Command) {
	if err := bindFlagsToConfig(cmd.Flags(), appConfig); err != nil {
		logger.Fatalf(cmd.Context(), "Failed to parse flags: %v", err)
	}

	logger.SetLevel(appConfig.ParsedLogLevel)
}
