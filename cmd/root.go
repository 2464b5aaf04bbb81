// Package cmd provides the CLI commands for Countdown.
package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	errs "github.com/kihana2077/countdown/internal/errors"
	"github.com/kihana2077/countdown/internal/logging"
	"github.com/kihana2077/countdown/internal/output"
	"github.com/kihana2077/countdown/internal/runtime"
)

// Version information (set at build time via ldflags).
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// Global flags.
var (
	flagFormat string
	flagColor  string
	flagOwner  string
	flagDebug  bool
)

// ctx is the shared runtime context.
var ctx *runtime.Context

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "countdown",
	Short: "Track countdown days and get reminded before they arrive",
	Long: `Countdown tracks named countdown events (birthdays, exams, launches)
and reminds you as their dates approach.

Examples:
  countdown add "Final exam" 2026-06-20
  countdown add Birthday 12-31 "cake day"
  countdown list
  countdown query Birthday
  countdown daemon`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		switch cmd.Name() {
		case "completion", "help", "version":
			return nil
		}

		logCfg := logging.DefaultConfig()
		if flagDebug {
			logCfg.Level = slog.LevelDebug
		}
		logging.Init(logCfg)

		var format output.Format
		switch flagFormat {
		case "json":
			format = output.FormatJSON
		case "plain":
			format = output.FormatPlain
		default:
			format = output.FormatCLI
		}

		var colorMode output.ColorMode
		switch flagColor {
		case "always":
			colorMode = output.ColorAlways
		case "never":
			colorMode = output.ColorNever
		default:
			colorMode = output.ColorAuto
		}

		opts := runtime.DefaultOptions()
		opts.Format = format
		opts.ColorMode = colorMode

		var err error
		ctx, err = runtime.New(opts)
		if err != nil {
			return err
		}

		if flagOwner != "" {
			ctx.Config.OwnerKey = flagOwner
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if ctx != nil {
			return ctx.Close()
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runList(cmd, args)
	},
}

// Execute adds all child commands to the root command and runs it.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagFormat, "format", "f", "cli",
		"Output format: cli, json, plain")
	rootCmd.PersistentFlags().StringVar(&flagColor, "color", "auto",
		"Color output: auto, always, never")
	rootCmd.PersistentFlags().StringVarP(&flagOwner, "owner", "o", "",
		"Owner key the command operates on")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false,
		"Enable debug output")

	rootCmd.AddCommand(versionCmd)
}

// versionCmd shows version information.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("countdown %s\n", Version)
		cmd.Printf("  commit: %s\n", Commit)
		cmd.Printf("  built: %s\n", BuildTime)
	},
}

// printResult prints a handler message, mapping user errors to hints.
func printResult(msg string, err error) error {
	if err != nil {
		if ue, ok := errs.AsUserError(err); ok {
			os.Stderr.WriteString("Error: " + ue.Error() + "\n")
			if ue.Suggestion != "" {
				os.Stderr.WriteString("Hint: " + ue.Suggestion + "\n")
			}
			return err
		}
		return err
	}
	return ctx.Formatter.PrintMessage(msg)
}
