package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/boshu2/fuzzy/internal/config"
)

// version is the CLI version, overridable at build time via -ldflags.
var version = "0.2.0"

var (
	// Global flags
	verbose   bool
	output    string
	cfgFile   string
	strict    bool
	workers   int
	logLevel  string
	logFormat string
)

// cfg is the resolved configuration, populated before any command runs.
var cfg *config.Config

// logger is the process logger, populated alongside cfg.
var logger *slog.Logger

// Exit codes. Definitions and rules failures are distinguished so callers
// can tell which input file was at fault.
const (
	exitOK          = 0
	exitError       = 1
	exitDefinitions = 2
	exitRules       = 3
)

// exitCodeError carries a specific process exit code through RunE.
type exitCodeError struct {
	code int
	err  error
}

func (e *exitCodeError) Error() string { return e.err.Error() }
func (e *exitCodeError) Unwrap() error { return e.err }

// exitWith wraps err with the given exit code.
func exitWith(code int, err error) error {
	return &exitCodeError{code: code, err: err}
}

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "fuzzy",
	Short: "Mamdani fuzzy inference CLI",
	Long: `fuzzy evaluates Mamdani-style fuzzy inference problems.

Crisp inputs are fuzzified into membership degrees through fuzzy-set
definitions, IF/AND/OR/THEN rules combine the degrees with fuzzy logic
operators, and rule outputs aggregate per output set via maximum.

Core Commands:
  infer        Run the full fuzzification + inference pipeline
  sets         List and validate fuzzy-set definitions
  rules        List and validate rules
  version      Show version information

Input files are flat text: one fuzzy set or one rule per line. See each
command's help for the formats.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initRuntime(cmd)
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately, then maps errors to exit codes.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		var ec *exitCodeError
		if errors.As(err, &ec) {
			os.Exit(ec.code)
		}
		os.Exit(exitError)
	}
}

func init() {
	// Global flags available to all commands
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&output, "output", "o", "", "Output format (table, json, jsonl)")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default: .fuzzy/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&strict, "strict", false, "Treat validation warnings as errors")
	rootCmd.PersistentFlags().IntVar(&workers, "workers", 0, "Parallel rule evaluation workers (0 = sequential)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "Log format (text, json)")
}

// initRuntime resolves configuration and the process logger from flags, env,
// and config files.
func initRuntime(cmd *cobra.Command) error {
	syncConfigFlagToEnv()

	overrides := &config.Config{
		Output:  output,
		Strict:  strict,
		Workers: workers,
	}
	if logLevel != "" {
		overrides.Log.Level = logLevel
	}
	if logFormat != "" {
		overrides.Log.Format = logFormat
	}
	if verbose && overrides.Log.Level == "" {
		overrides.Log.Level = "debug"
	}

	var err error
	cfg, err = config.Load(overrides)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger = setupLogger(cfg.Log.Level, cfg.Log.Format)
	slog.SetDefault(logger)
	return nil
}

func syncConfigFlagToEnv() {
	if cfgFile == "" {
		return
	}
	_ = os.Setenv("FUZZY_CONFIG", cfgFile)
}
