// Package cmd provides the CLI commands for the Countdown application.
package cmd

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/xvierd/countdown/internal/adapters/tui"
	"github.com/xvierd/countdown/internal/config"
)

var (
	// Version info (set at build time via ldflags)
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"

	// Global flags
	configPath string
	debugLog   string

	// Root flags
	minutesFlag    string
	secondsFlag    string
	fullscreenFlag bool

	// Global dependencies
	appConfig *config.Config
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "countdown",
	Short: "Countdown - A minutes and seconds timer for the terminal",
	Long: `Countdown is a terminal timer. Enter minutes and seconds, then start,
pause, stop or reset the countdown. Press [f] to take over the whole
terminal with a big readout.

Run "countdown watch" for a headless countdown that prints each tick.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initializeConfig()
	},
	RunE: runTUI,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to the config file (default: ~/.countdown/config.toml)")
	rootCmd.PersistentFlags().StringVar(&debugLog, "debug-log", "", "Write diagnostics to this file")

	rootCmd.Flags().StringVarP(&minutesFlag, "minutes", "m", "", "Prefill the minutes field")
	rootCmd.Flags().StringVarP(&secondsFlag, "seconds", "s", "", "Prefill the seconds field")
	rootCmd.Flags().BoolVar(&fullscreenFlag, "fullscreen", false, "Start in fullscreen")

	// Set version - cobra handles --version automatically
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("Countdown\nVersion: {{.Version}}\n")

	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

// initializeConfig resolves the config path and loads the configuration.
func initializeConfig() error {
	if configPath == "" {
		path, err := config.GetConfigPath()
		if err != nil {
			return err
		}
		configPath = path
	}

	var err error
	appConfig, err = config.LoadFrom(configPath)
	if err != nil {
		// If config loading fails, use defaults
		appConfig = config.DefaultConfig()
	}
	return nil
}

// logFile returns the diagnostics destination: the flag, then the config.
func logFile() string {
	if debugLog != "" {
		return debugLog
	}
	return appConfig.Log.File
}

// openLogger opens path for appending and returns a logger writing to it.
// An empty path yields a logger that discards everything.
func openLogger(path string) (*log.Logger, func() error, error) {
	if path == "" {
		return log.New(io.Discard, "", 0), func() error { return nil }, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open debug log: %w", err)
	}
	return log.New(f, "countdown ", log.LstdFlags), f.Close, nil
}

// setupSignalHandler sets up a context that cancels on interrupt signals.
func setupSignalHandler() context.Context {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		cancel()
	}()

	return ctx
}

// runTUI starts the interactive countdown.
func runTUI(cmd *cobra.Command, args []string) error {
	minutes := appConfig.Defaults.Minutes
	if cmd.Flags().Changed("minutes") {
		minutes = minutesFlag
	}
	seconds := appConfig.Defaults.Seconds
	if cmd.Flags().Changed("seconds") {
		seconds = secondsFlag
	}

	return tui.Run(setupSignalHandler(), tui.RunOptions{
		Options: tui.Options{
			Theme:           &appConfig.Theme,
			BigDigits:       appConfig.Display.BigDigits,
			StartFullscreen: fullscreenFlag || appConfig.Display.StartFullscreen,
			Minutes:         minutes,
			Seconds:         seconds,
		},
		LogFile: logFile(),
	})
}
