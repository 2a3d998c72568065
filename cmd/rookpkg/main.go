package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rookeryos/rookpkg/internal/buildinfo"
	"github.com/rookeryos/rookpkg/internal/errs"
	"github.com/rookeryos/rookpkg/internal/log"
	"github.com/spf13/cobra"
)

var (
	quietFlag   bool
	verboseFlag bool
	debugFlag   bool
)

// globalCtx is the application-level context that is canceled on SIGINT/SIGTERM.
// Commands should use this context for cancellable operations.
var globalCtx context.Context
var globalCancel context.CancelFunc

var rootCmd = &cobra.Command{
	Use:   "rookpkg",
	Short: "Convert Arch Linux PKGBUILDs and manage signed package repositories",
	Long: `rookpkg converts Arch Linux PKGBUILD recipes into this toolkit's own
.rook recipe format, and manages signed package repositories: initializing a
fresh repository, rebuilding its index from the archives on disk, and
re-signing that index.`,
}

func init() {
	// Global verbosity flags
	rootCmd.PersistentFlags().BoolVarP(&quietFlag, "quiet", "q", false, "Show errors only")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Show verbose output (INFO level)")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "Show debug output (includes internal state)")

	// Initialize logger before command execution
	rootCmd.PersistentPreRun = initLogger

	// Set version from build info (handles tagged releases and dev builds)
	rootCmd.Version = buildinfo.Version()

	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(repoCmd)
	rootCmd.AddCommand(completionCmd)
}

func main() {
	// Set up cancellable context with signal handling
	globalCtx, globalCancel = context.WithCancel(context.Background())
	defer globalCancel()

	// Set up signal handling for graceful cancellation
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		fmt.Fprintf(os.Stderr, "\nReceived %s, canceling operation...\n", sig)
		globalCancel()

		// Wait for a second signal to force exit
		<-sigChan
		fmt.Fprintln(os.Stderr, "Forced exit")
		exitWithCode(ExitGeneral)
	}()

	rootCmd.SetContext(globalCtx)
	if err := rootCmd.Execute(); err != nil {
		if globalCtx.Err() == context.Canceled {
			exitWithCode(ExitGeneral)
		}
		printError(err)
		exitWithCode(exitCodeForKind(errs.KindOf(err)))
	}
}

// initLogger initializes the global logger based on flags and environment variables.
// Flags take precedence over environment variables.
func initLogger(cmd *cobra.Command, args []string) {
	level := determineLogLevel()
	handler := log.NewCLIHandler(level)
	logger := log.New(handler)
	log.SetDefault(logger)

	if level == slog.LevelDebug {
		fmt.Fprintln(os.Stderr, "[DEBUG MODE] Output may contain file paths and URLs. Do not share publicly.")
	}
}

// determineLogLevel returns the appropriate slog.Level based on flags and environment variables.
// Priority: flags > environment variables > default (WARN)
func determineLogLevel() slog.Level {
	if debugFlag {
		return slog.LevelDebug
	}
	if verboseFlag {
		return slog.LevelInfo
	}
	if quietFlag {
		return slog.LevelError
	}

	if isTruthy(os.Getenv("ROOKPKG_DEBUG")) {
		return slog.LevelDebug
	}
	if isTruthy(os.Getenv("ROOKPKG_VERBOSE")) {
		return slog.LevelInfo
	}
	if isTruthy(os.Getenv("ROOKPKG_QUIET")) {
		return slog.LevelError
	}

	return slog.LevelWarn
}

// isTruthy returns true if the string represents a truthy value.
func isTruthy(s string) bool {
	s = strings.ToLower(s)
	return s == "1" || s == "true" || s == "yes" || s == "on"
}
