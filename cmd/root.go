package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	logginghelpers "github.com/Pjt727/soc/data/logging-helpers"
)

var (
	logFileFlag  string
	logLevelFlag string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "soc",
	Short: "soc collects a university Schedule of Classes into structured course records",
	Long: `soc can do one-off collections of a term or keep collecting it on an
interval so seat counts build up a history`,
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logFileFlag, "logfile", "", "also write json logs to this file")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "INFO",
		"lowest level logged (DEBUG, REPORT_IO, INFO, WARN, ERROR, BROKEN_PROCESS)")
}

// newLogger writes text logs to stderr and, with --logfile, json logs to a
// file. The returned func closes the file.
func newLogger() (*slog.Logger, func(), error) {
	level, err := logginghelpers.ParseLevel(logLevelFlag)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level: %w", err)
	}
	options := &slog.HandlerOptions{Level: level, ReplaceAttr: logginghelpers.ReplaceLevelNames}
	handler := logginghelpers.NewMultiHandler(slog.NewTextHandler(os.Stderr, options))

	closer := func() {}
	if logFileFlag != "" {
		file, err := os.OpenFile(logFileFlag, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("could not open log file: %w", err)
		}
		handler.AddHander(slog.NewJSONHandler(file, options))
		closer = func() { file.Close() }
	}
	return slog.New(handler), closer, nil
}
