// Package main is the entry point for the deadlands command line tool
package main

import (
	"fmt"
	"log/slog"
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/benkolera/salty-deadlands/internal/errors"
)

var (
	logLevel string
	seed     int64
)

var rootCmd = &cobra.Command{
	Use:   "deadlands",
	Short: "Deadlands dice and character sheet tool",
	Long: `deadlands rolls Deadlands dice codes, resolves opposed rolls and shows
character sheets with wounds and running spells applied.`,
	SilenceErrors:     true,
	SilenceUsage:      true,
	PersistentPreRunE: setupLogging,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		printError(err)
		os.Exit(errors.GetCode(err).ExitCode())
	}
}

func printError(err error) {
	fields := errors.Fields(err)
	if len(fields) == 0 {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return
	}

	fmt.Fprintln(os.Stderr, "Error: invalid arguments")
	for _, name := range slices.Sorted(maps.Keys(fields)) {
		fmt.Fprintf(os.Stderr, "  %s: %s\n", name, strings.Join(fields[name], ", "))
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", 0, "Seed the dice for a repeatable roll")

	rootCmd.AddCommand(rollCmd)
	rootCmd.AddCommand(opposedCmd)
	rootCmd.AddCommand(sheetCmd)
	rootCmd.AddCommand(codeCmd)
	rootCmd.AddCommand(checkCmd)
}

func setupLogging(_ *cobra.Command, _ []string) error {
	vb := errors.NewValidationBuilder()
	errors.ValidateEnum("log-level", strings.ToLower(logLevel), []string{"debug", "info", "warn", "error"}, vb)
	if err := vb.Build(); err != nil {
		return err
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(logLevel)); err != nil {
		return errors.WrapWithCode(err, errors.CodeInvalidArgument, "invalid log level")
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	return nil
}
