// Command jsontree is a small CLI wrapping the jsontree library: it
// can validate a JSON document against a schema document and it can
// rewrite a document into RFC 8785 canonical form. Structured as a
// cobra root command with per-subcommand RunE, following
// MacroPower-x's cmd/magicschema layout (a Config type holding flag
// state, registered onto the FlagSet, consumed by an RunE closure),
// and MacroPower-x's log package for a slog.Handler built from a
// --log-level string.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/mcvoid/jsontree/internal/cliutil"
)

var logger *slog.Logger

// rootFlags holds the root command's own flag values, registered onto
// a *pflag.FlagSet directly rather than through cobra's wrapper
// methods, following MacroPower-x's Config.RegisterFlags convention.
type rootFlags struct {
	logLevel string
}

func (f *rootFlags) RegisterFlags(flags *pflag.FlagSet) {
	flags.StringVar(&f.logLevel, "log-level", "info",
		"log level, one of: debug, info, warn, error")
}

func main() {
	flags := &rootFlags{}

	rootCmd := &cobra.Command{
		Use:           "jsontree",
		Short:         "Inspect, validate, and canonicalize JSON documents",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			lvl, err := cliutil.GetLevel(flags.logLevel)
			if err != nil {
				return fmt.Errorf("invalid log level %q: %w", flags.logLevel, err)
			}
			logger = slog.New(cliutil.CreateHandler(os.Stderr, lvl))
			return nil
		},
	}
	flags.RegisterFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(newValidateCmd())
	rootCmd.AddCommand(newCanonCmd())

	if err := rootCmd.Execute(); err != nil {
		if logger == nil {
			logger = slog.New(cliutil.CreateHandler(os.Stderr, slog.LevelInfo))
		}
		logger.Error("command failed", "err", err)
		os.Exit(1)
	}
}

func readInput(path string) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}
