package cli

import (
	"io"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
)

// EnvLogLevel overrides the level chosen by --verbose and --quiet.
const EnvLogLevel = "VIBRANT_LOG_LEVEL"

// newLogger builds the command logger. Verbose selects Debug, quiet selects
// Error and Warn is the default. A valid EnvLogLevel value wins over both.
func newLogger(w io.Writer, verbose, quiet bool) hclog.Logger {
	level := hclog.Warn
	switch {
	case verbose:
		level = hclog.Debug
	case quiet:
		level = hclog.Error
	}
	if env := hclog.LevelFromString(os.Getenv(EnvLogLevel)); env != hclog.NoLevel {
		level = env
	}

	return hclog.New(&hclog.LoggerOptions{
		Name:   "vibrant",
		Output: w,
		Level:  level,
	})
}

// commandLogger reads the persistent flags of cmd and logs to its error stream.
func commandLogger(cmd *cobra.Command) hclog.Logger {
	verbose, _ := cmd.Flags().GetBool("verbose")
	quiet, _ := cmd.Flags().GetBool("quiet")
	return newLogger(cmd.ErrOrStderr(), verbose, quiet)
}
