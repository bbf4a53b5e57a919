package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/reoring/fmeaskema"
)

var (
	version string
	commit  string
	date    string
)

// ErrValidationFailed is returned when a document does not validate. The
// report has already been printed.
var ErrValidationFailed = errors.New("validation failed")

// SetVersion sets the version information displayed by --version.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// NewRootCommand builds the command tree. Logs go to stderr.
func NewRootCommand(stderr io.Writer) *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:           "fmeaskema",
		Short:         "fmeaskema validates FMEA and requirements-analysis documents",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			l := newLogger(stderr, level)
			fmeaskema.SetLogger(l)
			cmd.SetContext(withLogger(cmd.Context(), l))
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("fmeaskema %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newValidateCmd())
	root.AddCommand(newModelsCmd())
	root.AddCommand(newSchemaCmd())

	return root
}

// Execute runs the CLI with the process streams.
func Execute(ctx context.Context) error {
	return NewRootCommand(os.Stderr).ExecuteContext(ctx)
}
