package cli

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/roach88/flightreg/internal/store"
	"github.com/roach88/flightreg/internal/validation"
)

// ValidateOptions holds flags for the validation pass.
type ValidateOptions struct {
	*RootOptions
	Schema   string
	Root     string
	Database string

	// configure adjusts the pass configuration before it runs. Tests use it
	// to pin run IDs and clocks.
	configure func(*validation.Config)
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ValidateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate every registry data file against the schema",
		Long: `Validate every .yaml/.yml file under the registry category directories.

Each file is parsed, its dates are normalized to ISO-8601 strings, and the
result is checked against the aircraft schema (JSON Schema, or CUE when the
schema file ends in .cue). One line is printed per file, then a summary.

Examples:
  flightreg validate
  flightreg validate --root ./registry
  flightreg validate --schema schemas/aircraft.cue --db ./history.db
  flightreg validate --format json`,
		Args:          noArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(opts, cmd)
		},
	}

	opts.addFlags(cmd)
	return cmd
}

func (o *ValidateOptions) addFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.Schema, "schema", "", "schema file (default <root>/"+validation.DefaultSchemaPath+")")
	cmd.Flags().StringVar(&o.Root, "root", ".", "registry root holding the category directories")
	cmd.Flags().StringVar(&o.Database, "db", "", "record the run in this SQLite database")
}

// config resolves the flags into a pass configuration.
func (o *ValidateOptions) config(logger *slog.Logger) validation.Config {
	cfg := validation.DefaultConfig()
	cfg.Root = o.Root
	cfg.SchemaPath = o.Schema
	if cfg.SchemaPath == "" {
		cfg.SchemaPath = filepath.Join(o.Root, validation.DefaultSchemaPath)
	}
	cfg.Logger = logger
	if o.configure != nil {
		o.configure(&cfg)
	}
	return cfg
}

func runValidate(opts *ValidateOptions, cmd *cobra.Command) error {
	logger := newLogger(cmd.ErrOrStderr(), opts.Verbose)
	cfg := opts.config(logger)
	rep := newReporter(opts.Format, cmd.OutOrStdout())

	summary, err := validation.Run(cfg, rep)
	if werr := rep.Err(); werr != nil {
		return WrapExitError(ExitCommandError, "failed to write report", werr)
	}
	if err != nil {
		return reported(WrapExitError(ExitFailure, "schema load failed", err))
	}

	code := ExitSuccess
	if !summary.OK() {
		code = ExitFailure
	}

	if opts.Database != "" {
		if err := recordRun(cmd.Context(), opts.Database, summary, code); err != nil {
			return WrapExitError(ExitCommandError, "failed to record run history", err)
		}
		logger.Debug("run recorded", "db", opts.Database, "run_id", summary.RunID)
	}

	if code != ExitSuccess {
		return reported(NewExitError(code, "some files failed validation"))
	}
	return nil
}

func recordRun(ctx context.Context, path string, summary *validation.Summary, exitCode int) error {
	st, err := store.Open(path)
	if err != nil {
		return err
	}
	defer st.Close()

	return st.SaveRun(ctx, summary, exitCode)
}
