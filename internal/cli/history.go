package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/flightreg/internal/store"
	"github.com/roach88/flightreg/internal/validation"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	Database string
	Limit    int
	RunID    string
}

// RunDetail is one recorded run together with its outcomes.
type RunDetail struct {
	Run      store.Run            `json:"run"`
	Outcomes []validation.Outcome `json:"outcomes"`
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded validation runs",
		Long: `Show validation runs recorded with "flightreg validate --db".

Without --run, lists the most recent runs, newest first. With --run, shows
every file outcome of that run in discovery order.

Examples:
  flightreg history --db ./history.db
  flightreg history --db ./history.db --limit 5
  flightreg history --db ./history.db --run 2b7c9e1a-... --format json`,
		Args:          noArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")
	cmd.Flags().IntVar(&opts.Limit, "limit", 20, "maximum number of runs to list (0 for all)")
	cmd.Flags().StringVar(&opts.RunID, "run", "", "show the outcomes of this run")

	return cmd
}

func runHistory(opts *HistoryOptions, cmd *cobra.Command) error {
	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}

	if _, err := os.Stat(opts.Database); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return historyError(formatter, ErrCodeNotFound,
				WrapExitError(ExitCommandError, "database not found", err))
		}
		return historyError(formatter, ErrCodeGeneric,
			WrapExitError(ExitCommandError, "failed to access database", err))
	}

	st, err := store.Open(opts.Database)
	if err != nil {
		return historyError(formatter, ErrCodeGeneric,
			WrapExitError(ExitCommandError, "failed to open database", err))
	}
	defer st.Close()

	ctx := cmd.Context()
	if opts.RunID != "" {
		return showRun(ctx, st, opts, formatter)
	}
	return listRuns(ctx, st, opts, formatter)
}

func listRuns(ctx context.Context, st *store.Store, opts *HistoryOptions, formatter *OutputFormatter) error {
	runs, err := st.ListRuns(ctx, opts.Limit)
	if err != nil {
		return historyError(formatter, ErrCodeGeneric,
			WrapExitError(ExitCommandError, "failed to list runs", err))
	}

	if opts.Format == "json" {
		return formatter.Success(runs)
	}

	w := formatter.Writer
	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded.")
		return nil
	}
	fmt.Fprintf(w, "Recent runs (%d):\n", len(runs))
	for _, r := range runs {
		fmt.Fprintf(w, "  %s  %s  %d/%d passed  exit %d\n",
			r.ID, r.StartedAt.Format(time.RFC3339), r.Passed, r.Total, r.ExitCode)
	}
	return nil
}

func showRun(ctx context.Context, st *store.Store, opts *HistoryOptions, formatter *OutputFormatter) error {
	run, err := st.ReadRun(ctx, opts.RunID)
	if err != nil {
		return runLookupError(formatter, err)
	}
	outcomes, err := st.ReadOutcomes(ctx, opts.RunID)
	if err != nil {
		return runLookupError(formatter, err)
	}

	if opts.Format == "json" {
		return formatter.Success(RunDetail{Run: run, Outcomes: outcomes})
	}

	writeRunText(formatter.Writer, run, outcomes, opts.Verbose)
	return nil
}

func writeRunText(w io.Writer, run store.Run, outcomes []validation.Outcome, verbose bool) {
	fmt.Fprintf(w, "Run %s\n", run.ID)
	fmt.Fprintf(w, "  Started: %s\n", run.StartedAt.Format(time.RFC3339))
	fmt.Fprintf(w, "  Schema:  %s\n", run.SchemaPath)
	fmt.Fprintf(w, "  Result:  %d/%d passed (%d invalid, %d errored), exit %d\n",
		run.Passed, run.Total, run.Invalid, run.Errored, run.ExitCode)
	fmt.Fprintln(w)

	if len(outcomes) == 0 {
		fmt.Fprintln(w, "  (no data files)")
		return
	}
	for i, o := range outcomes {
		fmt.Fprintf(w, "  [%d] %-7s %s\n", i+1, o.Status, o.Path)
		if o.Message != "" {
			fmt.Fprintf(w, "       %s\n", o.Message)
		}
		if verbose && o.Digest != "" {
			fmt.Fprintf(w, "       digest: %s\n", o.Digest)
		}
	}
}

func runLookupError(formatter *OutputFormatter, err error) error {
	if errors.Is(err, store.ErrRunNotFound) {
		return historyError(formatter, ErrCodeRunNotFound,
			WrapExitError(ExitCommandError, "unknown run", err))
	}
	return historyError(formatter, ErrCodeGeneric,
		WrapExitError(ExitCommandError, "failed to read run", err))
}

// historyError reports e through the formatter when JSON output is requested,
// so that stdout stays machine-readable. Text mode leaves reporting to main.
func historyError(formatter *OutputFormatter, code string, e *ExitError) error {
	if formatter.Format != "json" {
		return e
	}
	if err := formatter.Error(code, e.Error(), nil); err != nil {
		return e
	}
	return reported(e)
}
