package cli

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/apptopo/apptopo/internal/registry"
)

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history <runs.db>",
		Short: "List recorded validation runs",
		Long: `List validation runs previously recorded with validate --record,
newest first.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runHistory(opts *RootOptions, dbPath string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	// Refuse to create an empty database on a typo'd path.
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		formatter.Error("E005", fmt.Sprintf("database not found: %s", dbPath), nil)
		return NewExitError(ExitCommandError, "database not found")
	}

	reg, err := registry.Open(dbPath)
	if err != nil {
		formatter.Error("E001", err.Error(), nil)
		return WrapExitError(ExitCommandError, "opening database", err)
	}
	defer reg.Close()

	runs, err := reg.List(cmd.Context())
	if err != nil {
		formatter.Error("E001", err.Error(), nil)
		return WrapExitError(ExitCommandError, "listing validation runs", err)
	}

	if formatter.Format == "json" {
		return formatter.Success(runs)
	}

	if len(runs) == 0 {
		fmt.Fprintln(formatter.Writer, "no validation runs recorded")
		return nil
	}

	w := tabwriter.NewWriter(formatter.Writer, 2, 0, 2, ' ', 0)
	fmt.Fprintln(w, "WHEN\tAPP\tNODES\tVALID\tFINGERPRINT\tID")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%v\t%s\t%s\n",
			run.CreatedAt.UTC().Format(time.RFC3339),
			run.AppName,
			run.NodeCount,
			run.Valid,
			shortFingerprint(run.Fingerprint),
			run.ID,
		)
	}
	return w.Flush()
}
