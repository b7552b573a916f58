package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/apptopo/apptopo/internal/manifest"
	"github.com/apptopo/apptopo/internal/registry"
	"github.com/apptopo/apptopo/internal/topology"
)

// ValidationReport holds the validate command's result payload.
type ValidationReport struct {
	Valid       bool                       `json:"valid"`
	App         string                     `json:"app,omitempty"`
	Nodes       int                        `json:"nodes"`
	Fingerprint string                     `json:"fingerprint"`
	Errors      []topology.ValidationError `json:"errors,omitempty"`
	RunID       string                     `json:"run_id,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	var recordDB string

	cmd := &cobra.Command{
		Use:   "validate <manifest.cue>",
		Short: "Validate an application topology before launch",
		Long: `Load a deployment manifest, assemble the application configuration,
and check its structural invariants: node name uniqueness and a resolvable
Wasm entry node.

Exit codes: 0 the configuration may be launched, 1 it must not be,
2 the manifest or module could not be processed at all.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], recordDB, cmd)
		},
	}

	cmd.Flags().StringVar(&recordDB, "record", "", "append the outcome to a validation-run database")

	return cmd
}

func runValidate(opts *RootOptions, manifestPath, recordDB string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	m, cfg, err := loadAndBuild(formatter, manifestPath)
	if err != nil {
		return err
	}

	errs := topology.Validate(cfg)
	fp, err := topology.Fingerprint(cfg)
	if err != nil {
		formatter.Error("E001", err.Error(), nil)
		return WrapExitError(ExitCommandError, "fingerprint failed", err)
	}

	report := &ValidationReport{
		Valid:       len(errs) == 0,
		App:         m.Name,
		Nodes:       len(cfg.NodeConfigs),
		Fingerprint: fp,
		Errors:      errs,
	}

	if recordDB != "" {
		runID, err := recordRun(cmd, recordDB, m.Name, report)
		if err != nil {
			formatter.Error("E001", err.Error(), nil)
			return WrapExitError(ExitCommandError, "recording validation run", err)
		}
		report.RunID = runID
	}

	return outputReport(formatter, report)
}

// loadAndBuild turns a manifest path into an assembled configuration,
// emitting formatted errors on failure. Shared by validate and describe.
func loadAndBuild(formatter *OutputFormatter, manifestPath string) (*manifest.Manifest, *topology.ApplicationConfiguration, error) {
	m, err := manifest.Load(manifestPath)
	if err != nil {
		return nil, nil, commandError(formatter, err)
	}
	formatter.VerboseLog("loaded manifest %s (app %q)", manifestPath, m.Name)

	cfg, err := m.Build()
	if err != nil {
		return nil, nil, commandError(formatter, err)
	}
	return m, cfg, nil
}

// commandError renders a load/build failure and wraps it with exit code 2.
func commandError(formatter *OutputFormatter, err error) error {
	var loadErr *manifest.LoadError
	if errors.As(err, &loadErr) {
		formatter.Error(loadErr.Code, loadErr.Message, nil)
	} else {
		formatter.Error("E001", err.Error(), nil)
	}
	return WrapExitError(ExitCommandError, "manifest processing failed", err)
}

func recordRun(cmd *cobra.Command, dbPath, appName string, report *ValidationReport) (string, error) {
	reg, err := registry.Open(dbPath)
	if err != nil {
		return "", err
	}
	defer reg.Close()

	run := &registry.Run{
		AppName:     appName,
		Fingerprint: report.Fingerprint,
		NodeCount:   report.Nodes,
		Valid:       report.Valid,
		Detail:      errorSummary(report.Errors),
	}
	if err := reg.Record(cmd.Context(), run); err != nil {
		return "", err
	}
	return run.ID, nil
}

// errorSummary joins validation errors into the registry's detail column.
func errorSummary(errs []topology.ValidationError) string {
	if len(errs) == 0 {
		return ""
	}
	parts := make([]string, 0, len(errs))
	for _, e := range errs {
		parts = append(parts, e.Error())
	}
	return strings.Join(parts, "; ")
}

func outputReport(formatter *OutputFormatter, report *ValidationReport) error {
	if formatter.Format == "json" {
		if report.Valid {
			return formatter.Success(report)
		}
		if err := formatter.Error(report.Errors[0].Code, "configuration is not launchable", report); err != nil {
			return err
		}
		return NewExitError(ExitFailure, "configuration is not launchable")
	}

	if report.Valid {
		fmt.Fprintf(formatter.Writer, "✓ configuration valid (%d nodes, fingerprint %s)\n",
			report.Nodes, shortFingerprint(report.Fingerprint))
		if report.RunID != "" {
			fmt.Fprintf(formatter.Writer, "recorded run %s\n", report.RunID)
		}
		return nil
	}

	fmt.Fprintf(formatter.Writer, "✗ configuration invalid (%d nodes)\n", report.Nodes)
	for _, e := range report.Errors {
		fmt.Fprintf(formatter.Writer, "  %s\n", e.Error())
	}
	if report.RunID != "" {
		fmt.Fprintf(formatter.Writer, "recorded run %s\n", report.RunID)
	}
	return NewExitError(ExitFailure, "configuration is not launchable")
}

// shortFingerprint abbreviates a fingerprint for text output.
func shortFingerprint(fp string) string {
	if len(fp) <= 12 {
		return fp
	}
	return fp[:12]
}
