package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/apptopo/apptopo/internal/topology"
)

// NewDescribeCommand creates the describe command.
func NewDescribeCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "describe <manifest.cue>",
		Short: "Render the assembled application topology",
		Long: `Load a deployment manifest, assemble the application configuration,
and print its topology: nodes, kinds, entry node, gRPC port, and the
configuration fingerprint. The topology is rendered whether or not it
validates; run validate for the admission verdict.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDescribe(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runDescribe(opts *RootOptions, manifestPath string, cmd *cobra.Command) error {
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

	summary, err := topology.Summarize(cfg)
	if err != nil {
		formatter.Error("E001", err.Error(), nil)
		return WrapExitError(ExitCommandError, "summarizing configuration", err)
	}

	if formatter.Format == "json" {
		return formatter.Success(summary)
	}

	if m.Name != "" {
		fmt.Fprintf(formatter.Writer, "Application: %s\n", m.Name)
	}
	fmt.Fprintf(formatter.Writer, "Entry node:  %s\n", summary.InitialNode)
	if summary.GRPCPort != 0 {
		fmt.Fprintf(formatter.Writer, "gRPC port:   %d\n", summary.GRPCPort)
	}
	fmt.Fprintf(formatter.Writer, "Fingerprint: %s\n", summary.Fingerprint)
	fmt.Fprintln(formatter.Writer, "Nodes:")

	w := tabwriter.NewWriter(formatter.Writer, 2, 0, 2, ' ', 0)
	for _, n := range summary.Nodes {
		detail := ""
		switch n.Kind {
		case topology.KindWasm:
			detail = fmt.Sprintf("%d bytes", n.ModuleSize)
		case topology.KindStorageProxy:
			detail = n.Address
		}
		fmt.Fprintf(w, "  %s\t%s\t%s\n", n.Name, n.Kind, detail)
	}
	return w.Flush()
}
