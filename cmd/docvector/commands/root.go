// ABOUTME: Root CLI command with global flags and subcommand registration
// ABOUTME: Defines verbose/quiet/format/store flags shared by all commands
package commands

import (
	"github.com/spf13/cobra"
)

var (
	verbose      bool
	quiet        bool
	outputFormat string
	storeFlag    string
)

const banner = `
██████╗  ██████╗  ██████╗██╗   ██╗███████╗ ██████╗████████╗ ██████╗ ██████╗
██╔══██╗██╔═══██╗██╔════╝██║   ██║██╔════╝██╔════╝╚══██╔══╝██╔═══██╗██╔══██╗
██║  ██║██║   ██║██║     ██║   ██║█████╗  ██║        ██║   ██║   ██║██████╔╝
██║  ██║██║   ██║██║     ╚██╗ ██╔╝██╔══╝  ██║        ██║   ██║   ██║██╔══██╗
██████╔╝╚██████╔╝╚██████╗ ╚████╔╝ ███████╗╚██████╗   ██║   ╚██████╔╝██║  ██║
╚═════╝  ╚═════╝  ╚═════╝  ╚═══╝  ╚══════╝ ╚═════╝   ╚═╝    ╚═════╝ ╚═╝  ╚═╝
`

// NewRootCmd creates the root command with all subcommands attached
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "docvector",
		Short: "Ingest documents and answer questions over them",
		Long: banner + `
docvector converts documents (PDF, markdown, plain text) into embedded
chunks, stores them in a local vector index, and answers questions by
retrieving the most relevant passages.

Get started:
  docvector process manual.pdf
  docvector ask "how do I configure the server?"
  docvector watch`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	cmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress non-essential output")
	cmd.PersistentFlags().StringVar(&outputFormat, "format", "auto", "Output format (auto, json, table)")
	cmd.PersistentFlags().StringVar(&storeFlag, "store", "", "Storage directory for the vector index (default: XDG data dir)")
	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	cmd.AddCommand(
		NewProcessCmd(),
		NewAskCmd(),
		NewWatchCmd(),
		NewExportCmd(),
		NewMCPCmd(),
		NewVersionCmd(),
	)

	return cmd
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}
