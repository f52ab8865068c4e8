package terminal

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/lib-tools/library-atlas/pkg/runtime/terminal/commands"
	"github.com/lib-tools/library-atlas/pkg/services/reporting"
)

// CLI represents the command-line interface
type CLI struct {
	generator reporting.Generator
	reporter  *Reporter
	rootCmd   *cobra.Command
}

// Options contain configuration for the CLI
type Options struct {
	Generator reporting.Generator
	Output    io.Writer
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	cli := &CLI{
		generator: opts.Generator,
		reporter:  NewReporter(opts.Output),
	}

	cli.rootCmd = cli.newRootCmd()
	return cli
}

func (cli *CLI) Execute() error {
	return cli.rootCmd.Execute()
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "library",
		Short: "Library reporting tool",
	}

	cmd.AddCommand(commands.NewExportCmd(cli.generator))
	cmd.AddCommand(commands.NewAnalyticsCmd(cli.generator, cli.reporter))

	return cmd
}
