package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// cliVersion is this tool's own version, reported by `index --version`.
const cliVersion = "0.3.0"

// Execute runs the root cobra command.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gopagefind",
		Short: "Run the Pagefind static-site search indexer",
	}

	cmd.AddCommand(newIndexCmd())

	return cmd
}
