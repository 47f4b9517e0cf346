// Package cli implements the quotectl commands.
package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/jsamuelsen/quote-consumer/internal/platform/config"
)

// BuildInfo identifies the quotectl binary.
type BuildInfo struct {
	Version string
	Commit  string
}

// NewRootCmd builds the quotectl command tree.
func NewRootCmd(info BuildInfo) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "quotectl",
		Short:         "Fetch quotes from the upstream quote API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return config.LoadDotEnv()
		},
	}

	cmd.AddCommand(newFetchCmd())
	cmd.AddCommand(newVersionCmd(info))

	return cmd
}

func newVersionCmd(info BuildInfo) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the quotectl version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "quotectl %s (%s, %s)\n", info.Version, info.Commit, runtime.Version())
			return err
		},
	}
}
