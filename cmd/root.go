package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"adopr/cmd/auth"
	"adopr/cmd/browse"
	"adopr/cmd/download"
	"adopr/cmd/selectcmd"
	"adopr/cmd/status"
	"adopr/internal/ui"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "adopr",
	Short: "Azure DevOps pull request review helper",
	Long: `Adopr downloads the files changed by an Azure DevOps pull request and
builds a local review bundle: the original files, a combined unified diff,
and review instructions for downstream tooling.

The personal access token is stored encrypted under a machine-derived key.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
// Every top-level action failure surfaces here as a user-visible message.
func Execute(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		ui.Error(err.Error())
		os.Exit(1)
	}
}

func init() {
	// Register all commands
	commands := []Command{
		&download.Command{},
		&auth.Command{},
		&browse.Command{},
		&selectcmd.Command{},
		&status.Command{},
	}

	for _, cmd := range commands {
		cmd.Register(rootCmd)
	}
}
