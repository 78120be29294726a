package download

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"adopr/internal/ado"
	"adopr/internal/config"
	dl "adopr/internal/download"
	"adopr/internal/ui"
	"adopr/internal/vault"
)

// Command downloads the review bundle for a pull request
type Command struct {
	// Arguments
	URL string

	// Flags
	Out         string
	Yes         bool
	Concurrency int
	Verbose     bool

	// Collaborators (can be swapped in tests)
	Store config.Store
	Vault *vault.Vault
}

// Register registers the command with cobra
func (c *Command) Register(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "download [pr-url]",
		Short: "Download the changed files and patch of a pull request",
		Long: `Download the files changed by an Azure DevOps pull request.

Fetches the PR metadata, enumerates the changed files, downloads old and new
blob content, and writes a review bundle to the destination folder: each
original file under its repository path, a combined patch.diff, and an
instructions.md for review tooling. Re-running overwrites the previous bundle.

Example:
  adopr download https://dev.azure.com/acme/proj1/_git/repoA/pullrequest/42
  adopr download --out ./review --yes <pr-url>`,
		Args: cobra.MaximumNArgs(1),
		PreRunE: func(cobraCmd *cobra.Command, args []string) error {
			if c.Store == nil {
				store, err := config.NewFileStore()
				if err != nil {
					return err
				}
				c.Store = store
			}
			if c.Vault == nil {
				c.Vault = vault.New(c.Store)
			}
			return nil
		},
		RunE: func(cobraCmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				c.URL = args[0]
			} else {
				c.URL = ui.Prompt("Enter the Azure DevOps Pull Request URL: ")
			}
			if c.URL == "" {
				return fmt.Errorf("no PR URL provided")
			}
			return c.Run(cobraCmd.Context())
		},
	}

	cmd.Flags().StringVarP(&c.Out, "out", "o", "PR_FOLDER", "destination folder for the review bundle")
	cmd.Flags().BoolVarP(&c.Yes, "yes", "y", false, "skip the changed-file confirmation")
	cmd.Flags().IntVar(&c.Concurrency, "concurrency", 0, "bound on concurrent file downloads (0 = default)")
	cmd.Flags().BoolVarP(&c.Verbose, "verbose", "v", false, "enable structured pipeline logging")

	parent.AddCommand(cmd)
}

// Run executes the command
func (c *Command) Run(ctx context.Context) error {
	logger := zap.NewNop()
	if c.Verbose {
		var err error
		logger, err = zap.NewDevelopment()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		defer logger.Sync()
	}

	orch := &dl.Orchestrator{
		Tokens: c.Vault,
		Connect: func(pat string) dl.Remote {
			return ado.NewClient(pat, logger)
		},
		Writer:      &dl.OSWriter{Root: c.Out},
		Logger:      logger,
		Confirm:     c.confirmChanges,
		Concurrency: c.Concurrency,
	}

	result, err := orch.Run(ctx, c.URL)
	if err != nil {
		return describe(err)
	}

	if result.NothingToDo {
		ui.Info("No supported changed files to download.")
		return nil
	}

	ui.Successf("Downloaded %d files to %s", len(result.Patches), c.Out)
	ui.Infof("Review bundle: %s, %s", dl.PatchFileName, dl.InstructionsFileName)
	return nil
}

func (c *Command) confirmChanges(changes []ado.Change) bool {
	ui.Print(ui.RenderChangeTable(changes))
	if c.Yes {
		return true
	}
	return ui.ConfirmYes(fmt.Sprintf("Download %d files to %s? [y/N] ", len(changes), c.Out))
}

// describe maps pipeline failures to actionable user-facing messages.
// Decryption failure and "no token" need different guidance.
func describe(err error) error {
	switch {
	case errors.Is(err, ado.ErrInvalidPrUrl):
		return fmt.Errorf("invalid Azure DevOps PR URL format")
	case errors.Is(err, vault.ErrNoToken):
		return fmt.Errorf("personal access token not set: run 'adopr auth set' first")
	case errors.Is(err, vault.ErrDecryptFailed):
		return fmt.Errorf("failed to decrypt the stored token (machine changed or data corrupted): run 'adopr auth set' to re-enter it")
	case errors.Is(err, ado.ErrPrNotActive):
		return fmt.Errorf("the PR is not active")
	case errors.Is(err, ado.ErrMergeConflict):
		return fmt.Errorf("the PR has merge conflicts")
	default:
		return err
	}
}
