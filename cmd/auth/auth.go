package auth

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"adopr/internal/config"
	"adopr/internal/ui"
	"adopr/internal/vault"
)

// Command is the parent command for credential operations
type Command struct {
	// Collaborators (shared by subcommands, can be swapped in tests)
	Store config.Store
	Vault *vault.Vault
}

// Register registers the auth command and all subcommands
func (c *Command) Register(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage the Azure DevOps personal access token",
		Long: `Commands for the stored personal access token.

The token is encrypted with a key derived from this machine's identity and
kept in the settings file; it cannot be decrypted on another machine.`,
		PersistentPreRunE: func(cobraCmd *cobra.Command, args []string) error {
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
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set",
		Short: "Enter and store a personal access token",
		RunE: func(cobraCmd *cobra.Command, args []string) error {
			return c.runSet()
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Remove the stored token",
		RunE: func(cobraCmd *cobra.Command, args []string) error {
			return c.runClear()
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show whether a usable token is configured",
		RunE: func(cobraCmd *cobra.Command, args []string) error {
			return c.runShow()
		},
	})

	parent.AddCommand(cmd)
}

func (c *Command) runSet() error {
	pat, err := ui.PromptSecret("Enter your Azure DevOps Personal Access Token (PAT): ")
	if err != nil {
		return err
	}
	if pat == "" {
		return fmt.Errorf("no PAT provided")
	}

	if err := c.Vault.SetToken(pat); err != nil {
		return fmt.Errorf("failed to save PAT: %w", err)
	}
	ui.Success("PAT saved securely with machine-specific encryption.")
	return nil
}

func (c *Command) runClear() error {
	if err := c.Vault.ClearToken(); err != nil {
		return fmt.Errorf("failed to clear PAT: %w", err)
	}
	ui.Success("Stored PAT removed.")
	return nil
}

func (c *Command) runShow() error {
	_, err := c.Vault.Token()
	switch {
	case errors.Is(err, vault.ErrNoToken):
		ui.Warning("No PAT configured. Run 'adopr auth set'.")
	case errors.Is(err, vault.ErrDecryptFailed):
		ui.Error("A PAT is stored but cannot be decrypted on this machine. Run 'adopr auth set' to re-enter it.")
	case err != nil:
		return err
	default:
		ui.Success("A PAT is configured and decryptable on this machine.")
	}
	return nil
}
