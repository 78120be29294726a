package status

import (
	"errors"

	"github.com/spf13/cobra"

	"adopr/internal/common"
	"adopr/internal/config"
	"adopr/internal/ui"
	"adopr/internal/vault"
)

// Command shows the current selections and credential state
type Command struct {
	// Collaborators (can be swapped in tests)
	Store config.Store
}

// Register registers the command with cobra
func (c *Command) Register(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the current organization, project, repository and credential state",
		Args:  cobra.NoArgs,
		PreRunE: func(cobraCmd *cobra.Command, args []string) error {
			if c.Store != nil {
				return nil
			}
			var err error
			c.Store, err = common.InitStore()
			return err
		},
		RunE: func(cobraCmd *cobra.Command, args []string) error {
			return c.Run()
		},
	}

	parent.AddCommand(cmd)
}

// Run executes the command
func (c *Command) Run() error {
	_, err := vault.New(c.Store).Token()
	switch {
	case errors.Is(err, vault.ErrNoToken):
		ui.Warning("PAT: not set")
	case errors.Is(err, vault.ErrDecryptFailed):
		ui.Error("PAT: stored but not decryptable on this machine")
	case err != nil:
		return err
	default:
		ui.Success("PAT: configured")
	}

	c.printSelection("Organization", config.KeyOrg)
	c.printSelection("Project", config.KeyProject)
	c.printSelection("Repository", config.KeyRepo)
	return nil
}

func (c *Command) printSelection(label, key string) {
	if value, ok := c.Store.Get(key); ok && value != "" {
		ui.Print(ui.Bold(label+": ") + value)
		return
	}
	ui.Print(ui.Bold(label+": ") + ui.Dim("not selected"))
}
