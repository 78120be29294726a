package selectcmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"adopr/internal/browse"
	"adopr/internal/common"
	"adopr/internal/config"
	"adopr/internal/ui"
)

// Command selects the working project or repository interactively
type Command struct {
	// Collaborators (can be swapped in tests)
	Store config.Store
}

// Register registers the select command and its subcommands
func (c *Command) Register(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "select",
		Short: "Select the working project or repository",
		Long: `Pick the project or repository interactively with a fuzzy finder and
persist the selection for later commands.

Example:
  adopr select project
  adopr select repo`,
		PersistentPreRunE: func(cobraCmd *cobra.Command, args []string) error {
			if c.Store != nil {
				return nil
			}
			var err error
			c.Store, err = common.InitStore()
			return err
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "project",
		Short: "Select the working project",
		RunE: func(cobraCmd *cobra.Command, args []string) error {
			return c.RunProject(cobraCmd.Context())
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "repo",
		Short: "Select the working repository",
		RunE: func(cobraCmd *cobra.Command, args []string) error {
			return c.RunRepo(cobraCmd.Context())
		},
	})

	parent.AddCommand(cmd)
}

func (c *Command) browser(ctx context.Context) (*browse.Browser, error) {
	org, err := common.ResolveOrg(c.Store)
	if err != nil {
		return nil, err
	}
	remote, err := common.NewRemote(c.Store, nil)
	if err != nil {
		return nil, err
	}
	return browse.New(remote, org, nil), nil
}

// RunProject selects and persists the working project
func (c *Command) RunProject(ctx context.Context) error {
	browser, err := c.browser(ctx)
	if err != nil {
		return err
	}

	projects, err := browser.Projects(ctx)
	if err != nil {
		return fmt.Errorf("failed to load projects: %w", err)
	}
	if len(projects) == 0 {
		ui.Info("No projects found in this organization.")
		return nil
	}

	selected, err := ui.SelectProject(projects)
	if err != nil {
		return err
	}
	if selected == nil {
		// User cancelled
		return nil
	}

	if err := c.Store.Set(config.KeyProject, selected.Name); err != nil {
		return fmt.Errorf("failed to save project selection: %w", err)
	}
	ui.Successf("Selected project: %s", selected.Name)
	return nil
}

// RunRepo selects and persists the working repository within the selected project
func (c *Command) RunRepo(ctx context.Context) error {
	project, ok := c.Store.Get(config.KeyProject)
	if !ok || project == "" {
		return fmt.Errorf("no project selected: run 'adopr select project' first")
	}

	browser, err := c.browser(ctx)
	if err != nil {
		return err
	}

	repos, err := browser.Repositories(ctx, project)
	if err != nil {
		return fmt.Errorf("failed to load repositories: %w", err)
	}
	if len(repos) == 0 {
		ui.Infof("No repositories found in project %s.", project)
		return nil
	}

	selected, err := ui.SelectRepo(repos)
	if err != nil {
		return err
	}
	if selected == nil {
		return nil
	}

	if err := c.Store.Set(config.KeyRepo, selected.Name); err != nil {
		return fmt.Errorf("failed to save repository selection: %w", err)
	}
	ui.Successf("Selected repository: %s", selected.Name)
	return nil
}
