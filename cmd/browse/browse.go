package browse

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"adopr/internal/browse"
	"adopr/internal/common"
	"adopr/internal/config"
	"adopr/internal/ui"
)

// Command renders the organization's project and repository tree
type Command struct {
	// Flags
	Refresh bool

	// Collaborators (can be swapped in tests)
	Store config.Store
}

// Register registers the command with cobra
func (c *Command) Register(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse the organization's projects and repositories",
		Long: `Render the configured organization as a tree of projects and their
git repositories. Prompts for the organization name on first use.

Example:
  adopr browse
  adopr browse --refresh`,
		Args: cobra.NoArgs,
		PreRunE: func(cobraCmd *cobra.Command, args []string) error {
			if c.Store != nil {
				return nil
			}
			var err error
			c.Store, err = common.InitStore()
			return err
		},
		RunE: func(cobraCmd *cobra.Command, args []string) error {
			return c.Run(cobraCmd.Context())
		},
	}

	cmd.Flags().BoolVar(&c.Refresh, "refresh", false, "drop cached repository lists before browsing")

	parent.AddCommand(cmd)
}

// Run executes the command
func (c *Command) Run(ctx context.Context) error {
	org, err := common.ResolveOrg(c.Store)
	if err != nil {
		return err
	}
	remote, err := common.NewRemote(c.Store, nil)
	if err != nil {
		return err
	}

	browser := browse.New(remote, org, nil)
	if c.Refresh {
		browser.Refresh()
	}

	projects, err := browser.Projects(ctx)
	if err != nil {
		return fmt.Errorf("failed to load projects: %w", err)
	}

	nodes := make([]ui.ProjectNode, 0, len(projects))
	for _, project := range projects {
		repos, err := browser.Repositories(ctx, project.Name)
		if err != nil {
			ui.Warningf("Failed to load repositories for %s: %v", project.Name, err)
			repos = nil
		}
		nodes = append(nodes, ui.ProjectNode{Project: project, Repos: repos})
	}

	ui.Print(ui.RenderOrgTree(org, nodes))
	return nil
}
