package ui

import (
	"github.com/charmbracelet/lipgloss/tree"

	"adopr/internal/ado"
)

// ProjectNode is one project with its repositories, for tree rendering.
type ProjectNode struct {
	Project ado.Project
	Repos   []ado.Repo
}

// RenderOrgTree renders an organization with its projects and repositories.
// Example output:
//
//	acme
//	├── proj1
//	│   ├── repoA
//	│   └── repoB
//	└── proj2
//	    └── repoC
func RenderOrgTree(org string, nodes []ProjectNode) string {
	if len(nodes) == 0 {
		return TreeRootStyle.Render(org) + "\n" + Dim("  No projects found")
	}

	t := tree.Root(TreeRootStyle.Render(org))

	for _, node := range nodes {
		projectNode := tree.Root(Bold(node.Project.Name))
		if len(node.Repos) == 0 {
			projectNode.Child(Dim("no repositories"))
		}
		for _, repo := range node.Repos {
			projectNode.Child(repo.Name)
		}
		t.Child(projectNode)
	}

	t.EnumeratorStyle(TreeEnumeratorStyle)

	return t.String()
}
