package ui

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/ktr0731/go-fuzzyfinder"

	"adopr/internal/ado"
)

func init() {
	// Force lipgloss to initialize and detect terminal before fuzzy finder starts
	// This prevents ANSI escape sequences from leaking into the finder input
	_ = lipgloss.NewStyle().Render("")
	_ = lipgloss.HasDarkBackground()
}

// SelectProject presents a fuzzy finder to select a project.
// Returns nil if the user cancelled the selection.
func SelectProject(projects []ado.Project) (*ado.Project, error) {
	os.Stdout.Sync()
	os.Stderr.Sync()

	idx, err := fuzzyfinder.Find(
		projects,
		func(i int) string {
			return projects[i].Name
		},
		fuzzyfinder.WithPreviewWindow(func(i, w, h int) string {
			if i == -1 {
				return ""
			}
			return formatProjectPreview(projects[i])
		}),
	)
	if err != nil {
		// User cancelled (Ctrl+C or ESC)
		return nil, nil
	}
	return &projects[idx], nil
}

// SelectRepo presents a fuzzy finder to select a repository.
// Returns nil if the user cancelled the selection.
func SelectRepo(repos []ado.Repo) (*ado.Repo, error) {
	os.Stdout.Sync()
	os.Stderr.Sync()

	idx, err := fuzzyfinder.Find(
		repos,
		func(i int) string {
			return repos[i].Name
		},
		fuzzyfinder.WithPreviewWindow(func(i, w, h int) string {
			if i == -1 {
				return ""
			}
			return formatRepoPreview(repos[i])
		}),
	)
	if err != nil {
		return nil, nil
	}
	return &repos[idx], nil
}

func formatProjectPreview(p ado.Project) string {
	var sb strings.Builder
	sb.WriteString(Bold(p.Name) + "\n\n")
	if p.Description != "" {
		sb.WriteString(p.Description + "\n\n")
	}
	sb.WriteString(Dim("id: "+p.ID) + "\n")
	if p.Visibility != "" {
		sb.WriteString(Dim("visibility: "+p.Visibility) + "\n")
	}
	return sb.String()
}

func formatRepoPreview(r ado.Repo) string {
	var sb strings.Builder
	sb.WriteString(Bold(r.Name) + "\n\n")
	if r.DefaultBranch != "" {
		sb.WriteString(Dim("default branch: "+r.DefaultBranch) + "\n")
	}
	if r.Size > 0 {
		sb.WriteString(Dim(fmt.Sprintf("size: %d", r.Size)) + "\n")
	}
	sb.WriteString(Dim("id: "+r.ID) + "\n")
	return sb.String()
}
