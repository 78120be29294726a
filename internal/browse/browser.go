// Package browse lazily enumerates organization projects and project
// repositories for interactive selection flows.
package browse

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"adopr/internal/ado"
)

// Lister is the remote surface the browser needs.
type Lister interface {
	ListProjects(ctx context.Context, org string) ([]ado.Project, error)
	ListRepositories(ctx context.Context, org, project string) ([]ado.Repo, error)
}

// Observer is notified when the browsable tree changes (explicit refresh).
type Observer interface {
	BrowserChanged()
}

// Browser lists projects and repositories of one organization. Repository
// lists are cached per project name for the lifetime of the instance; the
// cache is invalidated only by Refresh.
type Browser struct {
	lister Lister
	org    string
	logger *zap.Logger

	mu        sync.Mutex
	repoCache map[string][]ado.Repo
	observers []Observer
}

// New creates a browser for an organization. A nil logger is replaced with a
// no-op logger.
func New(lister Lister, org string, logger *zap.Logger) *Browser {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Browser{
		lister:    lister,
		org:       org,
		logger:    logger,
		repoCache: map[string][]ado.Repo{},
	}
}

// Org returns the organization this browser enumerates.
func (b *Browser) Org() string {
	return b.org
}

// Projects lists the organization's projects. Not cached: project lists are
// fetched once per interactive flow anyway.
func (b *Browser) Projects(ctx context.Context) ([]ado.Project, error) {
	return b.lister.ListProjects(ctx, b.org)
}

// Repositories lists a project's repositories, serving repeats from the
// per-project cache.
func (b *Browser) Repositories(ctx context.Context, project string) ([]ado.Repo, error) {
	b.mu.Lock()
	cached, ok := b.repoCache[project]
	b.mu.Unlock()
	if ok {
		return cached, nil
	}

	repos, err := b.lister.ListRepositories(ctx, b.org, project)
	if err != nil {
		return nil, err
	}

	b.mu.Lock()
	b.repoCache[project] = repos
	b.mu.Unlock()

	b.logger.Debug("cached repositories", zap.String("project", project), zap.Int("count", len(repos)))
	return repos, nil
}

// Subscribe registers an observer for tree-change notifications.
func (b *Browser) Subscribe(o Observer) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.observers = append(b.observers, o)
}

// Refresh drops the repository cache and notifies observers.
func (b *Browser) Refresh() {
	b.mu.Lock()
	b.repoCache = map[string][]ado.Repo{}
	observers := make([]Observer, len(b.observers))
	copy(observers, b.observers)
	b.mu.Unlock()

	for _, o := range observers {
		o.BrowserChanged()
	}
}
