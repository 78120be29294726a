// Package common wires the shared collaborators commands need: the settings
// store, the credential vault and the authenticated API client.
package common

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"adopr/internal/ado"
	"adopr/internal/config"
	"adopr/internal/ui"
	"adopr/internal/vault"
)

// InitStore opens the default settings store.
func InitStore() (config.Store, error) {
	return config.NewFileStore()
}

// ResolveOrg returns the configured organization, prompting for one and
// persisting it globally on first use.
func ResolveOrg(store config.Store) (string, error) {
	if org, ok := store.Get(config.KeyOrg); ok && org != "" {
		return org, nil
	}

	org := ui.Prompt("Enter your Azure DevOps Organization name (e.g. mycompany): ")
	if org == "" {
		return "", fmt.Errorf("organization not set")
	}
	if err := store.Set(config.KeyOrg, org); err != nil {
		return "", fmt.Errorf("failed to save organization: %w", err)
	}
	return org, nil
}

// NewRemote builds an API client from the stored credential. The two vault
// failure modes keep their distinct guidance.
func NewRemote(store config.Store, logger *zap.Logger) (*ado.Client, error) {
	pat, err := vault.New(store).Token()
	switch {
	case errors.Is(err, vault.ErrNoToken):
		return nil, fmt.Errorf("personal access token not set: run 'adopr auth set' first")
	case errors.Is(err, vault.ErrDecryptFailed):
		return nil, fmt.Errorf("failed to decrypt the stored token: run 'adopr auth set' to re-enter it")
	case err != nil:
		return nil, err
	}
	return ado.NewClient(pat, logger), nil
}
