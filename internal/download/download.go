// Package download orchestrates the retrieval pipeline: parse the PR
// reference, validate the PR, enumerate changes, synthesize patches and
// emit the review bundle.
package download

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"adopr/internal/ado"
	"adopr/internal/patch"
)

// Artifact names inside the download destination.
const (
	PatchFileName        = "patch.diff"
	InstructionsFileName = "instructions.md"
)

// Remote is the slice of the Azure DevOps API the pipeline consumes.
type Remote interface {
	GetPullRequest(ctx context.Context, id ado.PrIdentity) (*ado.PrDetails, error)
	ListChanges(ctx context.Context, id ado.PrIdentity, sourceBranch, targetBranch string) ([]ado.Change, error)
	GetBlob(ctx context.Context, id ado.PrIdentity, objectID string) (string, error)
}

// TokenSource yields the decrypted credential.
type TokenSource interface {
	Token() (string, error)
}

// Result is the outcome of one download run.
type Result struct {
	Identity ado.PrIdentity
	Branches ado.Branches

	// Changes are the eligible changes, in enumeration order.
	Changes []ado.Change

	// Patches has one entry per eligible change, same order.
	Patches []patch.FilePatch

	// NothingToDo is set when no eligible items remained after filtering.
	// Not an error; no files were written.
	NothingToDo bool
}

// Orchestrator sequences one user-triggered download action. All fields are
// injectable; tests swap in fakes.
type Orchestrator struct {
	Tokens  TokenSource
	Connect func(pat string) Remote
	Writer  FileWriter
	Logger  *zap.Logger

	// Confirm, when set, is shown the eligible changes before any blob is
	// fetched and may abort the run.
	Confirm func(changes []ado.Change) bool

	// Concurrency bounds the per-item fan-out. Zero means the synthesizer
	// default.
	Concurrency int
}

// Run executes the pipeline for one PR URL. A run goes to completion or
// terminal failure; parse and validation errors abort immediately, per-item
// blob failures degrade to empty content inside the synthesizer.
func (o *Orchestrator) Run(ctx context.Context, prURL string) (*Result, error) {
	logger := o.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.With(zap.String("run_id", uuid.NewString()))

	identity, err := ado.ParsePrUrl(prURL)
	if err != nil {
		return nil, err
	}
	logger.Info("parsed pull request reference",
		zap.String("organization", identity.Organization),
		zap.String("project", identity.Project),
		zap.String("repository", identity.Repository),
		zap.String("pr", identity.PullRequestID),
	)

	pat, err := o.Tokens.Token()
	if err != nil {
		return nil, err
	}
	remote := o.Connect(pat)

	details, err := remote.GetPullRequest(ctx, *identity)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch PR details: %w", err)
	}
	if err := ado.ValidatePullRequest(details); err != nil {
		return nil, err
	}
	branches, err := ado.ResolveBranches(details)
	if err != nil {
		return nil, err
	}

	changes, err := remote.ListChanges(ctx, *identity, branches.Source, branches.Target)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch PR changes: %w", err)
	}

	result := &Result{Identity: *identity, Branches: branches}
	result.Changes = ado.FilterEligible(changes)
	if len(result.Changes) == 0 {
		logger.Info("no eligible changed files", zap.Int("raw_changes", len(changes)))
		result.NothingToDo = true
		return result, nil
	}

	if o.Confirm != nil && !o.Confirm(result.Changes) {
		result.NothingToDo = true
		return result, nil
	}

	synthesizer := patch.NewSynthesizer(remote, *identity, logger)
	if o.Concurrency > 0 {
		synthesizer.SetConcurrency(o.Concurrency)
	}
	result.Patches = synthesizer.SynthesizeAll(ctx, ado.Items(result.Changes))

	if err := o.writeArtifacts(result.Patches); err != nil {
		return nil, err
	}
	logger.Info("download complete", zap.Int("files", len(result.Patches)))

	return result, nil
}

// writeArtifacts emits the review bundle: each old-content blob under its
// original relative path, the combined patch, and the instructions document.
func (o *Orchestrator) writeArtifacts(patches []patch.FilePatch) error {
	for _, p := range patches {
		content := ""
		if p.OldContent != nil {
			content = *p.OldContent
		}
		if err := o.Writer.Write(p.FileName, []byte(content)); err != nil {
			return err
		}
	}

	diffs := make([]string, len(patches))
	for i, p := range patches {
		diffs[i] = p.Diff
	}
	if err := o.Writer.Write(PatchFileName, []byte(strings.Join(diffs, "\n"))); err != nil {
		return err
	}

	fileNames := make([]string, len(patches))
	for i, p := range patches {
		fileNames[i] = p.FileName
	}
	return o.Writer.Write(InstructionsFileName, []byte(Instructions(fileNames)))
}

// Instructions renders the review-instructions document listing the combined
// patch and the original file paths for downstream review tooling.
func Instructions(fileNames []string) string {
	var sb strings.Builder
	sb.WriteString("Please review the following code changes as if you were commenting on a pull request.\n")
	sb.WriteString("Here is the unified diff file (patch):\n")
	sb.WriteString("- " + PatchFileName + "\n\n")
	sb.WriteString("Here are the original code files (if needed for context):\n")
	for _, name := range fileNames {
		sb.WriteString("- " + name + "\n")
	}
	sb.WriteString("\nPlease generate inline review comments, suggestions, and highlight any issues, improvements, or best practices.\n")
	return sb.String()
}
