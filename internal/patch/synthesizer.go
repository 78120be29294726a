// Package patch reconstructs unified diffs for changed items by pairing old
// and new blob content fetched from the remote.
package patch

import (
	"context"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"adopr/internal/ado"
)

// DefaultConcurrency bounds the fan-out across changed items. Unconstrained
// fan-out risks remote rate-limiting on PRs with hundreds of files.
const DefaultConcurrency = 8

// BlobFetcher retrieves content-addressed blob text.
type BlobFetcher interface {
	GetBlob(ctx context.Context, id ado.PrIdentity, objectID string) (string, error)
}

// FilePatch is the synthesized result for one eligible item. OldContent is
// nil for new files; Diff is always produced, empty-to-content included.
type FilePatch struct {
	FileName   string
	OldContent *string
	Diff       string
}

// Synthesizer fetches blob pairs and produces unified diffs.
type Synthesizer struct {
	blobs       BlobFetcher
	identity    ado.PrIdentity
	logger      *zap.Logger
	concurrency int
}

// NewSynthesizer creates a synthesizer for one PR. A nil logger is replaced
// with a no-op logger.
func NewSynthesizer(blobs BlobFetcher, identity ado.PrIdentity, logger *zap.Logger) *Synthesizer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Synthesizer{
		blobs:       blobs,
		identity:    identity,
		logger:      logger,
		concurrency: DefaultConcurrency,
	}
}

// SetConcurrency overrides the fan-out bound. Values below 1 are ignored.
func (s *Synthesizer) SetConcurrency(n int) {
	if n >= 1 {
		s.concurrency = n
	}
}

// fetchBlob resolves an object id to content. A missing id is empty content
// (pure add/delete); a failed fetch degrades to empty content with a warning
// rather than aborting the pipeline.
func (s *Synthesizer) fetchBlob(ctx context.Context, objectID string) *string {
	if objectID == "" {
		return nil
	}
	content, err := s.blobs.GetBlob(ctx, s.identity, objectID)
	if err != nil {
		s.logger.Warn("failed to download blob content",
			zap.String("object_id", objectID),
			zap.Error(err),
		)
		return nil
	}
	return &content
}

// Synthesize produces the FilePatch for one eligible item. Old and new blob
// content are fetched concurrently; the pair is joined before diffing.
func (s *Synthesizer) Synthesize(ctx context.Context, item ado.Item) FilePatch {
	fileName := strings.TrimPrefix(item.Path, "/")

	var oldContent, newContent *string
	done := make(chan struct{})
	go func() {
		oldContent = s.fetchBlob(ctx, item.OriginalObjectID)
		close(done)
	}()
	newContent = s.fetchBlob(ctx, item.ObjectID)
	<-done

	return FilePatch{
		FileName:   fileName,
		OldContent: oldContent,
		Diff:       unifiedDiff(fileName, orEmpty(oldContent), orEmpty(newContent)),
	}
}

// SynthesizeAll processes the items with bounded concurrent fan-out and
// returns the patches in item order. Per-item failures never surface here;
// they have already degraded to empty content inside Synthesize.
func (s *Synthesizer) SynthesizeAll(ctx context.Context, items []ado.Item) []FilePatch {
	patches := make([]FilePatch, len(items))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, item := range items {
		i, item := i, item
		g.Go(func() error {
			patches[i] = s.Synthesize(ctx, item)
			return nil
		})
	}
	_ = g.Wait()

	return patches
}

func orEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func diffLines(s string) []string {
	if s == "" {
		return nil
	}
	return difflib.SplitLines(s)
}

// unifiedDiff renders standard unified-diff text for one file.
func unifiedDiff(fileName, oldContent, newContent string) string {
	text, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        diffLines(oldContent),
		B:        diffLines(newContent),
		FromFile: "a/" + fileName,
		ToFile:   "b/" + fileName,
		Context:  3,
	})
	if err != nil {
		// GetUnifiedDiffString only fails on writer errors, which a
		// strings.Builder never produces.
		return ""
	}
	return text
}
