package ado

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
)

// APIVersion is the Azure DevOps REST API version pinned on every request.
const APIVersion = "7.1"

// DefaultHost is the canonical hosted-service root.
const DefaultHost = "https://dev.azure.com"

// MaxDiffItems caps the diff enumeration. Items beyond the cap are a known,
// accepted truncation, not an error.
const MaxDiffItems = 2000

// RemoteError is a non-2xx transport response, surfaced verbatim with its
// status code and never retried automatically.
type RemoteError struct {
	StatusCode int
	Status     string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Status)
}

// Client talks to the Azure DevOps REST API on behalf of one PAT.
type Client struct {
	// Host is the service root, overridable in tests.
	Host string

	http   *http.Client
	auth   string
	logger *zap.Logger
}

// NewClient creates a client authenticating with the given personal access
// token. A nil logger is replaced with a no-op logger.
func NewClient(pat string, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		Host:   DefaultHost,
		http:   &http.Client{Timeout: 60 * time.Second},
		auth:   "Basic " + base64.StdEncoding.EncodeToString([]byte(":"+pat)),
		logger: logger,
	}
}

func (c *Client) get(ctx context.Context, rawURL, accept string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", c.auth)
	req.Header.Set("Accept", accept)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &RemoteError{StatusCode: resp.StatusCode, Status: http.StatusText(resp.StatusCode)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return body, nil
}

func (c *Client) getJSON(ctx context.Context, rawURL string, out any) error {
	body, err := c.get(ctx, rawURL, "application/json")
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

// GetPullRequest fetches PR metadata.
func (c *Client) GetPullRequest(ctx context.Context, id PrIdentity) (*PrDetails, error) {
	u := fmt.Sprintf("%s/pullRequests/%s?api-version=%s", id.RepoBaseURL(c.Host), id.PullRequestID, APIVersion)

	var details PrDetails
	if err := c.getJSON(ctx, u, &details); err != nil {
		return nil, err
	}
	c.logger.Debug("fetched pull request",
		zap.String("pr", id.PullRequestID),
		zap.String("status", details.Status),
		zap.String("merge_status", details.MergeStatus),
	)
	return &details, nil
}

// ListChanges enumerates the changed items between the target (base) and
// source branches, capped at MaxDiffItems. Returns the raw change list;
// eligibility filtering is the caller's concern.
func (c *Client) ListChanges(ctx context.Context, id PrIdentity, sourceBranch, targetBranch string) ([]Change, error) {
	u := fmt.Sprintf("%s/diffs/commits?baseVersion=%s&targetVersion=%s&$top=%d&api-version=%s",
		id.RepoBaseURL(c.Host), url.QueryEscape(targetBranch), url.QueryEscape(sourceBranch), MaxDiffItems, APIVersion)

	var diffs commitDiffs
	if err := c.getJSON(ctx, u, &diffs); err != nil {
		return nil, err
	}
	c.logger.Debug("listed changes", zap.String("pr", id.PullRequestID), zap.Int("count", len(diffs.Changes)))
	return diffs.Changes, nil
}

// GetBlob fetches the raw text of a content-addressed blob.
func (c *Client) GetBlob(ctx context.Context, id PrIdentity, objectID string) (string, error) {
	u := fmt.Sprintf("%s/blobs/%s?api-version=%s", id.RepoBaseURL(c.Host), objectID, APIVersion)

	body, err := c.get(ctx, u, "text/plain")
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// ListProjects lists the projects of an organization. An absent value array
// means "no results", never an error.
func (c *Client) ListProjects(ctx context.Context, org string) ([]Project, error) {
	u := fmt.Sprintf("%s/%s/_apis/projects?api-version=%s", c.Host, org, APIVersion)

	var envelope listEnvelope[Project]
	if err := c.getJSON(ctx, u, &envelope); err != nil {
		return nil, err
	}
	if envelope.Value == nil {
		return []Project{}, nil
	}
	return envelope.Value, nil
}

// ListRepositories lists the git repositories of a project.
func (c *Client) ListRepositories(ctx context.Context, org, project string) ([]Repo, error) {
	u := fmt.Sprintf("%s/%s/%s/_apis/git/repositories?api-version=%s", c.Host, org, project, APIVersion)

	var envelope listEnvelope[Repo]
	if err := c.getJSON(ctx, u, &envelope); err != nil {
		return nil, err
	}
	if envelope.Value == nil {
		return []Repo{}, nil
	}
	return envelope.Value, nil
}
