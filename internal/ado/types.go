package ado

import "fmt"

// PrIdentity identifies a pull request on Azure DevOps. Produced only by
// ParsePrUrl; immutable once parsed.
type PrIdentity struct {
	Organization  string
	Project       string
	Repository    string
	PullRequestID string
}

// RepoBaseURL returns the repository-scoped API root all PR, diff and blob
// endpoints hang off of.
func (id PrIdentity) RepoBaseURL(host string) string {
	return fmt.Sprintf("%s/%s/%s/_apis/git/repositories/%s", host, id.Organization, id.Project, id.Repository)
}

// PR status values as reported by the pullRequests endpoint.
const (
	StatusActive    = "active"
	StatusCompleted = "completed"
	StatusAbandoned = "abandoned"
)

// Merge status values.
const (
	MergeSucceeded = "succeeded"
	MergeConflicts = "conflicts"
	MergeQueued    = "queued"
)

// PrDetails is the slice of PR metadata the pipeline cares about.
// Fetched once per invocation.
type PrDetails struct {
	Status        string `json:"status"`
	MergeStatus   string `json:"mergeStatus"`
	SourceRefName string `json:"sourceRefName"`
	TargetRefName string `json:"targetRefName"`
}

// Change types as reported by the diffs endpoint.
const (
	ChangeAdd    = "add"
	ChangeEdit   = "edit"
	ChangeDelete = "delete"
	ChangeRename = "rename"
	ChangeMove   = "move"
)

// ObjectBlob is the git object type for file content.
const ObjectBlob = "blob"

// Item is the changed object inside a Change. ObjectID addresses the new
// content, OriginalObjectID the old; either may be empty (pure add/delete).
type Item struct {
	ObjectID         string `json:"objectId"`
	OriginalObjectID string `json:"originalObjectId"`
	GitObjectType    string `json:"gitObjectType"`
	CommitID         string `json:"commitId"`
	Path             string `json:"path"`
	IsFolder         bool   `json:"isFolder"`
	URL              string `json:"url"`
}

// Change is one entry of a PR's diff enumeration.
type Change struct {
	Item       Item   `json:"item"`
	ChangeType string `json:"changeType"`
}

type commitDiffs struct {
	Changes []Change `json:"changes"`
}

// Project is an Azure DevOps project summary.
type Project struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	URL         string `json:"url"`
	Visibility  string `json:"visibility"`
}

// Repo is an Azure DevOps git repository summary.
type Repo struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	URL           string `json:"url"`
	DefaultBranch string `json:"defaultBranch"`
	Size          int64  `json:"size"`
	Project       struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"project"`
}

type listEnvelope[T any] struct {
	Value []T `json:"value"`
}
