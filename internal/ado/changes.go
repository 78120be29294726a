package ado

import (
	"errors"
	"strings"
)

// Business-rule gate failures. Terminal, user-facing, never retried.
var (
	ErrPrNotActive      = errors.New("pull request is not active")
	ErrMergeConflict    = errors.New("pull request has merge conflicts")
	ErrBranchResolution = errors.New("could not determine source or target branch")
)

// Branches holds the resolved branch names of a PR, with the refs/heads/
// prefix stripped.
type Branches struct {
	Source string
	Target string
}

// ValidatePullRequest enforces the two eligibility gates in order: the PR
// must be active, and its last merge attempt must have succeeded.
func ValidatePullRequest(details *PrDetails) error {
	if details.Status != StatusActive {
		return ErrPrNotActive
	}
	if details.MergeStatus != MergeSucceeded {
		return ErrMergeConflict
	}
	return nil
}

// ResolveBranches derives the source and target branch names from the PR
// refs. An empty name after stripping the prefix is malformed metadata.
func ResolveBranches(details *PrDetails) (Branches, error) {
	b := Branches{
		Source: strings.TrimPrefix(details.SourceRefName, "refs/heads/"),
		Target: strings.TrimPrefix(details.TargetRefName, "refs/heads/"),
	}
	if b.Source == "" || b.Target == "" {
		return Branches{}, ErrBranchResolution
	}
	return b, nil
}

// Eligible reports whether a changed item qualifies for patch synthesis:
// only add/edit of blob content has a meaningful old/new pair to diff.
// Deletes, renames, folders and non-blob objects are filtered out.
func Eligible(c Change) bool {
	if c.ChangeType != ChangeAdd && c.ChangeType != ChangeEdit {
		return false
	}
	if c.Item.GitObjectType != ObjectBlob {
		return false
	}
	if c.Item.IsFolder {
		return false
	}
	return c.Item.Path != ""
}

// FilterEligible returns the eligible changes of a change list, in order.
func FilterEligible(changes []Change) []Change {
	var eligible []Change
	for _, c := range changes {
		if Eligible(c) {
			eligible = append(eligible, c)
		}
	}
	return eligible
}

// Items extracts the changed items of a change list, in order.
func Items(changes []Change) []Item {
	items := make([]Item, len(changes))
	for i, c := range changes {
		items[i] = c.Item
	}
	return items
}
