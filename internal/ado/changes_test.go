package ado

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePullRequest(t *testing.T) {
	testCases := []struct {
		desc        string
		details     PrDetails
		expectError error
	}{
		{
			desc:    "active and merge succeeded",
			details: PrDetails{Status: StatusActive, MergeStatus: MergeSucceeded},
		},
		{
			desc:        "completed PR is rejected",
			details:     PrDetails{Status: StatusCompleted, MergeStatus: MergeSucceeded},
			expectError: ErrPrNotActive,
		},
		{
			desc:        "abandoned PR is rejected",
			details:     PrDetails{Status: StatusAbandoned, MergeStatus: MergeSucceeded},
			expectError: ErrPrNotActive,
		},
		{
			desc:        "merge conflicts are rejected",
			details:     PrDetails{Status: StatusActive, MergeStatus: MergeConflicts},
			expectError: ErrMergeConflict,
		},
		{
			desc:        "status gate runs before merge gate",
			details:     PrDetails{Status: StatusCompleted, MergeStatus: MergeConflicts},
			expectError: ErrPrNotActive,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			err := ValidatePullRequest(&tc.details)
			if tc.expectError != nil {
				assert.ErrorIs(t, err, tc.expectError)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestResolveBranches(t *testing.T) {
	testCases := []struct {
		desc        string
		details     PrDetails
		expected    Branches
		expectError bool
	}{
		{
			desc:     "refs/heads prefixes stripped",
			details:  PrDetails{SourceRefName: "refs/heads/feature", TargetRefName: "refs/heads/main"},
			expected: Branches{Source: "feature", Target: "main"},
		},
		{
			desc:     "nested branch names survive",
			details:  PrDetails{SourceRefName: "refs/heads/user/alice/fix", TargetRefName: "refs/heads/main"},
			expected: Branches{Source: "user/alice/fix", Target: "main"},
		},
		{
			desc:        "empty source ref fails",
			details:     PrDetails{SourceRefName: "refs/heads/", TargetRefName: "refs/heads/main"},
			expectError: true,
		},
		{
			desc:        "missing target ref fails",
			details:     PrDetails{SourceRefName: "refs/heads/feature"},
			expectError: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			branches, err := ResolveBranches(&tc.details)
			if tc.expectError {
				assert.ErrorIs(t, err, ErrBranchResolution)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, branches)
		})
	}
}

func TestEligible(t *testing.T) {
	blobItem := Item{Path: "/src/a.ts", GitObjectType: ObjectBlob}

	testCases := []struct {
		desc     string
		change   Change
		eligible bool
	}{
		{
			desc:     "added blob is eligible",
			change:   Change{ChangeType: ChangeAdd, Item: blobItem},
			eligible: true,
		},
		{
			desc:     "edited blob is eligible",
			change:   Change{ChangeType: ChangeEdit, Item: blobItem},
			eligible: true,
		},
		{
			desc:   "delete is excluded",
			change: Change{ChangeType: ChangeDelete, Item: blobItem},
		},
		{
			desc:   "rename is excluded",
			change: Change{ChangeType: ChangeRename, Item: blobItem},
		},
		{
			desc:   "move is excluded",
			change: Change{ChangeType: ChangeMove, Item: blobItem},
		},
		{
			desc:   "tree object is excluded",
			change: Change{ChangeType: ChangeEdit, Item: Item{Path: "/src", GitObjectType: "tree"}},
		},
		{
			desc:   "folder flag is excluded regardless of other fields",
			change: Change{ChangeType: ChangeAdd, Item: Item{Path: "/src", GitObjectType: ObjectBlob, IsFolder: true}},
		},
		{
			desc:   "empty path is excluded",
			change: Change{ChangeType: ChangeEdit, Item: Item{GitObjectType: ObjectBlob}},
		},
		{
			desc: "extension does not matter",
			change: Change{ChangeType: ChangeEdit, Item: Item{
				Path: "/bin/artifact.unknownext", GitObjectType: ObjectBlob,
			}},
			eligible: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			assert.Equal(t, tc.eligible, Eligible(tc.change))
		})
	}
}

func TestFilterEligible(t *testing.T) {
	changes := []Change{
		{ChangeType: ChangeEdit, Item: Item{Path: "/a.go", GitObjectType: ObjectBlob}},
		{ChangeType: ChangeDelete, Item: Item{Path: "/b.go", GitObjectType: ObjectBlob}},
		{ChangeType: ChangeAdd, Item: Item{Path: "/c.go", GitObjectType: ObjectBlob}},
		{ChangeType: ChangeAdd, Item: Item{Path: "/dir", GitObjectType: ObjectBlob, IsFolder: true}},
	}

	eligible := FilterEligible(changes)

	require.Len(t, eligible, 2)
	assert.Equal(t, "/a.go", eligible[0].Item.Path, "order preserved")
	assert.Equal(t, "/c.go", eligible[1].Item.Path)

	assert.Empty(t, FilterEligible(nil))
}
