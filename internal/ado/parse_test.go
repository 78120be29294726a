package ado

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePrUrl(t *testing.T) {
	testCases := []struct {
		desc     string
		url      string
		expected *PrIdentity
	}{
		{
			desc: "canonical dev.azure.com form",
			url:  "https://dev.azure.com/acme/proj1/_git/repoA/pullrequest/42",
			expected: &PrIdentity{
				Organization:  "acme",
				Project:       "proj1",
				Repository:    "repoA",
				PullRequestID: "42",
			},
		},
		{
			desc: "legacy visualstudio.com subdomain form",
			url:  "https://acme.visualstudio.com/proj1/_git/repoA/pullrequest/7",
			expected: &PrIdentity{
				Organization:  "acme",
				Project:       "proj1",
				Repository:    "repoA",
				PullRequestID: "7",
			},
		},
		{
			desc: "case-insensitive host",
			url:  "HTTPS://DEV.AZURE.COM/acme/proj1/_git/repoA/pullrequest/42",
			expected: &PrIdentity{
				Organization:  "acme",
				Project:       "proj1",
				Repository:    "repoA",
				PullRequestID: "42",
			},
		},
		{
			desc: "trailing query and fragment tolerated",
			url:  "https://dev.azure.com/acme/proj1/_git/repoA/pullrequest/42?_a=files",
			expected: &PrIdentity{
				Organization:  "acme",
				Project:       "proj1",
				Repository:    "repoA",
				PullRequestID: "42",
			},
		},
		{
			desc: "not a URL",
			url:  "not a url",
		},
		{
			desc: "wrong host",
			url:  "https://github.com/acme/repoA/pull/42",
		},
		{
			desc: "missing _git segment",
			url:  "https://dev.azure.com/acme/proj1/repoA/pullrequest/42",
		},
		{
			desc: "non-numeric pull request id",
			url:  "https://dev.azure.com/acme/proj1/_git/repoA/pullrequest/abc",
		},
		{
			desc: "empty project segment",
			url:  "https://dev.azure.com/acme//_git/repoA/pullrequest/42",
		},
		{
			desc: "blob URL is not a PR reference",
			url:  "https://dev.azure.com/acme/proj1/_git/repoA/blobs/abcdef",
		},
		{
			desc: "empty string",
			url:  "",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			identity, err := ParsePrUrl(tc.url)

			if tc.expected == nil {
				require.ErrorIs(t, err, ErrInvalidPrUrl)
				assert.Nil(t, identity)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.expected, identity)
		})
	}
}
