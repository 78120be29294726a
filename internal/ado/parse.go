package ado

import (
	"errors"
	"regexp"
)

// ErrInvalidPrUrl is returned when a string is not a recognizable Azure
// DevOps pull request URL.
var ErrInvalidPrUrl = errors.New("invalid Azure DevOps PR URL format")

// The two accepted PR URL shapes: the canonical dev.azure.com form and the
// legacy per-organization visualstudio.com subdomain form. Segments must be
// non-empty and the PR id must be all digits.
var (
	devAzurePattern     = regexp.MustCompile(`(?i)^https://dev\.azure\.com/([^/]+)/([^/]+)/_git/([^/]+)/pullrequest/(\d+)`)
	visualStudioPattern = regexp.MustCompile(`(?i)^https://([^/.]+)\.visualstudio\.com/([^/]+)/_git/([^/]+)/pullrequest/(\d+)`)
)

// ParsePrUrl parses a pull request URL into its structured identity.
// Pure: no network access, directly unit-testable.
func ParsePrUrl(prURL string) (*PrIdentity, error) {
	for _, pattern := range []*regexp.Regexp{devAzurePattern, visualStudioPattern} {
		m := pattern.FindStringSubmatch(prURL)
		if m == nil {
			continue
		}
		return &PrIdentity{
			Organization:  m[1],
			Project:       m[2],
			Repository:    m[3],
			PullRequestID: m[4],
		}, nil
	}
	return nil, ErrInvalidPrUrl
}
