// Package version carries the build version and checks GitHub for newer releases.
package version

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/studiowebux/resto/internal/types"
)

// Version is overridden at build time:
//
//	go build -ldflags "-X github.com/studiowebux/resto/internal/version.Version=1.2.3"
var Version = "0.1.0"

// ReleasesURL is the GitHub endpoint for the latest published release.
const ReleasesURL = "https://api.github.com/repos/studiowebux/resto/releases/latest"

// Sender is the part of executor.Client the checker needs.
type Sender interface {
	Execute(ctx context.Context, req *types.HttpRequest) (*types.RequestResult, error)
}

// Release describes the latest published release.
type Release struct {
	Version string
	URL     string
	Newer   bool
}

type githubRelease struct {
	TagName string `json:"tag_name"`
	HTMLURL string `json:"html_url"`
}

// Check fetches endpoint (ReleasesURL when empty) and compares the tag
// against current.
func Check(ctx context.Context, client Sender, endpoint, current string) (Release, error) {
	if endpoint == "" {
		endpoint = ReleasesURL
	}

	req := types.NewRequest()
	req.URL = endpoint
	req.Headers["Accept"] = "application/vnd.github+json"
	req.Headers["User-Agent"] = "resto/" + current

	res, err := client.Execute(ctx, req)
	if err != nil {
		return Release{}, fmt.Errorf("failed to create request: %w", err)
	}
	if res.Failed() {
		return Release{}, fmt.Errorf("failed to fetch latest release: %s", res.Error)
	}
	if res.Status != 200 {
		return Release{}, fmt.Errorf("unexpected status code: %d", res.Status)
	}

	var gh githubRelease
	if err := json.Unmarshal([]byte(res.Body), &gh); err != nil {
		return Release{}, fmt.Errorf("failed to decode response: %w", err)
	}

	latest := strings.TrimPrefix(gh.TagName, "v")
	return Release{
		Version: latest,
		URL:     gh.HTMLURL,
		Newer:   latest != "" && isNewerVersion(latest, strings.TrimPrefix(current, "v")),
	}, nil
}

// isNewerVersion compares dotted numeric versions; pre-release and build
// suffixes are ignored, so "0.0.28-alpha" equals "0.0.28".
func isNewerVersion(latest, current string) bool {
	l, c := parseVersion(latest), parseVersion(current)
	for i := 0; i < max(len(l), len(c)); i++ {
		lp, cp := part(l, i), part(c, i)
		if lp != cp {
			return lp > cp
		}
	}
	return false
}

func part(parts []int, i int) int {
	if i < len(parts) {
		return parts[i]
	}
	return 0
}

func parseVersion(version string) []int {
	if idx := strings.IndexAny(version, "-+"); idx != -1 {
		version = version[:idx]
	}

	fields := strings.Split(version, ".")
	result := make([]int, 0, len(fields))
	for _, f := range fields {
		num, err := strconv.Atoi(f)
		if err != nil {
			continue
		}
		result = append(result, num)
	}
	return result
}
