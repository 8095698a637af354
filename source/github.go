/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */

// Package source provides the places round files can be fetched from: a
// GitHub repository branch, an S3 bucket, or a local directory.
package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"time"

	"github.com/mikeb26/pgnstandings/internal"
	"github.com/mikeb26/pgnstandings/tournament"
)

const (
	DefaultGitHubURL = "https://api.github.com"
	// round files change while a tournament is live
	DefaultGitHubMaxAge = 2 * time.Minute
)

// GitHub fetches round files through the GitHub contents API.
type GitHub struct {
	// Repo is "owner/name".
	Repo    string
	Branch  string
	Dir     string
	BaseURL string
	Client  *http.Client
}

// NewGitHub returns a GitHub source for the repo and branch named in cfg,
// using a cached http client. An empty cacheBucket keeps the cache in
// memory.
func NewGitHub(ctx context.Context, cfg *tournament.Config,
	cacheBucket string) *GitHub {

	return &GitHub{
		Repo:    cfg.TournamentRepo,
		Branch:  cfg.DataBranch,
		Dir:     cfg.DataDir,
		BaseURL: DefaultGitHubURL,
		Client: internal.NewCachedHttpClient(ctx, cacheBucket,
			DefaultGitHubMaxAge),
	}
}

func (gh *GitHub) contentsURL(filename string) string {
	base := gh.BaseURL
	if base == "" {
		base = DefaultGitHubURL
	}
	u := fmt.Sprintf("%v/repos/%v/contents/%v", base, gh.Repo,
		path.Join(gh.Dir, url.PathEscape(filename)))
	if gh.Branch != "" {
		u += "?" + url.Values{"ref": {gh.Branch}}.Encode()
	}

	return u
}

func (gh *GitHub) FetchRound(ctx context.Context,
	filename string) (string, error) {

	u := gh.contentsURL(filename)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "application/vnd.github.v3.raw")
	req.Header.Set("User-Agent", internal.UserAgent)

	client := gh.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("source.github: fetching %v: %w", u, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return "", fmt.Errorf("source.github: %v: %w", filename,
			tournament.ErrRoundUnavailable)
	default:
		return "", fmt.Errorf("source.github: status %d fetching %v",
			resp.StatusCode, u)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("source.github: reading %v: %w", u, err)
	}

	return string(body), nil
}
