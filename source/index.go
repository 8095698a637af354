/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package source

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"path"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/mikeb26/pgnstandings/internal"
)

// DiscoverRounds returns the names of the .pgn files linked from the HTML
// page at indexURL, in document order and without duplicates.
func DiscoverRounds(ctx context.Context, client *http.Client,
	indexURL string) ([]string, error) {

	doc, err := fetchDoc(ctx, client, indexURL)
	if err != nil {
		return nil, err
	}

	var rounds []string
	seen := make(map[string]struct{})
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		u, err := url.Parse(strings.TrimSpace(href))
		if err != nil {
			return
		}
		name := path.Base(u.Path)
		if !strings.HasSuffix(strings.ToLower(name), ".pgn") {
			return
		}
		if _, ok := seen[name]; ok {
			return
		}
		seen[name] = struct{}{}
		rounds = append(rounds, name)
	})

	return rounds, nil
}

// fetchDoc gets the HTML document at the given URL using the configured
// User-Agent.
func fetchDoc(ctx context.Context, client *http.Client,
	url string) (*goquery.Document, error) {

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", internal.UserAgent)

	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("source.index: status %d fetching %s",
			resp.StatusCode, url)
	}

	return goquery.NewDocumentFromReader(resp.Body)
}
