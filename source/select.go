/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package source

import (
	"context"

	"github.com/mikeb26/pgnstandings/tournament"
)

// ForConfig returns the source the config points at. A bucket takes
// precedence over a repository.
func ForConfig(ctx context.Context, cfg *tournament.Config,
	cacheBucket string) (tournament.Source, error) {

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.DataBucket != "" {
		return NewS3(ctx, cfg.DataBucket, cfg.DataPrefix)
	}

	return NewGitHub(ctx, cfg, cacheBucket), nil
}
