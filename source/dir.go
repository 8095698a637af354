/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package source

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/mikeb26/pgnstandings/tournament"
)

// Dir reads round files from a local directory.
type Dir struct {
	Path string
}

func (d Dir) FetchRound(ctx context.Context, filename string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	data, err := os.ReadFile(filepath.Join(d.Path, filepath.Base(filename)))
	if errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("source.dir: %v: %w", filename,
			tournament.ErrRoundUnavailable)
	} else if err != nil {
		return "", fmt.Errorf("source.dir: %w", err)
	}

	return string(data), nil
}
