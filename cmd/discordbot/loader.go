/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/mikeb26/pgnstandings/source"
	"github.com/mikeb26/pgnstandings/tournament"
)

const tourneyMaxAge = 2 * time.Minute

var tourneyCfgPath string
var cacheBucket string

// loadTournament is swapped out by tests.
var loadTournament = loadCachedTournament

// newSource is swapped out by tests.
var newSource = source.ForConfig

var tourneyMu sync.Mutex
var cachedTourney *tournament.Tournament
var tourneySrc tournament.Source
var tourneySrcLoc sourceLocation

// sourceLocation is the part of a config that decides where round files are
// fetched from.
type sourceLocation struct {
	repo, branch, dir string
	bucket, prefix    string
}

func locationOf(cfg *tournament.Config) sourceLocation {
	return sourceLocation{
		repo:   cfg.TournamentRepo,
		branch: cfg.DataBranch,
		dir:    cfg.DataDir,
		bucket: cfg.DataBucket,
		prefix: cfg.DataPrefix,
	}
}

// loadCachedTournament reloads the tournament at most once per
// tourneyMaxAge. Concurrent interactions share one load. The source is
// rebuilt whenever the config moves the round files.
func loadCachedTournament(ctx context.Context) (*tournament.Tournament, error) {
	tourneyMu.Lock()
	defer tourneyMu.Unlock()

	if cachedTourney != nil && time.Since(cachedTourney.LoadedAt) < tourneyMaxAge {
		return cachedTourney, nil
	}

	cfg, err := tournament.LoadConfig(tourneyCfgPath)
	if err != nil {
		return nil, err
	}
	if loc := locationOf(cfg); tourneySrc == nil || loc != tourneySrcLoc {
		src, err := newSource(ctx, cfg, cacheBucket)
		if err != nil {
			return nil, err
		}
		if tourneySrc != nil {
			log.Printf("discordbot.load: round files moved; now reading from %+v",
				loc)
		}
		tourneySrc, tourneySrcLoc = src, loc
	}
	cachedTourney = tournament.Load(ctx, cfg, tourneySrc)

	return cachedTourney, nil
}
