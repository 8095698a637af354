/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */

// Package tournament assembles a tournament's rounds from its configured
// round files and derives the overall standings.
package tournament

import (
	"context"
	"errors"
	"log"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mikeb26/pgnstandings/pgn"
	"github.com/mikeb26/pgnstandings/standings"
)

// ErrRoundUnavailable is returned by a Source when a round file does not
// exist (yet).
var ErrRoundUnavailable = errors.New("round unavailable")

// Source supplies the raw PGN text of a round file. Calls are independent
// and may be made concurrently.
type Source interface {
	FetchRound(ctx context.Context, filename string) (string, error)
}

// SourceFunc adapts a function to the Source interface.
type SourceFunc func(ctx context.Context, filename string) (string, error)

func (f SourceFunc) FetchRound(ctx context.Context,
	filename string) (string, error) {

	return f(ctx, filename)
}

// Tournament is the result of one load: rounds in configured order and the
// standings across all of them.
type Tournament struct {
	Config    Config
	Rounds    []Round
	Standings []standings.PlayerStanding
	// LoadedAt is folded into every game ID of this load.
	LoadedAt time.Time

	// per-round tallies, indexed like Rounds
	tallies [][]standings.PlayerStanding
}

// Load fetches and parses every configured round. It never fails: a round
// that cannot be fetched is kept, with no games, at its configured position,
// and a game that cannot be parsed is kept with defaulted fields. Both are
// logged.
func Load(ctx context.Context, cfg *Config, src Source) *Tournament {
	loadedAt := time.Now()
	t := &Tournament{
		Config:   *cfg,
		Rounds:   make([]Round, len(cfg.Rounds)),
		LoadedAt: loadedAt,
		tallies:  make([][]standings.PlayerStanding, len(cfg.Rounds)),
	}

	limit := cfg.Concurrency
	if limit <= 0 {
		limit = defaultConcurrency
	}
	var g errgroup.Group
	g.SetLimit(limit)
	for idx, filename := range cfg.Rounds {
		g.Go(func() error {
			r := loadRound(ctx, src, filename, idx+1, loadedAt)
			t.Rounds[idx] = r
			t.tallies[idx] = standings.Tally(r.Games)
			return nil
		})
	}
	_ = g.Wait() // rounds never report errors

	t.Standings = standings.Merge(t.tallies...)

	return t
}

func loadRound(ctx context.Context, src Source, filename string, position int,
	loadedAt time.Time) Round {

	r := Round{
		Number:   RoundNumber(filename, position),
		Filename: filename,
	}

	text, err := src.FetchRound(ctx, filename)
	if err != nil {
		if errors.Is(err, ErrRoundUnavailable) {
			log.Printf("tournament.load: warning: round %v (%v) is not available",
				r.Number, filename)
		} else {
			log.Printf("tournament.load: warning: unable to fetch round %v (%v): %v",
				r.Number, filename, err)
		}
		return r
	}
	r.Available = true

	blocks := pgn.Split(text)
	r.Games = make([]pgn.Game, 0, len(blocks))
	for _, block := range blocks {
		res := pgn.Parse(block, r.Number, loadedAt)
		if res.Err != nil {
			log.Printf("tournament.load: warning: %v: unable to replay game: %v",
				filename, res.Err)
		}
		r.Games = append(r.Games, res.Game)
	}

	return r
}

// Games returns every game of every round in configured round order.
func (t *Tournament) Games() []pgn.Game {
	var games []pgn.Game
	for _, r := range t.Rounds {
		games = append(games, r.Games...)
	}

	return games
}

// Round returns the first round with the given number.
func (t *Tournament) Round(number int) (Round, bool) {
	for _, r := range t.Rounds {
		if r.Number == number {
			return r, true
		}
	}

	return Round{}, false
}

// StandingsThrough returns the standings after the first n configured
// rounds. n is clamped to the number of rounds.
func (t *Tournament) StandingsThrough(n int) []standings.PlayerStanding {
	if n < 0 {
		n = 0
	}
	if n > len(t.tallies) {
		n = len(t.tallies)
	}

	return standings.Merge(t.tallies[:n]...)
}
