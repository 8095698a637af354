/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	_ "embed"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/mikeb26/pgnstandings/internal"
	"github.com/mikeb26/pgnstandings/source"
	"github.com/mikeb26/pgnstandings/standings"
	"github.com/mikeb26/pgnstandings/tournament"
)

//go:embed help.txt
var helpText string

// cmdHandler defines the signature for command handler functions.
type cmdHandler func(ctx context.Context, args []string)

// commands maps command names to their respective handler functions.
var commands = map[string]cmdHandler{
	"help":      handleHelp,
	"info":      handleInfo,
	"rounds":    handleRounds,
	"round":     handleRound,
	"game":      handleGame,
	"standings": handleStandings,
	"discover":  handleDiscover,
}

func main() {
	ctx := context.Background()

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}
	cmd := os.Args[1]
	if handler, ok := commands[cmd]; ok {
		handler(ctx, os.Args[2:])
	} else {
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Printf("%v", helpText)
}

func handleHelp(ctx context.Context, args []string) {
	usage()
}

// sourceFlags are shared by every command that loads a tournament.
type sourceFlags struct {
	config      *string
	source      *string
	dir         *string
	indexURL    *string
	cacheBucket *string
}

func addSourceFlags(fs *flag.FlagSet) *sourceFlags {
	return &sourceFlags{
		config: fs.String("config", "tournament-config.json",
			"Tournament config file"),
		source: fs.String("source", "",
			"Where round files come from: github, s3, or dir"),
		dir: fs.String("dir", "", "Directory holding round files"),
		indexURL: fs.String("indexurl", "",
			"HTML page linking round files, used when the config lists none"),
		cacheBucket: fs.String("cachebucket", internal.WebCacheBucket,
			"S3 bucket for the HTTP cache (empty keeps it in memory)"),
	}
}

func (sf *sourceFlags) loadConfig() *tournament.Config {
	cfg, err := tournament.LoadConfig(*sf.config)
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	return cfg
}

func (sf *sourceFlags) newSource(ctx context.Context,
	cfg *tournament.Config) tournament.Source {

	var src tournament.Source
	var err error
	switch *sf.source {
	case "":
		src, err = source.ForConfig(ctx, cfg, *sf.cacheBucket)
	case "github":
		if err = cfg.Validate(); err == nil && cfg.TournamentRepo == "" {
			err = fmt.Errorf("%w: tournamentRepo is not set",
				tournament.ErrNoDataSource)
		}
		src = source.NewGitHub(ctx, cfg, *sf.cacheBucket)
	case "s3":
		if cfg.DataBucket == "" {
			err = fmt.Errorf("%w: dataBucket is not set",
				tournament.ErrNoDataSource)
			break
		}
		src, err = source.NewS3(ctx, cfg.DataBucket, cfg.DataPrefix)
	case "dir":
		if *sf.dir == "" {
			err = fmt.Errorf("%w: -dir is required with -source dir",
				tournament.ErrNoDataSource)
		}
		src = source.Dir{Path: *sf.dir}
	default:
		err = fmt.Errorf("unknown source %q", *sf.source)
	}
	if err != nil {
		log.Fatalf("Error configuring round source: %v", err)
	}

	return src
}

func (sf *sourceFlags) load(ctx context.Context) *tournament.Tournament {
	cfg := sf.loadConfig()
	src := sf.newSource(ctx, cfg)

	if len(cfg.Rounds) == 0 && *sf.indexURL != "" {
		rounds, err := source.DiscoverRounds(ctx, httpClient(ctx, sf),
			*sf.indexURL)
		if err != nil {
			log.Fatalf("Error discovering rounds at %v: %v", *sf.indexURL, err)
		}
		cfg.Rounds = rounds
	}

	return tournament.Load(ctx, cfg, src)
}

func httpClient(ctx context.Context, sf *sourceFlags) *http.Client {
	return internal.NewCachedHttpClient(ctx, *sf.cacheBucket,
		source.DefaultGitHubMaxAge)
}

func handleInfo(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("info", flag.ExitOnError)
	sf := addSourceFlags(fs)
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	cfg := sf.loadConfig()
	fmt.Print(tournament.BuildInfoOutput(cfg))
	if _, _, err := cfg.Dates(); err != nil {
		log.Printf("pgnstandings.info: warning: %v", err)
	}
}

func handleRounds(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("rounds", flag.ExitOnError)
	sf := addSourceFlags(fs)
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	tourney := sf.load(ctx)
	fmt.Print(tournament.BuildRoundsOutput(tourney))
}

func handleRound(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("round", flag.ExitOnError)
	sf := addSourceFlags(fs)
	roundNum := fs.Int("round", 0, "Round number to show")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if *roundNum <= 0 {
		fmt.Fprintln(os.Stderr, "Please provide a valid --round number.")
		fs.Usage()
		os.Exit(1)
	}

	tourney := sf.load(ctx)
	r, ok := tourney.Round(*roundNum)
	if !ok {
		log.Fatalf("Round %v is not part of %v", *roundNum, tourney.Config.Name)
	}
	fmt.Print(tournament.BuildRoundOutput(r))
}

func handleGame(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("game", flag.ExitOnError)
	sf := addSourceFlags(fs)
	roundNum := fs.Int("round", 0, "Round number of the game")
	board := fs.Int("board", 0, "Board number (1-based) within the round")
	ply := fs.Int("ply", -1,
		"Show the board after this many half-moves (0 for the start)")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if *roundNum <= 0 || *board <= 0 {
		fmt.Fprintln(os.Stderr, "Please provide a valid --round and --board.")
		fs.Usage()
		os.Exit(1)
	}

	tourney := sf.load(ctx)
	r, ok := tourney.Round(*roundNum)
	if !ok {
		log.Fatalf("Round %v is not part of %v", *roundNum, tourney.Config.Name)
	}
	if *board > len(r.Games) {
		log.Fatalf("Round %v has %v games; board %v does not exist", r.Number,
			len(r.Games), *board)
	}
	g := r.Games[*board-1]
	if *ply < 0 {
		fmt.Print(tournament.BuildGameOutput(g))
		return
	}
	out, err := tournament.BuildPositionOutput(g, *ply)
	if err != nil {
		log.Fatalf("Error showing round %v board %v: %v", r.Number, *board, err)
	}
	fmt.Print(out)
}

func handleStandings(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("standings", flag.ExitOnError)
	sf := addSourceFlags(fs)
	through := fs.Int("through", 0,
		"Only count the first N configured rounds (0 for all)")
	player := fs.String("player", "",
		"Only show players whose name contains this text (case-insensitive)")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	start := time.Now()
	tourney := sf.load(ctx)
	list := tourney.Standings
	if *through > 0 {
		list = tourney.StandingsThrough(*through)
	}
	fmt.Printf("%v\n\n", tourney.Config.Name)
	if *player != "" {
		fmt.Print(standings.BuildPlayerStandingsOutput(list, *player))
	} else {
		fmt.Print(standings.BuildStandingsOutput(list))
	}
	log.Printf("pgnstandings.standings: loaded %v rounds in %v",
		len(tourney.Rounds), time.Since(start).Round(time.Millisecond))
}

func handleDiscover(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("discover", flag.ExitOnError)
	indexURL := fs.String("indexurl", "", "HTML page linking round files")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if *indexURL == "" {
		fmt.Fprintln(os.Stderr, "Please provide a valid --indexurl URL.")
		fs.Usage()
		os.Exit(1)
	}

	rounds, err := source.DiscoverRounds(ctx,
		internal.NewCachedHttpClient(ctx, "", source.DefaultGitHubMaxAge),
		*indexURL)
	if err != nil {
		log.Fatalf("Error discovering rounds at %v: %v", *indexURL, err)
	}
	if len(rounds) == 0 {
		fmt.Printf("No round files linked from %v\n", *indexURL)
		return
	}
	for idx, r := range rounds {
		fmt.Printf("  - %v (round %v)\n", r, tournament.RoundNumber(r, idx+1))
	}
	fmt.Println("\nAdd these to the \"rounds\" list of the tournament config to load them")
}
