/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bwmarrin/discordgo"

	"github.com/mikeb26/pgnstandings/tournament"
)

const testRound1 = `[White "Alice"]
[Black "Bob"]
[Result "1-0"]

1. e4 e5 2. Qh5 Nc6 3. Bc4 Nf6 4. Qxf7# 1-0

[White "Carol"]
[Black "Dave"]
[Result "1/2-1/2"]

1. d4 d5 1/2-1/2
`

func useTestTournament(t *testing.T) {
	t.Helper()

	src := tournament.SourceFunc(func(ctx context.Context,
		filename string) (string, error) {

		if filename == "round1.pgn" {
			return testRound1, nil
		}
		return "", tournament.ErrRoundUnavailable
	})
	cfg := &tournament.Config{
		Name:   "Spring Open",
		Type:   "Swiss",
		Rounds: []string{"round1.pgn", "round2.pgn"},
	}
	tourney := tournament.Load(context.Background(), cfg, src)

	orig := loadTournament
	loadTournament = func(ctx context.Context) (*tournament.Tournament, error) {
		return tourney, nil
	}
	t.Cleanup(func() { loadTournament = orig })
}

func newSubCmdInteraction(sub string,
	opts ...*discordgo.ApplicationCommandInteractionDataOption) *discordgo.Interaction {

	return &discordgo.Interaction{
		Type: discordgo.InteractionApplicationCommand,
		Data: discordgo.ApplicationCommandInteractionData{
			Name: string(TourneyCmd),
			Options: []*discordgo.ApplicationCommandInteractionDataOption{
				{
					Name:    sub,
					Type:    discordgo.ApplicationCommandOptionSubCommand,
					Options: opts,
				},
			},
		},
	}
}

func intOpt(name string, val int) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{
		Name:  name,
		Type:  discordgo.ApplicationCommandOptionInteger,
		Value: float64(val),
	}
}

func strOpt(name string, val string) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{
		Name:  name,
		Type:  discordgo.ApplicationCommandOptionString,
		Value: val,
	}
}

func broadcastOpt() *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{
		Name:  "broadcast",
		Type:  discordgo.ApplicationCommandOptionBoolean,
		Value: true,
	}
}

func TestTourneyCmdHandler(t *testing.T) {
	useTestTournament(t)
	ctx := context.Background()

	tests := []struct {
		name      string
		inter     *discordgo.Interaction
		contains  []string
		ephemeral bool
	}{
		{
			name:      "help",
			inter:     newSubCmdInteraction("help"),
			contains:  []string{"/tourney standings"},
			ephemeral: true,
		},
		{
			name:      "unknown falls back to help",
			inter:     newSubCmdInteraction("crosstable"),
			contains:  []string{"/tourney round round:<N>"},
			ephemeral: true,
		},
		{
			name:      "about",
			inter:     newSubCmdInteraction("about"),
			contains:  []string{"Spring Open", "Format: Swiss", "pgnstandings"},
			ephemeral: true,
		},
		{
			name:  "rounds",
			inter: newSubCmdInteraction("rounds", broadcastOpt()),
			contains: []string{"Round 1: 2 games (round1.pgn)",
				"Round 2: not yet available"},
		},
		{
			name:      "round",
			inter:     newSubCmdInteraction("round", intOpt("round", 1)),
			contains:  []string{"Alice", "Bob", "½-½"},
			ephemeral: true,
		},
		{
			name:      "round without number",
			inter:     newSubCmdInteraction("round"),
			contains:  []string{"Please provide a round number."},
			ephemeral: true,
		},
		{
			name:      "round not configured",
			inter:     newSubCmdInteraction("round", intOpt("round", 9)),
			contains:  []string{"Round 9 is not part of Spring Open."},
			ephemeral: true,
		},
		{
			name: "game",
			inter: newSubCmdInteraction("game", intOpt("round", 1),
				intOpt("board", 1)),
			contains:  []string{"Alice vs. Bob: 1-0", "4. Qxf7#"},
			ephemeral: true,
		},
		{
			name: "game position",
			inter: newSubCmdInteraction("game", intOpt("round", 1),
				intOpt("board", 1), intOpt("ply", 1)),
			contains: []string{"After 1. e4 (ply 1 of 7)",
				"FEN: rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq"},
			ephemeral: true,
		},
		{
			name: "game ply out of range",
			inter: newSubCmdInteraction("game", intOpt("round", 1),
				intOpt("board", 1), intOpt("ply", 20)),
			contains:  []string{"Unable to show ply 20 of round 1 board 1"},
			ephemeral: true,
		},
		{
			name: "game board out of range",
			inter: newSubCmdInteraction("game", intOpt("round", 1),
				intOpt("board", 3)),
			contains:  []string{"Round 1 has no board 3."},
			ephemeral: true,
		},
		{
			name:  "standings",
			inter: newSubCmdInteraction("standings", broadcastOpt()),
			contains: []string{"**Spring Open**", "Alice", "Carol",
				"Dave"},
		},
		{
			name:      "standings for one player",
			inter:     newSubCmdInteraction("standings", strOpt("player", "DAVE")),
			contains:  []string{"Dave"},
			ephemeral: true,
		},
		{
			name:      "standings through",
			inter:     newSubCmdInteraction("standings", intOpt("through", 1)),
			contains:  []string{"(through round 1)"},
			ephemeral: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			resp := tourneyCmdHandler(ctx, tc.inter)
			if resp == nil || resp.Data == nil {
				t.Fatal("Expected non-nil response and data")
			}
			if resp.Type != discordgo.InteractionResponseChannelMessageWithSource {
				t.Errorf("unexpected response type %v", resp.Type)
			}
			for _, want := range tc.contains {
				if !strings.Contains(resp.Data.Content, want) {
					t.Errorf("expected content to contain %q, got:\n%v", want,
						resp.Data.Content)
				}
			}
			gotEphemeral := resp.Data.Flags == discordgo.MessageFlagsEphemeral
			if gotEphemeral != tc.ephemeral {
				t.Errorf("ephemeral = %v; want %v", gotEphemeral, tc.ephemeral)
			}
		})
	}
}

func TestTourneyCmdHandlerLoadError(t *testing.T) {
	orig := loadTournament
	loadTournament = func(ctx context.Context) (*tournament.Tournament, error) {
		return nil, tournament.ErrNoDataSource
	}
	t.Cleanup(func() { loadTournament = orig })

	resp := tourneyCmdHandler(context.Background(),
		newSubCmdInteraction("standings"))
	if !strings.Contains(resp.Data.Content, "Error loading tournament") {
		t.Errorf("unexpected content %q", resp.Data.Content)
	}

	// about still answers from the static text
	resp = tourneyCmdHandler(context.Background(),
		newSubCmdInteraction("about"))
	if resp.Data.Content != truncateContent(aboutText) {
		t.Errorf("unexpected about content %q", resp.Data.Content)
	}
}

func TestLoadCachedTournamentMissingConfig(t *testing.T) {
	tourneyCfgPath = "/nonexistent/tournament-config.json"
	t.Cleanup(func() { tourneyCfgPath = "" })

	if _, err := loadCachedTournament(context.Background()); err == nil {
		t.Errorf("expected an error for a missing config")
	}
}

func TestLoadCachedTournamentFollowsSource(t *testing.T) {
	dir := t.TempDir()
	tourneyCfgPath = filepath.Join(dir, "tournament-config.yaml")

	var repos []string
	origNewSource := newSource
	newSource = func(ctx context.Context, cfg *tournament.Config,
		bucket string) (tournament.Source, error) {

		repos = append(repos, cfg.TournamentRepo)
		return tournament.SourceFunc(func(ctx context.Context,
			filename string) (string, error) {

			return testRound1, nil
		}), nil
	}
	t.Cleanup(func() {
		newSource = origNewSource
		tourneyCfgPath = ""
		cachedTourney = nil
		tourneySrc = nil
		tourneySrcLoc = sourceLocation{}
	})

	writeCfg := func(repo string) {
		t.Helper()
		cfg := "name: Spring Open\ntournamentRepo: " + repo +
			"\nrounds: [round1.pgn]\n"
		if err := os.WriteFile(tourneyCfgPath, []byte(cfg), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	load := func() {
		t.Helper()
		// force a reload instead of waiting out tourneyMaxAge
		cachedTourney = nil
		tourney, err := loadCachedTournament(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(tourney.Standings) != 4 {
			t.Errorf("unexpected standings %+v", tourney.Standings)
		}
	}

	writeCfg("club/spring-open")
	load()
	load()
	writeCfg("club/spring-open-2026")
	load()

	want := []string{"club/spring-open", "club/spring-open-2026"}
	if len(repos) != len(want) || repos[0] != want[0] || repos[1] != want[1] {
		t.Errorf("sources built for %v; want %v", repos, want)
	}
}

func TestTruncateContent(t *testing.T) {
	short := "short"
	if got := truncateContent(short); got != short {
		t.Errorf("got %q; want %q", got, short)
	}

	long := strings.Repeat("½", 2500)
	got := truncateContent(long)
	if !strings.HasSuffix(got, "...") {
		t.Errorf("expected truncated content to end with ...")
	}
	if n := len([]rune(got)); n > 2000 {
		t.Errorf("truncated content has %v runes", n)
	}
}

func TestTourneyCommandDefinition(t *testing.T) {
	cmd := tourneyCommand()
	if cmd.Name != string(TourneyCmd) {
		t.Errorf("unexpected name %v", cmd.Name)
	}
	for _, opt := range cmd.Options {
		if _, ok := tourneySubCmdHdlrs[TourneySubCommand(opt.Name)]; !ok {
			t.Errorf("sub-command %v has no handler", opt.Name)
		}
	}
	if len(cmd.Options) != len(tourneySubCmdHdlrs) {
		t.Errorf("%v sub-commands registered but %v handled",
			len(cmd.Options), len(tourneySubCmdHdlrs))
	}
}

func TestTourneyStandingsPlayerFilter(t *testing.T) {
	useTestTournament(t)

	resp := tourneyCmdHandler(context.Background(),
		newSubCmdInteraction("standings", strOpt("player", "bob")))
	if !strings.Contains(resp.Data.Content, "Bob") {
		t.Errorf("expected Bob in %q", resp.Data.Content)
	}
	for _, other := range []string{"Alice", "Carol", "Dave"} {
		if strings.Contains(resp.Data.Content, other) {
			t.Errorf("unexpected %v in %q", other, resp.Data.Content)
		}
	}
	// Alice 1, Carol and Dave ½, Bob 0
	if !strings.Contains(resp.Data.Content, "4.") {
		t.Errorf("expected Bob to keep 4th place in %q", resp.Data.Content)
	}
}
