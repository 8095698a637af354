/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	_ "embed"
	"fmt"
	"log"

	"github.com/bwmarrin/discordgo"

	"github.com/mikeb26/pgnstandings/standings"
	"github.com/mikeb26/pgnstandings/tournament"
)

type TourneySubCommand string

const (
	TourneyAboutCmd     TourneySubCommand = "about"
	TourneyHelpCmd      TourneySubCommand = "help"
	TourneyRoundsCmd    TourneySubCommand = "rounds"
	TourneyRoundCmd     TourneySubCommand = "round"
	TourneyGameCmd      TourneySubCommand = "game"
	TourneyStandingsCmd TourneySubCommand = "standings"
)

var tourneySubCmdHdlrs = map[TourneySubCommand]CmdHandler{
	TourneyAboutCmd:     tourneyAboutCmdHandler,
	TourneyHelpCmd:      tourneyHelpCmdHandler,
	TourneyRoundsCmd:    tourneyRoundsCmdHandler,
	TourneyRoundCmd:     tourneyRoundCmdHandler,
	TourneyGameCmd:      tourneyGameCmdHandler,
	TourneyStandingsCmd: tourneyStandingsCmdHandler,
}

func tourneyCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	data := inter.ApplicationCommandData()
	hdlr := tourneyHelpCmdHandler
	if len(data.Options) > 0 {
		if subName := data.Options[0].Name; subName != "" {
			h, ok := tourneySubCmdHdlrs[TourneySubCommand(subName)]
			if ok {
				hdlr = h
			}
		}
	}
	return hdlr(ctx, inter)
}

func newEphemeralResponse() *discordgo.InteractionResponse {
	return &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Flags: discordgo.MessageFlagsEphemeral,
		},
	}
}

// subCmdOptions holds the integer and string options of the invoked
// sub-command plus its broadcast flag.
type subCmdOptions struct {
	ints      map[string]int64
	strs      map[string]string
	broadcast bool
}

func getSubCmdOptions(inter *discordgo.Interaction) subCmdOptions {
	opts := subCmdOptions{
		ints: make(map[string]int64),
		strs: make(map[string]string),
	}

	data := inter.ApplicationCommandData()
	if len(data.Options) == 0 {
		return opts
	}
	for _, opt := range data.Options[0].Options {
		switch opt.Type {
		case discordgo.ApplicationCommandOptionBoolean:
			if opt.Name == "broadcast" {
				opts.broadcast = opt.BoolValue()
			}
		case discordgo.ApplicationCommandOptionInteger:
			opts.ints[opt.Name] = opt.IntValue()
		case discordgo.ApplicationCommandOptionString:
			opts.strs[opt.Name] = opt.StringValue()
		}
	}

	return opts
}

//go:embed about.txt
var aboutText string

func tourneyAboutCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	resp := newEphemeralResponse()

	tourney, err := loadTournament(ctx)
	if err != nil {
		log.Printf("discordbot.about: warning: %v", err)
		resp.Data.Content = truncateContent(aboutText)
		return resp
	}
	resp.Data.Content = truncateContent(fmt.Sprintf("```\n%v```\n%v",
		tournament.BuildInfoOutput(&tourney.Config), aboutText))

	return resp
}

//go:embed help.md
var helpText string

func tourneyHelpCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	resp := newEphemeralResponse()
	resp.Data.Content = truncateContent(helpText)

	return resp
}

func tourneyRoundsCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	resp := newEphemeralResponse()
	opts := getSubCmdOptions(inter)

	tourney, err := loadTournament(ctx)
	if err != nil {
		resp.Data.Content = fmt.Sprintf("Error loading tournament: %v", err)
		log.Printf("discordbot.rounds: %v", resp.Data.Content)
		return resp
	}

	resp.Data.Content = fmt.Sprintf("**%v**\n```\n%s```", tourney.Config.Name,
		truncateContent(tournament.BuildRoundsOutput(tourney)))
	if opts.broadcast {
		resp.Data.Flags = 0
	}

	return resp
}

// tourneyRoundCmdHandler handles /tourney round to display one round's
// results
func tourneyRoundCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	resp := newEphemeralResponse()
	opts := getSubCmdOptions(inter)

	roundNum, found := opts.ints["round"]
	if !found {
		resp.Data.Content = "Please provide a round number."
		log.Printf("discordbot.round: %v", resp.Data.Content)
		return resp
	}

	tourney, err := loadTournament(ctx)
	if err != nil {
		resp.Data.Content = fmt.Sprintf("Error loading tournament: %v", err)
		log.Printf("discordbot.round: %v", resp.Data.Content)
		return resp
	}
	r, ok := tourney.Round(int(roundNum))
	if !ok {
		resp.Data.Content = fmt.Sprintf("Round %v is not part of %v.", roundNum,
			tourney.Config.Name)
		return resp
	}

	// Wrap output in code block for monospace formatting in Discord
	resp.Data.Content = fmt.Sprintf("```\n%s```",
		truncateContent(tournament.BuildRoundOutput(r)))
	if opts.broadcast {
		resp.Data.Flags = 0
	}

	return resp
}

// tourneyGameCmdHandler handles /tourney game to display one game's moves
func tourneyGameCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	resp := newEphemeralResponse()
	opts := getSubCmdOptions(inter)

	roundNum, haveRound := opts.ints["round"]
	board, haveBoard := opts.ints["board"]
	if !haveRound || !haveBoard {
		resp.Data.Content = "Please provide a round and board number."
		log.Printf("discordbot.game: %v", resp.Data.Content)
		return resp
	}

	tourney, err := loadTournament(ctx)
	if err != nil {
		resp.Data.Content = fmt.Sprintf("Error loading tournament: %v", err)
		log.Printf("discordbot.game: %v", resp.Data.Content)
		return resp
	}
	r, ok := tourney.Round(int(roundNum))
	if !ok {
		resp.Data.Content = fmt.Sprintf("Round %v is not part of %v.", roundNum,
			tourney.Config.Name)
		return resp
	}
	if board < 1 || int(board) > len(r.Games) {
		resp.Data.Content = fmt.Sprintf("Round %v has no board %v.", r.Number,
			board)
		return resp
	}

	g := r.Games[board-1]
	out := tournament.BuildGameOutput(g)
	if ply, ok := opts.ints["ply"]; ok {
		out, err = tournament.BuildPositionOutput(g, int(ply))
		if err != nil {
			resp.Data.Content = fmt.Sprintf("Unable to show ply %v of round %v board %v: %v",
				ply, r.Number, board, err)
			return resp
		}
	}

	resp.Data.Content = fmt.Sprintf("```\n%s```", truncateContent(out))
	if opts.broadcast {
		resp.Data.Flags = 0
	}

	return resp
}

// tourneyStandingsCmdHandler handles /tourney standings to display current
// standings
func tourneyStandingsCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	resp := newEphemeralResponse()
	opts := getSubCmdOptions(inter)

	tourney, err := loadTournament(ctx)
	if err != nil {
		resp.Data.Content = fmt.Sprintf("Error loading tournament: %v", err)
		log.Printf("discordbot.standings: %v", resp.Data.Content)
		return resp
	}

	list := tourney.Standings
	title := tourney.Config.Name
	if through, ok := opts.ints["through"]; ok && through > 0 {
		list = tourney.StandingsThrough(int(through))
		title = fmt.Sprintf("%v (through round %v)", title, through)
	}

	out := standings.BuildStandingsOutput(list)
	if player := opts.strs["player"]; player != "" {
		out = standings.BuildPlayerStandingsOutput(list, player)
	}

	// Wrap output in code block for monospace formatting in Discord
	resp.Data.Content = fmt.Sprintf("**%v**\n```\n%s```", title,
		truncateContent(out))
	if opts.broadcast {
		resp.Data.Flags = 0
	}

	return resp
}

// https://discord.com/developers/docs/resources/channel#start-thread-in-forum-or-media-channel-forum-and-media-thread-message-params-object
// limits messages to 2k characters
func truncateContent(s string) string {
	const MsgLimit = 1900 // keep space for titles, newlines, and markdown
	runes := []rune(s)
	if len(runes) > MsgLimit {
		s = fmt.Sprintf("%v...", string(runes[:MsgLimit]))
	}
	return s
}
