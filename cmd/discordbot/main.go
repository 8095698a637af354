/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	"crypto/ed25519"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/bwmarrin/discordgo"
)

// secrets and deployment settings; see setup()
const (
	botTokenEnv    = "DISCORD_BOT_TOKEN"
	botPubKeyEnv   = "DISCORD_PUBLIC_KEY"
	botAppIdEnv    = "DISCORD_APP_ID"
	tourneyCmdEnv  = "DISCORD_TOURNEY_CMD_ID"
	cmdHashEnv     = "DISCORD_CMD_HASH"
	tourneyCfgEnv  = "TOURNEY_CONFIG"
	cacheBucketEnv = "TOURNEY_CACHE_BUCKET"
)

var botPubKey ed25519.PublicKey
var botAppId string
var tourneyCmdId string
var lastCmdUpdateHash string

var client *discordgo.Session

type TopLevelCommand string

const (
	TourneyCmd TopLevelCommand = "tourney"
)

type CmdHandler func(ctx context.Context,
	i *discordgo.Interaction) *discordgo.InteractionResponse

var topLevelCmdHdlrs = map[TopLevelCommand]CmdHandler{
	TourneyCmd: tourneyCmdHandler,
}

func interactionHandler(w http.ResponseWriter, r *http.Request) {
	if !discordgo.VerifyInteraction(r, botPubKey) {
		log.Printf("discordbot.int: failed to verify")
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		log.Printf("discordbot.int: failed to read request body: %v", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	var inter discordgo.Interaction
	if err := inter.UnmarshalJSON(body); err != nil {
		log.Printf("discordbot.int: failed to unmarshal interaction: err:%v body:%v",
			err, body)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	resp := &discordgo.InteractionResponse{}
	if inter.Type == discordgo.InteractionPing {
		resp.Type = discordgo.InteractionResponsePong
	} else if inter.Type == discordgo.InteractionApplicationCommand {
		hdlr, ok :=
			topLevelCmdHdlrs[TopLevelCommand(inter.ApplicationCommandData().Name)]
		if !ok {
			resp.Type = discordgo.InteractionResponseChannelMessageWithSource
			resp.Data = &discordgo.InteractionResponseData{
				Content: fmt.Sprintf("unknown command '%v'",
					inter.ApplicationCommandData().Name),
				Flags: discordgo.MessageFlagsEphemeral,
			}
		} else {
			resp = hdlr(r.Context(), &inter)
		}
	} else {
		log.Printf("discordbot.int: unimplemented interation type %v: inter:%v",
			inter.Type, inter)
		w.WriteHeader(http.StatusNotImplemented)
		return
	}

	rawResp, err := json.Marshal(resp)
	if err != nil {
		log.Printf("discordbot.int: failed to marshal resp: err:%v", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	if _, err = w.Write(rawResp); err != nil {
		log.Printf("discordbot.int: failed to write resp: err:%v", err)
	}
}

func mustGetenv(name string) string {
	val := strings.TrimSpace(os.Getenv(name))
	if val == "" {
		log.Fatalf("discordbot.init: %v is not set", name)
	}

	return val
}

func setup() {
	log.SetFlags(log.Flags() &^ (log.Ldate | log.Ltime))

	pubKeyBytes, err := hex.DecodeString(mustGetenv(botPubKeyEnv))
	if err != nil {
		log.Fatalf("discordbot.init: Failed to parse public key: %v", err)
	}
	botPubKey = ed25519.PublicKey(pubKeyBytes)
	botAppId = mustGetenv(botAppIdEnv)
	tourneyCmdId = os.Getenv(tourneyCmdEnv)
	lastCmdUpdateHash = os.Getenv(cmdHashEnv)
	tourneyCfgPath = mustGetenv(tourneyCfgEnv)
	cacheBucket = os.Getenv(cacheBucketEnv)

	client, err = discordgo.New("Bot " + mustGetenv(botTokenEnv))
	if err != nil {
		log.Fatalf("dicordbot.init: Failed to initialize discord client: %v", err)
	}
}

func shouldUpdateCmdRegistration(cmd *discordgo.ApplicationCommand) bool {
	cmdJson, err := json.Marshal(cmd)
	if err != nil {
		log.Fatalf("discordbot.reg: failed to marshal cmd: %v", err)
		return false
	}
	hasher := sha256.New()
	hasher.Write(cmdJson)
	hash := hasher.Sum(nil)
	hexString := hex.EncodeToString(hash)

	shouldUpdate := (hexString != lastCmdUpdateHash)

	if shouldUpdate {
		log.Printf("discordbot.reg: updating cmd reg; please set %v to %v",
			cmdHashEnv, hexString)
	}

	return shouldUpdate
}

func broadcastOption() *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionBoolean,
		Name:        "broadcast",
		Description: "Share with the rest of the channel instead of only to you (default is false)",
		Required:    false,
	}
}

func roundOption(required bool) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionInteger,
		Name:        "round",
		Description: "Round number (as listed by /tourney rounds)",
		Required:    required,
	}
}

func tourneyCommand() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        string(TourneyCmd),
		Description: "Tournament results and standings; try /tourney help to start",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        string(TourneyHelpCmd),
				Description: "Show usage for tourney",
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        string(TourneyAboutCmd),
				Description: "Show information about the tournament",
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        string(TourneyRoundsCmd),
				Description: "List the tournament's rounds",
				Options: []*discordgo.ApplicationCommandOption{
					broadcastOption(),
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        string(TourneyRoundCmd),
				Description: "Show the results of one round",
				Options: []*discordgo.ApplicationCommandOption{
					roundOption(true),
					broadcastOption(),
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        string(TourneyGameCmd),
				Description: "Show the moves of one game",
				Options: []*discordgo.ApplicationCommandOption{
					roundOption(true),
					{
						Type:        discordgo.ApplicationCommandOptionInteger,
						Name:        "board",
						Description: "Board number within the round",
						Required:    true,
					},
					{
						Type:        discordgo.ApplicationCommandOptionInteger,
						Name:        "ply",
						Description: "Show the board after this many half-moves (0 for the start)",
						Required:    false,
					},
					broadcastOption(),
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        string(TourneyStandingsCmd),
				Description: "Show the current standings",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionInteger,
						Name:        "through",
						Description: "Only count the first N rounds (default is all)",
						Required:    false,
					},
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "player",
						Description: "Only show players whose name contains this text",
						Required:    false,
					},
					broadcastOption(),
				},
			},
		},
	}
}

func registerSlashCommands() {
	cmdDef := tourneyCommand()

	if tourneyCmdId == "" {
		cmd, err := client.ApplicationCommandCreate(botAppId, "", cmdDef)
		if err != nil {
			log.Printf("discordbot.reg: failed to register %v: %v", cmdDef.Name,
				err)
			return
		}

		log.Printf("discordbot.reg: registered %v(cmdID:%v); please set %v",
			cmd.Name, cmd.ID, tourneyCmdEnv)
	} else if shouldUpdateCmdRegistration(cmdDef) {
		cmd, err := client.ApplicationCommandEdit(botAppId, "", tourneyCmdId,
			cmdDef)
		if err != nil {
			log.Printf("discordbot.reg: failed to update %v: %v", cmdDef.Name,
				err)
			return
		}

		log.Printf("discordbot.reg: updated %v(cmdID:%v)", cmd.Name, cmd.ID)
	}
}

func main() {
	setup()
	go registerSlashCommands()

	hostname, err := os.Hostname()
	if err != nil {
		hostname = "localhost"
	}
	log.Printf("discordbot.main: starting server on %v:8080", hostname)

	http.HandleFunc("/DiscordBot/Interaction", interactionHandler)
	if err := http.ListenAndServe(":8080", nil); err != nil {
		log.Fatalf("discordbot.main: Serve failed: %v", err)
	}

	log.Printf("discordbot.main: exiting")
}
