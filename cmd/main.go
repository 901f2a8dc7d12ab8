package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/bwmarrin/discordgo"
	"github.com/latrommi/cinebot/internal/commands"
	"github.com/latrommi/cinebot/internal/config"
	"github.com/latrommi/cinebot/internal/handlers"
	"github.com/latrommi/cinebot/internal/presence"
	"github.com/latrommi/cinebot/pkg/emby"
	"github.com/latrommi/cinebot/pkg/player"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	pipeline, err := player.NewRTMPPipeline(cfg.RTMPAddress)
	if err != nil {
		log.Fatalf("Failed to build streaming pipeline: %v", err)
	}
	ctrl := player.NewController(pipeline)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go ctrl.WatchBus(ctx)

	embyClient, err := emby.NewClient(cfg.EmbyURL, cfg.EmbyAPIToken)
	if err != nil {
		log.Fatalf("Failed to create media-library client: %v", err)
	}

	dg, err := discordgo.New("Bot " + cfg.DiscordToken)
	if err != nil {
		log.Fatalf("Failed to create Discord session: %v", err)
	}

	cmdHandler := commands.New(ctrl, embyClient, cfg.MediaPathFrom, cfg.MediaPathTo)
	dg.AddHandler(handlers.NewInteractionHandler(cmdHandler).Handle)

	if err := dg.Open(); err != nil {
		log.Fatalf("Failed to open Discord session: %v", err)
	}

	for _, guildID := range cfg.GuildIDs {
		_, err := dg.ApplicationCommandBulkOverwrite(dg.State.User.ID, guildID, commands.Definitions())
		if err != nil {
			log.Fatalf("Failed to register commands for guild %s: %v", guildID, err)
		}
	}

	go presence.NewManager(dg, ctrl).Run(ctx)

	log.Println("Bot is running. Press CTRL-C to exit.")
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	dg.Close()
	cancel()
	if err := ctrl.Close(); err != nil {
		log.Printf("error shutting down player: %v", err)
	}
}
