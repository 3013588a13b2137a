package main

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/Sir-Bobert-II/BOR-define/pkg/command"
)

type DiscordConfig struct {
	// Token of the bot, empty disables Discord
	Token string
	// GuildID limits command registration to one guild, empty means global
	GuildID string
}

// openBot connects to the gateway and registers the command.
func openBot(logger *zap.Logger, conf DiscordConfig, handler *command.Handler) (*discordgo.Session, error) {
	session, err := discordgo.New("Bot " + conf.Token)
	if err != nil {
		return nil, fmt.Errorf("can not create session: %w", err)
	}
	session.AddHandler(handler.OnInteraction)
	if err := session.Open(); err != nil {
		return nil, fmt.Errorf("can not open gateway: %w", err)
	}
	registered, err := session.ApplicationCommandCreate(session.State.User.ID, conf.GuildID, handler.Command())
	if err != nil {
		_ = session.Close()
		return nil, fmt.Errorf("can not register command: %w", err)
	}
	logger.Info("Discord command registered",
		zap.String("command", registered.Name),
		zap.String("id", registered.ID),
		zap.String("guild", conf.GuildID),
	)
	return session, nil
}
