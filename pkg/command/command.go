// Package command declares the define slash-command for Discord and
// answers its interactions with the lookup service.
package command

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

const (
	Name       = "define"
	WordOption = "word"
)

// interactionTTL is how long interaction token stays valid for edits.
const interactionTTL = 15 * time.Minute

var ErrMissingOption = errors.New("missing required option")

// Define returns registration of the command. It is usable in DMs.
func Define() *discordgo.ApplicationCommand {
	dmPermission := true
	return &discordgo.ApplicationCommand{
		Type:        discordgo.ChatApplicationCommand,
		Name:        Name,
		Description: "Define an English word",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        WordOption,
				Description: "The word to define",
				Required:    true,
			},
		},
		DMPermission: &dmPermission,
	}
}

type Lookuper interface {
	Lookup(ctx context.Context, word string) string
}

type Handler struct {
	command *discordgo.ApplicationCommand
	l       Lookuper
	logger  *zap.Logger
	running sync.WaitGroup
}

func NewHandler(l Lookuper, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		command: Define(),
		l:       l,
		logger:  logger,
	}
}

func (h *Handler) Command() *discordgo.ApplicationCommand {
	return h.command
}

// Handle answers single invocation of the command. Every required option
// must be present as a non-empty string.
func (h *Handler) Handle(ctx context.Context, options []*discordgo.ApplicationCommandInteractionDataOption) (string, error) {
	word, err := h.word(options)
	if err != nil {
		return "", err
	}
	return h.l.Lookup(ctx, word), nil
}

func (h *Handler) word(options []*discordgo.ApplicationCommandInteractionDataOption) (string, error) {
	values := make(map[string]string, len(options))
	for _, o := range options {
		if o == nil || o.Type != discordgo.ApplicationCommandOptionString {
			continue
		}
		if v, ok := o.Value.(string); ok {
			values[o.Name] = v
		}
	}
	for _, o := range h.command.Options {
		if o.Required && values[o.Name] == "" {
			return "", fmt.Errorf("%w: %s", ErrMissingOption, o.Name)
		}
	}
	return values[WordOption], nil
}

// Respond builds reply to command data. Invalid invocations get an
// ephemeral error message.
func (h *Handler) Respond(ctx context.Context, data discordgo.ApplicationCommandInteractionData) *discordgo.InteractionResponse {
	content, err := h.Handle(ctx, data.Options)
	if err != nil {
		return invalidResponse(err)
	}
	return &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Content: content},
	}
}

func invalidResponse(err error) *discordgo.InteractionResponse {
	return &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: err.Error(),
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	}
}

// Responder is the part of *discordgo.Session used to answer interactions.
type Responder interface {
	InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse, options ...discordgo.RequestOption) error
	InteractionResponseEdit(interaction *discordgo.Interaction, newresp *discordgo.WebhookEdit, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// OnInteraction is a discordgo event handler, register it with
// Session.AddHandler.
func (h *Handler) OnInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	h.Answer(s, i)
}

// Answer acknowledges the interaction at once and edits the reply when
// lookup is done, Discord drops interactions not acknowledged in 3 seconds.
func (h *Handler) Answer(r Responder, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}
	data := i.ApplicationCommandData()
	if data.Name != h.command.Name {
		return
	}
	h.running.Add(1)
	defer h.running.Done()
	logger := h.logger.With(zap.String("interaction_id", i.ID))

	word, err := h.word(data.Options)
	if err != nil {
		if err := r.InteractionRespond(i.Interaction, invalidResponse(err)); err != nil {
			logger.Error("Interaction respond failed", zap.Error(err))
		}
		return
	}
	deferred := &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	}
	if err := r.InteractionRespond(i.Interaction, deferred); err != nil {
		logger.Error("Interaction respond failed", zap.Error(err))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), interactionTTL)
	defer cancel()
	content := h.l.Lookup(ctx, word)
	if _, err := r.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{Content: &content}); err != nil {
		logger.Error("Interaction response edit failed", zap.Error(err))
	}
}

// Wait blocks until every interaction being answered is done.
func (h *Handler) Wait() {
	h.running.Wait()
}
