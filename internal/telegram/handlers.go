package telegram

import (
	"context"
	"errors"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"

	"cinema-bot/internal/format"
	"cinema-bot/internal/kinopoisk"
)

const accessDeniedMessage = "У тебя нет доступа к этому боту."

// handleMessage dispatches on the message shape: a known command or a film lookup.
func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	if msg.From == nil || msg.Text == "" {
		return
	}
	if !b.authSvc.IsAllowed(msg.From.ID) {
		log.Printf("Unauthorized access attempt by user ID: %d, username: @%s", msg.From.ID, msg.From.UserName)
		b.reply(msg.Chat.ID, msg.MessageID, accessDeniedMessage)
		return
	}
	if msg.IsCommand() {
		b.handleCommand(ctx, msg)
		return
	}
	b.handleLookup(ctx, msg)
}

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	switch msg.Command() {
	case "history":
		b.handleHistory(ctx, msg)
	case "stats":
		b.handleStats(ctx, msg)
	default:
		// start, help and anything unknown
		b.reply(msg.Chat.ID, msg.MessageID, format.HelpMessage)
	}
}

func (b *Bot) handleLookup(ctx context.Context, msg *tgbotapi.Message) {
	reqID := uuid.NewString()
	userID := msg.From.ID
	log.Printf("[%s] lookup from %d (@%s): %q", reqID, userID, msg.From.UserName, msg.Text)

	if err := b.store.AppendHistory(ctx, userID, msg.Text); err != nil {
		log.Printf("[%s] failed to record history: %v", reqID, err)
		b.reply(msg.Chat.ID, msg.MessageID, format.FailureMessage)
		return
	}

	film, err := b.films.FindFilm(ctx, msg.Text)
	if errors.Is(err, kinopoisk.ErrNotFound) {
		log.Printf("[%s] no film for %q", reqID, msg.Text)
		b.reply(msg.Chat.ID, msg.MessageID, format.BadRequestMessage)
		return
	}
	if err != nil {
		log.Printf("[%s] film search failed: %v", reqID, err)
		b.reply(msg.Chat.ID, msg.MessageID, format.FailureMessage)
		return
	}

	name := film.Name()
	if err := b.store.AppendStat(ctx, userID, name); err != nil {
		log.Printf("[%s] failed to record stat: %v", reqID, err)
		b.reply(msg.Chat.ID, msg.MessageID, format.FailureMessage)
		return
	}

	links, err := b.links.WatchLinks(ctx, name, film.Year)
	if err != nil {
		log.Printf("[%s] link search failed: %v", reqID, err)
		links = nil
	}

	text := format.Film(*film, links, b.formatOptions())
	if format.Delivery(text, film.PosterURL, b.limits.MaxCaptionSize) == format.KindPhoto {
		err := b.replyPhoto(msg.Chat.ID, msg.MessageID, film.PosterURL, text)
		if err == nil {
			log.Printf("[%s] sent %q as photo", reqID, name)
			return
		}
		log.Printf("[%s] failed to send photo, falling back to text: %v", reqID, err)
	}
	b.reply(msg.Chat.ID, msg.MessageID, text)
	log.Printf("[%s] sent %q as text", reqID, name)
}

func (b *Bot) handleHistory(ctx context.Context, msg *tgbotapi.Message) {
	queries, err := b.store.History(ctx, msg.From.ID)
	if err != nil {
		log.Printf("failed to load history for %d: %v", msg.From.ID, err)
		b.reply(msg.Chat.ID, msg.MessageID, format.FailureMessage)
		return
	}
	b.reply(msg.Chat.ID, msg.MessageID, format.History(queries, b.limits.MaxMessageSize))
}

func (b *Bot) handleStats(ctx context.Context, msg *tgbotapi.Message) {
	stats, err := b.store.Stats(ctx, msg.From.ID)
	if err != nil {
		log.Printf("failed to load stats for %d: %v", msg.From.ID, err)
		b.reply(msg.Chat.ID, msg.MessageID, format.FailureMessage)
		return
	}
	b.reply(msg.Chat.ID, msg.MessageID, format.Stats(stats, b.limits.MaxMessageSize))
}
