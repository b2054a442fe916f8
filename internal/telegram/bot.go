package telegram

import (
	"context"
	"log"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"cinema-bot/internal/auth"
	"cinema-bot/internal/format"
	"cinema-bot/internal/storage"
)

// Limits bound the size of outgoing messages.
type Limits struct {
	MaxCaptionSize  int
	MaxMessageSize  int
	DescriptionClip int
	MaxLinks        int
}

type Bot struct {
	api         *tgbotapi.BotAPI
	s           sender
	authSvc     *auth.Service
	films       FilmFinder
	links       LinkFinder
	store       storage.Store
	limits      Limits
	adminUserID int64

	wg sync.WaitGroup
}

func New(botToken string, authSvc *auth.Service, films FilmFinder, links LinkFinder, store storage.Store, limits Limits, adminUserID int64) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, err
	}
	log.Printf("Authorized on account @%s", api.Self.UserName)
	return &Bot{
		api:         api,
		s:           botAPISender{api: api},
		authSvc:     authSvc,
		films:       films,
		links:       links,
		store:       store,
		limits:      limits,
		adminUserID: adminUserID,
	}, nil
}

// Start long-polls updates until ctx is cancelled. Each message is handled in
// its own goroutine; Start returns after in-flight handlers finish. Cancelling
// ctx stops polling only, running lookups still complete and reply.
func (b *Bot) Start(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)
	defer b.wg.Wait()

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			if update.Message == nil {
				continue
			}
			b.dispatch(ctx, update.Message)
		}
	}
}

// dispatch handles msg in a new goroutine tracked by b.wg. The handler keeps
// ctx values but not its cancellation.
func (b *Bot) dispatch(ctx context.Context, msg *tgbotapi.Message) {
	hctx := context.WithoutCancel(ctx)
	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		b.handleMessage(hctx, msg)
	}()
}

// SendReport delivers a rendered report to the admin, if one is configured.
func (b *Bot) SendReport(text string) {
	if b.adminUserID == 0 {
		return
	}
	b.sendMessage(b.adminUserID, text)
}

func (b *Bot) formatOptions() format.Options {
	return format.Options{DescriptionClip: b.limits.DescriptionClip, MaxLinks: b.limits.MaxLinks}
}

func (b *Bot) sendMessage(chatID int64, text string) {
	b.reply(chatID, 0, text)
}

func (b *Bot) reply(chatID int64, replyTo int, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyToMessageID = replyTo
	msg.DisableWebPagePreview = true
	if _, err := b.s.Send(msg); err != nil {
		log.Printf("failed to send message: %v", err)
	}
}

func (b *Bot) replyPhoto(chatID int64, replyTo int, photoURL, caption string) error {
	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileURL(photoURL))
	photo.Caption = caption
	photo.ParseMode = tgbotapi.ModeHTML
	photo.ReplyToMessageID = replyTo
	_, err := b.s.Send(photo)
	return err
}
