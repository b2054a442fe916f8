package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"cinema-bot/internal/kinopoisk"
)

type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type botAPISender struct{ api *tgbotapi.BotAPI }

func (s botAPISender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	return s.api.Send(c)
}

// FilmFinder resolves free text to a film; kinopoisk.ErrNotFound means no match.
type FilmFinder interface {
	FindFilm(ctx context.Context, text string) (*kinopoisk.Film, error)
}

// LinkFinder searches watch links for a resolved film.
type LinkFinder interface {
	WatchLinks(ctx context.Context, name, year string) ([]string, error)
}
