package analytics

import (
	"context"
	"fmt"
	"html"
	"strings"
	"time"

	"cinema-bot/internal/storage"
)

// TotalsSource is the part of the store the report reads.
type TotalsSource interface {
	Totals(ctx context.Context) (storage.Totals, error)
}

// Report is a usage snapshot for the admin.
type Report struct {
	Date   string
	Totals storage.Totals
}

// Collect reads the current totals from the store.
func Collect(ctx context.Context, src TotalsSource, now time.Time) (*Report, error) {
	t, err := src.Totals(ctx)
	if err != nil {
		return nil, fmt.Errorf("collect totals: %w", err)
	}
	return &Report{Date: now.UTC().Format("2006-01-02"), Totals: t}, nil
}

// Summary renders the report in the bot's HTML subset.
func (r *Report) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "<b>Статистика бота на %s</b>\n\n", r.Date)
	fmt.Fprintf(&b, "Запросов всего: %d\n", r.Totals.Queries)
	fmt.Fprintf(&b, "Пользователей: %d\n", r.Totals.Users)
	fmt.Fprintf(&b, "Найдено фильмов: %d\n", r.Totals.Lookups)
	if len(r.Totals.TopFilms) > 0 {
		b.WriteString("\n<b>Популярные фильмы:</b>\n")
		for i, fc := range r.Totals.TopFilms {
			fmt.Fprintf(&b, "%d) %s — %d\n", i+1, html.EscapeString(fc.FilmName), fc.Count)
		}
	}
	return b.String()
}
