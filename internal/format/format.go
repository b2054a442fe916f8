// Package format renders bot replies in Telegram's HTML subset.
package format

import (
	"fmt"
	"html"
	"net/url"
	"strings"
	"unicode/utf8"

	"cinema-bot/internal/kinopoisk"
	"cinema-bot/internal/storage"
)

const (
	BadRequestMessage      = "Не получилось найти такой фильм 😔\nПопробуй уточнить название."
	NotFoundHistoryMessage = "Пока здесь пусто: ты ещё ничего не искал."
	NoLinksMessage         = "Ссылок для просмотра не нашлось."
	FailureMessage         = "Что-то пошло не так, попробуй ещё раз позже."
	HelpMessage            = "<b>Привет! Я помогаю найти фильм и где его посмотреть.</b>\n\n" +
		"Просто напиши название фильма, и я пришлю описание, постер и ссылки.\n\n" +
		"<b>Команды:</b>\n" +
		"/history — история твоих запросов\n" +
		"/stats — какие фильмы я тебе показывал и сколько раз\n" +
		"/help — это сообщение"

	historyHeader = "<b>Вот твоя история поиска:</b>\n"
	statsHeader   = "<b>Вот какие фильмы я тебе уже показывал:</b>\n"
)

// Options bounds the film reply.
type Options struct {
	DescriptionClip int
	MaxLinks        int
}

// Film renders the lookup reply: labeled name, year, description and up to
// MaxLinks numbered watch links.
func Film(f kinopoisk.Film, links []string, opts Options) string {
	var b strings.Builder
	if name := f.Name(); name != "" {
		fmt.Fprintf(&b, "<b>Название фильма:</b> %s\n\n", html.EscapeString(name))
	}
	if f.Year != "" {
		fmt.Fprintf(&b, "<b>Год выпуска:</b> %s\n\n", html.EscapeString(f.Year))
	}
	if d := f.ShortDescription(opts.DescriptionClip); d != "" {
		fmt.Fprintf(&b, "<b>Краткое описание:</b>\n%s\n\n", html.EscapeString(d))
	}
	b.WriteString("<b>Где можно посмотреть:</b>\n")
	if opts.MaxLinks >= 0 && len(links) > opts.MaxLinks {
		links = links[:opts.MaxLinks]
	}
	if len(links) == 0 {
		b.WriteString(NoLinksMessage)
		return b.String()
	}
	for i, link := range links {
		fmt.Fprintf(&b, "%d) <a href=\"%s\">%s</a>\n", i+1, html.EscapeString(link), html.EscapeString(ShortLink(link)))
	}
	return b.String()
}

// ShortLink returns the host of an http(s) link, or the link itself when it
// cannot be parsed.
func ShortLink(link string) string {
	u, err := url.Parse(link)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return link
	}
	return u.Host
}

// Kind is the reply shape chosen for a film.
type Kind int

const (
	KindText Kind = iota
	KindPhoto
)

// Delivery picks a photo with caption when the text fits into a caption and a
// poster is available, otherwise a plain text message.
func Delivery(text, posterURL string, maxCaption int) Kind {
	if posterURL == "" || Len(text) > maxCaption {
		return KindText
	}
	return KindPhoto
}

// Len is the message length as Telegram limits count it, in characters.
func Len(s string) int { return utf8.RuneCountInString(s) }

// History renders numbered past queries. Rows that would overflow maxMessage
// are dropped along with everything after them.
func History(queries []string, maxMessage int) string {
	if len(queries) == 0 {
		return NotFoundHistoryMessage
	}
	rows := make([]string, len(queries))
	for i, q := range queries {
		rows[i] = fmt.Sprintf("%d) %s\n", i+1, html.EscapeString(q))
	}
	return bounded(historyHeader, rows, maxMessage)
}

// Stats renders per-film show counts with the same overflow rule as History.
func Stats(stats []storage.FilmCount, maxMessage int) string {
	if len(stats) == 0 {
		return NotFoundHistoryMessage
	}
	rows := make([]string, len(stats))
	for i, s := range stats {
		rows[i] = fmt.Sprintf("<b>%d)</b> %s <b>%d</b> раз(а)\n", i+1, html.EscapeString(s.FilmName), s.Count)
	}
	return bounded(statsHeader, rows, maxMessage)
}

func bounded(header string, rows []string, maxMessage int) string {
	var b strings.Builder
	b.WriteString(header)
	n := Len(header)
	for _, row := range rows {
		l := Len(row)
		if n+l > maxMessage {
			break
		}
		b.WriteString(row)
		n += l
	}
	return b.String()
}
