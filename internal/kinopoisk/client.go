package kinopoisk

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

// ErrNotFound is returned when the keyword search yields no films.
var ErrNotFound = errors.New("film not found")

var errMalformed = errors.New("kinopoisk: malformed json")

// Film is the first match of a keyword search.
type Film struct {
	ID          int64
	NameRu      string
	NameEn      string
	Year        string
	Description string
	PosterURL   string
}

// Name prefers the localized title and falls back to the English one.
func (f Film) Name() string {
	if f.NameRu != "" {
		return f.NameRu
	}
	return f.NameEn
}

// ShortDescription clips the description to limit characters and then cuts it
// back to the last full sentence. Text without a sentence end yields "".
func (f Film) ShortDescription(limit int) string {
	r := []rune(f.Description)
	if limit >= 0 && len(r) > limit {
		r = r[:limit]
	}
	clipped := string(r)
	i := strings.LastIndex(clipped, ".")
	if i < 0 {
		return ""
	}
	return clipped[:i+1]
}

type Client struct {
	token   string
	baseURL string
	http    *http.Client
}

func New(token, baseURL string, timeout time.Duration) *Client {
	return &Client{
		token:   token,
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// FindFilm searches by keyword and returns the first film of the first page.
func (c *Client) FindFilm(ctx context.Context, text string) (*Film, error) {
	q := url.Values{}
	q.Set("keyword", text)
	q.Set("page", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("X-API-KEY", c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("kinopoisk request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read kinopoisk response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("kinopoisk status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return parseFirstFilm(body)
}

func parseFirstFilm(body []byte) (*Film, error) {
	if len(body) == 0 {
		return nil, ErrNotFound
	}
	if !gjson.ValidBytes(body) {
		return nil, errMalformed
	}
	first := gjson.GetBytes(body, "films.0")
	if !first.Exists() || !first.IsObject() {
		return nil, ErrNotFound
	}
	return &Film{
		ID:          first.Get("filmId").Int(),
		NameRu:      first.Get("nameRu").String(),
		NameEn:      first.Get("nameEn").String(),
		Year:        first.Get("year").String(),
		Description: first.Get("description").String(),
		PosterURL:   first.Get("posterUrl").String(),
	}, nil
}
