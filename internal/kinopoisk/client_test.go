package kinopoisk

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestFilmName(t *testing.T) {
	if got := (Film{NameEn: "Inception"}).Name(); got != "Inception" {
		t.Fatalf("english fallback: %q", got)
	}
	if got := (Film{NameRu: "Начало", NameEn: "Inception"}).Name(); got != "Начало" {
		t.Fatalf("localized should win: %q", got)
	}
}

func TestShortDescription(t *testing.T) {
	f := Film{Description: "Первое. Второе предложение. Третье"}
	if got := f.ShortDescription(20); got != "Первое." {
		t.Fatalf("clip at 20: %q", got)
	}
	if got := f.ShortDescription(500); got != "Первое. Второе предложение." {
		t.Fatalf("clip at 500: %q", got)
	}
	if got := (Film{Description: "no sentence end"}).ShortDescription(500); got != "" {
		t.Fatalf("expected empty, got %q", got)
	}
}

func TestFindFilm_ParsesFirstResult(t *testing.T) {
	var gotKey, gotKeyword, gotPage string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("X-API-KEY")
		gotKeyword = r.URL.Query().Get("keyword")
		gotPage = r.URL.Query().Get("page")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"keyword":"начало","pagesCount":1,"films":[
			{"filmId":447301,"nameRu":"Начало","nameEn":"Inception","year":"2010","description":"Кобб вор.","posterUrl":"https://img/p.jpg"},
			{"filmId":1,"nameRu":"Другое"}]}`))
	}))
	defer srv.Close()

	c := New("secret", srv.URL, 5*time.Second)
	film, err := c.FindFilm(context.Background(), "начало")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if gotKey != "secret" || gotKeyword != "начало" || gotPage != "1" {
		t.Fatalf("unexpected request: key=%q keyword=%q page=%q", gotKey, gotKeyword, gotPage)
	}
	if film.ID != 447301 || film.Name() != "Начало" || film.Year != "2010" || film.PosterURL != "https://img/p.jpg" {
		t.Fatalf("unexpected film: %+v", film)
	}
}

func TestFindFilm_NotFound(t *testing.T) {
	for _, body := range []string{`{"films":[]}`, `{"keyword":"x"}`, ``} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(body))
		}))
		c := New("k", srv.URL, time.Second)
		_, err := c.FindFilm(context.Background(), "zzz")
		srv.Close()
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("body %q: want ErrNotFound, got %v", body, err)
		}
	}
}

func TestFindFilm_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := New("bad", srv.URL, time.Second).FindFilm(context.Background(), "x")
	if err == nil || errors.Is(err, ErrNotFound) {
		t.Fatalf("expected status error, got %v", err)
	}
}
