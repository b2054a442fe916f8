package config

import (
	"testing"
	"time"
)

func TestParse_Defaults(t *testing.T) {
	t.Setenv("BOT_TOKEN", "123:abc")
	cfg, err := Parse()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.MaxCaptionSize != 1024 || cfg.MaxMessageSize != 4096 {
		t.Fatalf("unexpected size limits: %+v", cfg)
	}
	if cfg.DescriptionClip != 500 || cfg.MaxLinks != 5 {
		t.Fatalf("unexpected formatting defaults: %+v", cfg)
	}
	if cfg.HTTPTimeout != 30*time.Second {
		t.Fatalf("unexpected timeout: %v", cfg.HTTPTimeout)
	}
	if cfg.DatabasePath != "data/cinema.db" {
		t.Fatalf("unexpected db path: %q", cfg.DatabasePath)
	}
}

func TestParse_AllowedUsersAndOverrides(t *testing.T) {
	t.Setenv("BOT_TOKEN", "123:abc")
	t.Setenv("ALLOWED_USERS", "1:2:3")
	t.Setenv("MAX_LINKS", "3")
	cfg, err := Parse()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(cfg.AllowedUsers) != 3 || cfg.AllowedUsers[2] != 3 {
		t.Fatalf("allowed users not parsed: %v", cfg.AllowedUsers)
	}
	if cfg.MaxLinks != 3 {
		t.Fatalf("override ignored: %d", cfg.MaxLinks)
	}
}

func TestParse_RequiresBotToken(t *testing.T) {
	t.Setenv("BOT_TOKEN", "")
	if _, err := Parse(); err == nil {
		t.Fatalf("expected error without BOT_TOKEN")
	}
}
