package config

import (
	"io"
	"log"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(log.New(io.Discard, "", 0))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("expected default addr, got %q", cfg.HTTPAddr)
	}
	if cfg.SlotCapacity != 2 {
		t.Fatalf("expected default capacity 2, got %d", cfg.SlotCapacity)
	}
	if cfg.AMQPExchange == "" || cfg.NotifyQueue == "" {
		t.Fatalf("expected broker defaults, got %q / %q", cfg.AMQPExchange, cfg.NotifyQueue)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9999")
	t.Setenv("SLOT_CAPACITY", "5")
	t.Setenv("CORS_ORIGINS", "http://a.example, http://b.example, ")

	cfg, err := Load(log.New(io.Discard, "", 0))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.HTTPAddr != ":9999" {
		t.Fatalf("expected :9999, got %q", cfg.HTTPAddr)
	}
	if cfg.SlotCapacity != 5 {
		t.Fatalf("expected capacity 5, got %d", cfg.SlotCapacity)
	}

	origins := cfg.CORSOriginList()
	if len(origins) != 2 || origins[0] != "http://a.example" || origins[1] != "http://b.example" {
		t.Fatalf("unexpected origins: %v", origins)
	}
}
