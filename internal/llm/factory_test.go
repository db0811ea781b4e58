package llm

import (
	"strings"
	"testing"
)

func TestNewProvider_DisabledWhenEmpty(t *testing.T) {
	p, err := NewProvider(Config{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p != nil {
		t.Errorf("expected nil provider when disabled, got %v", p)
	}
}

func TestNewProvider_OpenAIRequiresKey(t *testing.T) {
	_, err := NewProvider(Config{Provider: "openai"})
	if err == nil || !strings.Contains(err.Error(), "API key") {
		t.Errorf("expected API key error, got %v", err)
	}

	p, err := NewProvider(Config{Provider: "openai", APIKey: "sk-test"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Name() != "openai" {
		t.Errorf("unexpected provider name: %s", p.Name())
	}
}

func TestNewProvider_OllamaNeedsNoKey(t *testing.T) {
	p, err := NewProvider(Config{Provider: "ollama"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Name() != "ollama" {
		t.Errorf("unexpected provider name: %s", p.Name())
	}
}

func TestNewProvider_UnknownProvider(t *testing.T) {
	_, err := NewProvider(Config{Provider: "gemini-pro-max"})
	if err == nil || !strings.Contains(err.Error(), "unknown LLM provider") {
		t.Errorf("expected unknown provider error, got %v", err)
	}
}
