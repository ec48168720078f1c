package main

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/andreichenchik/telegram-post-cli/internal/config"
	"github.com/andreichenchik/telegram-post-cli/internal/input"
	"github.com/andreichenchik/telegram-post-cli/internal/telegram"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"source conflict", input.ErrSourceConflict, exitConfiguration},
		{"invalid parse mode", fmt.Errorf("%w: %q", telegram.ErrInvalidParseMode, "fancy"), exitConfiguration},
		{"invalid token", config.ErrInvalidToken, exitConfiguration},
		{"no content", input.ErrNoContent, exitValidation},
		{"unsupported image", fmt.Errorf("%w: %q", input.ErrUnsupportedImage, ".pdf"), exitValidation},
		{"image too large", input.ErrImageTooLarge, exitValidation},
		{"unreadable file", &input.ReadError{Path: "x", Err: errors.New("permission denied")}, exitIO},
		{"transport failure", &telegram.NetworkError{Method: "sendMessage", Err: errors.New("refused")}, exitNetwork},
		{"api rejection", &telegram.APIError{Code: 403, Description: "Forbidden"}, exitAPI},
		{"anything else", errors.New("boom"), exitGeneric},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := exitCode(tt.err); got != tt.want {
				t.Errorf("exitCode(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestPreview(t *testing.T) {
	if got := preview("short message"); got != "short message" {
		t.Errorf("preview() = %q, want unchanged", got)
	}

	multi := "line one\nline two\t tabbed"
	if got := preview(multi); got != "line one line two tabbed" {
		t.Errorf("preview() = %q, want whitespace flattened", got)
	}

	long := strings.Repeat("a", 200)
	got := preview(long)
	if len([]rune(got)) != previewRunes {
		t.Errorf("len(preview) = %d, want %d", len([]rune(got)), previewRunes)
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("preview() = %q, want truncation marker", got)
	}
}
