package telegram

import (
	"fmt"
	"strings"
)

// ParseMode selects how Telegram interprets message formatting.
type ParseMode string

// Parse modes accepted by the Bot API. The zero value means plain text and
// omits the parse_mode field entirely.
const (
	ParseModePlain      ParseMode = ""
	ParseModeMarkdown   ParseMode = "Markdown"
	ParseModeMarkdownV2 ParseMode = "MarkdownV2"
	ParseModeHTML       ParseMode = "HTML"
)

// ParseModeFrom validates a user-supplied parse mode string. "plain" and the
// empty string both map to ParseModePlain.
func ParseModeFrom(s string) (ParseMode, error) {
	switch s {
	case "", "plain":
		return ParseModePlain, nil
	case "Markdown":
		return ParseModeMarkdown, nil
	case "MarkdownV2":
		return ParseModeMarkdownV2, nil
	case "HTML":
		return ParseModeHTML, nil
	default:
		return "", fmt.Errorf("%w: %q (valid: plain, Markdown, MarkdownV2, HTML)", ErrInvalidParseMode, s)
	}
}

// NormalizeChannel strips one leading "@" from a channel identifier,
// producing the canonical form used throughout the tool.
func NormalizeChannel(channel string) string {
	return strings.TrimPrefix(channel, "@")
}

// ChatID converts a normalized channel identifier into the chat_id value the
// Bot API expects: "@username" for public channels, numeric ids unchanged.
func ChatID(channel string) string {
	if isNumericID(channel) {
		return channel
	}
	return "@" + channel
}

// PostURL returns the public t.me link for a posted message, or "" when the
// channel is addressed by numeric id and no public URL can be derived.
func PostURL(channel string, messageID int) string {
	if isNumericID(channel) {
		return ""
	}
	return fmt.Sprintf("https://t.me/%s/%d", channel, messageID)
}

func isNumericID(s string) bool {
	s = strings.TrimPrefix(s, "-")
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
