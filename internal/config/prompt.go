package config

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/huh"
)

// TokenPrompter acquires a bot token interactively. The indirection exists
// so tests can supply canned input without a real terminal.
type TokenPrompter interface {
	Token() (string, error)
}

// HuhPrompter collects the token through a terminal form with masked echo.
type HuhPrompter struct{}

// Token implements TokenPrompter.
func (HuhPrompter) Token() (string, error) {
	var token string
	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Bot Token").
			EchoMode(huh.EchoModePassword).
			Validate(func(s string) error {
				return ValidateToken(strings.TrimSpace(s))
			}).
			Value(&token),
	))
	if err := form.Run(); err != nil {
		return "", fmt.Errorf("config: token prompt: %w", err)
	}
	return strings.TrimSpace(token), nil
}

const setupHelp = `
First-time setup
================
You need a Telegram Bot Token.

1. Open https://t.me/BotFather
2. Send /newbot and follow the prompts
3. Copy the Bot Token below

`

// PromptAndSave prints the first-time setup help, prompts for a token, and
// persists it. Called only when no valid token is stored.
func PromptAndSave(path string, prompter TokenPrompter, out io.Writer) (*Credentials, error) {
	fmt.Fprint(out, setupHelp)

	token, err := prompter.Token()
	if err != nil {
		return nil, err
	}
	if err := ValidateToken(token); err != nil {
		return nil, err
	}

	creds := &Credentials{BotToken: token}
	if err := Save(path, creds); err != nil {
		return nil, err
	}
	return creds, nil
}
