package main

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/andreichenchik/telegram-post-cli/internal/config"
	"github.com/andreichenchik/telegram-post-cli/internal/history"
	"github.com/andreichenchik/telegram-post-cli/internal/input"
	"github.com/andreichenchik/telegram-post-cli/internal/telegram"
	"github.com/spf13/cobra"
)

// previewRunes caps the text excerpt stored in the send history.
const previewRunes = 80

func runSend(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	channelFlag, _ := flags.GetString("channel")
	imagePath, _ := flags.GetString("image")
	fromFile, _ := flags.GetString("from-file")
	parseModeFlag, _ := flags.GetString("parse-mode")
	resetKeys, _ := flags.GetBool("reset-keys")
	verbose, _ := flags.GetBool("verbose")

	logger := newLogger(verbose)

	// Flag-level validation happens before prompting and before any network I/O.
	parseMode, err := telegram.ParseModeFrom(parseModeFlag)
	if err != nil {
		return err
	}
	if fromFile != "" && len(args) > 0 {
		return input.ErrSourceConflict
	}

	if resetKeys {
		path, err := config.Path()
		if err != nil {
			return err
		}
		if err := config.Reset(path); err != nil {
			return err
		}
	}

	creds, err := loadOrPromptToken(cmd)
	if err != nil {
		return err
	}

	inline := ""
	if len(args) > 0 {
		inline = args[0]
	}
	post, err := input.Resolve(input.Options{
		Inline:    inline,
		InlineSet: len(args) > 0,
		FromFile:  fromFile,
		Image:     imagePath,
		Stdin:     cmd.InOrStdin(),
		Prompt:    cmd.OutOrStdout(),
	})
	if err != nil {
		return err
	}

	channel := telegram.NormalizeChannel(channelFlag)
	client := telegram.NewClient(creds.BotToken, "")
	ctx := cmd.Context()

	var (
		msg  *telegram.Message
		kind string
	)
	if post.Image != "" {
		kind = history.KindPhoto
		logger.Debug("sending photo", "channel", channel, "image", post.Image)
		msg, err = client.SendPhoto(ctx, telegram.SendPhotoRequest{
			ChatID:    telegram.ChatID(channel),
			Photo:     post.Image,
			Caption:   post.Text,
			ParseMode: parseMode,
		})
	} else {
		kind = history.KindText
		logger.Debug("sending message", "channel", channel)
		msg, err = client.SendMessage(ctx, telegram.SendMessageRequest{
			ChatID:    telegram.ChatID(channel),
			Text:      post.Text,
			ParseMode: parseMode,
		})
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if url := telegram.PostURL(channel, msg.MessageID); url != "" {
		fmt.Fprintf(out, "Message posted!\n%s\n", url)
	} else {
		fmt.Fprintf(out, "Message posted! (id %d)\n", msg.MessageID)
	}

	recordPost(ctx, logger, history.Entry{
		Channel:   channel,
		Kind:      kind,
		Preview:   preview(post.Text),
		MessageID: msg.MessageID,
	})
	return nil
}

// recordPost logs the send to the local history. Best-effort: a failure here
// never affects the command's outcome.
func recordPost(ctx context.Context, logger *slog.Logger, e history.Entry) {
	store, err := history.Open(historyPath())
	if err != nil {
		logger.Warn("send history unavailable", "error", err)
		return
	}
	defer func() { _ = store.Close() }()

	if err := store.Record(ctx, e); err != nil {
		logger.Warn("failed to record post", "error", err)
	}
}

func historyPath() string {
	return filepath.Join(config.DataDir(), "history.db")
}

// preview flattens and truncates message text for the history log.
func preview(text string) string {
	text = strings.Join(strings.Fields(text), " ")
	runes := []rune(text)
	if len(runes) <= previewRunes {
		return text
	}
	return string(runes[:previewRunes-3]) + "..."
}
