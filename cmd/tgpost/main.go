// Package main is the entry point for the tgpost CLI.
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/andreichenchik/telegram-post-cli/internal/config"
	"github.com/andreichenchik/telegram-post-cli/internal/input"
	"github.com/andreichenchik/telegram-post-cli/internal/telegram"
	"github.com/spf13/cobra"
)

// Set by goreleaser ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Exit codes, one per failure kind. These are part of the CLI contract and
// must stay stable.
const (
	exitGeneric       = 1
	exitConfiguration = 2
	exitValidation    = 3
	exitIO            = 4
	exitNetwork       = 5
	exitAPI           = 6
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitCode(err))
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "tgpost [text]",
		Short:         "Post a message to a Telegram channel via the Bot API",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runSend,
	}
	root.Flags().String("channel", "", "Telegram channel (e.g. myChannel, @myChannel, or numeric ID)")
	_ = root.MarkFlagRequired("channel")
	root.Flags().String("image", "", "Send a photo (jpg/png/gif/webp, max 10 MB)")
	root.Flags().String("from-file", "", "Read message text from a file")
	root.Flags().String("parse-mode", "", "Message parse mode (plain, Markdown, MarkdownV2, HTML)")
	root.Flags().Bool("reset-keys", false, "Clear the saved bot token and re-prompt")
	root.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")

	root.AddCommand(versionCmd(), historyCmd(), whoamiCmd())
	return root
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("tgpost %s (commit: %s, built: %s)\n", version, commit, date)
		},
	}
}

// exitCode maps an error to its failure-kind exit code.
func exitCode(err error) int {
	var (
		readErr *input.ReadError
		netErr  *telegram.NetworkError
		apiErr  *telegram.APIError
	)

	switch {
	case errors.Is(err, input.ErrSourceConflict),
		errors.Is(err, telegram.ErrInvalidParseMode),
		errors.Is(err, config.ErrInvalidToken):
		return exitConfiguration
	case errors.Is(err, input.ErrNoContent),
		errors.Is(err, input.ErrUnsupportedImage),
		errors.Is(err, input.ErrImageTooLarge):
		return exitValidation
	case errors.As(err, &readErr):
		return exitIO
	case errors.As(err, &netErr):
		return exitNetwork
	case errors.As(err, &apiErr):
		return exitAPI
	default:
		return exitGeneric
	}
}

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// loadOrPromptToken returns stored credentials, prompting and persisting a
// token first when none (or a malformed file) is present.
func loadOrPromptToken(cmd *cobra.Command) (*config.Credentials, error) {
	path, err := config.Path()
	if err != nil {
		return nil, err
	}

	creds, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if creds == nil {
		creds, err = config.PromptAndSave(path, config.HuhPrompter{}, cmd.OutOrStdout())
		if err != nil {
			return nil, err
		}
	}
	return creds, nil
}
