package main

import (
	"fmt"

	"github.com/andreichenchik/telegram-post-cli/internal/history"
	"github.com/andreichenchik/telegram-post-cli/internal/telegram"
	"github.com/spf13/cobra"
)

func historyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recently posted messages",
		RunE: func(cmd *cobra.Command, _ []string) error {
			limit, _ := cmd.Flags().GetInt("limit")

			store, err := history.Open(historyPath())
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			entries, err := store.Recent(cmd.Context(), limit)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "No posts recorded.")
				return nil
			}
			for _, e := range entries {
				fmt.Fprintf(out, "%s  %-12s  %-5s  #%-8d  %s\n",
					e.PostedAt.Local().Format("2006-01-02 15:04"),
					e.Channel, e.Kind, e.MessageID, e.Preview,
				)
			}
			return nil
		},
	}
	cmd.Flags().IntP("limit", "n", 20, "Maximum number of entries to show")
	return cmd
}

func whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Verify the stored token by asking the Bot API for the bot's identity",
		RunE: func(cmd *cobra.Command, _ []string) error {
			creds, err := loadOrPromptToken(cmd)
			if err != nil {
				return err
			}

			client := telegram.NewClient(creds.BotToken, "")
			user, err := client.GetMe(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "@%s (id %d)\n", user.Username, user.ID)
			return nil
		},
	}
}
