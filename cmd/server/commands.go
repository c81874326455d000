package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newPollCmd(load configLoader) *cobra.Command {
	return &cobra.Command{
		Use:   "poll",
		Short: "Receive updates with long polling and serve the health check",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			a, err := newApp(ctx, cfg)
			if err != nil {
				return err
			}
			defer a.Close()
			return a.Run(ctx, modePoll)
		},
	}
}

func newWebhookCmd(load configLoader) *cobra.Command {
	var register bool

	cmd := &cobra.Command{
		Use:   "webhook",
		Short: "Serve the webhook endpoint and the health check",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			a, err := newApp(ctx, cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			if register {
				if cfg.Telegram.WebhookURL == "" {
					return errors.New("--register needs TELEGRAM_WEBHOOK_URL")
				}
				if err := a.client.SetWebhook(ctx, cfg.Telegram.WebhookURL, cfg.Telegram.WebhookSecret); err != nil {
					return fmt.Errorf("register webhook: %w", err)
				}
			}
			return a.Run(ctx, modeWebhook)
		},
	}
	cmd.Flags().BoolVar(&register, "register", false, "Call setWebhook with TELEGRAM_WEBHOOK_URL before serving.")
	return cmd
}

func newSetWebhookCmd(load configLoader) *cobra.Command {
	return &cobra.Command{
		Use:   "set-webhook [url]",
		Short: "Register the webhook URL with Telegram",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			url := cfg.Telegram.WebhookURL
			if len(args) == 1 {
				url = strings.TrimSpace(args[0])
			}
			if url == "" {
				return errors.New("webhook url is required (argument or TELEGRAM_WEBHOOK_URL)")
			}

			client, err := newTelegramClient(cfg)
			if err != nil {
				return err
			}
			if err := client.SetWebhook(cmd.Context(), url, cfg.Telegram.WebhookSecret); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "webhook set to %s\n", url)
			return nil
		},
	}
}

func newDeleteWebhookCmd(load configLoader) *cobra.Command {
	var dropPending bool

	cmd := &cobra.Command{
		Use:   "delete-webhook",
		Short: "Remove the registered webhook",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			client, err := newTelegramClient(cfg)
			if err != nil {
				return err
			}
			if err := client.DeleteWebhook(cmd.Context(), dropPending); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "webhook deleted")
			return nil
		},
	}
	cmd.Flags().BoolVar(&dropPending, "drop-pending", false, "Discard updates queued while the webhook was set.")
	return cmd
}
