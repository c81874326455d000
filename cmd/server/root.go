package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"translatix/backend/internal/config"
	"translatix/backend/internal/logger"
)

func newRootCmd() *cobra.Command {
	var envFile string

	cmd := &cobra.Command{
		Use:           "translatix",
		Short:         "Telegram bot that queues Word documents for translation",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	cmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Optional .env file loaded before reading the environment.")

	load := func() (config.Config, error) {
		if err := config.LoadEnvFile(envFile); err != nil {
			return config.Config{}, err
		}
		cfg, err := config.Load()
		if err != nil {
			return config.Config{}, err
		}
		logger.Init(logger.ParseLevel(cfg.LogLevel))
		return cfg, nil
	}

	cmd.AddCommand(newPollCmd(load))
	cmd.AddCommand(newWebhookCmd(load))
	cmd.AddCommand(newSetWebhookCmd(load))
	cmd.AddCommand(newDeleteWebhookCmd(load))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

type configLoader func() (config.Config, error)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", config.AppName, config.AppVersion)
		},
	}
}
