package main

import (
	"github.com/spf13/cobra"

	"github.com/sarathi-rto/sarathi/internal/tui/chat"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Ask the portal's AI assistant",
	Long: `Ask the portal's AI assistant about registrations, fees, and documents.

Responses are rendered as markdown in a scrolling conversation log.`,
	RunE: runChat,
}

func runChat(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	return chat.Run(cfg)
}
