package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/sarathi-rto/sarathi/internal/config"
	"github.com/sarathi-rto/sarathi/internal/logger"
	"github.com/sarathi-rto/sarathi/internal/tui/theme"
)

const (
	logoText1 = "█▀ ▄▀█ █▀█ ▄▀█ ▀█▀ █ █ ▀"
	logoText2 = "▄█ █▀█ █▀▄ █▀█  █  █▀█ █"
)

// Version set via ldflags during build
var version = "dev"

var rootFlags struct {
	apiURL string
}

func main() {
	// Ensure logger is closed on exit
	defer func() { _ = logger.Close() }()

	if err := fang.Execute(context.Background(), rootCmd, fang.WithVersion(version)); err != nil {
		logger.Error("Command execution failed: %v", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "sarathi",
	Short: "Terminal client for the vehicle-registration portal",
}

// renderLogo creates the logo with gradient colors
func renderLogo() string {
	t := theme.NewCatppuccinMocha()
	line1 := theme.ApplyGradient(logoText1, t.Primary, t.Secondary)
	line2 := theme.ApplyGradient(logoText2, t.Primary, t.Secondary)
	return strings.Join([]string{line1, line2}, "\n")
}

func init() {
	rootCmd.Long = renderLogo() + `

sarathi is a terminal client for the vehicle-registration portal. Citizens
file applications through a guided wizard, brokers run their job workflow
(start job, OTP, fees, payment, complaints, document checks), admins monitor
analytics and review applications, and anyone can ask the AI assistant.

All data lives in the portal's backend API; sarathi is a thin client.`

	rootCmd.PersistentFlags().StringVar(&rootFlags.apiURL, "api-url", "", "Backend API base URL (overrides config)")

	rootCmd.AddCommand(applyCmd)
	rootCmd.AddCommand(brokerCmd)
	rootCmd.AddCommand(adminCmd)
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(setupCmd)
}

// loadConfig loads configuration and applies command-line overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if rootFlags.apiURL != "" {
		cfg.APIBaseURL = rootFlags.apiURL
	}
	return cfg, nil
}
