package main

import (
	"github.com/spf13/cobra"

	"github.com/sarathi-rto/sarathi/internal/tui/applywizard"
)

var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "File a new vehicle-registration application",
	Long: `File a new vehicle-registration application through a guided wizard.

The wizard walks through personal info, broker selection, application
details, and a final review before submitting to the portal.`,
	RunE: runApply,
}

func runApply(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	return applywizard.Run(cfg)
}
