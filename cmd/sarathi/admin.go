package main

import (
	"github.com/spf13/cobra"

	"github.com/sarathi-rto/sarathi/internal/tui/admin"
)

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Open the admin dashboard",
	Long: `Open the admin dashboard.

Shows the platform analytics snapshot and the application queue, with
fraud-flagged applications highlighted. Applications can be approved or
rejected (with a reason) from the list.`,
	RunE: runAdmin,
}

func runAdmin(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	return admin.Run(cfg)
}
