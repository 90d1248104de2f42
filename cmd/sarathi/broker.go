package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/sarathi-rto/sarathi/internal/tui/broker"
)

var brokerFlags struct {
	dataDir string
}

var brokerCmd = &cobra.Command{
	Use:   "broker",
	Short: "Open the broker console",
	Long: `Open the broker console.

Log in with a license number to see your applications, complaints, and
support info, and to run the job workflow: start a job, verify the OTP,
estimate fees, take payment, file complaints, and check documents for
forgery. Sessions persist across restarts in the data directory.`,
	RunE: runBroker,
}

func init() {
	brokerCmd.Flags().StringVar(&brokerFlags.dataDir, "data-dir", "", "Data directory for session storage (default: config data_dir)")
}

func runBroker(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	dataDir := os.Getenv("SARATHI_DATA_DIR")
	if brokerFlags.dataDir != "" {
		dataDir = brokerFlags.dataDir
	}
	if dataDir != "" {
		cfg.DataDir = dataDir
	}

	return broker.Run(cfg)
}
