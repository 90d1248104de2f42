// Package receipt writes plain-text payment receipts under the data dir.
package receipt

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gosimple/slug"

	"github.com/sarathi-rto/sarathi/internal/api"
)

// Save writes a receipt for a processed payment and returns its path.
// File names are slugified from the application id and transaction id so
// they stay filesystem-safe whatever the backend puts in TransactionID.
func Save(dataDir string, applicationID int, resp *api.PaymentResponse) (string, error) {
	dir := filepath.Join(dataDir, "receipts")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating receipts dir: %w", err)
	}

	name := slug.Make(fmt.Sprintf("receipt-app-%d-%s", applicationID, resp.TransactionID)) + ".txt"
	path := filepath.Join(dir, name)

	var b strings.Builder
	b.WriteString("SARATHI PAYMENT RECEIPT\n")
	b.WriteString("=======================\n\n")
	fmt.Fprintf(&b, "Application:    #%d\n", applicationID)
	fmt.Fprintf(&b, "Payment ID:     %d\n", resp.PaymentID)
	fmt.Fprintf(&b, "Transaction:    %s\n", resp.TransactionID)
	fmt.Fprintf(&b, "Amount:         ₹%.2f\n", resp.Amount)
	fmt.Fprintf(&b, "Status:         %s\n", resp.Status)
	fmt.Fprintf(&b, "Issued:         %s\n", time.Now().Format(time.RFC3339))

	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return "", fmt.Errorf("writing receipt: %w", err)
	}
	return path, nil
}
