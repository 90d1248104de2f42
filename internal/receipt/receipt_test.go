package receipt

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sarathi-rto/sarathi/internal/api"
)

func TestSave(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path, err := Save(dir, 42, &api.PaymentResponse{
		PaymentID:     7,
		TransactionID: "TXN 2026/08-0042",
		Amount:        3495,
		Status:        "Completed",
	})
	require.NoError(t, err)

	// Awkward transaction ids become safe file names
	assert.Equal(t, "receipt-app-42-txn-2026-08-0042.txt", filepath.Base(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Application:    #42")
	assert.Contains(t, string(data), "TXN 2026/08-0042")
	assert.Contains(t, string(data), "₹3495.00")
}

func TestSaveCreatesReceiptsDir(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "nested")
	path, err := Save(dir, 1, &api.PaymentResponse{TransactionID: "abc"})
	require.NoError(t, err)
	assert.FileExists(t, path)
}
