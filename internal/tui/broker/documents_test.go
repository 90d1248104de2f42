package broker

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sarathi-rto/sarathi/internal/api"
)

func TestDocumentsStaleResultDiscarded(t *testing.T) {
	t.Parallel()

	m := NewDocumentsModal(api.New("http://localhost:0"))
	m.token = 2
	m.checking = true

	// A slow response from an earlier check arrives after a newer one
	// was issued: it must not land.
	cmd, closed := m.Update(ForgeryResultMsg{
		Token:  1,
		Result: &api.ForgeryResult{IsForged: true},
	})
	assert.Nil(t, cmd)
	assert.False(t, closed)
	assert.Nil(t, m.result)
	assert.True(t, m.checking, "stale result must not end the in-flight check")

	// The current token lands normally
	m.Update(ForgeryResultMsg{
		Token:  2,
		Result: &api.ForgeryResult{IsForged: false, Confidence: 0.97},
	})
	require.NotNil(t, m.result)
	assert.False(t, m.result.IsForged)
	assert.False(t, m.checking)
}

func TestDocumentsCheckSendsBase64(t *testing.T) {
	content := []byte("fake image bytes")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, base64.StdEncoding.EncodeToString(content), body["image"])
		json.NewEncoder(w).Encode(api.ForgeryResult{
			IsForged:   true,
			Confidence: 0.82,
			Issues:     []string{"Inconsistent fonts"},
		})
	}))
	defer srv.Close()

	path := filepath.Join(t.TempDir(), "doc.jpg")
	require.NoError(t, os.WriteFile(path, content, 0644))

	m := NewDocumentsModal(api.New(srv.URL))
	m.pathInput.SetValue(path)

	cmd, _ := m.Update(key("enter"))
	require.NotNil(t, cmd)
	assert.Equal(t, 1, m.token)

	m.Update(cmd())
	require.NotNil(t, m.result)
	assert.True(t, m.result.IsForged)
	assert.Contains(t, m.View(), "Inconsistent fonts")
}

func TestDocumentsMissingFile(t *testing.T) {
	t.Parallel()

	m := NewDocumentsModal(api.New("http://localhost:0"))
	m.pathInput.SetValue("/nonexistent/file.jpg")

	cmd, _ := m.Update(key("enter"))
	assert.Nil(t, cmd)
	assert.NotEmpty(t, m.errMsg)
	assert.Equal(t, 0, m.token, "failed reads must not burn a token")
}
