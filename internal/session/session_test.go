package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sarathi-rto/sarathi/internal/api"
	"github.com/sarathi-rto/sarathi/internal/nats"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	ns, err := nats.StartEmbeddedNATS(t.TempDir())
	require.NoError(t, err)

	nc, err := nats.ConnectInProcess(ns)
	require.NoError(t, err)

	js, err := nats.CreateJetStream(nc)
	require.NoError(t, err)

	kv, err := nats.SetupSessionKV(context.Background(), js)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = nats.Shutdown(nc, ns)
	})

	return NewStore(kv)
}

func TestLoad_NoSession(t *testing.T) {
	store := newTestStore(t)

	broker, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Nil(t, broker)
}

func TestSetLoadRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	in := &api.Broker{
		ID:            7,
		Name:          "Ramesh Kumar",
		LicenseNumber: "BRK-2024-007",
		Email:         "ramesh@example.com",
	}
	require.NoError(t, store.Set(ctx, in))

	out, err := store.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.Equal(t, in.ID, out.ID)
	assert.Equal(t, in.Name, out.Name)
	assert.Equal(t, in.LicenseNumber, out.LicenseNumber)
}

func TestClear(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, &api.Broker{ID: 1, Name: "A"}))
	require.NoError(t, store.Clear(ctx))

	broker, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, broker)

	// Clearing twice is fine
	require.NoError(t, store.Clear(ctx))
}
