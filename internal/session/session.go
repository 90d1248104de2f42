// Package session persists the broker login across runs.
//
// The web portal this client talks to keeps the logged-in broker in two
// browser storage slots, one holding the full broker record and one holding
// just the id. The same shape is kept here, but wrapped behind an explicit
// store so callers never touch raw keys.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/nats-io/nats.go/jetstream"
	"github.com/sarathi-rto/sarathi/internal/api"
	"github.com/sarathi-rto/sarathi/internal/logger"
)

const (
	keyBroker   = "broker"
	keyBrokerID = "broker_id"
)

// Store reads and writes the broker session in a key-value bucket.
type Store struct {
	kv jetstream.KeyValue
}

// NewStore wraps a key-value bucket as a session store.
func NewStore(kv jetstream.KeyValue) *Store {
	return &Store{kv: kv}
}

// Load returns the persisted broker, or (nil, nil) when no session exists.
// A corrupt record is treated as no session and cleared.
func (s *Store) Load(ctx context.Context) (*api.Broker, error) {
	entry, err := s.kv.Get(ctx, keyBroker)
	if err != nil {
		if errors.Is(err, jetstream.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("load session: %w", err)
	}

	var broker api.Broker
	if err := json.Unmarshal(entry.Value(), &broker); err != nil {
		logger.Warn("Discarding corrupt session record: %v", err)
		_ = s.Clear(ctx)
		return nil, nil
	}
	return &broker, nil
}

// Set persists the broker as the current session.
func (s *Store) Set(ctx context.Context, broker *api.Broker) error {
	data, err := json.Marshal(broker)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	if _, err := s.kv.Put(ctx, keyBroker, data); err != nil {
		return fmt.Errorf("store session: %w", err)
	}
	if _, err := s.kv.Put(ctx, keyBrokerID, []byte(strconv.Itoa(broker.ID))); err != nil {
		return fmt.Errorf("store session id: %w", err)
	}
	logger.Info("Broker session stored: id=%d", broker.ID)
	return nil
}

// Clear removes the session. Clearing an absent session is not an error.
func (s *Store) Clear(ctx context.Context) error {
	for _, key := range []string{keyBroker, keyBrokerID} {
		if err := s.kv.Delete(ctx, key); err != nil && !errors.Is(err, jetstream.ErrKeyNotFound) {
			return fmt.Errorf("clear session: %w", err)
		}
	}
	return nil
}
