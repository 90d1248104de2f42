package nats

import (
	"context"

	"github.com/nats-io/nats.go/jetstream"
)

const sessionBucket = "sarathi_session"

// SetupSessionKV creates or opens the key-value bucket holding the broker
// login session. The bucket is file-backed so a login survives restarts.
func SetupSessionKV(ctx context.Context, js jetstream.JetStream) (jetstream.KeyValue, error) {
	return js.CreateOrUpdateKeyValue(ctx, jetstream.KeyValueConfig{
		Bucket:  sessionBucket,
		Storage: jetstream.FileStorage,
		History: 1,
	})
}
