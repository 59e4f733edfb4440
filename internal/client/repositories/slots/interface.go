package slots

import "context"

// Well-known slot keys.
const (
	KeyUser        = "user"
	KeyAccessToken = "accessToken"
	KeyDeviceID    = "deviceId"
)

// Repository is a durable key/value store of opaque slot values.
//
// Get returns (nil, nil) for an absent key. Delete is idempotent.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, keys ...string) error
	List(ctx context.Context) (map[string][]byte, error)
}
