//go:generate go run go.uber.org/mock/mockgen -source=selector.go -destination=mock_selector_test.go -package=libertybans
package libertybans

import (
	"context"
	"errors"
	"fmt"
	"net/netip"
	"strconv"
	"svc-mute/integrations"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	uuidKeyPrefix    = "libertybans:mute:uuid:"
	addressKeyPrefix = "libertybans:mute:addr:"
)

// Selector is the asynchronous punishment lookup of LibertyBans: it answers
// whether an active mute applies to the uuid or the address, on a channel
// delivering exactly one verdict.
type Selector interface {
	SelectActiveMute(ctx context.Context, id uuid.UUID, address netip.Addr) <-chan integrations.Verdict
}

// RedisSelector reads the punishments LibertyBans mirrors into Redis.
// Each key holds the end of the mute in unix millis, 0 meaning permanent.
type RedisSelector struct {
	client *redis.Client
	clock  func() time.Time
}

func NewRedisSelector(client *redis.Client) *RedisSelector {
	return &RedisSelector{client: client, clock: time.Now}
}

func UUIDKey(id uuid.UUID) string {
	return uuidKeyPrefix + id.String()
}

func AddressKey(address netip.Addr) string {
	return addressKeyPrefix + address.String()
}

func (s *RedisSelector) SelectActiveMute(ctx context.Context, id uuid.UUID, address netip.Addr) <-chan integrations.Verdict {
	return integrations.Go(ctx, func(ctx context.Context) (bool, error) {
		keys := []string{UUIDKey(id)}
		if address.IsValid() {
			keys = append(keys, AddressKey(address))
		}
		values, err := s.client.MGet(ctx, keys...).Result()
		if err != nil && !errors.Is(err, redis.Nil) {
			return false, fmt.Errorf("libertybans lookup: %w", err)
		}
		now := s.clock().UnixMilli()
		for _, v := range values {
			active, err := isActive(v, now)
			if err != nil {
				return false, err
			}
			if active {
				return true, nil
			}
		}
		return false, nil
	})
}

func isActive(value any, now int64) (bool, error) {
	raw, ok := value.(string)
	if !ok {
		// nil for a missing key
		return false, nil
	}
	end, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return false, fmt.Errorf("libertybans record %q: %w", raw, err)
	}
	return end == 0 || end > now, nil
}
