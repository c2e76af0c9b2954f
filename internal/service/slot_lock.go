package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// ErrSlotLocked is returned when another request is booking the same doctor slot
var ErrSlotLocked = errors.New("slot is being booked by another request")

const (
	// Redis key prefix for doctor slot locks
	RedisSlotLockKeyPrefix = "slot_lock:"

	// How long a lock survives if its holder never releases it
	slotLockTTL = 10 * time.Second
)

// releaseSlotLockScript deletes the lock only if it is still held by the caller's token.
var releaseSlotLockScript = redis.NewScript(`
	if redis.call('GET', KEYS[1]) == ARGV[1] then
		return redis.call('DEL', KEYS[1])
	end
	return 0
`)

// SlotLocker serializes booking requests per doctor slot.
// The store's unique index remains the authoritative guard.
type SlotLocker interface {
	// Lock acquires the lock for (doctorID, start minute). The returned func releases it.
	Lock(ctx context.Context, doctorID int, start time.Time) (func(), error)
}

type redisSlotLocker struct {
	redisClient *redis.Client
	log         *logrus.Logger
}

func NewSlotLocker(redisClient *redis.Client, log *logrus.Logger) SlotLocker {
	return &redisSlotLocker{
		redisClient: redisClient,
		log:         log,
	}
}

func SlotLockKey(doctorID int, start time.Time) string {
	return fmt.Sprintf("%s%d:%d", RedisSlotLockKeyPrefix, doctorID, start.Truncate(time.Minute).Unix())
}

// Lock returns ErrSlotLocked on contention. Redis failures are logged and the
// request proceeds unlocked.
func (l *redisSlotLocker) Lock(ctx context.Context, doctorID int, start time.Time) (func(), error) {
	key := SlotLockKey(doctorID, start)
	token := uuid.NewString()

	ok, err := l.redisClient.SetNX(ctx, key, token, slotLockTTL).Result()
	if err != nil {
		l.log.Warnf("Failed to acquire slot lock %s: %+v", key, err)
		return func() {}, nil
	}
	if !ok {
		return nil, ErrSlotLocked
	}

	release := func() {
		// The request context may already be canceled by the time we release.
		releaseCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := releaseSlotLockScript.Run(releaseCtx, l.redisClient, []string{key}, token).Err(); err != nil {
			l.log.Warnf("Failed to release slot lock %s: %+v", key, err)
		}
	}
	return release, nil
}
