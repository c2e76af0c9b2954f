package service

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

// unreachableRedis points at a port nothing listens on
func unreachableRedis() *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
}

func TestSlotLockKeyIgnoresSeconds(t *testing.T) {
	at := time.Date(2024, 6, 10, 10, 0, 0, 0, time.UTC)

	if SlotLockKey(4, at) != SlotLockKey(4, at.Add(42*time.Second)) {
		t.Fatalf("keys differ within the same minute")
	}
	if SlotLockKey(4, at) == SlotLockKey(5, at) {
		t.Fatalf("keys of different doctors collide")
	}
	if want := "slot_lock:4:1718013600"; SlotLockKey(4, at) != want {
		t.Fatalf("SlotLockKey() = %q, want %q", SlotLockKey(4, at), want)
	}
}

func TestSlotLockerProceedsWhenRedisIsDown(t *testing.T) {
	client := unreachableRedis()
	defer client.Close()

	locker := NewSlotLocker(client, silentLogger())
	release, err := locker.Lock(context.Background(), 1, time.Date(2024, 6, 10, 10, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("Lock() error = %v, want nil", err)
	}
	release()
}
