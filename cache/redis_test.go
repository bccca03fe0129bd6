package cache_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	"github.com/NeuraX-HQ/neurax-web-app/cache"
	"github.com/NeuraX-HQ/neurax-web-app/config"
)

func redisConfig(mr *miniredis.Miniredis) config.RedisConfig {
	return config.RedisConfig{Host: mr.Host(), Port: mr.Port()}
}

func TestInitRedisDisabledWithoutHost(t *testing.T) {
	t.Parallel()
	if _, err := cache.InitRedis(context.Background(), config.RedisConfig{}); !errors.Is(err, cache.ErrDisabled) {
		t.Fatalf("expected ErrDisabled, got %v", err)
	}
}

func TestRedisStore(t *testing.T) {
	t.Parallel()
	mr := miniredis.RunT(t)
	ctx := context.Background()

	client, err := cache.InitRedis(ctx, redisConfig(mr))
	if err != nil {
		t.Fatalf("InitRedis() error = %v", err)
	}
	st := cache.NewRedisStore(client, "nutritrack:kv:")
	defer st.Close()

	if _, ok, err := st.Get(ctx, "dev:auth_token"); err != nil || ok {
		t.Fatalf("Get() on missing key = ok %v, err %v", ok, err)
	}
	if err := st.Set(ctx, "dev:auth_token", "apple_mock_token"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if got, _ := mr.Get("nutritrack:kv:dev:auth_token"); got != "apple_mock_token" {
		t.Fatalf("expected prefixed key in redis, got %q", got)
	}
	val, ok, err := st.Get(ctx, "dev:auth_token")
	if err != nil || !ok || val != "apple_mock_token" {
		t.Fatalf("Get() = %q, %v, %v", val, ok, err)
	}
	if err := st.Delete(ctx, "dev:auth_token"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if mr.Exists("nutritrack:kv:dev:auth_token") {
		t.Fatal("expected key to be deleted")
	}
}

func TestCounterWindow(t *testing.T) {
	t.Parallel()
	mr := miniredis.RunT(t)
	ctx := context.Background()

	client, err := cache.InitRedis(ctx, redisConfig(mr))
	if err != nil {
		t.Fatalf("InitRedis() error = %v", err)
	}
	defer client.Close()
	counter := cache.NewCounter(client)

	for want := int64(1); want <= 3; want++ {
		got, err := counter.Increment(ctx, "rate_limit:10.0.0.1", time.Minute)
		if err != nil || got != want {
			t.Fatalf("Increment() = %d, %v, want %d", got, err, want)
		}
	}
	if ttl := mr.TTL("rate_limit:10.0.0.1"); ttl != time.Minute {
		t.Fatalf("expected window TTL of 1m, got %v", ttl)
	}

	mr.FastForward(time.Minute + time.Second)
	if got, _ := counter.Increment(ctx, "rate_limit:10.0.0.1", time.Minute); got != 1 {
		t.Fatalf("expected a fresh window after expiry, got %d", got)
	}
}
