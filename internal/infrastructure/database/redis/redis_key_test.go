package redis

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
)

func newTestClient(t *testing.T) (*Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)

	port, err := strconv.Atoi(mr.Port())
	if err != nil {
		t.Fatalf("invalid miniredis port: %v", err)
	}

	client, err := NewClient(&RedisConfig{Host: mr.Host(), Port: port}, NewRedisKeyGenerator("test"))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	t.Cleanup(client.Close)
	return client, mr
}

func TestGenerateKeyFormat(t *testing.T) {
	gen := NewRedisKeyGenerator("development")

	key, err := gen.GenerateKey(PatternLoginAttempts, "nurse@hospital.test")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if key != "pharma_prep_development_auth_login_attempts:nurse@hospital.test" {
		t.Fatalf("unexpected key: %s", key)
	}

	key, err = gen.GenerateKey(PatternPreparationCounts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if key != "pharma_prep_development_cache_preparation_counts" {
		t.Fatalf("unexpected singleton key: %s", key)
	}
}

func TestGenerateKeyRejectsUnknownPatternAndBadChars(t *testing.T) {
	gen := NewRedisKeyGenerator("test")

	if _, err := gen.GenerateKey("unknown"); err == nil {
		t.Fatal("expected error for unknown pattern")
	}
	if _, err := gen.GenerateKey(PatternLoginAttempts, "a b"); err == nil {
		t.Fatal("expected error for key with spaces")
	}
}

func TestSetTTLOverridesPattern(t *testing.T) {
	gen := NewRedisKeyGenerator("test")
	if err := gen.SetTTL(PatternPreparationCounts, 5*time.Second); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ttl, _ := gen.GetTTL(PatternPreparationCounts)
	if ttl != 5*time.Second {
		t.Fatalf("expected 5s, got %v", ttl)
	}
	if err := gen.SetTTL("missing", time.Second); err == nil {
		t.Fatal("expected error for unknown pattern")
	}
}

func TestIncrWithPatternSetsTTLOnFirstIncrement(t *testing.T) {
	client, mr := newTestClient(t)
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		count, err := client.IncrWithPattern(ctx, PatternLoginAttempts, "user@test.local")
		if err != nil {
			t.Fatalf("incr: %v", err)
		}
		if count != int64(i) {
			t.Fatalf("expected %d, got %d", i, count)
		}
	}

	key, _ := client.GenerateKey(PatternLoginAttempts, "user@test.local")
	if ttl := mr.TTL(key); ttl != 15*time.Minute {
		t.Fatalf("expected 15m ttl, got %v", ttl)
	}

	mr.FastForward(16 * time.Minute)
	if _, err := client.Get(ctx, key); !IsNil(err) {
		t.Fatalf("expected key to expire, got %v", err)
	}
}

func TestSetAndGetWithPattern(t *testing.T) {
	client, _ := newTestClient(t)
	ctx := context.Background()

	if err := client.SetWithPattern(ctx, PatternPreparationCounts, `{"total":3}`); err != nil {
		t.Fatalf("set: %v", err)
	}
	value, err := client.GetWithPattern(ctx, PatternPreparationCounts)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if value != `{"total":3}` {
		t.Fatalf("unexpected value %q", value)
	}

	if err := client.DelWithPattern(ctx, PatternPreparationCounts); err != nil {
		t.Fatalf("del: %v", err)
	}
	if _, err := client.GetWithPattern(ctx, PatternPreparationCounts); !IsNil(err) {
		t.Fatalf("expected nil after delete, got %v", err)
	}
}
