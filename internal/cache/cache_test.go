package cache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

// unreachableRedis returns a client whose calls fail fast; the L1 tier
// must keep working without L2.
func unreachableRedis() *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 10 * time.Millisecond,
		ReadTimeout: 10 * time.Millisecond,
		MaxRetries:  -1,
	})
}

type payload struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

func TestCache_SetThenGet(t *testing.T) {
	c := NewMultiTierCache(4, unreachableRedis(), time.Minute)
	ctx := context.Background()

	// L2 write fails, but L1 must still hold the value.
	_ = c.SetJSON(ctx, "k", payload{Name: "Laptop", Price: 999.99})

	var got payload
	if !c.GetJSON(ctx, "k", &got) {
		t.Fatal("expected a cache hit after SetJSON")
	}
	if got.Name != "Laptop" || got.Price != 999.99 {
		t.Errorf("unexpected cached value: %+v", got)
	}
}

func TestCache_MissOnUnknownKey(t *testing.T) {
	c := NewMultiTierCache(4, unreachableRedis(), time.Minute)

	var got payload
	if c.GetJSON(context.Background(), "missing", &got) {
		t.Error("expected a miss for an unknown key")
	}
}

func TestCache_DeleteEvicts(t *testing.T) {
	c := NewMultiTierCache(4, unreachableRedis(), time.Minute)
	ctx := context.Background()

	_ = c.SetJSON(ctx, "k", payload{Name: "Laptop"})
	_ = c.Delete(ctx, "k")

	var got payload
	if c.GetJSON(ctx, "k", &got) {
		t.Error("expected a miss after Delete")
	}
}
