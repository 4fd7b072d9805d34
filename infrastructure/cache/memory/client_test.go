package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/sgacode/rss-finder/core/interfaces"
)

func TestNewMemoryCache(t *testing.T) {
	cache := NewMemoryCache(0)

	if cache == nil {
		t.Fatal("NewMemoryCache returned nil")
	}
	if cache.Len() != 0 {
		t.Errorf("Len() = %d, want 0", cache.Len())
	}
}

func TestMemoryCache_Get_ExistingKey(t *testing.T) {
	cache := NewMemoryCache(time.Minute)
	ctx := context.Background()

	key := "feed:valid:http://example.com/rss"
	value := []byte("1")
	if err := cache.Set(ctx, key, value, time.Hour); err != nil {
		t.Fatalf("Failed to set value: %v", err)
	}

	got, err := cache.Get(ctx, key)
	if err != nil {
		t.Errorf("Get returned error: %v", err)
	}
	if string(got) != string(value) {
		t.Errorf("Get returned %s, want %s", string(got), string(value))
	}
}

func TestMemoryCache_Get_NonExistentKey(t *testing.T) {
	cache := NewMemoryCache(time.Minute)

	got, err := cache.Get(context.Background(), "non-existent")

	if !errors.Is(err, interfaces.ErrCacheMiss) {
		t.Errorf("Get error = %v, want ErrCacheMiss", err)
	}
	if got != nil {
		t.Error("Get should return nil value for non-existent key")
	}
}

func TestMemoryCache_Expiration(t *testing.T) {
	cache := NewMemoryCache(time.Minute)
	ctx := context.Background()

	if err := cache.Set(ctx, "short", []byte("x"), 20*time.Millisecond); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}
	if err := cache.Set(ctx, "forever", []byte("y"), 0); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}

	time.Sleep(50 * time.Millisecond)

	if _, err := cache.Get(ctx, "short"); !errors.Is(err, interfaces.ErrCacheMiss) {
		t.Errorf("expired key error = %v, want ErrCacheMiss", err)
	}
	if got, err := cache.Get(ctx, "forever"); err != nil || string(got) != "y" {
		t.Errorf("zero TTL key = %q, %v; want y, nil", got, err)
	}
}

func TestMemoryCache_StoresCopies(t *testing.T) {
	cache := NewMemoryCache(time.Minute)
	ctx := context.Background()

	value := []byte("1")
	_ = cache.Set(ctx, "k", value, time.Hour)
	value[0] = '0'

	got, _ := cache.Get(ctx, "k")
	if string(got) != "1" {
		t.Errorf("stored value changed to %s", got)
	}

	got[0] = '0'
	again, _ := cache.Get(ctx, "k")
	if string(again) != "1" {
		t.Errorf("returned slice aliases the stored value: %s", again)
	}
}

func TestMemoryCache_Delete(t *testing.T) {
	cache := NewMemoryCache(time.Minute)
	ctx := context.Background()

	_ = cache.Set(ctx, "k", []byte("1"), time.Hour)
	if err := cache.Delete(ctx, "k"); err != nil {
		t.Errorf("Delete returned error: %v", err)
	}
	if _, err := cache.Get(ctx, "k"); !errors.Is(err, interfaces.ErrCacheMiss) {
		t.Errorf("deleted key error = %v, want ErrCacheMiss", err)
	}
	if err := cache.Delete(ctx, "missing"); err != nil {
		t.Errorf("Delete of missing key returned error: %v", err)
	}
}

func TestMemoryCache_CancelledContext(t *testing.T) {
	cache := NewMemoryCache(time.Minute)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := cache.Set(ctx, "k", []byte("1"), time.Hour); !errors.Is(err, context.Canceled) {
		t.Errorf("Set error = %v, want context.Canceled", err)
	}
	if _, err := cache.Get(ctx, "k"); !errors.Is(err, context.Canceled) {
		t.Errorf("Get error = %v, want context.Canceled", err)
	}
}

func TestMemoryCache_ConcurrentAccess(t *testing.T) {
	cache := NewMemoryCache(time.Minute)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := string(rune('a' + i%26))
			_ = cache.Set(ctx, key, []byte("1"), time.Hour)
			_, _ = cache.Get(ctx, key)
		}(i)
	}
	wg.Wait()

	if cache.Len() != 26 {
		t.Errorf("Len() = %d, want 26", cache.Len())
	}
}
