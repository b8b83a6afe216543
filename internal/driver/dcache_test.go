package driver

import (
	"testing"
)

func TestDiskCache_PutGet(t *testing.T) {
	cache, err := OpenDiskCacheAt(t.TempDir())
	if err != nil {
		t.Fatalf("OpenDiskCacheAt: %v", err)
	}

	key := cacheKey([]byte("circuit T:\n"), []string{"foo-wires"})
	payload := &CachePayload{
		Schema: diskCacheSchemaVersion,
		Output: "circuit T:\n",
	}
	if err := cache.Put(key, payload); err != nil {
		t.Fatalf("Put: %v", err)
	}

	var got CachePayload
	hit, err := cache.Get(key, &got)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !hit {
		t.Fatal("expected a hit")
	}
	if got.Output != payload.Output {
		t.Errorf("output = %q, want %q", got.Output, payload.Output)
	}
}

func TestDiskCache_Miss(t *testing.T) {
	cache, err := OpenDiskCacheAt(t.TempDir())
	if err != nil {
		t.Fatalf("OpenDiskCacheAt: %v", err)
	}
	var got CachePayload
	hit, err := cache.Get(cacheKey([]byte("nope"), nil), &got)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if hit {
		t.Fatal("unexpected hit on empty cache")
	}
}

func TestDiskCache_SchemaMismatchIsMiss(t *testing.T) {
	cache, err := OpenDiskCacheAt(t.TempDir())
	if err != nil {
		t.Fatalf("OpenDiskCacheAt: %v", err)
	}
	key := cacheKey([]byte("x"), nil)
	if err := cache.Put(key, &CachePayload{Schema: diskCacheSchemaVersion + 1, Output: "stale"}); err != nil {
		t.Fatalf("Put: %v", err)
	}
	var got CachePayload
	hit, err := cache.Get(key, &got)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if hit {
		t.Fatal("stale schema treated as hit")
	}
}

func TestDiskCache_NilIsNoOp(t *testing.T) {
	var cache *DiskCache
	if err := cache.Put(Digest{}, &CachePayload{}); err != nil {
		t.Errorf("nil Put: %v", err)
	}
	hit, err := cache.Get(Digest{}, &CachePayload{})
	if err != nil || hit {
		t.Errorf("nil Get = (%v, %v), want miss", hit, err)
	}
}

func TestCacheKey_SensitiveToPipeline(t *testing.T) {
	content := []byte("circuit T:\n")
	a := cacheKey(content, []string{"foo-wires"})
	b := cacheKey(content, []string{"drop-nodes"})
	c := cacheKey(content, []string{"foo-wires"})
	if a == b {
		t.Error("different pipelines produced the same key")
	}
	if a != c {
		t.Error("same input produced different keys")
	}
	if d := cacheKey([]byte("circuit U:\n"), []string{"foo-wires"}); d == a {
		t.Error("different content produced the same key")
	}
}
