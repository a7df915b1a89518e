package cache

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func TestStoreSetGetDelete(t *testing.T) {
	ctx := t.Context()
	store := NewStore(time.Minute)

	if _, ok := store.Get(ctx, "drivers:all"); ok {
		t.Fatalf("empty store returned a value")
	}

	store.Set(ctx, "drivers:all", []int{1, 7, 13})
	value, ok := store.Get(ctx, "drivers:all")
	if !ok {
		t.Fatalf("stored value missing")
	}
	if ids, ok := value.([]int); !ok || len(ids) != 3 {
		t.Fatalf("unexpected value: %#v", value)
	}

	store.Delete(ctx, "drivers:all")
	if _, ok := store.Get(ctx, "drivers:all"); ok {
		t.Fatalf("deleted value returned")
	}
}

func TestStoreExpiresEntries(t *testing.T) {
	ctx := t.Context()
	store := NewStore(10 * time.Millisecond)

	store.Set(ctx, "races:upcoming", "saudi-2025")
	if _, ok := store.Get(ctx, "races:upcoming"); !ok {
		t.Fatalf("fresh value missing")
	}

	time.Sleep(20 * time.Millisecond)
	if _, ok := store.Get(ctx, "races:upcoming"); ok {
		t.Fatalf("expired value returned")
	}
}

func TestStoreDeletePrefix(t *testing.T) {
	ctx := t.Context()
	store := NewStore(time.Minute)

	store.Set(ctx, "drivers:all", "a")
	store.Set(ctx, "drivers:tier:B", "b")
	store.Set(ctx, "races:upcoming", "c")

	store.DeletePrefix(ctx, "drivers:")

	if _, ok := store.Get(ctx, "drivers:all"); ok {
		t.Fatalf("prefixed key drivers:all survived")
	}
	if _, ok := store.Get(ctx, "drivers:tier:B"); ok {
		t.Fatalf("prefixed key drivers:tier:B survived")
	}
	if _, ok := store.Get(ctx, "races:upcoming"); !ok {
		t.Fatalf("unrelated key was dropped")
	}
}

func TestStoreGetOrLoadCachesResult(t *testing.T) {
	ctx := t.Context()
	store := NewStore(time.Minute)

	loads := 0
	loader := func(ctx context.Context) (any, error) {
		loads++
		return "loaded", nil
	}

	for i := 0; i < 3; i++ {
		value, err := store.GetOrLoad(ctx, "drivers:all", loader)
		if err != nil {
			t.Fatalf("load %d failed: %v", i, err)
		}
		if value != "loaded" {
			t.Fatalf("load %d: unexpected value %#v", i, value)
		}
	}
	if loads != 1 {
		t.Fatalf("loads=%d want=1", loads)
	}
}

func TestStoreGetOrLoadDoesNotCacheErrors(t *testing.T) {
	ctx := t.Context()
	store := NewStore(time.Minute)
	loadErr := errors.New("store unavailable")

	loads := 0
	_, err := store.GetOrLoad(ctx, "drivers:all", func(ctx context.Context) (any, error) {
		loads++
		return nil, loadErr
	})
	if !errors.Is(err, loadErr) {
		t.Fatalf("err=%v want=%v", err, loadErr)
	}

	value, err := store.GetOrLoad(ctx, "drivers:all", func(ctx context.Context) (any, error) {
		loads++
		return "recovered", nil
	})
	if err != nil {
		t.Fatalf("second load failed: %v", err)
	}
	if value != "recovered" || loads != 2 {
		t.Fatalf("value=%#v loads=%d", value, loads)
	}
}

func TestStoreGetOrLoadDeduplicatesConcurrentLoads(t *testing.T) {
	ctx := t.Context()
	store := NewStore(time.Minute)

	var mu sync.Mutex
	loads := 0
	release := make(chan struct{})
	loader := func(ctx context.Context) (any, error) {
		mu.Lock()
		loads++
		mu.Unlock()
		<-release
		return "shared", nil
	}

	const workers = 8
	var wg sync.WaitGroup
	results := make([]any, workers)
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = store.GetOrLoad(ctx, "leaderboard", loader)
		}(i)
	}

	time.Sleep(10 * time.Millisecond)
	close(release)
	wg.Wait()

	for i := 0; i < workers; i++ {
		if errs[i] != nil {
			t.Fatalf("worker %d failed: %v", i, errs[i])
		}
		if results[i] != "shared" {
			t.Fatalf("worker %d got %#v", i, results[i])
		}
	}

	mu.Lock()
	defer mu.Unlock()
	if loads < 1 || loads >= workers {
		t.Fatalf("loads=%d want deduplicated", loads)
	}
}
