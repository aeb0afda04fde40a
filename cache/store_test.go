package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestStore(retries int) *Store {
	return NewStore(2*time.Second, retries, zap.NewNop())
}

func TestWaitSharesSingleFetch(t *testing.T) {
	var calls int64
	store := newTestStore(0)
	store.Register(EntityPublications, func(ctx context.Context, scopeID int) (any, error) {
		atomic.AddInt64(&calls, 1)
		time.Sleep(50 * time.Millisecond)
		return []string{"pub-a", "pub-b"}, nil
	})

	key := Key{Entity: EntityPublications, ScopeID: 1}

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			value, err := store.Wait(context.Background(), key)
			assert.NoError(t, err)
			assert.Equal(t, []string{"pub-a", "pub-b"}, value)
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(1), atomic.LoadInt64(&calls), "concurrent readers must share one fetch")
}

func TestWaitReturnsCachedValueWithoutRefetch(t *testing.T) {
	var calls int64
	store := newTestStore(0)
	store.Register(EntityBioSections, func(ctx context.Context, scopeID int) (any, error) {
		atomic.AddInt64(&calls, 1)
		return "bio", nil
	})

	key := Key{Entity: EntityBioSections, ScopeID: 1}
	_, err := store.Wait(context.Background(), key)
	require.NoError(t, err)

	value, err := store.Wait(context.Background(), key)
	require.NoError(t, err)
	assert.Equal(t, "bio", value)
	assert.Equal(t, int64(1), atomic.LoadInt64(&calls))
}

func TestInvalidateWithoutSubscribersIsLazy(t *testing.T) {
	var calls int64
	store := newTestStore(0)
	store.Register(EntityPublications, func(ctx context.Context, scopeID int) (any, error) {
		return atomic.AddInt64(&calls, 1), nil
	})

	key := Key{Entity: EntityPublications, ScopeID: 7}
	_, err := store.Wait(context.Background(), key)
	require.NoError(t, err)

	store.Invalidate(key)
	assert.Equal(t, int64(1), atomic.LoadInt64(&calls), "no subscriber, no eager refetch")

	value, err := store.Wait(context.Background(), key)
	require.NoError(t, err)
	assert.Equal(t, int64(2), value, "next read must refetch the stale entry")
}

func TestInvalidateWithSubscriberRefetchesEagerly(t *testing.T) {
	var calls int64
	store := newTestStore(0)
	store.Register(EntityPublications, func(ctx context.Context, scopeID int) (any, error) {
		return atomic.AddInt64(&calls, 1), nil
	})

	key := Key{Entity: EntityPublications, ScopeID: 1}
	_, err := store.Wait(context.Background(), key)
	require.NoError(t, err)

	var mu sync.Mutex
	var states []State
	unsubscribe := store.Subscribe(key, func(snap Snapshot) {
		mu.Lock()
		states = append(states, snap.State)
		mu.Unlock()
	})
	defer unsubscribe()

	store.Invalidate(key)

	require.Eventually(t, func() bool {
		return atomic.LoadInt64(&calls) == 2
	}, time.Second, 10*time.Millisecond)

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(states) >= 2 && states[len(states)-1] == StateLoaded
	}, time.Second, 10*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, StateLoading, states[0], "subscriber must see the Loading transition first")
}

func TestUnsubscribedListenerNotNotified(t *testing.T) {
	block := make(chan struct{})
	store := newTestStore(0)
	store.Register(EntityPublications, func(ctx context.Context, scopeID int) (any, error) {
		<-block
		return "late", nil
	})

	key := Key{Entity: EntityPublications, ScopeID: 1}

	var notified int64
	unsubscribe := store.Subscribe(key, func(Snapshot) {
		atomic.AddInt64(&notified, 1)
	})

	// Fetch anstoßen, dann abmelden, während die Antwort noch aussteht.
	snap := store.Read(context.Background(), key)
	assert.Equal(t, StateLoading, snap.State)
	// Der Subscriber sieht genau die Loading-Benachrichtigung.
	require.Eventually(t, func() bool {
		return atomic.LoadInt64(&notified) == 1
	}, time.Second, 10*time.Millisecond)

	unsubscribe()
	close(block)

	// Die späte Antwort landet trotzdem im Cache.
	require.Eventually(t, func() bool {
		return store.Read(context.Background(), key).State == StateLoaded
	}, time.Second, 10*time.Millisecond)

	assert.Equal(t, "late", store.Read(context.Background(), key).Value)
	assert.Equal(t, int64(1), atomic.LoadInt64(&notified), "listener must not fire after unsubscribe")
}

func TestReadRetriesOnceThenSucceeds(t *testing.T) {
	var calls int64
	store := newTestStore(1)
	store.Register(EntityTeaching, func(ctx context.Context, scopeID int) (any, error) {
		if atomic.AddInt64(&calls, 1) == 1 {
			return nil, errors.New("transient")
		}
		return "recovered", nil
	})

	value, err := store.Wait(context.Background(), Key{Entity: EntityTeaching, ScopeID: 1})
	require.NoError(t, err)
	assert.Equal(t, "recovered", value)
	assert.Equal(t, int64(2), atomic.LoadInt64(&calls))
}

func TestErroredEntryStaysUntilInvalidated(t *testing.T) {
	var calls int64
	fetchErr := errors.New("backend down")
	store := newTestStore(1)
	store.Register(EntityTeaching, func(ctx context.Context, scopeID int) (any, error) {
		atomic.AddInt64(&calls, 1)
		return nil, fetchErr
	})

	key := Key{Entity: EntityTeaching, ScopeID: 3}
	_, err := store.Wait(context.Background(), key)
	require.ErrorIs(t, err, fetchErr)
	assert.Equal(t, int64(2), atomic.LoadInt64(&calls), "one attempt plus one retry")

	// Errored ist ein Endzustand: erneutes Lesen löst keinen Fetch aus.
	_, err = store.Wait(context.Background(), key)
	require.ErrorIs(t, err, fetchErr)
	assert.Equal(t, int64(2), atomic.LoadInt64(&calls))

	// Erst die Invalidierung macht den Eintrag wieder fetchbar.
	store.Invalidate(key)
	_, err = store.Wait(context.Background(), key)
	require.ErrorIs(t, err, fetchErr)
	assert.Equal(t, int64(4), atomic.LoadInt64(&calls))
}

func TestWaitWithoutFetcher(t *testing.T) {
	store := newTestStore(0)
	_, err := store.Wait(context.Background(), Key{Entity: EntityProfile, ScopeID: 1})
	assert.ErrorIs(t, err, ErrNoFetcher)
}

func TestWaitHonorsContextCancellation(t *testing.T) {
	block := make(chan struct{})
	defer close(block)
	store := newTestStore(0)
	store.Register(EntityPublications, func(ctx context.Context, scopeID int) (any, error) {
		<-block
		return nil, nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := store.Wait(ctx, Key{Entity: EntityPublications, ScopeID: 1})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestInvalidateEntityMatchesAllScopes(t *testing.T) {
	var calls int64
	store := newTestStore(0)
	store.Register(EntityPublications, func(ctx context.Context, scopeID int) (any, error) {
		return atomic.AddInt64(&calls, 1), nil
	})
	store.Register(EntityBioSections, func(ctx context.Context, scopeID int) (any, error) {
		return "bio", nil
	})

	for _, scope := range []int{1, 2, 3} {
		_, err := store.Wait(context.Background(), Key{Entity: EntityPublications, ScopeID: scope})
		require.NoError(t, err)
	}
	_, err := store.Wait(context.Background(), Key{Entity: EntityBioSections, ScopeID: 1})
	require.NoError(t, err)

	store.InvalidateEntity(EntityPublications)

	stats := store.Stats()
	staleCount := 0
	for _, ks := range stats.Keys {
		if ks.Stale {
			staleCount++
		}
	}
	assert.Equal(t, 3, staleCount, "only publication keys become stale")
}

func TestInvalidateDuringFetchTriggersRefetch(t *testing.T) {
	var calls int64
	release := make(chan struct{})
	store := newTestStore(0)
	store.Register(EntityPublications, func(ctx context.Context, scopeID int) (any, error) {
		n := atomic.AddInt64(&calls, 1)
		if n == 1 {
			<-release
		}
		return n, nil
	})

	key := Key{Entity: EntityPublications, ScopeID: 1}
	unsubscribe := store.Subscribe(key, func(Snapshot) {})
	defer unsubscribe()

	store.Read(context.Background(), key)
	store.Invalidate(key)
	close(release)

	// Die während des Fetches eingegangene Invalidierung erzwingt eine
	// zweite Runde, sobald die erste gelandet ist.
	require.Eventually(t, func() bool {
		return atomic.LoadInt64(&calls) == 2
	}, time.Second, 10*time.Millisecond)

	require.Eventually(t, func() bool {
		snap := store.Read(context.Background(), key)
		return snap.State == StateLoaded && snap.Value == int64(2)
	}, time.Second, 10*time.Millisecond)
}
