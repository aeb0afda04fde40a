package cache

import (
	"context"
	"errors"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// ErrNoFetcher bedeutet: für die Entity-Familie wurde kein Fetcher registriert.
var ErrNoFetcher = errors.New("no fetcher registered for entity")

// FetchFunc holt den aktuellen Wert für einen Scope vom Backend,
// typischerweise über den list/get-Aufruf eines Gateways.
type FetchFunc func(ctx context.Context, scopeID int) (any, error)

// Listener wird bei jeder Zustandsänderung des abonnierten Keys aufgerufen.
type Listener func(Snapshot)

// Store ist die einzige Quelle der Wahrheit für zuletzt bekannte
// Leseergebnisse. Pro Key ist zu jedem Zeitpunkt höchstens ein Fetch
// unterwegs; konkurrierende Leser teilen sich dessen Ergebnis.
type Store struct {
	mu       sync.Mutex
	entries  map[Key]*entry
	fetchers map[EntityType]FetchFunc
	timeout  time.Duration
	retries  int
	logger   *zap.Logger
	nextSub  int

	// Zähler für den Debug-Endpunkt, analog zu den Prometheus-Countern.
	hits    int64
	misses  int64
	fetches int64
}

type entry struct {
	state    State
	value    any
	err      error
	stale    bool
	inFlight bool
	subs     map[int]Listener
	waiters  []chan Snapshot
}

// NewStore erstellt einen leeren Store. retries gilt nur für Lesezugriffe.
func NewStore(timeout time.Duration, retries int, logger *zap.Logger) *Store {
	return &Store{
		entries:  make(map[Key]*entry),
		fetchers: make(map[EntityType]FetchFunc),
		timeout:  timeout,
		retries:  retries,
		logger:   logger,
	}
}

// Register hinterlegt den Fetcher für eine Entity-Familie.
func (s *Store) Register(entity EntityType, fn FetchFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fetchers[entity] = fn
}

func (s *Store) ensureLocked(key Key) *entry {
	e, ok := s.entries[key]
	if !ok {
		e = &entry{subs: make(map[int]Listener)}
		s.entries[key] = e
	}
	return e
}

func snapshotOf(e *entry) Snapshot {
	return Snapshot{State: e.state, Value: e.value, Err: e.err}
}

// Read gibt den aktuellen Snapshot zurück und stößt bei fehlendem oder
// als stale markiertem Eintrag einen Fetch an. Ein Errored-Eintrag bleibt
// bis zur nächsten Invalidierung stehen.
func (s *Store) Read(ctx context.Context, key Key) Snapshot {
	s.mu.Lock()
	e := s.ensureLocked(key)

	var notify func()
	if (e.state == StateUnfetched || e.stale) && !e.inFlight {
		atomic.AddInt64(&s.misses, 1)
		cacheMissesCounter.Inc()
		notify = s.startFetchLocked(key, e)
	} else if e.state == StateLoaded {
		atomic.AddInt64(&s.hits, 1)
		cacheHitsCounter.Inc()
	}
	snap := snapshotOf(e)
	s.mu.Unlock()

	if notify != nil {
		notify()
	}
	return snap
}

// Wait blockiert, bis der Key in Loaded oder Errored gelandet ist.
// Gedacht für Aufrufer ohne eigenes Subscription-Handling (z.B. die Facade).
func (s *Store) Wait(ctx context.Context, key Key) (any, error) {
	s.mu.Lock()
	e := s.ensureLocked(key)

	if _, ok := s.fetchers[key.Entity]; !ok && (e.state == StateUnfetched || e.stale) {
		s.mu.Unlock()
		s.logger.Warn("No fetcher registered for entity", zap.String("entity", string(key.Entity)))
		return nil, ErrNoFetcher
	}

	if !e.stale && !e.inFlight {
		switch e.state {
		case StateLoaded:
			atomic.AddInt64(&s.hits, 1)
			cacheHitsCounter.Inc()
			v := e.value
			s.mu.Unlock()
			return v, nil
		case StateErrored:
			err := e.err
			s.mu.Unlock()
			return nil, err
		}
	}

	var notify func()
	if (e.state == StateUnfetched || e.stale) && !e.inFlight {
		atomic.AddInt64(&s.misses, 1)
		cacheMissesCounter.Inc()
		notify = s.startFetchLocked(key, e)
	}
	ch := make(chan Snapshot, 1)
	e.waiters = append(e.waiters, ch)
	s.mu.Unlock()

	if notify != nil {
		notify()
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case snap := <-ch:
		if snap.Err != nil {
			return nil, snap.Err
		}
		return snap.Value, nil
	}
}

// Subscribe registriert einen Listener für den Key. Die zurückgegebene
// Funktion meldet ihn wieder ab; danach wird er garantiert nicht mehr
// aufgerufen, auch wenn ein Fetch noch unterwegs ist.
func (s *Store) Subscribe(key Key, l Listener) func() {
	s.mu.Lock()
	e := s.ensureLocked(key)
	s.nextSub++
	id := s.nextSub
	e.subs[id] = l
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(e.subs, id)
		s.mu.Unlock()
	}
}

// Invalidate markiert den Key als stale. Gibt es aktive Subscriber, wird
// sofort neu geladen; sonst erst beim nächsten Read (lazy).
func (s *Store) Invalidate(key Key) {
	s.mu.Lock()
	e := s.ensureLocked(key)
	e.stale = true
	invalidationCounter.Inc()

	var notify func()
	if !e.inFlight && len(e.subs) > 0 {
		notify = s.startFetchLocked(key, e)
	}
	s.mu.Unlock()

	if notify != nil {
		notify()
	}
}

// InvalidateEntity invalidiert alle Keys einer Entity-Familie über alle
// Scopes hinweg — strukturelles Matching, kein String-Vergleich.
func (s *Store) InvalidateEntity(entity EntityType) {
	s.mu.Lock()
	keys := make([]Key, 0)
	for k := range s.entries {
		if k.Entity == entity {
			keys = append(keys, k)
		}
	}
	s.mu.Unlock()

	for _, k := range keys {
		s.Invalidate(k)
	}
}

// InvalidateAll markiert sämtliche bekannten Keys als stale. Wird von der
// periodischen Revalidierung genutzt.
func (s *Store) InvalidateAll() {
	s.mu.Lock()
	keys := make([]Key, 0, len(s.entries))
	for k := range s.entries {
		keys = append(keys, k)
	}
	s.mu.Unlock()

	for _, k := range keys {
		s.Invalidate(k)
	}
}

// startFetchLocked setzt den Eintrag auf Loading und startet genau einen
// Fetch. Muss mit gehaltenem Mutex aufgerufen werden; die zurückgegebene
// Closure benachrichtigt die Subscriber und läuft nach dem Unlock.
func (s *Store) startFetchLocked(key Key, e *entry) func() {
	fetch, ok := s.fetchers[key.Entity]
	if !ok {
		s.logger.Warn("No fetcher registered for entity", zap.String("entity", string(key.Entity)))
		return nil
	}

	e.inFlight = true
	e.stale = false
	e.state = StateLoading
	atomic.AddInt64(&s.fetches, 1)
	fetchesCounter.Inc()
	s.logger.Debug("Starting cache fetch", zap.String("key", key.String()))

	notify := s.notifyLocked(e)
	go s.runFetch(key, fetch)
	return notify
}

func (s *Store) runFetch(key Key, fetch FetchFunc) {
	value, err := s.fetchWithRetry(key, fetch)

	s.mu.Lock()
	e := s.entries[key]
	e.inFlight = false
	if err != nil {
		e.state = StateErrored
		e.err = err
		fetchErrorsCounter.Inc()
		s.logger.Warn("Cache fetch settled with error", zap.String("key", key.String()), zap.Error(err))
	} else {
		e.state = StateLoaded
		e.value = value
		e.err = nil
		s.logger.Debug("Cache fetch settled", zap.String("key", key.String()))
	}

	// Späte Antworten aktualisieren den Cache auch ohne Beobachter;
	// benachrichtigt werden nur die noch eingetragenen Listener.
	notify := s.notifyLocked(e)
	snap := snapshotOf(e)
	waiters := e.waiters
	e.waiters = nil

	// Während des Fetch invalidiert und weiterhin beobachtet → direkt neu laden.
	var again func()
	if e.stale && len(e.subs) > 0 {
		again = s.startFetchLocked(key, e)
	}
	s.mu.Unlock()

	if notify != nil {
		notify()
	}
	for _, ch := range waiters {
		ch <- snap
	}
	if again != nil {
		again()
	}
}

// fetchWithRetry führt den Fetch mit höchstens s.retries transparenten
// Wiederholungen aus. Der Kontext ist bewusst vom Leser entkoppelt: eine
// spät eintreffende Antwort muss den Cache auch dann aktualisieren, wenn
// der ursprüngliche Leser längst weg ist.
func (s *Store) fetchWithRetry(key Key, fetch FetchFunc) (any, error) {
	var lastErr error
	for attempt := 0; attempt <= s.retries; attempt++ {
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		value, err := fetch(ctx, key.ScopeID)
		cancel()
		if err == nil {
			return value, nil
		}
		lastErr = err
		if attempt < s.retries {
			s.logger.Warn("Read fetch failed, retrying",
				zap.String("key", key.String()),
				zap.Int("attempt", attempt+1),
				zap.Error(err))
		}
	}
	return nil, lastErr
}

func (s *Store) notifyLocked(e *entry) func() {
	if len(e.subs) == 0 {
		return nil
	}
	listeners := make([]Listener, 0, len(e.subs))
	for _, l := range e.subs {
		listeners = append(listeners, l)
	}
	snap := snapshotOf(e)
	return func() {
		for _, l := range listeners {
			l(snap)
		}
	}
}

// KeyStats beschreibt einen einzelnen Cache-Eintrag für den Debug-Endpunkt.
type KeyStats struct {
	Key         string `json:"key"`
	State       string `json:"state"`
	Stale       bool   `json:"stale"`
	Subscribers int    `json:"subscribers"`
}

// Stats ist der Gesamtzustand des Stores.
type Stats struct {
	Hits    int64      `json:"hits"`
	Misses  int64      `json:"misses"`
	Fetches int64      `json:"fetches"`
	Keys    []KeyStats `json:"keys"`
}

// Stats gibt Zähler und Einträge für den Debug-Endpunkt zurück.
func (s *Store) Stats() Stats {
	s.mu.Lock()
	keys := make([]KeyStats, 0, len(s.entries))
	for k, e := range s.entries {
		keys = append(keys, KeyStats{
			Key:         k.String(),
			State:       e.state.String(),
			Stale:       e.stale,
			Subscribers: len(e.subs),
		})
	}
	s.mu.Unlock()

	sort.Slice(keys, func(i, j int) bool { return keys[i].Key < keys[j].Key })
	return Stats{
		Hits:    atomic.LoadInt64(&s.hits),
		Misses:  atomic.LoadInt64(&s.misses),
		Fetches: atomic.LoadInt64(&s.fetches),
		Keys:    keys,
	}
}
