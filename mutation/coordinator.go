package mutation

import (
	"context"
	"fmt"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"profile-sync/cache"
)

var mutationsCounter *prometheus.CounterVec

func init() {
	mutationsCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "profile_sync_mutations_total",
		Help: "Total number of mutations by outcome.",
	}, []string{"outcome"})
	prometheus.MustRegister(mutationsCounter)
}

// ConflictError: Auf derselben (Entity, ID) läuft bereits eine Mutation.
// Die zweite wird abgelehnt statt eingereiht, um Lost-Update-Races gegen
// das Backend zu vermeiden.
type ConflictError struct {
	Entity cache.EntityType
	ID     int
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("mutation already in flight for %s/%d", e.Entity, e.ID)
}

// Mutation beschreibt einen einzelnen Schreib-Intent gegen das Backend.
type Mutation struct {
	Entity cache.EntityType
	// ID der betroffenen Entity; 0 bei Creates (noch keine ID vergeben).
	ID int
	// Verb für Logging und Benachrichtigung, z.B. "create publication".
	Verb string
	// Invalidates sind die Cache-Keys, die das Ergebnis betreffen.
	Invalidates []cache.Key
	// InvalidateEntities invalidiert ganze Entity-Familien über alle Scopes,
	// wenn der betroffene Scope zum Zeitpunkt der Mutation nicht bekannt ist.
	InvalidateEntities []cache.EntityType
	// Apply führt den eigentlichen Gateway-Aufruf aus.
	Apply func(ctx context.Context) error
}

type mutationKey struct {
	entity cache.EntityType
	id     int
}

// Coordinator serialisiert Mutationen pro (Entity, ID) und sorgt für den
// einheitlichen Lebenszyklus: pending → ausführen → bei Erfolg Cache
// invalidieren und Erfolg melden, bei Fehler nur melden — der Cache bleibt
// unangetastet, es gibt keine optimistischen Updates.
type Coordinator struct {
	mu       sync.Mutex
	inFlight map[mutationKey]bool

	store    *cache.Store
	notifier Notifier
	logger   *zap.Logger
}

// NewCoordinator erstellt einen Coordinator über dem gegebenen Cache.
func NewCoordinator(store *cache.Store, notifier Notifier, logger *zap.Logger) *Coordinator {
	return &Coordinator{
		inFlight: make(map[mutationKey]bool),
		store:    store,
		notifier: notifier,
		logger:   logger,
	}
}

// Run führt eine Mutation aus. Schreibzugriffe werden nie automatisch
// wiederholt: ein wiederholtes Create könnte die Ressource duplizieren.
func (c *Coordinator) Run(ctx context.Context, m Mutation) error {
	key := mutationKey{entity: m.Entity, id: m.ID}

	c.mu.Lock()
	if c.inFlight[key] {
		c.mu.Unlock()
		c.logger.Warn("Rejecting concurrent mutation",
			zap.String("entity", string(m.Entity)), zap.Int("id", m.ID))
		mutationsCounter.WithLabelValues("conflict").Inc()
		return &ConflictError{Entity: m.Entity, ID: m.ID}
	}
	c.inFlight[key] = true
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		delete(c.inFlight, key)
		c.mu.Unlock()
	}()

	log := c.logger.With(zap.String("verb", m.Verb), zap.String("entity", string(m.Entity)), zap.Int("id", m.ID))
	log.Debug("Running mutation")

	if err := m.Apply(ctx); err != nil {
		mutationsCounter.WithLabelValues("failure").Inc()
		log.Warn("Mutation settled with error", zap.Error(err))
		c.notifier.Failure(fmt.Sprintf("Failed to %s: %s", m.Verb, err))
		return err
	}

	for _, k := range m.Invalidates {
		c.store.Invalidate(k)
	}
	for _, entity := range m.InvalidateEntities {
		c.store.InvalidateEntity(entity)
	}
	mutationsCounter.WithLabelValues("success").Inc()
	log.Info("Mutation settled", zap.Int("invalidated_keys", len(m.Invalidates)))
	c.notifier.Success(fmt.Sprintf("Successfully completed: %s", m.Verb))
	return nil
}
