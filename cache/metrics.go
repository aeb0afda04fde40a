package cache

import "github.com/prometheus/client_golang/prometheus"

var (
	cacheHitsCounter    prometheus.Counter
	cacheMissesCounter  prometheus.Counter
	fetchesCounter      prometheus.Counter
	fetchErrorsCounter  prometheus.Counter
	invalidationCounter prometheus.Counter
)

func init() {
	cacheHitsCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "profile_sync_cache_hits_total",
		Help: "Total number of reads served from a loaded cache entry.",
	})
	cacheMissesCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "profile_sync_cache_misses_total",
		Help: "Total number of reads that required a backend fetch.",
	})
	fetchesCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "profile_sync_cache_fetches_total",
		Help: "Total number of backend fetches issued by the cache.",
	})
	fetchErrorsCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "profile_sync_cache_fetch_errors_total",
		Help: "Total number of backend fetches that settled in an error.",
	})
	invalidationCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "profile_sync_cache_invalidations_total",
		Help: "Total number of cache key invalidations.",
	})
	prometheus.MustRegister(cacheHitsCounter, cacheMissesCounter, fetchesCounter, fetchErrorsCounter, invalidationCounter)
}
