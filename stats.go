package offlinecache

// Metric names for stats.Tracker.
const (
	MetricHit            = "cache_hit"
	MetricMiss           = "cache_miss"
	MetricWrite          = "cache_write"
	MetricEvict          = "cache_evict"
	MetricNetwork        = "fetch_network"
	MetricNetworkFailed  = "fetch_network_failed"
	MetricFallback       = "fetch_cache_fallback"
	MetricOfflinePage    = "fetch_offline_page"
	MetricPrecache       = "install_precache"
	MetricPrecacheFailed = "install_precache_failed"
	MetricStoreRetired   = "activate_store_retired"
	MetricPush           = "push_shown"
	MetricSync           = "sync_run"
)
