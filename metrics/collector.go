package metrics

import (
	"github.com/myselfbbs/vodplay/constant"
	"github.com/myselfbbs/vodplay/detect"
	"github.com/prometheus/client_golang/prometheus"
)

// CacheCollector reports the detection cache occupancy on each gather.
type CacheCollector struct {
	cache *detect.Cache

	entries  *prometheus.Desc
	capacity *prometheus.Desc
}

// NewCacheCollector creates a collector reading the given cache lazily.
func NewCacheCollector(cache *detect.Cache) *CacheCollector {
	return &CacheCollector{
		cache: cache,
		entries: prometheus.NewDesc(
			prometheus.BuildFQName(constant.App, "detect", "cache_entries"),
			"Episode sets held by the format detection cache.",
			nil, nil,
		),
		capacity: prometheus.NewDesc(
			prometheus.BuildFQName(constant.App, "detect", "cache_capacity"),
			"Maximum episode sets held by the format detection cache.",
			nil, nil,
		),
	}
}

func (c *CacheCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.entries
	ch <- c.capacity
}

func (c *CacheCollector) Collect(ch chan<- prometheus.Metric) {
	ch <- prometheus.MustNewConstMetric(c.entries, prometheus.GaugeValue, float64(c.cache.Len()))
	ch <- prometheus.MustNewConstMetric(c.capacity, prometheus.GaugeValue, float64(c.cache.Capacity()))
}
