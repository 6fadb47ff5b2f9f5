package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the application-specific Prometheus collectors.
	Registry = prometheus.NewRegistry()

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "socialfeed",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "path", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "socialfeed",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms to ~5s
		},
		[]string{"method", "path"},
	)

	followToggles = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "socialfeed",
			Subsystem: "graph",
			Name:      "follow_toggles_total",
			Help:      "Follow and unfollow operations.",
		},
		[]string{"action"},
	)

	likeToggles = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "socialfeed",
			Subsystem: "posts",
			Name:      "like_toggles_total",
			Help:      "Like and unlike operations.",
		},
		[]string{"action"},
	)

	postsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "socialfeed",
			Subsystem: "posts",
			Name:      "created_total",
			Help:      "Posts created.",
		},
	)

	mediaCleanupFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "socialfeed",
			Subsystem: "media",
			Name:      "cleanup_failures_total",
			Help:      "Image deletions that failed and left an orphaned image behind.",
		},
	)
)

func init() {
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		httpRequests,
		httpDuration,
		followToggles,
		likeToggles,
		postsCreated,
		mediaCleanupFailures,
	)
}

// Handler exposes the registry in the Prometheus text format.
func Handler() gin.HandlerFunc {
	h := promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
	return gin.WrapH(h)
}

// Middleware records request counts and latencies keyed by route template.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		httpRequests.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		httpDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}

func RecordFollow(followed bool) {
	if followed {
		followToggles.WithLabelValues("follow").Inc()
		return
	}
	followToggles.WithLabelValues("unfollow").Inc()
}

func RecordLike(liked bool) {
	if liked {
		likeToggles.WithLabelValues("like").Inc()
		return
	}
	likeToggles.WithLabelValues("unlike").Inc()
}

func RecordPostCreated() { postsCreated.Inc() }

func RecordMediaCleanupFailure() { mediaCleanupFailures.Inc() }
