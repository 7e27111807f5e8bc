package metrics

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "schoolhub_http_requests_total",
		Help: "HTTP requests by route and status code.",
	}, []string{"method", "path", "status"})

	StaffCheckIns = promauto.NewCounter(prometheus.CounterOpts{
		Name: "schoolhub_staff_checkins_total",
		Help: "Successful staff attendance check-ins.",
	})

	NotificationsSwept = promauto.NewCounter(prometheus.CounterOpts{
		Name: "schoolhub_notifications_swept_total",
		Help: "Notifications deleted by the retention sweep.",
	})
)

// Middleware counts every request by route template and response status.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		httpRequests.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
	}
}

// Handler exposes the prometheus registry for scraping.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
