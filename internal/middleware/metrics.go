package middleware

import (
	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// RedisErrors counts failed Redis commands by command name.
var RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "modelhub_redis_errors_total",
	Help: "Total number of failed Redis commands",
}, []string{"command"})

var prom *fiberprometheus.FiberPrometheus

// InitMetrics returns the process-wide HTTP metrics collector for serviceName.
// The collector registers with the default Prometheus registry, so it is
// created once and shared by every Server built in the same process.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	if prom == nil {
		prom = fiberprometheus.New(serviceName)
	}
	return prom
}

// MetricsMiddleware records request count, latency and in-flight requests.
func MetricsMiddleware(p *fiberprometheus.FiberPrometheus) fiber.Handler {
	return p.Middleware
}
