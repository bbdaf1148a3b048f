// Package metrics expone contadores Prometheus de persistencia, avisos y HTTP.
package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Recorder agrupa los colectores de la aplicación sobre un registro propio.
type Recorder struct {
	Registry *prometheus.Registry

	storeOps      *prometheus.CounterVec
	storeLatency  *prometheus.HistogramVec
	deliveries    *prometheus.CounterVec
	dropped       prometheus.Counter
	httpRequests  *prometheus.CounterVec
	httpDurations *prometheus.HistogramVec
}

// New registra los colectores en un registro nuevo (más los de proceso y runtime de Go).
func New(namespace string) *Recorder {
	reg := prometheus.NewRegistry()
	r := &Recorder{
		Registry: reg,
		storeOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "store_operations_total",
			Help: "Operaciones contra el almacén por colección, operación y resultado.",
		}, []string{"collection", "op", "result"}),
		storeLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace, Name: "store_operation_seconds",
			Help:    "Duración de las operaciones contra el almacén.",
			Buckets: prometheus.DefBuckets,
		}, []string{"collection", "op"}),
		deliveries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "notification_deliveries_total",
			Help: "Entregas de avisos por canal y resultado.",
		}, []string{"channel", "result"}),
		dropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "notifications_dropped_total",
			Help: "Avisos descartados por cola llena o sink cerrado.",
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "http_requests_total",
			Help: "Solicitudes HTTP por método, ruta y código.",
		}, []string{"method", "route", "status"}),
		httpDurations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace, Name: "http_request_seconds",
			Help:    "Duración de las solicitudes HTTP.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
	reg.MustRegister(
		r.storeOps, r.storeLatency, r.deliveries, r.dropped, r.httpRequests, r.httpDurations,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

// ObserveStoreOp implementa state.Observer.
func (r *Recorder) ObserveStoreOp(collection, op string, elapsed time.Duration, err error) {
	r.storeOps.WithLabelValues(collection, op, result(err)).Inc()
	r.storeLatency.WithLabelValues(collection, op).Observe(elapsed.Seconds())
}

// ObserveDelivery implementa notify.Observer.
func (r *Recorder) ObserveDelivery(channel string, err error) {
	r.deliveries.WithLabelValues(channel, result(err)).Inc()
}

// ObserveDropped implementa notify.Observer.
func (r *Recorder) ObserveDropped() { r.dropped.Inc() }

// Middleware cuenta solicitudes por ruta registrada (no por path crudo, para acotar cardinalidad).
func (r *Recorder) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		// Las etiquetas sobreviven a la solicitud; el método se copia del buffer de fasthttp.
		method := utils.CopyString(c.Method())
		route := utils.CopyString(c.Route().Path)
		r.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
		r.httpDurations.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
		return err
	}
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
