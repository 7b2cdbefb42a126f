// Package metrics exposes Prometheus counters for slot generation, bookings and HTTP traffic.
package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder is what services, the session store and middleware report into.
type Recorder interface {
	RecordSlotsGenerated(modality string, count int)
	RecordSessionBooked(modality string)
	RecordSessionCanceled()
	RecordStoreRecovered()
	RecordHTTPStatus(statusCode int)
}

type Collector struct {
	slotsGenerated *prometheus.CounterVec
	sessionsBooked *prometheus.CounterVec
	sessionsCancel prometheus.Counter
	storeRecovered prometheus.Counter
	httpStatus     *prometheus.CounterVec
}

// NewCollector creates the counters and registers them with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		slotsGenerated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "psicoagenda_slots_generated_total",
			Help: "Количество сгенерированных слотов по формату приема",
		}, []string{"modality"}),
		sessionsBooked: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "psicoagenda_sessions_booked_total",
			Help: "Количество забронированных сессий по формату приема",
		}, []string{"modality"}),
		sessionsCancel: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "psicoagenda_sessions_canceled_total",
			Help: "Количество отмененных сессий",
		}),
		storeRecovered: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "psicoagenda_session_store_recovered_total",
			Help: "Сколько раз поврежденное хранилище сессий было прочитано как пустое",
		}),
		httpStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "psicoagenda_http_requests_total",
			Help: "Количество HTTP ответов по коду статуса",
		}, []string{"status_code"}),
	}

	reg.MustRegister(
		c.slotsGenerated,
		c.sessionsBooked,
		c.sessionsCancel,
		c.storeRecovered,
		c.httpStatus,
	)

	return c
}

func (c *Collector) RecordSlotsGenerated(modality string, count int) {
	if count <= 0 {
		return
	}
	c.slotsGenerated.WithLabelValues(modality).Add(float64(count))
}

func (c *Collector) RecordSessionBooked(modality string) {
	c.sessionsBooked.WithLabelValues(modality).Inc()
}

func (c *Collector) RecordSessionCanceled() {
	c.sessionsCancel.Inc()
}

func (c *Collector) RecordStoreRecovered() {
	c.storeRecovered.Inc()
}

func (c *Collector) RecordHTTPStatus(statusCode int) {
	c.httpStatus.WithLabelValues(strconv.Itoa(statusCode)).Inc()
}

// Nop discards everything. Used when metrics are not wired.
type Nop struct{}

func (Nop) RecordSlotsGenerated(string, int) {}
func (Nop) RecordSessionBooked(string) {}
func (Nop) RecordSessionCanceled() {}
func (Nop) RecordStoreRecovered() {}
func (Nop) RecordHTTPStatus(int) {}

// Handler returns the scrape handler for gatherer.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
