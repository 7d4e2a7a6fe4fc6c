package accounts

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type ServiceMetrics struct {
	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
}

func NewServiceMetrics(reg prometheus.Registerer) *ServiceMetrics {
	m := &ServiceMetrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "accounts",
			Subsystem: "service",
			Name:      "requests_total",
			Help:      "Register and login calls by outcome",
		}, []string{"method", "outcome"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "accounts",
			Subsystem: "service",
			Name:      "request_duration_seconds",
			Help:      "Duration of register and login calls",
			Buckets:   histogramBuckets,
		}, []string{"method"}),
	}
	reg.MustRegister(m.requests, m.latency)
	return m
}

type instrumentingService struct {
	metrics *ServiceMetrics
	next    Service
}

func NewInstrumentingService(m *ServiceMetrics, next Service) Service {
	return &instrumentingService{metrics: m, next: next}
}

func (s *instrumentingService) RegisterAccount(ctx context.Context, r registerAccountRequest) (id ID, err error) {
	defer s.observe("register", time.Now(), &err)
	return s.next.RegisterAccount(ctx, r)
}

func (s *instrumentingService) Login(ctx context.Context, r loginRequest) (acc *Account, err error) {
	defer s.observe("login", time.Now(), &err)
	return s.next.Login(ctx, r)
}

func (s *instrumentingService) observe(method string, begin time.Time, err *error) {
	s.metrics.requests.WithLabelValues(method, outcome(*err)).Inc()
	s.metrics.latency.WithLabelValues(method).Observe(time.Since(begin).Seconds())
}

// outcome names the lifecycle result an error stands for.
func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, ErrExistingUsername):
		return "conflict"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	default:
		return "error"
	}
}
