// Package metrics описывает метрики Prometheus сервиса учётных записей.
//
// Все методы Metrics допускают nil-получатель, поэтому сервисы можно
// собирать без метрик (например, в тестах).
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "users"

// Результаты операций для меток result.
const (
	ResultSuccess  = "success"
	ResultFailure  = "failure"
	ResultNoChange = "no_change"
	ResultConflict = "conflict"
	ResultNotFound = "not_found"
)

// Metrics набор счётчиков сервиса.
type Metrics struct {
	authAttempts *prometheus.CounterVec
	mutations    *prometheus.CounterVec
}

// New регистрирует метрики в reg. sessions, если задан, отдаёт текущее
// число активных токенов для gauge users_active_sessions.
func New(reg prometheus.Registerer, sessions func() int) *Metrics {
	m := &Metrics{
		authAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "auth_attempts_total",
			Help:      "Number of authentication attempts by result.",
		}, []string{"result"}),
		mutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "mutations_total",
			Help:      "Number of user record mutations by operation and result.",
		}, []string{"op", "result"}),
	}
	reg.MustRegister(m.authAttempts, m.mutations)

	if sessions != nil {
		reg.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_sessions",
			Help:      "Number of issued and not yet revoked access tokens.",
		}, func() float64 { return float64(sessions()) }))
	}
	return m
}

// AuthAttempt учитывает попытку аутентификации.
func (m *Metrics) AuthAttempt(result string) {
	if m == nil {
		return
	}
	m.authAttempts.WithLabelValues(result).Inc()
}

// Mutation учитывает изменение записи пользователя.
func (m *Metrics) Mutation(op, result string) {
	if m == nil {
		return
	}
	m.mutations.WithLabelValues(op, result).Inc()
}
