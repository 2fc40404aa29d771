package switcher

import "github.com/prometheus/client_golang/prometheus"

const namespace = "switcher"

const (
	actionActivate = "activate"
	actionClose    = "close"

	resultSent        = "sent"
	resultError       = "error"
	resultUnavailable = "unavailable"
)

// Metrics holds Prometheus metrics for button reconciliation and window
// requests. A nil *Metrics records nothing.
type Metrics struct {
	Reconciliations *prometheus.CounterVec
	StaleUpdates    prometheus.Counter
	ButtonChanges   *prometheus.CounterVec
	Buttons         prometheus.Gauge
	TitleUpdates    *prometheus.CounterVec
	Requests        *prometheus.CounterVec
}

// NewMetrics creates and registers switcher metrics on the given registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Reconciliations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reconciliations_total",
			Help:      "Total number of button reconciliations, by trigger.",
		}, []string{"trigger"}),
		StaleUpdates: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stale_updates_total",
			Help:      "Update attempts that found no pending window list.",
		}),
		ButtonChanges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "button_changes_total",
			Help:      "Buttons added, removed or retitled by reconciliation.",
		}, []string{"type"}),
		Buttons: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "buttons",
			Help:      "Number of buttons in the last published sequence.",
		}),
		TitleUpdates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "title_updates_total",
			Help:      "Title fast-path events, by whether a button was bound to the window.",
		}, []string{"result"}),
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "window_requests_total",
			Help:      "Activate and close requests sent to the window manager, by result.",
		}, []string{"action", "result"}),
	}

	reg.MustRegister(m.Reconciliations, m.StaleUpdates, m.ButtonChanges, m.Buttons, m.TitleUpdates, m.Requests)
	return m
}

func (m *Metrics) staleUpdate() {
	if m == nil {
		return
	}
	m.StaleUpdates.Inc()
}

func (m *Metrics) reconciled(trigger string, added, removed, retitled, buttons int) {
	if m == nil {
		return
	}
	m.Reconciliations.WithLabelValues(trigger).Inc()
	m.ButtonChanges.WithLabelValues("added").Add(float64(added))
	m.ButtonChanges.WithLabelValues("removed").Add(float64(removed))
	m.ButtonChanges.WithLabelValues("retitled").Add(float64(retitled))
	m.Buttons.Set(float64(buttons))
}

func (m *Metrics) titleUpdate(bound bool) {
	if m == nil {
		return
	}
	result := "bound"
	if !bound {
		result = "unknown"
	}
	m.TitleUpdates.WithLabelValues(result).Inc()
}

func (m *Metrics) request(action, result string) {
	if m == nil {
		return
	}
	m.Requests.WithLabelValues(action, result).Inc()
}
