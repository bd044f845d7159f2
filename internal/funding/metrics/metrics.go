package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/shopspring/decimal"
)

// Metrics provides observability for the funding ledger.
type Metrics struct {
	DonationsRecorded *prometheus.CounterVec
	DonationAmount    *prometheus.CounterVec
	DonationsFailed   prometheus.Counter
	DuplicateReplays  prometheus.Counter
}

// New registers funding metrics with the default registry.
func New() *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

func NewWithRegisterer(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		DonationsRecorded: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "medhope_donations_recorded_total",
			Help: "Completed donations recorded, by zakat flag",
		}, []string{"zakat"}),
		DonationAmount: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "medhope_donation_amount_total",
			Help: "Sum of completed donation amounts, by zakat flag",
		}, []string{"zakat"}),
		DonationsFailed: factory.NewCounter(prometheus.CounterOpts{
			Name: "medhope_donations_failed_total",
			Help: "Contributions whose payment capture was declined",
		}),
		DuplicateReplays: factory.NewCounter(prometheus.CounterOpts{
			Name: "medhope_donation_duplicate_replays_total",
			Help: "Donations short-circuited because the payment reference was already recorded",
		}),
	}
}

func (m *Metrics) RecordDonation(amount decimal.Decimal, isZakat bool) {
	if m == nil {
		return
	}
	label := zakatLabel(isZakat)
	m.DonationsRecorded.WithLabelValues(label).Inc()
	m.DonationAmount.WithLabelValues(label).Add(amount.InexactFloat64())
}

func (m *Metrics) IncrementFailed() {
	if m == nil {
		return
	}
	m.DonationsFailed.Inc()
}

func (m *Metrics) IncrementDuplicate() {
	if m == nil {
		return
	}
	m.DuplicateReplays.Inc()
}

func zakatLabel(isZakat bool) string {
	if isZakat {
		return "true"
	}
	return "false"
}
