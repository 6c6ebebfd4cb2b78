package common

import "github.com/prometheus/client_golang/prometheus"

const (
	RewardClaimsTotal          = "quest_reward_claims_total"
	ActiveWalletMutationsTotal = "quest_active_wallet_mutations_total"
	PlaySessionSyncsTotal      = "quest_playsession_syncs_total"
	ConfirmClaimAttempts       = "quest_confirm_claim_attempts"
)

var (
	PromCounters = map[string]*prometheus.CounterVec{
		RewardClaimsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: RewardClaimsTotal,
			Help: "Count of all reward claim attempts by outcome",
		}, []string{"reward_type", "outcome"}),
		ActiveWalletMutationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: ActiveWalletMutationsTotal,
			Help: "Count of all active wallet mutations by flow and outcome",
		}, []string{"flow", "outcome"}),
		PlaySessionSyncsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: PlaySessionSyncsTotal,
			Help: "Count of all play session syncs sent to the host",
		}, []string{"outcome"}),
	}

	PromHistograms = map[string]*prometheus.HistogramVec{
		ConfirmClaimAttempts: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    ConfirmClaimAttempts,
			Help:    "Number of attempts needed to confirm a reward claim",
			Buckets: []float64{1, 2, 3, 4, 5},
		}, []string{"outcome"}),
	}
)

func IncCounter(name string, labels ...string) {
	if counter, ok := PromCounters[name]; ok {
		counter.WithLabelValues(labels...).Inc()
	}
}

func ObserveHistogram(name string, value float64, labels ...string) {
	if histogram, ok := PromHistograms[name]; ok {
		histogram.WithLabelValues(labels...).Observe(value)
	}
}
