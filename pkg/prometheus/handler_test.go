package prometheus

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/questx-lab/questkit/internal/common"
	"github.com/stretchr/testify/require"
)

func TestHandler(t *testing.T) {
	common.IncCounter(common.RewardClaimsTotal, "ERC20", "success")
	common.IncCounter(common.PlaySessionSyncsTotal, "error")
	common.ObserveHistogram(common.ConfirmClaimAttempts, 2, "success")

	// Unknown metrics are ignored.
	common.IncCounter("unknown_total", "x")

	server := httptest.NewServer(NewHandler())
	defer server.Close()

	resp, err := http.Get(server.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Contains(t, string(body), `quest_reward_claims_total{outcome="success",reward_type="ERC20"}`)
	require.Contains(t, string(body), `quest_playsession_syncs_total{outcome="error"}`)
	require.Contains(t, string(body), `quest_confirm_claim_attempts_count{outcome="success"}`)
	require.Contains(t, string(body), "go_goroutines")
	require.Contains(t, string(body), "go_build_info")
	// The handler reports its own scrape errors.
	require.Contains(t, string(body), "promhttp_metric_handler_errors_total")
}

func TestNewRegistry(t *testing.T) {
	common.IncCounter(common.ActiveWalletMutationsTotal, "add", "success")

	families, err := NewRegistry().Gather()
	require.NoError(t, err)

	names := map[string]bool{}
	for _, f := range families {
		names[f.GetName()] = true
	}
	require.True(t, names[common.ActiveWalletMutationsTotal])
}
