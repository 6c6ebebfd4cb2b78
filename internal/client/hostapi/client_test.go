package hostapi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/questx-lab/questkit/internal/entity"
	"github.com/questx-lab/questkit/mocks"
	"github.com/questx-lab/questkit/pkg/errorx"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type route struct {
	status int
	body   string
}

type recorder struct {
	mutex  sync.Mutex
	bodies map[string]string
}

func (r *recorder) set(key, body string) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.bodies[key] = body
}

func (r *recorder) get(key string) string {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return r.bodies[key]
}

func newTestClient(t *testing.T, routes map[string]route, signer Signer) (*Client, *recorder) {
	bodies := &recorder{bodies: map[string]string{}}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer access", r.Header.Get("Authorization"))

		key := r.Method + " " + r.URL.Path
		if r.URL.RawQuery != "" {
			key += "?" + r.URL.RawQuery
		}

		b, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		bodies.set(key, string(b))

		rt, ok := routes[key]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}

		if rt.status != 0 {
			w.WriteHeader(rt.status)
		}
		w.Write([]byte(rt.body))
	}))
	t.Cleanup(server.Close)

	return NewWithEndpoints([]string{server.URL}, "access", signer), bodies
}

func TestClient_Quests(t *testing.T) {
	client, _ := newTestClient(t, map[string]route{
		"GET /quests?project_id=p1": {body: `[{"id":1,"type":"PLAYSTREAK"},{"id":2,"type":"LEADERBOARD"}]`},
		"GET /quests/1": {body: `{
			"id": 1,
			"project_id": "p1",
			"type": "PLAYSTREAK",
			"status": "ACTIVE",
			"end_date": "2024-06-01T00:00:00Z",
			"num_of_times_repeatable": null,
			"eligibility": {"play_streak": {"required_playstreak_in_days": "7", "minimum_session_time_in_seconds": 900}},
			"rewards": [{"id": 10, "reward_type": "ERC1155", "chain_id": 137, "token_ids": [5], "decimals": 0}],
			"quest_external_game": {"runner": "steam"}
		}`},
		"GET /quests/1/playstreak": {body: `{"current_playstreak_in_days":3,"accumulated_playtime_today_in_seconds":120,"last_play_session_completed_datetime":"2024-05-01T10:00:00Z"}`},
		"GET /quests/2/eligibility":           {body: `{"amount":"12.5","walletOrEmail":"a@b.c"}`},
		"GET /quests/1/deposit-contracts":     {body: `[{"chain_id":137,"contract_address":"0xabc"}]`},
		"GET /quests/1/pending-external-sync": {body: `true`},
	}, nil)
	ctx := context.Background()

	quests, err := client.GetQuests(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, quests, 2)
	require.Equal(t, entity.QuestLeaderboard, quests[1].Type)

	quest, err := client.GetQuest(ctx, 1)
	require.NoError(t, err)
	require.True(t, quest.IsInfinitelyRepeatable())
	require.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), *quest.EndDate)
	require.Equal(t, 7, quest.PlayStreakCriteria().RequiredPlaystreakInDays)
	require.Equal(t, 900, quest.PlayStreakCriteria().MinimumSessionTimeInSeconds)
	require.Equal(t, "steam", quest.Runner("hyperplay"))
	require.Equal(t, int64(137), *quest.Rewards[0].ChainID)
	tokenID, ok := quest.Rewards[0].SingleTokenID()
	require.True(t, ok)
	require.Equal(t, int64(5), tokenID)

	streak, err := client.GetUserPlayStreak(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, 3, streak.CurrentPlaystreakInDays)
	require.Equal(t, 120, streak.AccumulatedPlaytimeTodayInSeconds)
	require.NotNil(t, streak.LastPlaySessionCompletedDatetime)

	eligibility, err := client.GetExternalEligibility(ctx, 2)
	require.NoError(t, err)
	require.Equal(t, 12.5, eligibility.Amount)

	// No data yet.
	eligibility, err = client.GetExternalEligibility(ctx, 3)
	require.NoError(t, err)
	require.Nil(t, eligibility)

	contracts, err := client.GetDepositContracts(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, []entity.DepositContract{{ChainID: 137, ContractAddress: "0xabc"}}, contracts)

	pending, err := client.GetPendingExternalSync(ctx, 1)
	require.NoError(t, err)
	require.True(t, pending)

	_, err = client.GetQuest(ctx, 404)
	require.True(t, errorx.Is(err, errorx.NotFound))
}

func TestClient_Wallets(t *testing.T) {
	signer := &mocks.Wallet{}
	signer.On("ConnectedAddress").Return("0xa1", true)
	signer.On("SignMessage", mock.Anything, "link 0xa1").Return("0xsig", nil)

	client, bodies := newTestClient(t, map[string]route{
		"GET /wallets/active":                       {body: `{"wallet_address":"0xa1"}`},
		"GET /wallets":                              {body: `[{"id":1,"wallet_address":"0xa1"},{"id":2,"wallet_address":"0xb2"}]`},
		"PUT /wallets/active":                       {status: http.StatusNoContent},
		"GET /wallets/message?wallet_address=0xa1": {body: `{"message":"link 0xa1"}`},
		"POST /wallets": {
			status: http.StatusConflict,
			body:   `{"message":"This wallet is already linked to another account"}`,
		},
	}, signer)
	ctx := context.Background()

	active, err := client.GetActiveWallet(ctx)
	require.NoError(t, err)
	require.Equal(t, "0xa1", active)

	wallets, err := client.GetGameplayWallets(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(2), wallets[1].ID)

	require.NoError(t, client.UpdateActiveWallet(ctx, 2))
	require.JSONEq(t, `{"wallet_id":2}`, bodies.get("PUT /wallets/active"))

	sig, err := client.GetActiveWalletSignature(ctx)
	require.NoError(t, err)
	require.Equal(t, entity.WalletSignature{Message: "link 0xa1", Signature: "0xsig"}, *sig)

	result, err := client.SetActiveWallet(ctx, *sig)
	require.NoError(t, err)
	require.False(t, result.Success)
	require.Equal(t, http.StatusConflict, result.Status)
	require.Contains(t, result.Message, "already linked to another account")
	require.JSONEq(t, `{"message":"link 0xa1","signature":"0xsig"}`, bodies.get("POST /wallets"))
}

func TestClient_NoSigner(t *testing.T) {
	client, _ := newTestClient(t, nil, nil)
	_, err := client.GetActiveWalletSignature(context.Background())
	require.True(t, errorx.Is(err, errorx.Unavailable))

	active, err := client.GetActiveWallet(context.Background())
	require.NoError(t, err)
	require.Empty(t, active)
}

func TestClient_Claims(t *testing.T) {
	client, bodies := newTestClient(t, map[string]route{
		"GET /rewards/10/signature?address=0xa1&token_id=5": {
			body: `{"signature":"0x01","nonce":"7","expiration":1900000000,"tokenIds":[5]}`,
		},
		"POST /rewards/confirm":                 {status: http.StatusTooManyRequests, body: `{"message":"slow down"}`},
		"POST /rewards/11/points":               {},
		"POST /rewards/12/external-task":        {},
		"GET /rewards/12/external-task-credits": {body: `{"credits":"250"}`},
		"GET /accounts/g7":                      {body: `{"connected":true}`},
		"POST /projects/p1/play-sessions":       {},
		"POST /quests/1/sync-external":          {},
	}, nil)
	ctx := context.Background()

	tokenID := int64(5)
	sig, err := client.GetQuestRewardSignature(ctx, "0xa1", 10, &tokenID)
	require.NoError(t, err)
	require.Equal(t, entity.RewardClaimSignature{
		Signature:  "0x01",
		Nonce:      "7",
		Expiration: 1900000000,
		TokenIDs:   []int64{5},
	}, *sig)

	err = client.ConfirmRewardClaim(ctx, entity.ConfirmClaimParams{Signature: "0x01", TransactionHash: "0xfeed"})
	require.True(t, errorx.Is(err, errorx.TooManyRequests))
	require.Equal(t, "slow down", err.Error())

	var confirm map[string]string
	require.NoError(t, json.Unmarshal([]byte(bodies.get("POST /rewards/confirm")), &confirm))
	require.Equal(t, "0xfeed", confirm["transactionHash"])

	require.NoError(t, client.ClaimPoints(ctx, entity.Reward{ID: 11}))
	require.NoError(t, client.CompleteExternalTask(ctx, entity.Reward{ID: 12}))

	credits, err := client.GetExternalTaskCredits(ctx, 12)
	require.NoError(t, err)
	require.Equal(t, "250", credits)

	connected, err := client.CheckG7ConnectionStatus(ctx)
	require.NoError(t, err)
	require.True(t, connected)

	require.NoError(t, client.SyncPlaySession(ctx, "p1", "hyperplay"))
	require.JSONEq(t, `{"runner":"hyperplay"}`, bodies.get("POST /projects/p1/play-sessions"))

	require.NoError(t, client.SyncPlayStreakWithExternalSource(ctx, 1))
}
