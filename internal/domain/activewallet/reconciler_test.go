package activewallet

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/questx-lab/questkit/internal/common"
	"github.com/questx-lab/questkit/internal/entity"
	"github.com/questx-lab/questkit/internal/host"
	"github.com/questx-lab/questkit/internal/querycache"
	"github.com/questx-lab/questkit/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var (
	knownWallet = entity.GameplayWallet{ID: 7, WalletAddress: "0x1111"}
	signature   = &entity.WalletSignature{Message: "link 0x2222", Signature: "0xsig"}
)

func newTestReconciler(wallets []entity.GameplayWallet) (*Reconciler, *mocks.Host) {
	h := &mocks.Host{}
	h.On("TrackEvent", mock.Anything, mock.Anything).Return()
	h.On("LogError", mock.Anything, mock.Anything, mock.Anything).Return()
	h.On("GetGameplayWallets", mock.Anything).Return(wallets, nil)

	return NewReconciler(h, querycache.NewInMemory(clockwork.NewFakeClock())), h
}

func TestReconciler_SetActive_NewWallet(t *testing.T) {
	r, h := newTestReconciler([]entity.GameplayWallet{knownWallet})
	h.On("GetActiveWallet", mock.Anything).Return("0x1111", nil)
	h.On("GetActiveWalletSignature", mock.Anything).Return(signature, nil).Once()
	h.On("SetActiveWallet", mock.Anything, *signature).
		Return(&entity.SetActiveWalletResult{Success: true, Status: http.StatusOK}, nil).Once()

	ctx := context.Background()
	_, err := r.ActiveWallet(ctx)
	require.NoError(t, err)

	err = r.SetActive(ctx, ConnectedWallet{Address: "0x2222", Connector: "metamask"})
	require.NoError(t, err)

	h.AssertNumberOfCalls(t, "GetActiveWalletSignature", 1)
	h.AssertNumberOfCalls(t, "SetActiveWallet", 1)
	h.AssertNotCalled(t, "UpdateActiveWallet", mock.Anything, mock.Anything)
	require.Equal(t, []string{
		common.EventAddGameplayWalletStart,
		common.EventAddGameplayWalletSuccess,
	}, h.TrackedEvents())

	ev, ok := h.LastTrackedEvent(common.EventAddGameplayWalletSuccess)
	require.True(t, ok)
	require.Equal(t, map[string]any{"walletAddress": "0x2222", "walletConnector": "metamask"}, ev.Properties)

	// The active wallet was invalidated and is fetched again.
	_, err = r.ActiveWallet(ctx)
	require.NoError(t, err)
	h.AssertNumberOfCalls(t, "GetActiveWallet", 2)
	require.Equal(t, Alert{}, r.Alert())
}

func TestReconciler_SetActive_KnownWallet(t *testing.T) {
	r, h := newTestReconciler([]entity.GameplayWallet{knownWallet})
	h.On("UpdateActiveWallet", mock.Anything, int64(7)).Return(nil).Once()

	err := r.SetActive(context.Background(), ConnectedWallet{Address: "0x1111", Connector: "walletconnect"})
	require.NoError(t, err)

	h.AssertNumberOfCalls(t, "UpdateActiveWallet", 1)
	h.AssertNotCalled(t, "SetActiveWallet", mock.Anything, mock.Anything)
	h.AssertNotCalled(t, "GetActiveWalletSignature", mock.Anything)
	require.Equal(t, []string{
		common.EventUpdateActiveWalletStart,
		common.EventUpdateActiveWalletSuccess,
	}, h.TrackedEvents())

	ev, _ := h.LastTrackedEvent(common.EventUpdateActiveWalletStart)
	require.Equal(t, int64(7), ev.Properties["walletId"])
}

func TestReconciler_SetActive_AlreadyLinked(t *testing.T) {
	r, h := newTestReconciler(nil)
	h.On("GetActiveWalletSignature", mock.Anything).Return(signature, nil)
	h.On("SetActiveWallet", mock.Anything, *signature).Return(&entity.SetActiveWalletResult{
		Success: false,
		Status:  http.StatusConflict,
		Message: "conflict",
	}, nil)

	err := r.SetActive(context.Background(), ConnectedWallet{Address: "0x2222", Connector: "metamask"})
	var linkedErr *AlreadyLinkedError
	require.ErrorAs(t, err, &linkedErr)

	require.Equal(t, []string{
		common.EventAddGameplayWalletStart,
		common.EventAddGameplayWalletError,
	}, h.TrackedEvents())
	ev, _ := h.LastTrackedEvent(common.EventAddGameplayWalletError)
	require.Contains(t, ev.Properties["error"], "already linked to another account")

	require.Equal(t, AlertAlreadyLinked, r.Alert().Kind)
	require.Equal(t, "Wallet Already Linked", r.Alert().Title)
	h.AssertCalled(t, "LogError", mock.Anything, "Cannot set active wallet", mock.Anything)

	r.Dismiss()
	require.Equal(t, AlertNone, r.Alert().Kind)
	require.NoError(t, r.Err())
}

func TestReconciler_SetActive_Rejected(t *testing.T) {
	r, h := newTestReconciler(nil)
	h.On("GetActiveWalletSignature", mock.Anything).Return(nil, host.ErrUserRejected)

	err := r.SetActive(context.Background(), ConnectedWallet{Address: "0x2222", Connector: "metamask"})
	require.ErrorIs(t, err, host.ErrUserRejected)

	h.AssertNotCalled(t, "SetActiveWallet", mock.Anything, mock.Anything)
	h.AssertNotCalled(t, "LogError", mock.Anything, mock.Anything, mock.Anything)
	require.Equal(t, []string{
		common.EventAddGameplayWalletStart,
		common.EventAddGameplayWalletRejected,
	}, h.TrackedEvents())
	require.Equal(t, AlertNone, r.Alert().Kind)
}

func TestReconciler_SetActive_GenericFailure(t *testing.T) {
	t.Run("unsuccessful result", func(t *testing.T) {
		r, h := newTestReconciler(nil)
		h.On("GetActiveWalletSignature", mock.Anything).Return(signature, nil)
		h.On("SetActiveWallet", mock.Anything, *signature).Return(&entity.SetActiveWalletResult{
			Success: false,
			Status:  http.StatusInternalServerError,
		}, nil)

		err := r.SetActive(context.Background(), ConnectedWallet{Address: "0x2222"})
		require.Error(t, err)
		require.Equal(t, AlertGeneric, r.Alert().Kind)
		require.Equal(t, []string{
			common.EventAddGameplayWalletStart,
			common.EventAddGameplayWalletError,
		}, h.TrackedEvents())
	})

	t.Run("update fails", func(t *testing.T) {
		r, h := newTestReconciler([]entity.GameplayWallet{knownWallet})
		h.On("UpdateActiveWallet", mock.Anything, int64(7)).Return(errors.New("boom"))

		err := r.SetActive(context.Background(), ConnectedWallet{Address: "0x1111"})
		require.EqualError(t, err, "boom")
		require.Equal(t, AlertGeneric, r.Alert().Kind)
		require.Equal(t, []string{
			common.EventUpdateActiveWalletStart,
			common.EventUpdateActiveWalletError,
		}, h.TrackedEvents())
	})

	t.Run("retry resets alert", func(t *testing.T) {
		r, h := newTestReconciler([]entity.GameplayWallet{knownWallet})
		h.On("UpdateActiveWallet", mock.Anything, int64(7)).Return(errors.New("boom")).Once()
		h.On("UpdateActiveWallet", mock.Anything, int64(7)).Return(nil).Once()

		require.Error(t, r.SetActive(context.Background(), ConnectedWallet{Address: "0x1111"}))
		require.Equal(t, AlertGeneric, r.Alert().Kind)

		require.NoError(t, r.SetActive(context.Background(), ConnectedWallet{Address: "0x1111"}))
		require.Equal(t, AlertNone, r.Alert().Kind)
	})
}

func TestReconciler_SetActive_NoConnectedWallet(t *testing.T) {
	r, h := newTestReconciler(nil)

	err := r.SetActive(context.Background(), ConnectedWallet{})
	require.ErrorIs(t, err, ErrNoConnectedWallet)
	h.AssertNotCalled(t, "GetGameplayWallets", mock.Anything)
}

func TestReconciler_SetActive_OneAtATime(t *testing.T) {
	r, h := newTestReconciler([]entity.GameplayWallet{knownWallet})

	release := make(chan struct{})
	h.On("UpdateActiveWallet", mock.Anything, int64(7)).
		Run(func(mock.Arguments) { <-release }).
		Return(nil)

	done := make(chan error, 1)
	go func() {
		done <- r.SetActive(context.Background(), ConnectedWallet{Address: "0x1111"})
	}()

	require.Eventually(t, r.Pending, time.Second, time.Millisecond)

	err := r.SetActive(context.Background(), ConnectedWallet{Address: "0x1111"})
	require.ErrorIs(t, err, ErrMutationPending)

	close(release)
	require.NoError(t, <-done)
	require.False(t, r.Pending())
	h.AssertNumberOfCalls(t, "UpdateActiveWallet", 1)
}

func TestReconciler_State(t *testing.T) {
	r, h := newTestReconciler([]entity.GameplayWallet{knownWallet})
	h.On("GetActiveWallet", mock.Anything).Return("0x9999", nil)

	state, err := r.State(context.Background(), "0x1111")
	require.NoError(t, err)
	require.Equal(t, DifferentKnownWallet, state)

	state, err = r.State(context.Background(), "")
	require.NoError(t, err)
	require.Equal(t, OnlyActive, state)
}
