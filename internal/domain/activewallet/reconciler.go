package activewallet

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/questx-lab/questkit/internal/common"
	"github.com/questx-lab/questkit/internal/entity"
	"github.com/questx-lab/questkit/internal/host"
	"github.com/questx-lab/questkit/internal/querycache"
	"github.com/questx-lab/questkit/pkg/errorx"
	"github.com/questx-lab/questkit/pkg/xcontext"
)

const (
	flowUpdate = "update"
	flowAdd    = "add"

	outcomeSuccess  = "success"
	outcomeError    = "error"
	outcomeRejected = "rejected"
)

// Host is the part of the host the reconciler needs.
type Host interface {
	host.WalletData
	host.Telemetry
}

type ConnectedWallet struct {
	Address   string
	Connector string
}

// Reconciler sets the connected wallet as the active wallet of the signed-in
// account. Only one mutation runs at a time.
type Reconciler struct {
	host  Host
	cache *querycache.Cache

	mutex   sync.Mutex
	pending atomic.Bool

	alertMutex sync.RWMutex
	alert      Alert
	lastErr    error
}

func NewReconciler(h Host, cache *querycache.Cache) *Reconciler {
	return &Reconciler{host: h, cache: cache}
}

func (r *Reconciler) ActiveWallet(ctx context.Context) (string, error) {
	return querycache.Fetch(ctx, r.cache, common.QueryActiveWallet, r.queryOptions(ctx),
		func(ctx context.Context) (string, error) {
			return r.host.GetActiveWallet(ctx)
		})
}

func (r *Reconciler) GameplayWallets(ctx context.Context) ([]entity.GameplayWallet, error) {
	return querycache.Fetch(ctx, r.cache, common.QueryGameplayWallets, r.queryOptions(ctx),
		func(ctx context.Context) ([]entity.GameplayWallet, error) {
			return r.host.GetGameplayWallets(ctx)
		})
}

// State derives the current state for the address connected in the wallet
// session, which may be empty.
func (r *Reconciler) State(ctx context.Context, connected string) (State, error) {
	active, err := r.ActiveWallet(ctx)
	if err != nil {
		return "", err
	}

	var known []entity.GameplayWallet
	if connected != "" && active != "" && !sameAddress(connected, active) {
		known, err = r.GameplayWallets(ctx)
		if err != nil {
			return "", err
		}
	}

	return Derive(connected, active, known), nil
}

// SetActive makes the connected wallet the active wallet. A wallet already
// known to the account is switched to directly, a new one is added with a
// fresh signature.
func (r *Reconciler) SetActive(ctx context.Context, wallet ConnectedWallet) error {
	if wallet.Address == "" {
		return ErrNoConnectedWallet
	}

	if !r.mutex.TryLock() {
		return ErrMutationPending
	}
	defer r.mutex.Unlock()

	r.pending.Store(true)
	defer r.pending.Store(false)

	r.setAlert(Alert{}, nil)

	wallets, err := r.GameplayWallets(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get gameplay wallets: %v", err)
		r.setAlert(genericAlert, err)
		return err
	}

	if known, ok := findWallet(wallets, wallet.Address); ok {
		err = r.updateActiveWallet(ctx, known, wallet)
	} else {
		err = r.addGameplayWallet(ctx, wallet)
	}
	if err != nil {
		return err
	}

	r.cache.Invalidate(ctx,
		common.QueryActiveWallet,
		common.QueryGameplayWallets,
		common.QueryExternalEligibility,
	)

	return nil
}

func (r *Reconciler) updateActiveWallet(
	ctx context.Context, known entity.GameplayWallet, wallet ConnectedWallet,
) error {
	props := map[string]any{
		"walletId":        known.ID,
		"walletAddress":   wallet.Address,
		"walletConnector": wallet.Connector,
	}

	r.track(ctx, common.EventUpdateActiveWalletStart, props)
	if err := r.host.UpdateActiveWallet(ctx, known.ID); err != nil {
		r.track(ctx, common.EventUpdateActiveWalletError, withError(props, err))
		r.fail(ctx, flowUpdate, wallet, err)
		return err
	}

	r.track(ctx, common.EventUpdateActiveWalletSuccess, props)
	common.IncCounter(common.ActiveWalletMutationsTotal, flowUpdate, outcomeSuccess)
	return nil
}

func (r *Reconciler) addGameplayWallet(ctx context.Context, wallet ConnectedWallet) error {
	props := map[string]any{
		"walletAddress":   wallet.Address,
		"walletConnector": wallet.Connector,
	}

	r.track(ctx, common.EventAddGameplayWalletStart, props)
	err := r.setActiveWallet(ctx)
	if err == nil {
		r.track(ctx, common.EventAddGameplayWalletSuccess, props)
		common.IncCounter(common.ActiveWalletMutationsTotal, flowAdd, outcomeSuccess)
		return nil
	}

	if host.IsUserRejection(err) {
		// The user can simply try again, no alert is shown.
		r.track(ctx, common.EventAddGameplayWalletRejected, props)
		common.IncCounter(common.ActiveWalletMutationsTotal, flowAdd, outcomeRejected)
		xcontext.Logger(ctx).Infof("User rejected signing for wallet %s", wallet.Address)
		return err
	}

	if errorx.Is(err, errorx.AlreadyExists) {
		err = &AlreadyLinkedError{Address: wallet.Address}
	}

	r.track(ctx, common.EventAddGameplayWalletError, withError(props, err))
	r.fail(ctx, flowAdd, wallet, err)
	return err
}

func (r *Reconciler) setActiveWallet(ctx context.Context) error {
	sig, err := r.host.GetActiveWalletSignature(ctx)
	if err != nil {
		return err
	}

	result, err := r.host.SetActiveWallet(ctx, *sig)
	if err != nil {
		return err
	}

	if !result.Success {
		return resultError(result)
	}

	return nil
}

func (r *Reconciler) fail(ctx context.Context, flow string, wallet ConnectedWallet, err error) {
	common.IncCounter(common.ActiveWalletMutationsTotal, flow, outcomeError)
	xcontext.Logger(ctx).Errorf("Cannot set active wallet %s: %v", wallet.Address, err)
	r.host.LogError(ctx, "Cannot set active wallet", &host.LogOptions{
		Tags:  map[string]string{"flow": flow, "walletConnector": wallet.Connector},
		Extra: map[string]any{"walletAddress": wallet.Address, "error": err.Error()},
	})

	if _, ok := err.(*AlreadyLinkedError); ok {
		r.setAlert(alreadyLinkedAlert, err)
	} else {
		r.setAlert(genericAlert, err)
	}
}

func (r *Reconciler) track(ctx context.Context, event string, props map[string]any) {
	r.host.TrackEvent(ctx, host.TrackEvent{Event: event, Properties: props})
}

func (r *Reconciler) setAlert(alert Alert, err error) {
	r.alertMutex.Lock()
	defer r.alertMutex.Unlock()

	r.alert, r.lastErr = alert, err
}

// Pending reports whether a mutation is in flight.
func (r *Reconciler) Pending() bool {
	return r.pending.Load()
}

// Alert returns the alert of the last failed mutation.
func (r *Reconciler) Alert() Alert {
	r.alertMutex.RLock()
	defer r.alertMutex.RUnlock()

	return r.alert
}

// Err returns the error of the last failed mutation.
func (r *Reconciler) Err() error {
	r.alertMutex.RLock()
	defer r.alertMutex.RUnlock()

	return r.lastErr
}

// Dismiss clears the state left by the last failed mutation.
func (r *Reconciler) Dismiss() {
	r.setAlert(Alert{}, nil)
}

func (r *Reconciler) queryOptions(ctx context.Context) querycache.Options {
	return querycache.Options{StaleTime: xcontext.Configs(ctx).Quest.FreshnessTTL.Duration}
}

func withError(props map[string]any, err error) map[string]any {
	m := make(map[string]any, len(props)+1)
	for k, v := range props {
		m[k] = v
	}
	m["error"] = err.Error()

	return m
}
