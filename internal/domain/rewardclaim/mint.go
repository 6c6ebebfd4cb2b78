package rewardclaim

import (
	"context"
	"errors"

	"github.com/questx-lab/questkit/internal/common"
	"github.com/questx-lab/questkit/internal/entity"
	"github.com/questx-lab/questkit/pkg/blockchain"
	"github.com/questx-lab/questkit/pkg/errorx"
	"github.com/questx-lab/questkit/pkg/xcontext"
)

// mint withdraws an on-chain reward from the deposit contract. Every step
// waits for the previous one.
func (o *Orchestrator) mint(ctx context.Context, req Request, a *attempt) error {
	if o.wallet == nil {
		return errorx.New(errorx.NotImplemented, "No wallet is configured for on-chain rewards")
	}

	if req.Reward.ChainID == nil {
		return errorx.New(errorx.BadRequest, "Reward %d has no chain", req.Reward.ID)
	}
	chainID := *req.Reward.ChainID

	address, err := o.resolveAddress(ctx)
	if err != nil {
		return err
	}
	a.address = address

	if err := o.wallet.SwitchChain(ctx, chainID); err != nil {
		return &SwitchChainError{ChainID: chainID, Err: err}
	}

	fee, err := o.wallet.EstimateClaimFee(ctx, chainID, address)
	if err != nil {
		return err
	}

	balance, err := o.wallet.Balance(ctx, chainID, address)
	if err != nil {
		return err
	}

	if balance.Cmp(fee) < 0 {
		return warnLowBalance()
	}

	var tokenID *int64
	if id, ok := req.Reward.SingleTokenID(); ok {
		tokenID = &id
	}

	sig, err := o.host.GetQuestRewardSignature(ctx, address, req.Reward.ID, tokenID)
	if err != nil {
		return err
	}

	contract, err := o.depositContract(ctx, req.Quest.ID, chainID)
	if err != nil {
		return err
	}

	method, data, err := packWithdrawal(req.Reward, sig)
	if err != nil {
		return err
	}

	simulated, err := o.wallet.SimulateContract(ctx, blockchain.ContractCall{
		ChainID: chainID,
		From:    address,
		To:      contract.ContractAddress,
		Method:  method,
		Data:    data,
	})
	if err != nil {
		return asContractRevert(err)
	}

	txHash, err := o.wallet.WriteContract(ctx, simulated)
	if err != nil {
		return asContractRevert(err)
	}
	a.txHash = txHash

	return o.confirm(ctx, entity.ConfirmClaimParams{
		Signature:       sig.Signature,
		TransactionHash: txHash,
	})
}

// resolveAddress prefers the connected wallet when its connection can switch
// chains, otherwise a fresh connection is requested.
func (o *Orchestrator) resolveAddress(ctx context.Context) (string, error) {
	if o.wallet.SupportsChainSwitch() {
		if address, ok := o.wallet.ConnectedAddress(); ok && address != "" {
			return address, nil
		}
	}

	address, err := o.wallet.Connect(ctx)
	if err != nil {
		return "", &NoAccountConnectedError{Err: err}
	}

	if address == "" {
		return "", &NoAccountConnectedError{}
	}

	return address, nil
}

func (o *Orchestrator) depositContract(ctx context.Context, questID, chainID int64) (*entity.DepositContract, error) {
	contracts, err := o.host.GetDepositContracts(ctx, questID)
	if err != nil {
		return nil, err
	}

	for i := range contracts {
		if contracts[i].ChainID == chainID {
			return &contracts[i], nil
		}
	}

	return nil, errorx.New(errorx.NotFound, "No deposit contract found for chain %d of quest %d", chainID, questID)
}

// confirm reports the transaction to the host. The host may not see the
// transaction yet, so every failure is retried with a fixed delay.
func (o *Orchestrator) confirm(ctx context.Context, params entity.ConfirmClaimParams) error {
	cfg := xcontext.Configs(ctx).Claim
	attempts := cfg.ConfirmAttempts
	if attempts < 1 {
		attempts = 1
	}

	var err error
	for i := 1; i <= attempts; i++ {
		if i > 1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-o.clock.After(cfg.ConfirmRetryDelay.Duration):
			}
		}

		if err = o.host.ConfirmRewardClaim(ctx, params); err == nil {
			common.ObserveHistogram(common.ConfirmClaimAttempts, float64(i), outcomeSuccess)
			return nil
		}

		xcontext.Logger(ctx).Warnf("Cannot confirm claim %s (attempt %d/%d): %v",
			params.TransactionHash, i, attempts, err)
	}

	common.ObserveHistogram(common.ConfirmClaimAttempts, float64(attempts), outcomeError)
	return err
}

func asContractRevert(err error) error {
	var revertErr *blockchain.RevertError
	if errors.As(err, &revertErr) {
		return &ContractRevertError{Reason: revertErr.Reason, Err: err}
	}

	return err
}
