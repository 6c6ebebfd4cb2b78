package rewardclaim

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/questx-lab/questkit/contract/depositcontract"
	"github.com/questx-lab/questkit/internal/entity"
	"github.com/questx-lab/questkit/pkg/errorx"
)

var withdrawMethods = map[entity.RewardType]string{
	entity.RewardERC20:   depositcontract.MethodWithdrawERC20,
	entity.RewardERC721:  depositcontract.MethodWithdrawERC721,
	entity.RewardERC1155: depositcontract.MethodWithdrawERC1155,
}

// packWithdrawal builds the withdraw call of an on-chain reward from the claim
// signature issued by the host.
func packWithdrawal(reward entity.Reward, sig *entity.RewardClaimSignature) (string, []byte, error) {
	method, ok := withdrawMethods[reward.RewardType]
	if !ok {
		return "", nil, errorx.New(errorx.BadRequest, "Reward type %s is not on-chain", reward.RewardType)
	}

	if !common.IsHexAddress(reward.ContractAddress) {
		return "", nil, errorx.New(errorx.BadRequest, "Invalid contract address %q of reward %d",
			reward.ContractAddress, reward.ID)
	}

	nonce, err := depositcontract.ParseUint256(sig.Nonce)
	if err != nil {
		return "", nil, fmt.Errorf("invalid claim nonce: %w", err)
	}

	signature, err := hexutil.Decode(sig.Signature)
	if err != nil {
		return "", nil, fmt.Errorf("invalid claim signature: %w", err)
	}

	w := depositcontract.Withdrawal{
		Token:      common.HexToAddress(reward.ContractAddress),
		Nonce:      nonce,
		Expiration: big.NewInt(sig.Expiration),
		Signature:  signature,
	}

	if reward.RewardType == entity.RewardERC20 || reward.RewardType == entity.RewardERC1155 {
		w.Amount, err = depositcontract.ParseAmount(reward.AmountPerUser, reward.Decimals)
		if err != nil {
			return "", nil, err
		}
	}

	if reward.RewardType == entity.RewardERC721 || reward.RewardType == entity.RewardERC1155 {
		tokenIDs := sig.TokenIDs
		if len(tokenIDs) == 0 {
			tokenIDs = reward.TokenIDs
		}

		for _, id := range tokenIDs {
			w.TokenIDs = append(w.TokenIDs, big.NewInt(id))
		}
	}

	data, err := depositcontract.Pack(method, w)
	if err != nil {
		return "", nil, err
	}

	return method, data, nil
}
