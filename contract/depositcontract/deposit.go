package depositcontract

import (
	"bytes"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
)

const (
	MethodWithdrawERC20   = "withdrawERC20"
	MethodWithdrawERC721  = "withdrawERC721"
	MethodWithdrawERC1155 = "withdrawERC1155"
)

// DepositContractMetaData contains the withdraw surface of the deposit contract.
var DepositContractMetaData = &bind.MetaData{
	ABI: `[
{"inputs":[{"internalType":"address","name":"token","type":"address"},{"internalType":"uint256","name":"amount","type":"uint256"},{"internalType":"uint256","name":"nonce","type":"uint256"},{"internalType":"uint256","name":"expiration","type":"uint256"},{"internalType":"bytes","name":"signature","type":"bytes"}],"name":"withdrawERC20","outputs":[],"stateMutability":"nonpayable","type":"function"},
{"inputs":[{"internalType":"address","name":"token","type":"address"},{"internalType":"uint256[]","name":"tokenIds","type":"uint256[]"},{"internalType":"uint256","name":"nonce","type":"uint256"},{"internalType":"uint256","name":"expiration","type":"uint256"},{"internalType":"bytes","name":"signature","type":"bytes"}],"name":"withdrawERC721","outputs":[],"stateMutability":"nonpayable","type":"function"},
{"inputs":[{"internalType":"address","name":"token","type":"address"},{"internalType":"uint256[]","name":"tokenIds","type":"uint256[]"},{"internalType":"uint256[]","name":"amounts","type":"uint256[]"},{"internalType":"uint256","name":"nonce","type":"uint256"},{"internalType":"uint256","name":"expiration","type":"uint256"},{"internalType":"bytes","name":"signature","type":"bytes"}],"name":"withdrawERC1155","outputs":[],"stateMutability":"nonpayable","type":"function"},
{"inputs":[],"name":"InvalidSignature","type":"error"},
{"inputs":[],"name":"SignatureExpired","type":"error"},
{"inputs":[{"internalType":"uint256","name":"nonce","type":"uint256"}],"name":"NonceAlreadyUsed","type":"error"},
{"inputs":[{"internalType":"address","name":"token","type":"address"}],"name":"InsufficientBalance","type":"error"}
]`,
}

var ErrUnknownMethod = errors.New("unknown withdraw method")

// Withdrawal holds the arguments of a withdraw call. Amount is used by
// withdrawERC20 and as the per-token amount of withdrawERC1155.
type Withdrawal struct {
	Token      common.Address
	Amount     *big.Int
	TokenIDs   []*big.Int
	Nonce      *big.Int
	Expiration *big.Int
	Signature  []byte
}

// Pack returns the calldata of the withdraw method.
func Pack(method string, w Withdrawal) ([]byte, error) {
	parsed, err := DepositContractMetaData.GetAbi()
	if err != nil {
		return nil, err
	}

	switch method {
	case MethodWithdrawERC20:
		return parsed.Pack(method, w.Token, w.Amount, w.Nonce, w.Expiration, w.Signature)

	case MethodWithdrawERC721:
		return parsed.Pack(method, w.Token, w.TokenIDs, w.Nonce, w.Expiration, w.Signature)

	case MethodWithdrawERC1155:
		amounts := make([]*big.Int, len(w.TokenIDs))
		for i := range amounts {
			amounts[i] = w.Amount
		}

		return parsed.Pack(method, w.Token, w.TokenIDs, amounts, w.Nonce, w.Expiration, w.Signature)
	}

	return nil, fmt.Errorf("%w: %s", ErrUnknownMethod, method)
}

// DecodeRevert returns the revert reason of Error(string) reverts or the name
// of the custom error the contract reverted with.
func DecodeRevert(data []byte) (string, bool) {
	if len(data) < 4 {
		return "", false
	}

	if reason, err := abi.UnpackRevert(data); err == nil {
		return reason, true
	}

	parsed, err := DepositContractMetaData.GetAbi()
	if err != nil {
		return "", false
	}

	for name, e := range parsed.Errors {
		if bytes.Equal(e.ID[:4], data[:4]) {
			return name, true
		}
	}

	return "", false
}
