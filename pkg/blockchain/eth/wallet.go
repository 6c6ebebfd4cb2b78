package eth

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"sync/atomic"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/questx-lab/questkit/config"
	"github.com/questx-lab/questkit/contract/depositcontract"
	"github.com/questx-lab/questkit/pkg/blockchain"
	"github.com/questx-lab/questkit/pkg/xcontext"
)

const ConnectorPrivateKey = "private-key"

var (
	ErrUnsupportedChain = errors.New("unsupported chain")
	ErrSenderMismatch   = errors.New("sender is not the wallet address")
)

type chainClient struct {
	cfg    config.ChainConfig
	client EthClient
}

// Wallet is a blockchain.Wallet backed by a local private key. It is always
// connected and can switch to any configured chain.
type Wallet struct {
	privateKey *ecdsa.PrivateKey
	address    common.Address
	gasLimit   uint64

	chains       map[int64]*chainClient
	currentChain atomic.Int64
}

var _ blockchain.Wallet = (*Wallet)(nil)

func NewWallet(cfg config.EthConfigs, gasLimit uint64) (*Wallet, error) {
	privateKey, err := crypto.HexToECDSA(strings.TrimPrefix(cfg.PrivateKey, "0x"))
	if err != nil {
		return nil, fmt.Errorf("invalid private key: %w", err)
	}

	clients := make(map[int64]EthClient, len(cfg.Chains))
	for _, chain := range cfg.Chains {
		clients[chain.ChainID] = NewEthClients(chain)
	}

	return newWallet(privateKey, cfg.Chains, clients, gasLimit), nil
}

func newWallet(
	privateKey *ecdsa.PrivateKey,
	chains []config.ChainConfig,
	clients map[int64]EthClient,
	gasLimit uint64,
) *Wallet {
	w := &Wallet{
		privateKey: privateKey,
		address:    crypto.PubkeyToAddress(privateKey.PublicKey),
		gasLimit:   gasLimit,
		chains:     make(map[int64]*chainClient, len(chains)),
	}

	for _, chain := range chains {
		if client, ok := clients[chain.ChainID]; ok {
			w.chains[chain.ChainID] = &chainClient{cfg: chain, client: client}
		}
	}

	if len(chains) > 0 {
		w.currentChain.Store(chains[0].ChainID)
	}

	return w
}

func (w *Wallet) Connector() string {
	return ConnectorPrivateKey
}

func (w *Wallet) ConnectedAddress() (string, bool) {
	return w.address.Hex(), true
}

func (w *Wallet) SupportsChainSwitch() bool {
	return true
}

func (w *Wallet) Connect(ctx context.Context) (string, error) {
	return w.address.Hex(), nil
}

func (w *Wallet) CurrentChain() int64 {
	return w.currentChain.Load()
}

func (w *Wallet) SwitchChain(ctx context.Context, chainID int64) error {
	if _, err := w.chain(chainID); err != nil {
		return err
	}

	w.currentChain.Store(chainID)
	return nil
}

func (w *Wallet) chain(chainID int64) (*chainClient, error) {
	c, ok := w.chains[chainID]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedChain, chainID)
	}

	return c, nil
}

func (w *Wallet) EstimateClaimFee(ctx context.Context, chainID int64, from string) (*big.Int, error) {
	c, err := w.chain(chainID)
	if err != nil {
		return nil, err
	}

	gasPrice, err := c.client.SuggestGasPrice(ctx)
	if err != nil {
		return nil, err
	}

	return new(big.Int).Mul(gasPrice, new(big.Int).SetUint64(w.gasLimit)), nil
}

func (w *Wallet) Balance(ctx context.Context, chainID int64, address string) (*big.Int, error) {
	c, err := w.chain(chainID)
	if err != nil {
		return nil, err
	}

	return c.client.BalanceAt(ctx, common.HexToAddress(address), nil)
}

func (w *Wallet) SimulateContract(ctx context.Context, call blockchain.ContractCall) (*blockchain.SimulatedRequest, error) {
	c, err := w.chain(call.ChainID)
	if err != nil {
		return nil, err
	}

	to := common.HexToAddress(call.To)
	msg := ethereum.CallMsg{
		From: common.HexToAddress(call.From),
		To:   &to,
		Data: call.Data,
	}

	if _, err := c.client.CallContract(ctx, msg, nil); err != nil {
		return nil, toRevertError(err)
	}

	gas, err := c.client.EstimateGas(ctx, msg)
	if err != nil {
		return nil, toRevertError(err)
	}

	return &blockchain.SimulatedRequest{ContractCall: call, Gas: gas}, nil
}

func (w *Wallet) WriteContract(ctx context.Context, req *blockchain.SimulatedRequest) (string, error) {
	if req.From != "" && !strings.EqualFold(req.From, w.address.Hex()) {
		return "", fmt.Errorf("%w: %s", ErrSenderMismatch, req.From)
	}

	c, err := w.chain(req.ChainID)
	if err != nil {
		return "", err
	}

	nonce, err := c.client.PendingNonceAt(ctx, w.address)
	if err != nil {
		return "", err
	}

	gasPrice, err := c.client.SuggestGasPrice(ctx)
	if err != nil {
		return "", err
	}

	tx := ethtypes.NewTransaction(nonce, common.HexToAddress(req.To), common.Big0, req.Gas, gasPrice, req.Data)
	signedTx, err := ethtypes.SignTx(tx, signerFor(c.cfg), w.privateKey)
	if err != nil {
		return "", err
	}

	if err := c.client.SendTransaction(ctx, signedTx); err != nil {
		return "", toRevertError(err)
	}

	xcontext.Logger(ctx).Infof("Submitted %s on chain %s: %s", req.Method, c.cfg.Chain, signedTx.Hash().Hex())
	return signedTx.Hash().Hex(), nil
}

func (w *Wallet) SignMessage(ctx context.Context, message string) (string, error) {
	hash := accounts.TextHash([]byte(message))
	signature, err := crypto.Sign(hash, w.privateKey)
	if err != nil {
		return "", err
	}

	signature[crypto.RecoveryIDOffset] += 27 // Transform V from 0/1 to yellow paper 27/28
	return hexutil.Encode(signature), nil
}

func (w *Wallet) Close() {
	for _, c := range w.chains {
		c.client.Close()
	}
}

func signerFor(cfg config.ChainConfig) ethtypes.Signer {
	if cfg.UseEip1559 {
		return ethtypes.NewLondonSigner(big.NewInt(cfg.ChainID))
	}

	return ethtypes.NewEIP155Signer(big.NewInt(cfg.ChainID))
}

func toRevertError(err error) error {
	var dataErr rpc.DataError
	if errors.As(err, &dataErr) {
		revertErr := &blockchain.RevertError{}
		if s, ok := dataErr.ErrorData().(string); ok {
			if data, decodeErr := hexutil.Decode(s); decodeErr == nil {
				revertErr.Data = data
				revertErr.Reason, _ = depositcontract.DecodeRevert(data)
			}
		}

		return revertErr
	}

	if _, reason, ok := strings.Cut(err.Error(), "execution reverted"); ok {
		return &blockchain.RevertError{Reason: strings.TrimPrefix(reason, ": ")}
	}

	return err
}
