package eth

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/questx-lab/questkit/config"
	"github.com/questx-lab/questkit/pkg/xcontext"
)

var RpcTimeOut = time.Second * 5

var ErrNoHealthyRPC = errors.New("no healthy rpc")

// A wrapper around ethclient.Client so that we can mock in wallet tests.
type EthClient interface {
	CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
	EstimateGas(ctx context.Context, msg ethereum.CallMsg) (uint64, error)
	SuggestGasPrice(ctx context.Context) (*big.Int, error)
	PendingNonceAt(ctx context.Context, account common.Address) (uint64, error)
	SendTransaction(ctx context.Context, tx *ethtypes.Transaction) error
	BalanceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (*big.Int, error)
	Close()
}

// Default implementation of EthClient. Since eth RPC often unstable, this
// client keeps a connection to every configured RPC and uses a random healthy
// one for each call, falling back to the others on failure.
type defaultEthClient struct {
	chain string
	rpcs  []string

	clients   []*ethclient.Client
	healthies []bool
	urls      []string

	lock sync.RWMutex
}

func NewEthClients(cfg config.ChainConfig) EthClient {
	return &defaultEthClient{
		chain: cfg.Chain,
		rpcs:  cfg.Rpcs,
	}
}

func (c *defaultEthClient) connect(ctx context.Context) {
	clients := make([]*ethclient.Client, 0, len(c.rpcs))
	healthies := make([]bool, 0, len(c.rpcs))
	urls := make([]string, 0, len(c.rpcs))

	for _, url := range c.rpcs {
		client, err := ethclient.DialContext(ctx, url)
		if err != nil {
			xcontext.Logger(ctx).Warnf("Cannot dial rpc %s of chain %s: %v", url, c.chain, err)
			continue
		}

		timeoutCtx, cancel := context.WithTimeout(ctx, RpcTimeOut)
		_, err = client.BlockNumber(timeoutCtx)
		cancel()
		if err != nil {
			xcontext.Logger(ctx).Warnf("Rpc %s of chain %s is unhealthy: %v", url, c.chain, err)
		}

		clients = append(clients, client)
		healthies = append(healthies, err == nil)
		urls = append(urls, url)
	}

	c.lock.Lock()
	for _, old := range c.clients {
		old.Close()
	}
	c.clients, c.healthies, c.urls = clients, healthies, urls
	c.lock.Unlock()
}

func (c *defaultEthClient) markUnhealthy(url string) {
	c.lock.Lock()
	defer c.lock.Unlock()

	for i := range c.urls {
		if c.urls[i] == url {
			c.healthies[i] = false
		}
	}
}

// shuffled returns the healthy clients in random order. If every client is
// marked unhealthy, all of them are returned so a recovered rpc can be used
// again.
func (c *defaultEthClient) shuffled(ctx context.Context) ([]*ethclient.Client, []string) {
	c.lock.RLock()
	connected := c.clients != nil
	c.lock.RUnlock()
	if !connected {
		c.connect(ctx)
	}

	c.lock.RLock()
	defer c.lock.RUnlock()

	clients := make([]*ethclient.Client, 0, len(c.clients))
	urls := make([]string, 0, len(c.clients))
	for _, i := range rand.Perm(len(c.clients)) {
		if c.healthies[i] {
			clients = append(clients, c.clients[i])
			urls = append(urls, c.urls[i])
		}
	}

	if len(clients) == 0 {
		clients = append(clients, c.clients...)
		urls = append(urls, c.urls...)
	}

	return clients, urls
}

func execute[T any](ctx context.Context, c *defaultEthClient, f func(client *ethclient.Client) (T, error)) (T, error) {
	var zero T
	clients, urls := c.shuffled(ctx)
	if len(clients) == 0 {
		return zero, fmt.Errorf("%w for chain %s", ErrNoHealthyRPC, c.chain)
	}

	var lastErr error
	for i, client := range clients {
		ret, err := f(client)
		if err == nil {
			return ret, nil
		}

		// The rpc answered, the call itself failed.
		if isExecutionError(err) {
			return zero, err
		}

		xcontext.Logger(ctx).Warnf("Call to rpc %s of chain %s failed: %v", urls[i], c.chain, err)
		c.markUnhealthy(urls[i])
		lastErr = err
	}

	return zero, lastErr
}

func isExecutionError(err error) bool {
	var dataErr rpc.DataError
	if errors.As(err, &dataErr) {
		return true
	}

	var rpcErr rpc.Error
	if errors.As(err, &rpcErr) {
		return true
	}

	return strings.Contains(err.Error(), "execution reverted")
}

func (c *defaultEthClient) CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error) {
	return execute(ctx, c, func(client *ethclient.Client) ([]byte, error) {
		return client.CallContract(ctx, msg, blockNumber)
	})
}

func (c *defaultEthClient) EstimateGas(ctx context.Context, msg ethereum.CallMsg) (uint64, error) {
	return execute(ctx, c, func(client *ethclient.Client) (uint64, error) {
		return client.EstimateGas(ctx, msg)
	})
}

func (c *defaultEthClient) SuggestGasPrice(ctx context.Context) (*big.Int, error) {
	return execute(ctx, c, func(client *ethclient.Client) (*big.Int, error) {
		return client.SuggestGasPrice(ctx)
	})
}

func (c *defaultEthClient) PendingNonceAt(ctx context.Context, account common.Address) (uint64, error) {
	return execute(ctx, c, func(client *ethclient.Client) (uint64, error) {
		return client.PendingNonceAt(ctx, account)
	})
}

func (c *defaultEthClient) SendTransaction(ctx context.Context, tx *ethtypes.Transaction) error {
	_, err := execute(ctx, c, func(client *ethclient.Client) (struct{}, error) {
		return struct{}{}, client.SendTransaction(ctx, tx)
	})

	return err
}

func (c *defaultEthClient) BalanceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (*big.Int, error) {
	return execute(ctx, c, func(client *ethclient.Client) (*big.Int, error) {
		return client.BalanceAt(ctx, account, blockNumber)
	})
}

func (c *defaultEthClient) Close() {
	c.lock.Lock()
	defer c.lock.Unlock()

	for _, client := range c.clients {
		client.Close()
	}
	c.clients, c.healthies, c.urls = nil, nil, nil
}
