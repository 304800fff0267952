package chain

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
	"go.uber.org/zap"
)

type Config struct {
	RPCURL             string
	ChainID            int64
	PrivateKey         string
	TokenAddress       string
	DistributorAddress string
	MarketplaceAddress string
	Timeout            time.Duration
}

// EthGateway talks to the token, distributor and marketplace contracts over JSON-RPC.
type EthGateway struct {
	client      *ethclient.Client
	token       *bind.BoundContract
	distributor *bind.BoundContract
	marketplace *bind.BoundContract

	key      *ecdsa.PrivateKey
	chainID  *big.Int
	decimals uint8
	timeout  time.Duration
	log      *zap.Logger

	// sendMu serialises signing so concurrent sends do not reuse a pending nonce.
	sendMu sync.Mutex
}

var _ Gateway = (*EthGateway)(nil)

func NewEthGateway(ctx context.Context, cfg Config, httpClient *http.Client, log *zap.Logger) (*EthGateway, error) {
	for name, addr := range map[string]string{
		"token":       cfg.TokenAddress,
		"distributor": cfg.DistributorAddress,
		"marketplace": cfg.MarketplaceAddress,
	} {
		if !common.IsHexAddress(addr) {
			return nil, fmt.Errorf("%s contract address %q: %w", name, addr, ErrInvalidAddress)
		}
	}

	key, err := crypto.HexToECDSA(strings.TrimPrefix(cfg.PrivateKey, "0x"))
	if err != nil {
		return nil, fmt.Errorf("failed to parse signer key: %w", err)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}

	dialCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	opts := []rpc.ClientOption{}
	if httpClient != nil {
		opts = append(opts, rpc.WithHTTPClient(httpClient))
	}
	rpcClient, err := rpc.DialOptions(dialCtx, cfg.RPCURL, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to rpc: %w", err)
	}
	client := ethclient.NewClient(rpcClient)

	g := &EthGateway{
		client:  client,
		key:     key,
		timeout: timeout,
		log:     log,
	}

	if g.token, err = boundContract(client, cfg.TokenAddress, tokenABI); err != nil {
		client.Close()
		return nil, err
	}
	if g.distributor, err = boundContract(client, cfg.DistributorAddress, distributorABI); err != nil {
		client.Close()
		return nil, err
	}
	if g.marketplace, err = boundContract(client, cfg.MarketplaceAddress, marketplaceABI); err != nil {
		client.Close()
		return nil, err
	}

	if cfg.ChainID > 0 {
		g.chainID = big.NewInt(cfg.ChainID)
	} else if g.chainID, err = client.ChainID(dialCtx); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to read chain id: %w", err)
	}

	g.decimals = DefaultDecimals
	var out []interface{}
	if err := g.token.Call(&bind.CallOpts{Context: dialCtx}, &out, "decimals"); err != nil {
		log.Warn("token decimals unavailable, assuming default",
			zap.Uint8("decimals", DefaultDecimals), zap.Error(err))
	} else {
		g.decimals = *abi.ConvertType(out[0], new(uint8)).(*uint8)
	}

	log.Info("chain gateway ready",
		zap.String("signer", crypto.PubkeyToAddress(key.PublicKey).Hex()),
		zap.String("chain_id", g.chainID.String()),
		zap.Uint8("decimals", g.decimals))

	return g, nil
}

func boundContract(client *ethclient.Client, address, abiJSON string) (*bind.BoundContract, error) {
	parsed, err := abi.JSON(strings.NewReader(abiJSON))
	if err != nil {
		return nil, fmt.Errorf("failed to parse contract ABI: %w", err)
	}
	return bind.NewBoundContract(common.HexToAddress(address), parsed, client, client, client), nil
}

func (g *EthGateway) Decimals() uint8 {
	return g.decimals
}

func (g *EthGateway) GetBalance(ctx context.Context, address string) (Balance, error) {
	if !IsAddress(address) {
		return Balance{}, ErrInvalidAddress
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	var out []interface{}
	if err := g.token.Call(&bind.CallOpts{Context: ctx}, &out, "balanceOf", common.HexToAddress(address)); err != nil {
		return Balance{}, fmt.Errorf("balanceOf %s: %w", address, err)
	}
	raw := *abi.ConvertType(out[0], new(*big.Int)).(**big.Int)

	return Balance{
		Raw:       raw.String(),
		Formatted: FormatUnits(raw, g.decimals),
	}, nil
}

func (g *EthGateway) Mint(ctx context.Context, address string, amount int64, activityType, description string) (string, error) {
	if !IsAddress(address) {
		return "", ErrInvalidAddress
	}
	if amount <= 0 {
		return "", ErrInvalidAmount
	}

	return g.send(ctx, g.distributor, "distributeTokens",
		common.HexToAddress(address), ToWei(amount, g.decimals), activityType, description)
}

func (g *EthGateway) Redeem(ctx context.Context, address, rewardID string, amount, quantity int64) (string, error) {
	if !IsAddress(address) {
		return "", ErrInvalidAddress
	}
	if amount <= 0 || quantity <= 0 {
		return "", ErrInvalidAmount
	}

	g.log.Debug("redeeming on marketplace",
		zap.String("wallet", address), zap.String("reward_id", rewardID), zap.Int64("amount", amount))

	return g.send(ctx, g.marketplace, "redeemTokens", rewardID, ToWei(amount, g.decimals), big.NewInt(quantity))
}

// send signs and submits a contract call, then waits for it to be mined.
func (g *EthGateway) send(ctx context.Context, contract *bind.BoundContract, method string, params ...interface{}) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	tx, err := g.transact(ctx, contract, method, params...)
	if err != nil {
		return "", fmt.Errorf("%s: %w", method, err)
	}

	hash := tx.Hash().Hex()
	g.log.Info("chain transaction sent", zap.String("method", method), zap.String("tx_hash", hash))

	receipt, err := bind.WaitMined(ctx, g.client, tx)
	if err != nil {
		return "", fmt.Errorf("%s %s: waiting for receipt: %w", method, hash, err)
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return "", fmt.Errorf("%s %s: %w", method, hash, ErrReverted)
	}

	g.log.Info("chain transaction confirmed",
		zap.String("method", method),
		zap.String("tx_hash", hash),
		zap.Uint64("block", receipt.BlockNumber.Uint64()))

	return hash, nil
}

func (g *EthGateway) transact(ctx context.Context, contract *bind.BoundContract, method string, params ...interface{}) (*types.Transaction, error) {
	g.sendMu.Lock()
	defer g.sendMu.Unlock()

	opts, err := bind.NewKeyedTransactorWithChainID(g.key, g.chainID)
	if err != nil {
		return nil, err
	}
	opts.Context = ctx

	return contract.Transact(opts, method, params...)
}

func (g *EthGateway) Close() {
	g.client.Close()
}
