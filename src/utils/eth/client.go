package eth

import (
	"context"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/params"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var ErrUnknownChain = errors.New("ETH chain unknown")

type Chain int

const (
	Localhost Chain = iota
	Hardhat   Chain = iota
	Mainnet   Chain = iota
	Goerli    Chain = iota
	Sepolia   Chain = iota
)

func ParseChain(name string) (chain Chain, err error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "localhost", "":
		return Localhost, nil
	case "hardhat":
		return Hardhat, nil
	case "mainnet":
		return Mainnet, nil
	case "goerli":
		return Goerli, nil
	case "sepolia":
		return Sepolia, nil
	}
	err = errors.Wrapf(ErrUnknownChain, "chain %q", name)
	return
}

func (chain Chain) String() string {
	switch chain {
	case Localhost:
		return "localhost"
	case Hardhat:
		return "hardhat"
	case Mainnet:
		return "mainnet"
	case Goerli:
		return "goerli"
	case Sepolia:
		return "sepolia"
	}
	return ""
}

func (chain Chain) RpcProviderUrl() (rpcProviderUrl string, err error) {
	switch chain {
	case Localhost, Hardhat:
		rpcProviderUrl = "http://127.0.0.1:8545"
		return
	case Mainnet:
		rpcProviderUrl = "https://cloudflare-eth.com"
		return
	case Goerli:
		rpcProviderUrl = "https://rpc.ankr.com/eth_goerli"
		return
	case Sepolia:
		rpcProviderUrl = "https://rpc.sepolia.org"
		return
	}

	err = ErrUnknownChain
	return
}

func (chain Chain) ChainId() int64 {
	switch chain {
	case Localhost, Hardhat:
		return 31337
	case Mainnet:
		return 1
	case Goerli:
		return 5
	case Sepolia:
		return 11155111
	}
	return 0
}

// Local development node with unlocked, prefunded accounts
func (chain Chain) IsDevelopment() bool {
	return chain == Localhost || chain == Hardhat
}

// Endpoint picks the configured url, falling back to the chain's default provider
func Endpoint(chain Chain, rpcUrl string) (string, error) {
	if rpcUrl = strings.TrimSpace(rpcUrl); rpcUrl != "" {
		return rpcUrl, nil
	}
	return chain.RpcProviderUrl()
}

func GetEthClient(ctx context.Context, log *logrus.Entry, rpcProviderUrl string) (client *ethclient.Client, err error) {
	client, err = ethclient.DialContext(ctx, rpcProviderUrl)
	if err != nil {
		log.WithError(err).WithField("url", rpcProviderUrl).Error("Cannot get ETH client")
		err = errors.Wrap(err, "dial rpc")
		return
	}

	return
}

func WeiToEther(wei *big.Int) float64 {
	ether, _ := new(big.Float).Quo(new(big.Float).SetInt(wei), big.NewFloat(params.Ether)).Float64()
	return ether
}
