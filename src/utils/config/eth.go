package config

import (
	"github.com/spf13/viper"
)

type Eth struct {
	// Network name: localhost, hardhat, mainnet, goerli, sepolia
	Chain string

	// JSON-RPC endpoint, overrides the chain's default provider
	RpcUrl string

	// Expected chain id. Zero means whatever the node reports
	ChainId int64
}

func setEthDefaults() {
	viper.SetDefault("Eth.Chain", "localhost")
	viper.SetDefault("Eth.RpcUrl", "")
	viper.SetDefault("Eth.ChainId", 0)
}
