package config

import (
	"time"

	"github.com/spf13/viper"
)

type Deployer struct {
	// Compiled hardhat artifact with the contract's ABI and creation bytecode
	ArtifactPath string

	// Gas limit of the deployment transaction, 0 means estimate
	GasLimit uint64

	// EIP-1559 fee cap in wei, 0 means suggested by the node
	GasFeeCap int64

	// EIP-1559 tip cap in wei, 0 means suggested by the node
	GasTipCap int64

	// How long to wait for the deployment to be mined
	ConfirmationTimeout time.Duration

	// Number of blocks, including the one with the deployment, that need to be mined
	Confirmations uint64

	// Max time between checks for the transaction receipt
	ReceiptPollInterval time.Duration

	// Sign the transaction, but don't broadcast it
	DryRun bool

	// Display a spinner while waiting for the deployment
	ShowProgress bool

	// Where deployment records are saved, one directory per network. Empty disables saving
	DeploymentsDir string
}

func setDeployerDefaults() {
	viper.SetDefault("Deployer.ArtifactPath", "artifacts/contracts/AaveV2StablecoinCellar.sol/AaveV2StablecoinCellar.json")
	viper.SetDefault("Deployer.GasLimit", 0)
	viper.SetDefault("Deployer.GasFeeCap", 0)
	viper.SetDefault("Deployer.GasTipCap", 0)
	viper.SetDefault("Deployer.ConfirmationTimeout", "10m")
	viper.SetDefault("Deployer.Confirmations", 1)
	viper.SetDefault("Deployer.ReceiptPollInterval", "4s")
	viper.SetDefault("Deployer.DryRun", false)
	viper.SetDefault("Deployer.ShowProgress", true)
	viper.SetDefault("Deployer.DeploymentsDir", "deployments")
}
