package config

import (
	"github.com/spf13/viper"
)

// Constructor parameters of the AaveV2StablecoinCellar, defaults are Ethereum mainnet
type Cellar struct {
	USDC                 string
	UniswapRouter        string
	SushiswapRouter      string
	LendingPool          string
	IncentivesController string
	GravityBridge        string
	StkAAVE              string
	AAVE                 string
}

func setCellarDefaults() {
	viper.SetDefault("Cellar.USDC", "0xa0b86991c6218b36c1d19d4a2e9eb0ce3606eb48")
	viper.SetDefault("Cellar.UniswapRouter", "0xE592427A0AEce92De3Edee1F18E0157C05861564")
	viper.SetDefault("Cellar.SushiswapRouter", "0xd9e1cE17f2641f24aE83637ab66a2cca9C378B9F")
	viper.SetDefault("Cellar.LendingPool", "0x7d2768dE32b0b80b7a3454c06BdAc94A69DDc7A9")
	viper.SetDefault("Cellar.IncentivesController", "0xd784927Ff2f95ba542BfC824c8a8a98F3495f6b5")
	viper.SetDefault("Cellar.GravityBridge", "0x69592e6f9d21989a043646fE8225da2600e5A0f7")
	viper.SetDefault("Cellar.StkAAVE", "0x4da27a545c0c5B758a6BA100e3a049001de870f5")
	viper.SetDefault("Cellar.AAVE", "0x7Fc66500c84A76Ad7e9c93437bFc5Ac33E2DDaE9")
}
