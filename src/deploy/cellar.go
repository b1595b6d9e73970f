package deploy

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/peggyjv/cellar-deployer/src/utils/config"
	"github.com/peggyjv/cellar-deployer/src/utils/eth"
	"github.com/pkg/errors"
)

const CellarContractName = "AaveV2StablecoinCellar"

// Positional constructor arguments
type ConstructorArgs interface {
	Ordered() []interface{}
	Describe() []ConstructorArg
}

type ConstructorArg struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Addresses the AaveV2StablecoinCellar is constructed with. Field order is the constructor's parameter order.
type CellarArgs struct {
	USDC                 common.Address
	UniswapRouter        common.Address
	SushiswapRouter      common.Address
	LendingPool          common.Address
	IncentivesController common.Address
	GravityBridge        common.Address
	StkAAVE              common.Address
	AAVE                 common.Address
}

func NewCellarArgs(config *config.Cellar) (self *CellarArgs, err error) {
	self = new(CellarArgs)
	fields := []struct {
		name  string
		value string
		out   *common.Address
	}{
		{"USDC", config.USDC, &self.USDC},
		{"UniswapRouter", config.UniswapRouter, &self.UniswapRouter},
		{"SushiswapRouter", config.SushiswapRouter, &self.SushiswapRouter},
		{"LendingPool", config.LendingPool, &self.LendingPool},
		{"IncentivesController", config.IncentivesController, &self.IncentivesController},
		{"GravityBridge", config.GravityBridge, &self.GravityBridge},
		{"StkAAVE", config.StkAAVE, &self.StkAAVE},
		{"AAVE", config.AAVE, &self.AAVE},
	}
	for _, field := range fields {
		*field.out, err = eth.ParseAddress(field.value)
		if err != nil {
			return nil, errors.WithMessagef(err, "cellar %s", field.name)
		}
	}
	return
}

func (self *CellarArgs) Ordered() []interface{} {
	return []interface{}{
		self.USDC,
		self.UniswapRouter,
		self.SushiswapRouter,
		self.LendingPool,
		self.IncentivesController,
		self.GravityBridge,
		self.StkAAVE,
		self.AAVE,
	}
}

func (self *CellarArgs) Describe() []ConstructorArg {
	return []ConstructorArg{
		{"USDC", self.USDC.Hex()},
		{"Uniswap Router", self.UniswapRouter.Hex()},
		{"Sushiswap Router", self.SushiswapRouter.Hex()},
		{"Aave V2 Lending Pool", self.LendingPool.Hex()},
		{"Aave Incentives Controller V2", self.IncentivesController.Hex()},
		{"Cosmos Gravity Bridge", self.GravityBridge.Hex()},
		{"stkAAVE", self.StkAAVE.Hex()},
		{"AAVE", self.AAVE.Hex()},
	}
}
