package deploy

import (
	"os"

	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/peggyjv/cellar-deployer/src/utils/config"
	"github.com/peggyjv/cellar-deployer/src/utils/eth"
	"github.com/peggyjv/cellar-deployer/src/utils/task"
)

type Controller struct {
	*task.Task

	deployer *Deployer
	client   *ethclient.Client

	// Available after the task finishes successfully
	Record *Record
}

// Deploys the AaveV2StablecoinCellar. Nothing is sent until Start() is called.
func NewController(config *config.Config) (self *Controller, err error) {
	self = new(Controller)
	self.Task = task.NewTask(config, "cellar")

	chain, err := eth.ParseChain(config.Eth.Chain)
	if err != nil {
		return
	}

	signer, err := eth.NewSigner(&config.Signer, chain, config.IsDevelopment)
	if err != nil {
		return
	}

	artifact, err := eth.LoadArtifact(config.Deployer.ArtifactPath)
	if err != nil {
		return
	}

	args, err := NewCellarArgs(&config.Cellar)
	if err != nil {
		return
	}

	rpcUrl, err := eth.Endpoint(chain, config.Eth.RpcUrl)
	if err != nil {
		return
	}

	self.deployer = NewDeployer(config).
		WithChain(chain).
		WithSigner(signer)

	self.Task = self.Task.
		WithOnBeforeStart(func() (err error) {
			if self.deployer.backend != nil {
				return nil
			}
			self.client, err = eth.GetEthClient(self.Ctx, self.Log, rpcUrl)
			if err != nil {
				return
			}
			self.deployer.WithBackend(self.client)
			return
		}).
		WithSubtaskFunc(func() (err error) {
			self.warnIfDeployed(chain, artifact.ContractName)

			record, err := self.deployer.Deploy(self.Ctx, artifact, args)
			if err != nil {
				return
			}

			if !record.DryRun && config.Deployer.DeploymentsDir != "" {
				var path string
				path, err = SaveRecord(config.Deployer.DeploymentsDir, record)
				if err != nil {
					return
				}
				self.Log.WithField("path", path).Debug("Saved deployment record")
			}

			self.Record = record
			return
		}).
		WithOnAfterStop(func() {
			if self.client != nil {
				self.client.Close()
			}
		})

	return
}

// Use an already connected node instead of dialing the configured one
func (self *Controller) WithBackend(backend Backend) *Controller {
	self.deployer.WithBackend(backend)
	return self
}

// Each run deploys a new instance, an earlier record for the network only gets reported
func (self *Controller) warnIfDeployed(chain eth.Chain, contractName string) {
	dir := self.Config.Deployer.DeploymentsDir
	if dir == "" {
		return
	}

	path := RecordPath(dir, chain, contractName)
	if _, err := os.Stat(path); err != nil {
		return
	}

	previous, err := LoadRecord(path)
	if err != nil {
		self.Log.WithError(err).WithField("path", path).Warn("Failed to read previous deployment record")
		return
	}

	self.Log.WithField("address", previous.Address.Hex()).
		WithField("tx", previous.TransactionHash.Hex()).
		Warn("Contract was already deployed on this network, deploying a new instance")
}
