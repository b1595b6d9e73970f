package deploy

import (
	"context"
	"io"
	"math/big"
	"os"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/peggyjv/cellar-deployer/src/utils/config"
	"github.com/peggyjv/cellar-deployer/src/utils/eth"
	"github.com/peggyjv/cellar-deployer/src/utils/logger"
	"github.com/peggyjv/cellar-deployer/src/utils/task"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var (
	ErrDeploymentReverted = errors.New("deployment transaction reverted")
	ErrAddressMismatch    = errors.New("receipt contract address differs from the predicted one")
	ErrChainIdMismatch    = errors.New("node reports a different chain id")
	errNotConfirmed       = errors.New("not enough confirmations")
)

// Everything the deployer needs from a node. Satisfied by *ethclient.Client and the simulated backend.
type Backend interface {
	bind.ContractBackend
	bind.DeployBackend
	BalanceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (*big.Int, error)
	ChainID(ctx context.Context) (*big.Int, error)
}

// Contract creation transaction that was signed and, unless it's a dry run, sent
type Deployment struct {
	ContractName string
	Address      common.Address
	Deployer     common.Address
	ChainId      *big.Int
	Transaction  *types.Transaction
	Args         ConstructorArgs

	// Creation bytecode followed by the encoded constructor arguments
	Data []byte
}

// Deploys a single contract instance from the configured signer
type Deployer struct {
	config   *config.Config
	log      *logrus.Entry
	backend  Backend
	signer   *eth.Signer
	chain    eth.Chain
	progress io.Writer
}

func NewDeployer(config *config.Config) (self *Deployer) {
	self = new(Deployer)
	self.config = config
	self.log = logger.NewSublogger("deployer")
	self.progress = os.Stderr
	return
}

func (self *Deployer) WithBackend(backend Backend) *Deployer {
	self.backend = backend
	return self
}

func (self *Deployer) WithSigner(signer *eth.Signer) *Deployer {
	self.signer = signer
	return self
}

func (self *Deployer) WithChain(chain eth.Chain) *Deployer {
	self.chain = chain
	return self
}

func (self *Deployer) WithProgressWriter(w io.Writer) *Deployer {
	self.progress = w
	return self
}

// Logs the signer's address and balance
func (self *Deployer) Account(ctx context.Context) (address common.Address, balance *big.Int, err error) {
	address = self.signer.Address
	self.log.WithField("address", address.Hex()).Info("Deployer address")

	balance, err = self.backend.BalanceAt(ctx, address, nil)
	if err != nil {
		err = errors.Wrap(err, "get deployer balance")
		return
	}

	self.log.WithField("balance", balance.String()).
		WithField("ether", eth.WeiToEther(balance)).
		Info("Deployer balance")
	return
}

func (self *Deployer) chainId(ctx context.Context) (chainId *big.Int, err error) {
	chainId, err = self.backend.ChainID(ctx)
	if err != nil {
		err = errors.Wrap(err, "get chain id")
		return
	}

	expected := self.config.Eth.ChainId
	if expected != 0 && chainId.Cmp(big.NewInt(expected)) != 0 {
		err = errors.Wrapf(ErrChainIdMismatch, "expected %d, got %s", expected, chainId)
		return
	}
	return
}

func (self *Deployer) transactOpts(ctx context.Context, chainId *big.Int) (opts *bind.TransactOpts, err error) {
	opts, err = self.signer.TransactOpts(ctx, chainId)
	if err != nil {
		return
	}

	// Zero values are filled in by the node
	opts.GasLimit = self.config.Deployer.GasLimit
	if self.config.Deployer.GasFeeCap > 0 {
		opts.GasFeeCap = big.NewInt(self.config.Deployer.GasFeeCap)
	}
	if self.config.Deployer.GasTipCap > 0 {
		opts.GasTipCap = big.NewInt(self.config.Deployer.GasTipCap)
	}
	opts.NoSend = self.config.Deployer.DryRun
	return
}

// Signs the contract creation transaction and sends it, exactly once
func (self *Deployer) Submit(ctx context.Context, artifact *eth.Artifact, args ConstructorArgs) (deployment *Deployment, err error) {
	// Fail on arguments not matching the constructor before talking to the node
	data, err := artifact.DeployData(args.Ordered()...)
	if err != nil {
		return
	}

	chainId, err := self.chainId(ctx)
	if err != nil {
		return
	}

	opts, err := self.transactOpts(ctx, chainId)
	if err != nil {
		return
	}

	address, tx, _, err := bind.DeployContract(opts, artifact.ABI, artifact.Bytecode, self.backend, args.Ordered()...)
	if err != nil {
		err = errors.Wrapf(err, "deploy %s", artifact.ContractName)
		return
	}

	deployment = &Deployment{
		ContractName: artifact.ContractName,
		Address:      address,
		Deployer:     self.signer.Address,
		ChainId:      chainId,
		Transaction:  tx,
		Args:         args,
		Data:         data,
	}

	self.log.WithField("tx", tx.Hash().Hex()).
		WithField("nonce", tx.Nonce()).
		WithField("gas", tx.Gas()).
		WithField("data_size", len(data)).
		WithField("address", address.Hex()).
		WithField("dry_run", opts.NoSend).
		Info("Deployment transaction signed")
	return
}

// Blocks until the deployment is mined with enough confirmations, or the confirmation timeout passes
func (self *Deployer) Wait(ctx context.Context, deployment *Deployment) (receipt *types.Receipt, err error) {
	ctx, cancel := context.WithTimeout(ctx, self.config.Deployer.ConfirmationTimeout)
	defer cancel()

	txHash := deployment.Transaction.Hash()
	log := self.log.WithField("tx", txHash.Hex())

	progress := newSpinner(self.progress, self.config.Deployer.ShowProgress, "Waiting for "+deployment.ContractName+" to be mined")
	defer progress.Finish()

	retry := task.NewRetry().
		WithContext(ctx).
		// Retries until the timeout
		WithMaxElapsedTime(0).
		WithMaxInterval(self.config.Deployer.ReceiptPollInterval).
		WithOnError(func(err error) {
			progress.Tick()
			if errors.Is(err, ethereum.NotFound) || errors.Is(err, errNotConfirmed) {
				return
			}
			log.WithError(err).Warn("Failed to check deployment, retrying")
		})

	err = retry.Run(func() (err error) {
		receipt, err = self.backend.TransactionReceipt(ctx, txHash)
		return
	})
	if err != nil {
		err = errors.Wrapf(err, "wait for %s deployment %s", deployment.ContractName, txHash.Hex())
		return
	}

	log.WithField("block", receipt.BlockNumber).
		WithField("gas_used", receipt.GasUsed).
		WithField("status", receipt.Status).
		Debug("Deployment mined")

	if receipt.Status != types.ReceiptStatusSuccessful {
		err = errors.Wrapf(ErrDeploymentReverted, "tx %s", txHash.Hex())
		return
	}

	if receipt.ContractAddress != deployment.Address {
		err = errors.Wrapf(ErrAddressMismatch, "%s != %s", receipt.ContractAddress.Hex(), deployment.Address.Hex())
		return
	}

	err = self.waitConfirmations(ctx, retry, receipt)
	if err != nil {
		err = errors.Wrapf(err, "wait for %s confirmations", deployment.ContractName)
		return
	}

	code, err := self.backend.CodeAt(ctx, deployment.Address, nil)
	if err != nil {
		err = errors.Wrap(err, "get deployed code")
		return
	}
	if len(code) == 0 {
		err = errors.Wrapf(bind.ErrNoCodeAfterDeploy, "address %s", deployment.Address.Hex())
		return
	}

	return
}

func (self *Deployer) waitConfirmations(ctx context.Context, retry *task.Retry, receipt *types.Receipt) error {
	required := self.config.Deployer.Confirmations
	if required <= 1 {
		// Being mined is the first confirmation
		return nil
	}

	return retry.Run(func() error {
		head, err := self.backend.HeaderByNumber(ctx, nil)
		if err != nil {
			return err
		}

		// A lagging node may not know the receipt's block yet
		if head.Number.Cmp(receipt.BlockNumber) < 0 {
			self.log.WithField("head", head.Number).
				WithField("block", receipt.BlockNumber).
				Debug("Node is behind the deployment block")
			return errNotConfirmed
		}

		confirmations := new(big.Int).Sub(head.Number, receipt.BlockNumber).Uint64() + 1
		if confirmations < required {
			self.log.WithField("confirmations", confirmations).
				WithField("required", required).
				Debug("Waiting for confirmations")
			return errNotConfirmed
		}
		return nil
	})
}

// Logs the signer, sends the deployment, waits for it and logs the contract address
func (self *Deployer) Deploy(ctx context.Context, artifact *eth.Artifact, args ConstructorArgs) (record *Record, err error) {
	_, _, err = self.Account(ctx)
	if err != nil {
		return
	}

	deployment, err := self.Submit(ctx, artifact, args)
	if err != nil {
		return
	}

	record = &Record{
		ContractName:    deployment.ContractName,
		Network:         self.chain.String(),
		ChainId:         deployment.ChainId.Uint64(),
		Address:         deployment.Address,
		Deployer:        deployment.Deployer,
		TransactionHash: deployment.Transaction.Hash(),
		Args:            args.Describe(),
	}

	if self.config.Deployer.DryRun {
		record.DryRun = true
		record.RawTransaction, err = deployment.Transaction.MarshalBinary()
		if err != nil {
			return nil, errors.Wrap(err, "encode transaction")
		}
		self.log.WithField("address", deployment.Address.Hex()).Info("Dry run, transaction not sent")
		return
	}

	receipt, err := self.Wait(ctx, deployment)
	if err != nil {
		return nil, err
	}

	block, err := self.backend.HeaderByNumber(ctx, receipt.BlockNumber)
	if err != nil {
		return nil, errors.Wrap(err, "get deployment block")
	}

	deployedAt := time.Unix(int64(block.Time), 0).UTC()
	record.BlockNumber = receipt.BlockNumber.Uint64()
	record.GasUsed = receipt.GasUsed
	record.DeployedAt = &deployedAt

	self.log.WithField("address", receipt.ContractAddress.Hex()).
		Info(deployment.ContractName + " deployed to " + receipt.ContractAddress.Hex())
	return
}
