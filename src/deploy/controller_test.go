package deploy

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient/simulated"
	"github.com/peggyjv/cellar-deployer/src/utils/config"
	"github.com/peggyjv/cellar-deployer/src/utils/eth"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

func TestControllerTestSuite(t *testing.T) {
	suite.Run(t, new(ControllerTestSuite))
}

type ControllerTestSuite struct {
	suite.Suite
	config *config.Config
	signer *eth.Signer
	sim    *simulated.Backend
	stop   func()
}

func (s *ControllerTestSuite) SetupTest() {
	signer, alloc := newFundedSigner()
	s.signer = signer
	s.sim = simulated.NewBackend(alloc)
	s.stop = startMining(s.sim)

	s.config = testConfig()
	s.config.Signer.PrivateKey = common.Bytes2Hex(crypto.FromECDSA(signer.Key))
	s.config.Deployer.DeploymentsDir = s.T().TempDir()
}

func (s *ControllerTestSuite) TearDownTest() {
	s.stop()
	s.sim.Close()
}

func (s *ControllerTestSuite) newController() *Controller {
	controller, err := NewController(s.config)
	require.Nil(s.T(), err)
	controller.WithBackend(s.sim.Client())
	return controller
}

func (s *ControllerTestSuite) wait(controller *Controller) *Controller {
	require.Nil(s.T(), controller.Start())

	select {
	case <-controller.CtxRunning.Done():
	case <-time.After(time.Minute):
		s.T().Fatal("deployment didn't finish")
	}
	controller.StopWait()
	return controller
}

func (s *ControllerTestSuite) run() *Controller {
	return s.wait(s.newController())
}

// Captures warnings logged by the controller while it runs
func (s *ControllerTestSuite) captureLogs(controller *Controller) *test.Hook {
	log := controller.Log.Logger
	previous := log.ReplaceHooks(make(logrus.LevelHooks))
	s.T().Cleanup(func() { log.ReplaceHooks(previous) })
	return test.NewLocal(log)
}

func warnings(hook *test.Hook) (out []*logrus.Entry) {
	for _, entry := range hook.AllEntries() {
		if entry.Level == logrus.WarnLevel {
			out = append(out, entry)
		}
	}
	return
}

func (s *ControllerTestSuite) TestDeploy() {
	controller := s.run()
	require.Nil(s.T(), controller.Err())
	require.NotNil(s.T(), controller.Record)
	require.Equal(s.T(), s.signer.Address, controller.Record.Deployer)

	path := filepath.Join(s.config.Deployer.DeploymentsDir, "localhost", CellarContractName+".json")
	saved, err := LoadRecord(path)
	require.Nil(s.T(), err)
	require.Equal(s.T(), controller.Record.Address, saved.Address)
	require.Equal(s.T(), controller.Record.TransactionHash, saved.TransactionHash)
	require.Equal(s.T(), controller.Record.Args, saved.Args)
}

func (s *ControllerTestSuite) TestRedeployCreatesNewInstance() {
	first := s.run()
	require.Nil(s.T(), first.Err())

	second := s.run()
	require.Nil(s.T(), second.Err())
	require.NotEqual(s.T(), first.Record.Address, second.Record.Address)

	path := filepath.Join(s.config.Deployer.DeploymentsDir, "localhost", CellarContractName+".json")
	saved, err := LoadRecord(path)
	require.Nil(s.T(), err)
	require.Equal(s.T(), second.Record.Address, saved.Address)
}

func (s *ControllerTestSuite) TestWarnsAboutPreviousDeployment() {
	first := s.run()
	require.Nil(s.T(), first.Err())

	second := s.newController()
	hook := s.captureLogs(second)
	s.wait(second)
	require.Nil(s.T(), second.Err())

	found := warnings(hook)
	require.Len(s.T(), found, 1)
	require.Equal(s.T(), "Contract was already deployed on this network, deploying a new instance", found[0].Message)
	require.Equal(s.T(), first.Record.Address.Hex(), found[0].Data["address"])
	require.Equal(s.T(), first.Record.TransactionHash.Hex(), found[0].Data["tx"])
}

func (s *ControllerTestSuite) TestFirstDeploymentDoesNotWarn() {
	controller := s.newController()
	hook := s.captureLogs(controller)
	s.wait(controller)
	require.Nil(s.T(), controller.Err())
	require.Empty(s.T(), warnings(hook))
}

func (s *ControllerTestSuite) TestUnreadablePreviousRecord() {
	path := filepath.Join(s.config.Deployer.DeploymentsDir, "localhost", CellarContractName+".json")
	require.Nil(s.T(), os.MkdirAll(filepath.Dir(path), 0o755))
	require.Nil(s.T(), os.WriteFile(path, []byte("{"), 0o644))

	controller := s.newController()
	hook := s.captureLogs(controller)
	s.wait(controller)
	require.Nil(s.T(), controller.Err())

	found := warnings(hook)
	require.Len(s.T(), found, 1)
	require.Equal(s.T(), "Failed to read previous deployment record", found[0].Message)
	require.Equal(s.T(), path, found[0].Data["path"])

	// Replaced by the new deployment
	saved, err := LoadRecord(path)
	require.Nil(s.T(), err)
	require.Equal(s.T(), controller.Record.Address, saved.Address)
}

func (s *ControllerTestSuite) TestDevelopmentAccountOnFork() {
	s.config.Signer.PrivateKey = ""
	s.config.Eth.Chain = "mainnet"
	s.config.IsDevelopment = true

	controller, err := NewController(s.config)
	require.Nil(s.T(), err)
	require.Equal(s.T(), common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"), controller.deployer.signer.Address)
}

func (s *ControllerTestSuite) TestDryRunSavesNothing() {
	s.config.Deployer.DryRun = true

	controller := s.run()
	require.Nil(s.T(), controller.Err())
	require.True(s.T(), controller.Record.DryRun)

	_, err := os.Stat(filepath.Join(s.config.Deployer.DeploymentsDir, "localhost"))
	require.True(s.T(), os.IsNotExist(err))
}

func (s *ControllerTestSuite) TestFailurePropagates() {
	s.config.Eth.ChainId = 1

	controller := s.run()
	require.ErrorIs(s.T(), controller.Err(), ErrChainIdMismatch)
	require.Nil(s.T(), controller.Record)
}

func (s *ControllerTestSuite) TestInvalidConfig() {
	s.config.Cellar.USDC = "usdc"
	_, err := NewController(s.config)
	require.Error(s.T(), err)

	s.config = testConfig()
	s.config.Deployer.ArtifactPath = "testdata/Missing.json"
	_, err = NewController(s.config)
	require.Error(s.T(), err)

	s.config = testConfig()
	s.config.Eth.Chain = "mainnet"
	_, err = NewController(s.config)
	require.ErrorIs(s.T(), err, eth.ErrNoSigner)
}
