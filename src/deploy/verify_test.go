package deploy

import (
	"context"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient/simulated"
	"github.com/peggyjv/cellar-deployer/src/utils/eth"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

func TestVerifyTestSuite(t *testing.T) {
	suite.Run(t, new(VerifyTestSuite))
}

type VerifyTestSuite struct {
	suite.Suite
	ctx      context.Context
	cancel   context.CancelFunc
	sim      *simulated.Backend
	signer   *eth.Signer
	artifact *eth.Artifact
	args     *CellarArgs
	record   *Record
}

func (s *VerifyTestSuite) SetupTest() {
	var (
		alloc types.GenesisAlloc
		err   error
	)
	s.ctx, s.cancel = context.WithTimeout(context.Background(), time.Minute)
	config := testConfig()
	s.signer, alloc = newFundedSigner()
	s.sim = simulated.NewBackend(alloc)

	s.artifact, err = eth.LoadArtifact(config.Deployer.ArtifactPath)
	require.Nil(s.T(), err)
	s.args, err = NewCellarArgs(&config.Cellar)
	require.Nil(s.T(), err)

	stop := startMining(s.sim)
	defer stop()

	s.record, err = NewDeployer(config).
		WithBackend(s.sim.Client()).
		WithSigner(s.signer).
		Deploy(s.ctx, s.artifact, s.args)
	require.Nil(s.T(), err)
}

func (s *VerifyTestSuite) TearDownTest() {
	s.cancel()
	s.sim.Close()
}

func (s *VerifyTestSuite) TestMatches() {
	args, err := Verify(s.ctx, s.sim.Client(), s.artifact, s.record.TransactionHash, s.args)
	require.Nil(s.T(), err)
	require.Equal(s.T(), s.args.Ordered(), args)
}

func (s *VerifyTestSuite) TestDifferentArgs() {
	other := *s.args
	other.StkAAVE, other.AAVE = other.AAVE, other.StkAAVE

	_, err := Verify(s.ctx, s.sim.Client(), s.artifact, s.record.TransactionHash, &other)
	require.ErrorIs(s.T(), err, ErrArgsMismatch)
}

func (s *VerifyTestSuite) TestDifferentBytecode() {
	reverting, err := eth.LoadArtifact("testdata/Reverting.json")
	require.Nil(s.T(), err)

	_, err = Verify(s.ctx, s.sim.Client(), reverting, s.record.TransactionHash, s.args)
	require.ErrorIs(s.T(), err, eth.ErrBytecodeMismatch)
}

func (s *VerifyTestSuite) TestUnknownTransaction() {
	_, err := Verify(s.ctx, s.sim.Client(), s.artifact, common.HexToHash("0x01"), s.args)
	require.Error(s.T(), err)
}

func (s *VerifyTestSuite) TestRecordPath() {
	require.Equal(s.T(), "deployments/mainnet/AaveV2StablecoinCellar.json", RecordPath("deployments", eth.Mainnet, CellarContractName))
}
