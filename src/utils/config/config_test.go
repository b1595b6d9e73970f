package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

func TestConfigTestSuite(t *testing.T) {
	suite.Run(t, new(ConfigTestSuite))
}

type ConfigTestSuite struct {
	suite.Suite
}

func (s *ConfigTestSuite) TestDefaults() {
	config := Default()
	require.NotNil(s.T(), config)
	require.Equal(s.T(), "INFO", config.LogLevel)
	require.Equal(s.T(), 30*time.Second, config.StopTimeout)
	require.Equal(s.T(), "localhost", config.Eth.Chain)
	require.Equal(s.T(), 10*time.Minute, config.Deployer.ConfirmationTimeout)
	require.Equal(s.T(), uint64(1), config.Deployer.Confirmations)
	require.True(s.T(), config.Deployer.ShowProgress)
	require.False(s.T(), config.Deployer.DryRun)
	require.Equal(s.T(), "0xa0b86991c6218b36c1d19d4a2e9eb0ce3606eb48", config.Cellar.USDC)
	require.Equal(s.T(), "0x7Fc66500c84A76Ad7e9c93437bFc5Ac33E2DDaE9", config.Cellar.AAVE)
}

func (s *ConfigTestSuite) TestEnvName() {
	require.Equal(s.T(), "DEPLOYER_SIGNER_PRIVATE_KEY", Env("Signer.PrivateKey"))
	require.Equal(s.T(), "DEPLOYER_LOG_LEVEL", Env("LogLevel"))
}

func (s *ConfigTestSuite) TestEnvOverride() {
	s.T().Setenv(Env("Signer.PrivateKey"), "0xabc")
	s.T().Setenv(Env("Deployer.ConfirmationTimeout"), "90s")
	s.T().Setenv(Env("Deployer.GasLimit"), "4000000")
	s.T().Setenv(Env("Cellar.GravityBridge"), "0x0000000000000000000000000000000000000001")

	config, err := Load("")
	require.Nil(s.T(), err)
	require.Equal(s.T(), "0xabc", config.Signer.PrivateKey)
	require.Equal(s.T(), 90*time.Second, config.Deployer.ConfirmationTimeout)
	require.Equal(s.T(), uint64(4000000), config.Deployer.GasLimit)
	require.Equal(s.T(), "0x0000000000000000000000000000000000000001", config.Cellar.GravityBridge)

	// Untouched fields keep their defaults
	require.Equal(s.T(), "0xa0b86991c6218b36c1d19d4a2e9eb0ce3606eb48", config.Cellar.USDC)
}

func (s *ConfigTestSuite) TestFile() {
	path := filepath.Join(s.T().TempDir(), "config.json")
	err := os.WriteFile(path, []byte(`{
		"LogLevel": "debug",
		"Eth": {"Chain": "sepolia", "ChainId": 11155111},
		"Deployer": {"DryRun": true, "ReceiptPollInterval": "1s"}
	}`), 0o600)
	require.Nil(s.T(), err)

	config, err := Load(path)
	require.Nil(s.T(), err)
	require.Equal(s.T(), "debug", config.LogLevel)
	require.Equal(s.T(), "sepolia", config.Eth.Chain)
	require.Equal(s.T(), int64(11155111), config.Eth.ChainId)
	require.True(s.T(), config.Deployer.DryRun)
	require.Equal(s.T(), time.Second, config.Deployer.ReceiptPollInterval)
}

func (s *ConfigTestSuite) TestMissingFile() {
	_, err := Load(filepath.Join(s.T().TempDir(), "missing.json"))
	require.Error(s.T(), err)
}

func (s *ConfigTestSuite) TestMalformedFile() {
	path := filepath.Join(s.T().TempDir(), "config.json")
	require.Nil(s.T(), os.WriteFile(path, []byte(`{"LogLevel":`), 0o600))

	_, err := Load(path)
	require.Error(s.T(), err)
}
