package cmd

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/peggyjv/cellar-deployer/src/deploy"
	"github.com/peggyjv/cellar-deployer/src/utils/eth"
	"github.com/peggyjv/cellar-deployer/src/utils/logger"
	"github.com/pkg/errors"

	"github.com/spf13/cobra"
)

func init() {
	verifyCmd.Flags().StringVar(&verifyTxHash, "tx", "", "deployment transaction hash, defaults to the one in the saved deployment record")
	RootCmd.AddCommand(verifyCmd)
}

var verifyTxHash string

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Checks that a deployed AaveV2StablecoinCellar was constructed with the configured addresses",
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		log := logger.NewSublogger("verify-cmd")

		chain, err := eth.ParseChain(conf.Eth.Chain)
		if err != nil {
			return
		}

		artifact, err := eth.LoadArtifact(conf.Deployer.ArtifactPath)
		if err != nil {
			return
		}

		expected, err := deploy.NewCellarArgs(&conf.Cellar)
		if err != nil {
			return
		}

		var txHash common.Hash
		if verifyTxHash != "" {
			txHash = common.HexToHash(verifyTxHash)
		} else {
			var record *deploy.Record
			record, err = deploy.LoadRecord(deploy.RecordPath(conf.Deployer.DeploymentsDir, chain, artifact.ContractName))
			if err != nil {
				return errors.Wrap(err, "no --tx given and no deployment record")
			}
			txHash = record.TransactionHash
		}

		rpcUrl, err := eth.Endpoint(chain, conf.Eth.RpcUrl)
		if err != nil {
			return
		}

		client, err := eth.GetEthClient(applicationCtx, log, rpcUrl)
		if err != nil {
			return
		}
		defer client.Close()

		_, err = deploy.Verify(applicationCtx, client, artifact, txHash, expected)
		if err != nil {
			return
		}

		for i, arg := range expected.Describe() {
			log.WithField("position", i).WithField("name", arg.Name).WithField("value", arg.Value).Info("Constructor argument")
		}
		log.WithField("tx", txHash.Hex()).Info("Deployment matches configuration")
		return
	},
	PostRunE: func(cmd *cobra.Command, args []string) (err error) {
		log := logger.NewSublogger("root-cmd")
		log.Debug("Finished verify command")
		applicationCtxCancel()
		return
	},
}
