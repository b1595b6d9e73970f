package cmd

import (
	"github.com/peggyjv/cellar-deployer/src/deploy"
	"github.com/peggyjv/cellar-deployer/src/utils/eth"
	"github.com/peggyjv/cellar-deployer/src/utils/logger"

	"github.com/spf13/cobra"
)

func init() {
	RootCmd.AddCommand(accountCmd)
}

var accountCmd = &cobra.Command{
	Use:   "account",
	Short: "Prints the deployer address and balance",
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		log := logger.NewSublogger("account-cmd")

		chain, err := eth.ParseChain(conf.Eth.Chain)
		if err != nil {
			return
		}

		signer, err := eth.NewSigner(&conf.Signer, chain, conf.IsDevelopment)
		if err != nil {
			return
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

		_, _, err = deploy.NewDeployer(conf).
			WithChain(chain).
			WithSigner(signer).
			WithBackend(client).
			Account(applicationCtx)
		return
	},
	PostRunE: func(cmd *cobra.Command, args []string) (err error) {
		log := logger.NewSublogger("root-cmd")
		log.Debug("Finished account command")
		applicationCtxCancel()
		return
	},
}
