package cmd

import (
	"fmt"

	"github.com/peggyjv/cellar-deployer/src/deploy"
	"github.com/peggyjv/cellar-deployer/src/utils/logger"
	"github.com/pkg/errors"

	"github.com/spf13/cobra"
)

func init() {
	cellarCmd.Flags().BoolVar(&dryRun, "dry-run", false, "sign the deployment transaction without sending it")
	deployCmd.AddCommand(cellarCmd)
	RootCmd.AddCommand(deployCmd)
}

var dryRun bool

var deployCmd = &cobra.Command{
	Use:   "deploy",
	Short: "Deploys contracts",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
	PostRunE: func(cmd *cobra.Command, args []string) (err error) {
		applicationCtxCancel()
		return
	},
}

var cellarCmd = &cobra.Command{
	Use:   "aave_v2_cellar",
	Short: "Deploys AaveV2StablecoinCellar with the configured constructor addresses",
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		if cmd.Flags().Changed("dry-run") {
			conf.Deployer.DryRun = dryRun
		}

		controller, err := deploy.NewController(conf)
		if err != nil {
			return
		}

		err = controller.Start()
		if err != nil {
			return
		}

		select {
		case <-controller.CtxRunning.Done():
		case <-applicationCtx.Done():
		}

		controller.StopWait()

		err = controller.Err()
		if err != nil {
			return
		}
		if controller.Record == nil {
			return errors.New("deployment interrupted")
		}

		blob, err := controller.Record.JSON()
		if err != nil {
			return
		}
		fmt.Println(string(blob))
		return
	},
	PostRunE: func(cmd *cobra.Command, args []string) (err error) {
		log := logger.NewSublogger("root-cmd")
		log.Debug("Finished deploy command")
		applicationCtxCancel()
		return
	},
}
