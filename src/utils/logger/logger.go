package logger

import (
	"github.com/peggyjv/cellar-deployer/src/utils/config"
	"github.com/peggyjv/cellar-deployer/src/utils/eth"

	"os"

	"github.com/sirupsen/logrus"
)

var (
	logger *logrus.Logger

	// Added to every sublogger once Init knows the network
	defaultFields logrus.Fields
)

func init() {
	logger = logrus.New()
	defaultFields = logrus.Fields{}
}

func Init(config *config.Config) (err error) {
	level, err := logrus.ParseLevel(config.LogLevel)
	if err != nil {
		return
	}

	chain, err := eth.ParseChain(config.Eth.Chain)
	if err != nil {
		return
	}

	logger.SetLevel(level)
	logger.SetOutput(os.Stdout)

	formatter := &logrus.TextFormatter{
		FullTimestamp: true,
	}
	logger.SetFormatter(formatter)

	defaultFields = logrus.Fields{"network": chain.String()}
	if config.IsDevelopment {
		defaultFields["dev"] = true
	}

	return nil
}

func NewSublogger(tag string) *logrus.Entry {
	fields := logrus.Fields{"module": "deployer." + tag}
	for k, v := range defaultFields {
		fields[k] = v
	}
	return logger.WithFields(fields)
}
