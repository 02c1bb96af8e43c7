package app

import (
	"fmt"
	"path"

	cmn "github.com/tendermint/tendermint/libs/common"
	"github.com/tendermint/tendermint/libs/log"

	"github.com/bnb-chain/cosmos-node/app/config"
	bnclog "github.com/bnb-chain/cosmos-node/common/log"
)

// NewLogger builds the node logger from the log section of cfg and installs
// it as the package-level logger.
func NewLogger(cfg *config.CosmosConfig, rootDir string) (log.Logger, error) {
	var logger log.Logger
	if cfg.Log.File == "" {
		logger = bnclog.NewConsoleLogger()
	} else {
		logFilePath := cfg.Log.File
		if !path.IsAbs(logFilePath) {
			logFilePath = path.Join(rootDir, logFilePath)
		}
		err := cmn.EnsureDir(path.Dir(logFilePath), 0755)
		if err != nil {
			return nil, fmt.Errorf("create log dir failed, err=%s", err.Error())
		}
		logger = bnclog.NewFileLogger(logFilePath)
	}

	logger, err := bnclog.WithLevel(logger, cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	logger = logger.With("module", "main")
	bnclog.InitLogger(logger)
	return logger, nil
}
