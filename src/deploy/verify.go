package deploy

import (
	"context"
	"path/filepath"
	"reflect"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/peggyjv/cellar-deployer/src/utils/eth"
	"github.com/pkg/errors"
)

var (
	ErrNotContractCreation = errors.New("transaction doesn't create a contract")
	ErrArgsMismatch        = errors.New("constructor arguments differ")
)

type TransactionReader interface {
	TransactionByHash(ctx context.Context, txHash common.Hash) (tx *types.Transaction, isPending bool, err error)
}

// Checks that a deployment transaction carries the artifact's bytecode followed by the expected constructor arguments, in order
func Verify(ctx context.Context, reader TransactionReader, artifact *eth.Artifact, txHash common.Hash, expected ConstructorArgs) (args []interface{}, err error) {
	tx, _, err := reader.TransactionByHash(ctx, txHash)
	if err != nil {
		err = errors.Wrapf(err, "get transaction %s", txHash.Hex())
		return
	}

	if tx.To() != nil {
		err = errors.Wrapf(ErrNotContractCreation, "tx %s calls %s", txHash.Hex(), tx.To().Hex())
		return
	}

	args, err = artifact.DecodeDeployData(tx.Data())
	if err != nil {
		return
	}

	want := expected.Ordered()
	if len(want) != len(args) {
		err = errors.Wrapf(ErrArgsMismatch, "expected %d arguments, got %d", len(want), len(args))
		return
	}
	for i := range want {
		if !reflect.DeepEqual(want[i], args[i]) {
			err = errors.Wrapf(ErrArgsMismatch, "argument %d: expected %v, got %v", i, want[i], args[i])
			return
		}
	}
	return
}

// Where the controller saves the record of a contract deployed on the chain
func RecordPath(dir string, chain eth.Chain, contractName string) string {
	return filepath.Join(dir, chain.String(), contractName+".json")
}
