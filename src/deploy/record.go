package deploy

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/peggyjv/cellar-deployer/src/utils/eth"
	"github.com/pkg/errors"
)

// Outcome of a deployment, printed and saved to the deployments directory
type Record struct {
	ContractName    string           `json:"contractName"`
	Network         string           `json:"network"`
	ChainId         uint64           `json:"chainId"`
	Address         common.Address   `json:"address"`
	Deployer        common.Address   `json:"deployer"`
	TransactionHash common.Hash      `json:"transactionHash"`
	BlockNumber     uint64           `json:"blockNumber,omitempty"`
	GasUsed         uint64           `json:"gasUsed,omitempty"`
	Args            []ConstructorArg `json:"args"`
	DeployedAt      *time.Time       `json:"deployedAt,omitempty"`

	// Set only for dry runs, the signed transaction that wasn't broadcast
	DryRun         bool          `json:"dryRun,omitempty"`
	RawTransaction hexutil.Bytes `json:"rawTransaction,omitempty"`
}

func (self *Record) JSON() ([]byte, error) {
	return json.MarshalIndent(self, "", "  ")
}

// Writes the record to dir/<network>/<contract>.json, overwriting an earlier deployment on the same network
func SaveRecord(dir string, record *Record) (path string, err error) {
	chain, err := eth.ParseChain(record.Network)
	if err != nil {
		return
	}

	path = RecordPath(dir, chain, record.ContractName)
	err = os.MkdirAll(filepath.Dir(path), 0o755)
	if err != nil {
		err = errors.Wrap(err, "create deployments directory")
		return
	}

	blob, err := record.JSON()
	if err != nil {
		err = errors.Wrap(err, "encode deployment record")
		return
	}

	/* #nosec */
	err = os.WriteFile(path, append(blob, '\n'), 0o644)
	if err != nil {
		err = errors.Wrap(err, "write deployment record")
	}
	return
}

func LoadRecord(path string) (record *Record, err error) {
	/* #nosec */
	content, err := os.ReadFile(path)
	if err != nil {
		return
	}
	record = new(Record)
	err = json.Unmarshal(content, record)
	return
}
