package eth

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
)

var (
	ErrEmptyBytecode    = errors.New("artifact has no bytecode")
	ErrUnlinkedLibrary  = errors.New("artifact has unlinked library references")
	ErrBytecodeMismatch = errors.New("creation data doesn't start with the artifact's bytecode")
)

// Compiled contract: what a contract factory needs to create an instance
type Artifact struct {
	ContractName string
	ABI          abi.ABI
	Bytecode     []byte
}

// Hardhat's artifact format, hh-sol-artifact-1
type rawArtifact struct {
	ContractName   string                     `json:"contractName"`
	SourceName     string                     `json:"sourceName"`
	Abi            json.RawMessage            `json:"abi"`
	Bytecode       string                     `json:"bytecode"`
	LinkReferences map[string]json.RawMessage `json:"linkReferences"`
}

func LoadArtifact(path string) (artifact *Artifact, err error) {
	/* #nosec */
	content, err := os.ReadFile(path)
	if err != nil {
		err = errors.Wrap(err, "read artifact")
		return
	}
	return ParseArtifact(content)
}

func ParseArtifact(content []byte) (artifact *Artifact, err error) {
	raw := new(rawArtifact)
	err = json.Unmarshal(content, raw)
	if err != nil {
		err = errors.Wrap(err, "decode artifact")
		return
	}

	if len(raw.LinkReferences) > 0 {
		err = errors.Wrapf(ErrUnlinkedLibrary, "contract %s", raw.ContractName)
		return
	}

	contractABI, err := abi.JSON(strings.NewReader(string(raw.Abi)))
	if err != nil {
		err = errors.Wrap(err, "parse abi")
		return
	}

	bytecode := common.FromHex(strings.TrimSpace(raw.Bytecode))
	if len(bytecode) == 0 {
		err = errors.Wrapf(ErrEmptyBytecode, "contract %s", raw.ContractName)
		return
	}

	artifact = &Artifact{
		ContractName: raw.ContractName,
		ABI:          contractABI,
		Bytecode:     bytecode,
	}
	return
}

// Data of the contract creation transaction: bytecode followed by the encoded constructor arguments
func (self *Artifact) DeployData(args ...interface{}) (data []byte, err error) {
	input, err := self.ABI.Pack("", args...)
	if err != nil {
		err = errors.Wrapf(err, "pack %s constructor arguments", self.ContractName)
		return
	}
	data = append(append([]byte{}, self.Bytecode...), input...)
	return
}

// Splits contract creation data into the artifact's bytecode and the constructor arguments, in order
func (self *Artifact) DecodeDeployData(data []byte) (args []interface{}, err error) {
	if !bytes.HasPrefix(data, self.Bytecode) {
		err = errors.Wrapf(ErrBytecodeMismatch, "contract %s", self.ContractName)
		return
	}

	args, err = self.ABI.Constructor.Inputs.Unpack(data[len(self.Bytecode):])
	if err != nil {
		err = errors.Wrapf(err, "unpack %s constructor arguments", self.ContractName)
	}
	return
}
