package eth

import (
	"context"
	"crypto/ecdsa"
	"math/big"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/peggyjv/cellar-deployer/src/utils/config"
	"github.com/pkg/errors"
)

// Account #0 of hardhat and anvil development nodes. Publicly known, never use outside of a local node.
const DevelopmentAccountKey = "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"

var (
	ErrNoSigner        = errors.New("no signer configured")
	ErrAddressMismatch = errors.New("public address does not match the signer")
)

type Signer struct {
	Key     *ecdsa.PrivateKey
	Address common.Address
}

// Picks the first available signer: explicit key, then key file, then the development account of a local node.
// isDevelopment allows the development account on any chain, e.g. a local fork of mainnet.
func NewSigner(config *config.Signer, chain Chain, isDevelopment bool) (self *Signer, err error) {
	var key *ecdsa.PrivateKey
	switch {
	case strings.TrimSpace(config.PrivateKey) != "":
		key, err = ParsePrivateKey(config.PrivateKey)
	case strings.TrimSpace(config.KeystorePath) != "":
		key, err = decryptKeystore(config.KeystorePath, config.KeystorePassword)
	case chain.IsDevelopment() || isDevelopment:
		key, err = ParsePrivateKey(DevelopmentAccountKey)
	default:
		err = errors.Wrapf(ErrNoSigner, "chain %s requires a private key or a keystore", chain)
	}
	if err != nil {
		return
	}

	self = &Signer{
		Key:     key,
		Address: crypto.PubkeyToAddress(key.PublicKey),
	}

	if config.PublicAddress != "" {
		var expected common.Address
		expected, err = ParseAddress(config.PublicAddress)
		if err != nil {
			return nil, err
		}
		if expected != self.Address {
			return nil, errors.Wrapf(ErrAddressMismatch, "%s != %s", expected.Hex(), self.Address.Hex())
		}
	}

	return
}

func (self *Signer) TransactOpts(ctx context.Context, chainId *big.Int) (opts *bind.TransactOpts, err error) {
	opts, err = bind.NewKeyedTransactorWithChainID(self.Key, chainId)
	if err != nil {
		err = errors.Wrap(err, "create transactor")
		return
	}
	opts.Context = ctx
	return
}

func ParsePrivateKey(v string) (key *ecdsa.PrivateKey, err error) {
	v = strings.TrimPrefix(strings.TrimSpace(v), "0x")
	key, err = crypto.HexToECDSA(v)
	if err != nil {
		err = errors.Wrap(err, "parse private key")
	}
	return
}

func ParseAddress(v string) (common.Address, error) {
	v = strings.TrimSpace(v)
	if !common.IsHexAddress(v) {
		return common.Address{}, errors.Errorf("invalid address: %s", v)
	}
	return common.HexToAddress(v), nil
}

func decryptKeystore(path, password string) (key *ecdsa.PrivateKey, err error) {
	/* #nosec */
	content, err := os.ReadFile(path)
	if err != nil {
		err = errors.Wrap(err, "read keystore")
		return
	}
	decrypted, err := keystore.DecryptKey(content, password)
	if err != nil {
		err = errors.Wrap(err, "decrypt keystore")
		return
	}
	return decrypted.PrivateKey, nil
}
