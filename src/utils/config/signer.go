package config

import (
	"github.com/spf13/viper"
)

type Signer struct {
	// Hex encoded private key, 0x prefix is optional
	PrivateKey string

	// Path to an encrypted JSON key file, used when PrivateKey is empty
	KeystorePath string

	// Passphrase for the key file
	KeystorePassword string

	// If set, must match the address derived from the key
	PublicAddress string
}

func setSignerDefaults() {
	viper.SetDefault("Signer.PrivateKey", "")
	viper.SetDefault("Signer.KeystorePath", "")
	viper.SetDefault("Signer.KeystorePassword", "")
	viper.SetDefault("Signer.PublicAddress", "")
}
