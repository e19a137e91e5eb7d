// Package wallet loads the API's Fabric identity into a gateway wallet.
package wallet

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hyperledger/fabric-sdk-go/pkg/gateway"
)

// Identity locates the enrolment material for one Fabric user.
type Identity struct {
	OrgName  string
	UserName string
	CertPath string
	KeyDir   string
}

// PopulateWallet stores the identity unless the wallet already holds it.
func PopulateWallet(w *gateway.Wallet, id Identity) error {
	if w.Exists(id.UserName) {
		return nil
	}

	cert, err := os.ReadFile(filepath.Clean(id.CertPath))
	if err != nil {
		return fmt.Errorf("read certificate: %w", err)
	}

	keyPath, err := findPrivateKey(id.KeyDir)
	if err != nil {
		return err
	}
	key, err := os.ReadFile(filepath.Clean(keyPath))
	if err != nil {
		return fmt.Errorf("read private key: %w", err)
	}

	return w.Put(id.UserName, gateway.NewX509Identity(id.OrgName+"MSP", string(cert), string(key)))
}

// findPrivateKey returns the first regular file under dir, which is how
// fabric-ca lays out a keystore.
func findPrivateKey(dir string) (string, error) {
	keyPath := ""
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			keyPath = path
			return filepath.SkipAll
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	if keyPath == "" {
		return "", fmt.Errorf("no private key found in directory %s", dir)
	}
	return keyPath, nil
}
