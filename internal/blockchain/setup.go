// Package blockchain connects to the Fabric network holding the campaign donations ledger.
package blockchain

import (
	"fmt"
	"os"
	"path/filepath"

	"relief-coordination-api/config"
	"relief-coordination-api/internal/wallet"

	fabconfig "github.com/hyperledger/fabric-sdk-go/pkg/core/config"
	"github.com/hyperledger/fabric-sdk-go/pkg/fabsdk"
	"github.com/hyperledger/fabric-sdk-go/pkg/gateway"
)

type FabricSetup struct {
	Gateway  *gateway.Gateway
	Contract *gateway.Contract
	SDK      *fabsdk.FabricSDK
}

func Initialize(cfg config.FabricConfig) (*FabricSetup, error) {
	os.Setenv("DISCOVERY_AS_LOCALHOST", "true")

	fsWallet, err := gateway.NewFileSystemWallet(cfg.WalletPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create wallet: %w", err)
	}

	err = wallet.PopulateWallet(fsWallet, wallet.Identity{
		OrgName:  cfg.OrgName,
		UserName: cfg.UserName,
		CertPath: cfg.UserCertPath,
		KeyDir:   cfg.UserKeyDir,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to populate wallet for %s: %w", cfg.UserName, err)
	}

	sdk, err := fabsdk.New(fabconfig.FromFile(filepath.Clean(cfg.ConnectionProfile)))
	if err != nil {
		return nil, fmt.Errorf("failed to create fabsdk instance: %w", err)
	}

	gw, err := gateway.Connect(
		gateway.WithSDK(sdk),
		gateway.WithIdentity(fsWallet, cfg.UserName),
	)
	if err != nil {
		sdk.Close()
		return nil, fmt.Errorf("failed to connect to gateway: %w", err)
	}

	network, err := gw.GetNetwork(cfg.ChannelName)
	if err != nil {
		gw.Close()
		sdk.Close()
		return nil, fmt.Errorf("failed to get network: %w", err)
	}

	return &FabricSetup{
		Gateway:  gw,
		Contract: network.GetContract(cfg.ChaincodeName),
		SDK:      sdk,
	}, nil
}

func (fs *FabricSetup) Close() {
	fs.Gateway.Close()
	fs.SDK.Close()
}
