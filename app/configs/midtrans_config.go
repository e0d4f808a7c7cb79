package configs

import (
	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
)

func (c *Config) MidtransEnabled() bool {
	return c.MidtransServerKey != ""
}

func (c *Config) midtransEnvironment() midtrans.EnvironmentType {
	if c.MidtransEnv == "production" {
		return midtrans.Production
	}
	return midtrans.Sandbox
}

// NewSnapClient returns a Snap client for the configured server key.
func NewSnapClient(cfg *Config) *snap.Client {
	var client snap.Client
	client.New(cfg.MidtransServerKey, cfg.midtransEnvironment())
	midtrans.ClientKey = cfg.MidtransClientKey
	midtrans.ServerKey = cfg.MidtransServerKey
	midtrans.Environment = cfg.midtransEnvironment()
	return &client
}
