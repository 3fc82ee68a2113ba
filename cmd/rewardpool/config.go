// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/vechain/rewardpool/core"
	"github.com/vechain/rewardpool/distributor"
	"github.com/vechain/rewardpool/pool"
)

var (
	defaultPoolAddress    = core.BytesToAddress([]byte("rewardpool"))
	defaultCustodyAddress = core.BytesToAddress([]byte("rewardpool-custody"))
)

// Config is the content of the --config file.
type Config struct {
	PoolAddress    core.Address       `yaml:"pool-address"`
	CustodyAddress core.Address       `yaml:"custody-address"`
	Pool           pool.Config        `yaml:"pool"`
	Distribution   []distributor.Plan `yaml:"distribution"`
}

func defaultConfig() Config {
	return Config{
		PoolAddress:    defaultPoolAddress,
		CustodyAddress: defaultCustodyAddress,
		Pool:           pool.DefaultConfig(),
	}
}

// loadConfig reads path over the defaults. Keys missing from the file keep their default.
func loadConfig(path string) (*Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return nil, errors.New("no config file given, use --config")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read config")
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrapf(err, "parse config [%v]", path)
	}
	if cfg.PoolAddress.IsZero() || cfg.CustodyAddress.IsZero() {
		return nil, errors.New("pool and custody addresses must be set")
	}
	if cfg.PoolAddress == cfg.CustodyAddress {
		return nil, errors.New("pool and custody addresses must differ")
	}
	if err := cfg.Pool.Validate(); err != nil {
		return nil, errors.Wrap(err, "pool config")
	}
	if len(cfg.Distribution) > 0 && cfg.Pool.RewardDistributor.IsZero() {
		return nil, errors.New("distribution plans need a reward distributor")
	}
	return &cfg, nil
}
