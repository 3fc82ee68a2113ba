// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pool

import (
	"github.com/pkg/errors"

	"github.com/vechain/rewardpool/core"
	"github.com/vechain/rewardpool/pool/penalty"
)

// AssetConfig registers a reward asset on first start.
type AssetConfig struct {
	Asset    core.Address `yaml:"asset"`
	Duration uint64       `yaml:"duration"`
}

// Config is the construction time configuration of a pool.
// Owner, RewardDistributor, PenaltySink and RewardAssets seed the pool state on
// first start only; afterwards the stored values win and change through owner calls.
type Config struct {
	StakingAsset         core.Address   `yaml:"staking-asset"`
	RewardsDuration      uint64         `yaml:"rewards-duration"`
	Penalty              penalty.Policy `yaml:"penalty"`
	EnrollmentLockWindow uint64         `yaml:"enrollment-lock-window"`

	Owner             core.Address  `yaml:"owner"`
	RewardDistributor core.Address  `yaml:"reward-distributor"`
	PenaltySink       core.Address  `yaml:"penalty-sink"`
	RewardAssets      []AssetConfig `yaml:"reward-assets"`
}

// DefaultConfig returns a config with the 12h emission period, the 24h 50%/90%
// exit penalty and a 24h enrollment lock. Addresses are left empty.
func DefaultConfig() Config {
	return Config{
		RewardsDuration:      core.DefaultRewardsDuration,
		Penalty:              penalty.Default(),
		EnrollmentLockWindow: core.DefaultLockWindow,
	}
}

func (c *Config) Validate() error {
	if c.StakingAsset.IsZero() {
		return errors.New("staking asset not set")
	}
	if c.Owner.IsZero() {
		return errors.New("owner not set")
	}
	if c.PenaltySink.IsZero() {
		return errors.New("penalty sink not set")
	}
	if c.RewardsDuration == 0 {
		return errors.New("rewards duration must be positive")
	}
	if err := c.Penalty.Validate(); err != nil {
		return errors.Wrap(err, "penalty")
	}
	seen := make(map[core.Address]struct{}, len(c.RewardAssets))
	for _, a := range c.RewardAssets {
		if a.Asset.IsZero() {
			return errors.New("reward asset not set")
		}
		if _, dup := seen[a.Asset]; dup {
			return errors.Errorf("reward asset %s listed twice", a.Asset)
		}
		seen[a.Asset] = struct{}{}
	}
	return nil
}

func (c *Config) assetDuration(d uint64) uint64 {
	if d == 0 {
		return c.RewardsDuration
	}
	return d
}
