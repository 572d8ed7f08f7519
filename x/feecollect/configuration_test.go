package feecollect

import (
	"math"
	"testing"

	"github.com/tollgate-dao/tollgate"
	"github.com/tollgate-dao/tollgate/errors"
	"github.com/tollgate-dao/tollgate/tollgatetest"
	"github.com/tollgate-dao/tollgate/tollgatetest/assert"
)

func TestConfigurationValidate(t *testing.T) {
	meta := &tollgate.Metadata{Schema: 1}
	treasury := tollgatetest.NewAddress()
	pool := tollgatetest.NewAddress()

	cases := map[string]struct {
		Conf    Configuration
		WantErr *errors.Error
	}{
		"treasury only": {
			Conf: Configuration{Metadata: meta, Treasury: treasury, TreasuryShareBps: 10000},
		},
		"split": {
			Conf: Configuration{Metadata: meta, Treasury: treasury, RewardPool: pool, TreasuryShareBps: 8000, RewardShareBps: 2000},
		},
		"shares below the total": {
			Conf:    Configuration{Metadata: meta, Treasury: treasury, RewardPool: pool, TreasuryShareBps: 8000, RewardShareBps: 1999},
			WantErr: errors.ErrConfiguration,
		},
		"shares above the total": {
			Conf:    Configuration{Metadata: meta, Treasury: treasury, RewardPool: pool, TreasuryShareBps: 8000, RewardShareBps: 2001},
			WantErr: errors.ErrConfiguration,
		},
		"shares wrapping around to the total": {
			Conf:    Configuration{Metadata: meta, Treasury: treasury, RewardPool: pool, TreasuryShareBps: math.MaxUint32, RewardShareBps: 10001},
			WantErr: errors.ErrConfiguration,
		},
		"missing treasury": {
			Conf:    Configuration{Metadata: meta, TreasuryShareBps: 10000},
			WantErr: errors.ErrEmpty,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := tc.Conf.Validate()
			if tc.WantErr == nil {
				assert.Nil(t, err)
				return
			}
			assert.IsErr(t, tc.WantErr, err)
		})
	}
}
