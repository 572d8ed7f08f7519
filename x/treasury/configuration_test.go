package treasury

import (
	"math"
	"testing"

	"github.com/tollgate-dao/tollgate"
	"github.com/tollgate-dao/tollgate/errors"
	"github.com/tollgate-dao/tollgate/gconf"
	"github.com/tollgate-dao/tollgate/store"
	"github.com/tollgate-dao/tollgate/tollgatetest/assert"
)

func TestConfigurationValidate(t *testing.T) {
	meta := &tollgate.Metadata{Schema: 1}
	cases := map[string]struct {
		Conf    Configuration
		WantErr *errors.Error
	}{
		"zero cooldown": {
			Conf: Configuration{Metadata: meta},
		},
		"one hour cooldown": {
			Conf: Configuration{Metadata: meta, CooldownSeconds: 3600},
		},
		"longest representable cooldown": {
			Conf: Configuration{Metadata: meta, CooldownSeconds: maxSeconds},
		},
		"negative cooldown": {
			Conf:    Configuration{Metadata: meta, CooldownSeconds: -1},
			WantErr: errors.ErrConfiguration,
		},
		"cooldown overflowing a duration": {
			Conf:    Configuration{Metadata: meta, CooldownSeconds: 10000000000},
			WantErr: errors.ErrConfiguration,
		},
		"max int64 cooldown": {
			Conf:    Configuration{Metadata: meta, CooldownSeconds: math.MaxInt64},
			WantErr: errors.ErrConfiguration,
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

func TestOverflowingCooldownCannotBeSaved(t *testing.T) {
	db := store.MemStore()
	conf := &Configuration{Metadata: &tollgate.Metadata{Schema: 1}, CooldownSeconds: 10000000000}
	assert.IsErr(t, errors.ErrConfiguration, gconf.Save(db, packageName, conf))
}

func TestCooldownIsNeverNegative(t *testing.T) {
	c := Configuration{CooldownSeconds: maxSeconds}
	if c.Cooldown() < 0 {
		t.Fatalf("cooldown wrapped to %s", c.Cooldown())
	}
}
