package rewards

import (
	"math"
	"testing"

	"github.com/tollgate-dao/tollgate"
	"github.com/tollgate-dao/tollgate/errors"
	"github.com/tollgate-dao/tollgate/tollgatetest/assert"
)

func TestConfigurationValidate(t *testing.T) {
	meta := &tollgate.Metadata{Schema: 1}
	cases := map[string]struct {
		Conf    Configuration
		WantErr *errors.Error
	}{
		"default cycle": {
			Conf: Configuration{Metadata: meta},
		},
		"one hour cycle": {
			Conf: Configuration{Metadata: meta, CycleSeconds: 3600},
		},
		"longest representable cycle": {
			Conf: Configuration{Metadata: meta, CycleSeconds: maxSeconds},
		},
		"negative cycle": {
			Conf:    Configuration{Metadata: meta, CycleSeconds: -1},
			WantErr: errors.ErrConfiguration,
		},
		"cycle overflowing a duration": {
			Conf:    Configuration{Metadata: meta, CycleSeconds: 10000000000},
			WantErr: errors.ErrConfiguration,
		},
		"max int64 cycle": {
			Conf:    Configuration{Metadata: meta, CycleSeconds: math.MaxInt64},
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

func TestCycleDurationIsNeverNegative(t *testing.T) {
	c := Configuration{CycleSeconds: maxSeconds}
	if c.CycleDuration() < 0 {
		t.Fatalf("cycle wrapped to %s", c.CycleDuration())
	}
}
