package app

import (
	"encoding/json"
	"time"

	"github.com/tollgate-dao/tollgate"
	"github.com/tollgate-dao/tollgate/app"
	"github.com/tollgate-dao/tollgate/errors"
	"github.com/tollgate-dao/tollgate/x"
	"github.com/tollgate-dao/tollgate/x/auth"
	"github.com/tollgate-dao/tollgate/x/feecalc"
	"github.com/tollgate-dao/tollgate/x/feecollect"
	"github.com/tollgate-dao/tollgate/x/identity"
	"github.com/tollgate-dao/tollgate/x/ledger"
	"github.com/tollgate-dao/tollgate/x/rewards"
	"github.com/tollgate-dao/tollgate/x/roles"
	"github.com/tollgate-dao/tollgate/x/treasury"
)

// DevToken is the symbol of the token created by the development genesis.
const DevToken = "USDC"

// DevGenesis returns a genesis for development. The admin user owns every
// configuration, holds every role and a large balance of DevToken that the
// fee collector is allowed to charge. Fees are split 80/20 between the
// treasury and the reward pool, the treasury pays half of its balance to
// the reward pool.
func DevGenesis(chainID string, genesisTime time.Time, admin string) (*app.Genesis, error) {
	owner := auth.UserAddress(admin)
	meta := &tollgate.Metadata{Schema: 1}
	token := ledger.TokenAddress(DevToken)
	treasuryAccount := x.ModuleAddress("treasury")
	rewardAccount := x.ModuleAddress("rewards")
	collectorAccount := x.ModuleAddress("feecollect")

	type assignment struct {
		Role    string           `json:"role"`
		Address tollgate.Address `json:"address"`
	}
	var assignments []assignment
	for _, r := range []string{
		roles.RoleAdmin,
		identity.RoleRegistrar,
		ledger.RoleMinter,
		feecalc.RoleFeeAdmin,
		feecollect.RoleFeeCollector,
		treasury.RoleAdmin,
		treasury.RoleDistributor,
		rewards.RoleAdmin,
		rewards.RoleDistributor,
		rewards.RoleEmergency,
	} {
		assignments = append(assignments, assignment{Role: r, Address: owner})
	}

	sections := map[string]interface{}{
		"conf": map[string]interface{}{
			"feecalc": &feecalc.Configuration{
				Metadata:         meta,
				Owner:            owner,
				DiscountsEnabled: true,
			},
			"feecollect": &feecollect.Configuration{
				Metadata:         meta,
				Owner:            owner,
				Treasury:         treasuryAccount,
				RewardPool:       rewardAccount,
				TreasuryShareBps: 8000,
				RewardShareBps:   2000,
			},
			"treasury": &treasury.Configuration{
				Metadata:              meta,
				Owner:                 owner,
				MinDistributionAmount: 1,
				CooldownSeconds:       3600,
			},
			"rewards": &rewards.Configuration{
				Metadata:     meta,
				Owner:        owner,
				CycleSeconds: rewards.DefaultCycleSeconds,
				ClaimMode:    rewards.ClaimModeLive,
			},
		},
		"roles": assignments,
		"ledger": []interface{}{
			map[string]interface{}{
				"symbol": DevToken,
				"balances": []interface{}{
					map[string]interface{}{"owner": owner, "amount": 1000000000},
				},
				"allowances": []interface{}{
					map[string]interface{}{"owner": owner, "spender": collectorAccount, "amount": 1000000000},
				},
			},
		},
		"feecalc": map[string]interface{}{
			"operations": []interface{}{
				map[string]interface{}{
					"operation":              "swap",
					"enabled":                true,
					"default_percentage_bps": 30,
				},
				map[string]interface{}{
					"operation":  "invest",
					"enabled":    true,
					"uses_tiers": true,
					"tiers": []*feecalc.Tier{
						{MinAmount: 1, MaxAmount: 9999, PercentageBps: 100},
						{MinAmount: 10000, PercentageBps: 50, FlatFee: 10},
					},
				},
			},
			"discounts": []interface{}{
				map[string]interface{}{"level": 1, "discount_bps": 1000},
				map[string]interface{}{"level": 2, "discount_bps": 2500},
			},
		},
		"treasury": map[string]interface{}{
			"tokens": []tollgate.Address{token},
			"recipients": []interface{}{
				map[string]interface{}{"name": "rewards", "address": rewardAccount, "allocation_bps": 5000},
				map[string]interface{}{"name": "operations", "address": owner, "allocation_bps": 3000},
			},
		},
		"rewards": map[string]interface{}{
			"participants": []interface{}{
				map[string]interface{}{"address": owner, "shares_bps": 10000},
			},
		},
	}

	opts := make(tollgate.Options, len(sections))
	for name, s := range sections {
		raw, err := json.Marshal(s)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrInput, "cannot serialize %q: %s", name, err)
		}
		opts[name] = raw
	}
	return &app.Genesis{
		ChainID:     chainID,
		GenesisTime: genesisTime.UTC(),
		AppState:    opts,
	}, nil
}
