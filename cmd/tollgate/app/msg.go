package app

import (
	"reflect"
	"sort"

	"github.com/tollgate-dao/tollgate"
	"github.com/tollgate-dao/tollgate/x/feecalc"
	"github.com/tollgate-dao/tollgate/x/feecollect"
	"github.com/tollgate-dao/tollgate/x/identity"
	"github.com/tollgate-dao/tollgate/x/ledger"
	"github.com/tollgate-dao/tollgate/x/rewards"
	"github.com/tollgate-dao/tollgate/x/roles"
	"github.com/tollgate-dao/tollgate/x/treasury"
)

// messages maps a message path to a constructor of the message. Every
// routed message must be listed here to be accepted in JSON form.
var messages = map[string]func() tollgate.Msg{}

func init() {
	register(
		&roles.GrantRoleMsg{},
		&roles.RevokeRoleMsg{},
		&identity.RegisterMsg{},
		&identity.RevokeMsg{},
		&ledger.TransferMsg{},
		&ledger.ApproveMsg{},
		&ledger.MintMsg{},
		&ledger.CreateTokenMsg{},
		&feecalc.ComputeFeeMsg{},
		&feecalc.SetOperationFeeMsg{},
		&feecalc.SetAssetOverrideMsg{},
		&feecalc.ClearAssetOverrideMsg{},
		&feecalc.SetDiscountMsg{},
		&feecalc.SetDiscountsEnabledMsg{},
		&feecalc.UpdateConfigurationMsg{},
		&feecollect.CollectMsg{},
		&feecollect.UpdateConfigurationMsg{},
		&treasury.ReceiveMsg{},
		&treasury.DistributeMsg{},
		&treasury.AddRecipientMsg{},
		&treasury.UpdateRecipientMsg{},
		&treasury.RemoveRecipientMsg{},
		&treasury.AddTokenMsg{},
		&treasury.RemoveTokenMsg{},
		&treasury.WithdrawMsg{},
		&treasury.RecoverMsg{},
		&treasury.PauseMsg{},
		&treasury.UnpauseMsg{},
		&treasury.UpdateConfigurationMsg{},
		&rewards.DistributeRewardsMsg{},
		&rewards.ClaimMsg{},
		&rewards.AddParticipantMsg{},
		&rewards.UpdateParticipantMsg{},
		&rewards.RemoveParticipantMsg{},
		&rewards.PauseMsg{},
		&rewards.UnpauseMsg{},
		&rewards.UpdateConfigurationMsg{},
	)
}

func register(msgs ...tollgate.Msg) {
	for _, m := range msgs {
		m := m
		path := m.Path()
		if _, ok := messages[path]; ok {
			panic("duplicated message path " + path)
		}
		messages[path] = func() tollgate.Msg {
			return reflect.New(reflect.TypeOf(m).Elem()).Interface().(tollgate.Msg)
		}
	}
}

// Paths returns the paths of all known messages.
func Paths() []string {
	paths := make([]string, 0, len(messages))
	for p := range messages {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}
