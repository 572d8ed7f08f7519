package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/tollgate-dao/tollgate"
	"github.com/tollgate-dao/tollgate/errors"
)

func cmdView(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Display the treasury and the reward distribution state: tracked balances,
recipients, the open reward cycle and participants. When a token is given,
the balances the pipeline accounts hold on the ledger are displayed too.
`)
		fl.PrintDefaults()
	}
	var (
		homeFl    = homeFlag(fl)
		verboseFl = verboseFlag(fl)
		tokenFl   = fl.String("token", "", "Token to display the ledger balances of, for example token:USDC.")
	)
	fl.Parse(args)

	base, m, err := openApp(*homeFl, *verboseFl)
	if err != nil {
		return err
	}
	defer base.Close()
	db := base.ReadStore()

	tokens, err := m.Treasury.Tokens(db)
	if err != nil {
		return err
	}
	recipients, ids, err := m.Treasury.Recipients(db)
	if err != nil {
		return err
	}
	type recipientView struct {
		ID            string           `json:"id"`
		Name          string           `json:"name"`
		Address       tollgate.Address `json:"address"`
		AllocationBps uint32           `json:"allocation_bps"`
		Active        bool             `json:"active"`
	}
	recipientViews := make([]recipientView, 0, len(recipients))
	for i, r := range recipients {
		recipientViews = append(recipientViews, recipientView{
			ID:            fmt.Sprintf("%X", ids[i]),
			Name:          r.Name,
			Address:       r.Address,
			AllocationBps: r.AllocationBps,
			Active:        r.Active,
		})
	}
	treasuryPaused, err := m.Treasury.IsPaused(db)
	if err != nil {
		return err
	}

	cycle, err := m.Rewards.CurrentCycle(db)
	if err != nil && !errors.ErrNotFound.Is(err) {
		return err
	}
	participants, err := m.Rewards.Participants(db)
	if err != nil {
		return err
	}
	rewardsPaused, err := m.Rewards.IsPaused(db)
	if err != nil {
		return err
	}

	view := map[string]interface{}{
		"chain_id": base.ChainID(),
		"treasury": map[string]interface{}{
			"account":    m.Treasury.Account(),
			"paused":     treasuryPaused,
			"tokens":     tokens,
			"recipients": recipientViews,
		},
		"rewards": map[string]interface{}{
			"account":      m.Rewards.Account(),
			"paused":       rewardsPaused,
			"cycle":        cycle,
			"participants": participants,
		},
	}

	if *tokenFl != "" {
		token, err := parseAccount(*tokenFl)
		if err != nil {
			return err
		}
		accounts := map[string]tollgate.Address{
			"collector": m.Collector.Account(),
			"treasury":  m.Treasury.Account(),
			"rewards":   m.Rewards.Account(),
		}
		balances := make(map[string]uint64, len(accounts))
		for name, addr := range accounts {
			if balances[name], err = m.Ledger.BalanceOf(db, token, addr); err != nil {
				return err
			}
		}
		if balances["reserved"], err = m.Rewards.Reserved(db, token); err != nil {
			return err
		}
		view["balances"] = balances
	}
	return writeJSON(output, view)
}
