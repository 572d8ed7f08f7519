package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/tollgate-dao/tollgate"
)

func cmdQuote(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Compute the fee of an operation without changing the state. The quote uses
the fee schedule, asset overrides and discounts of the latest committed
state.
`)
		fl.PrintDefaults()
	}
	var (
		homeFl      = homeFlag(fl)
		verboseFl   = verboseFlag(fl)
		operationFl = fl.String("operation", "", "Name of the operation, for example swap.")
		assetFl     = fl.String("asset", "token:USDC", "Asset the fee is charged in.")
		amountFl    = fl.Uint64("amount", 0, "Gross amount of the operation.")
		payerFl     = fl.String("payer", "", "Account paying the fee. Its verification level selects the discount.")
	)
	fl.Parse(args)

	asset, err := parseAccount(*assetFl)
	if err != nil {
		return err
	}
	var payer tollgate.Address
	if *payerFl != "" {
		if payer, err = parseAccount(*payerFl); err != nil {
			return err
		}
	}

	base, m, err := openApp(*homeFl, *verboseFl)
	if err != nil {
		return err
	}
	defer base.Close()
	q, err := m.Calculator.Quote(base.ReadStore(), *operationFl, asset, *amountFl, payer)
	if err != nil {
		return err
	}
	return writeJSON(output, map[string]interface{}{
		"operation":        *operationFl,
		"amount":           *amountFl,
		"fee":              q.Fee,
		"percentage_bps":   q.PercentageBps,
		"flat_fee":         q.FlatFee,
		"overridden":       q.Overridden,
		"discount_applied": q.DiscountApplied,
		"discount_bps":     q.DiscountBps,
	})
}
