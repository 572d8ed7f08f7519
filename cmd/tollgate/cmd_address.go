package main

import (
	"flag"
	"fmt"
	"io"

	tgapp "github.com/tollgate-dao/tollgate/cmd/tollgate/app"
)

func cmdAddress(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Print the address of an account. The account is given as user:<name>,
token:<symbol>, module:<name> or as an encoded address. Transactions accept
addresses in hex or bech32 format only.
`)
		fl.PrintDefaults()
	}
	var (
		hrpFl = fl.String("bech32", "", "Also print the bech32 form using this human readable part, for example tg.")
	)
	fl.Parse(args)

	if fl.NArg() != 1 {
		fl.Usage()
		return fmt.Errorf("exactly one account is required")
	}
	addr, err := parseAccount(fl.Arg(0))
	if err != nil {
		return err
	}
	if *hrpFl == "" {
		_, err = fmt.Fprintln(output, addr)
		return err
	}
	b, err := addr.Bech32(*hrpFl)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(output, "%s\nbech32:%s\n", addr, b)
	return err
}

func cmdPaths(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
List the paths of all messages accepted by the exec command.
`)
		fl.PrintDefaults()
	}
	fl.Parse(args)

	for _, p := range tgapp.Paths() {
		if _, err := fmt.Fprintln(output, p); err != nil {
			return err
		}
	}
	return nil
}
