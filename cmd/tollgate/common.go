package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tendermint/tendermint/libs/log"
	"github.com/tollgate-dao/tollgate"
	"github.com/tollgate-dao/tollgate/app"
	tgapp "github.com/tollgate-dao/tollgate/cmd/tollgate/app"
	"github.com/tollgate-dao/tollgate/x"
	"github.com/tollgate-dao/tollgate/x/auth"
	"github.com/tollgate-dao/tollgate/x/ledger"
)

const appName = "tollgate"

// env returns the value of an environment variable if provided (even if empty)
// or a fallback value.
func env(name, fallback string) string {
	if v, ok := os.LookupEnv(name); ok {
		return v
	}
	return fallback
}

func homeFlag(fl *flag.FlagSet) *string {
	return fl.String("home", env("TOLLGATE_HOME", filepath.Join(os.Getenv("HOME"), ".tollgate")),
		"Directory holding the application state. You can use TOLLGATE_HOME environment variable to set it.")
}

func verboseFlag(fl *flag.FlagSet) *bool {
	return fl.Bool("v", false, "Log informational messages to stderr.")
}

func newLogger(verbose bool) log.Logger {
	logger := log.NewTMLogger(log.NewSyncWriter(os.Stderr))
	if verbose {
		return log.NewFilter(logger, log.AllowInfo())
	}
	return log.NewFilter(logger, log.AllowError())
}

// openApp loads the application state kept in the home directory.
func openApp(home string, verbose bool) (*app.BaseApp, *tgapp.Modules, error) {
	if home == "" {
		return nil, nil, fmt.Errorf("home directory is required")
	}
	return tgapp.Application(appName, filepath.Join(home, "tollgate.db"), newLogger(verbose))
}

// parseTime accepts an RFC 3339 time. An empty value is the current time.
func parseTime(raw string) (time.Time, error) {
	if raw == "" {
		return time.Now().UTC(), nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q: %s", raw, err)
	}
	return t, nil
}

// parseAccount resolves an address given as a user name, a token symbol, a
// module name or any format accepted by tollgate.ParseAddress.
//
//	user:alice  token:USDC  module:treasury  hex or bech32:...
func parseAccount(raw string) (tollgate.Address, error) {
	if chunks := strings.SplitN(raw, ":", 2); len(chunks) == 2 {
		switch name := chunks[1]; chunks[0] {
		case "user":
			return auth.UserAddress(name), nil
		case "token":
			return ledger.TokenAddress(name), nil
		case "module":
			return x.ModuleAddress(name), nil
		}
	}
	addr, err := tollgate.ParseAddress(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid address %q: %s", raw, err)
	}
	return addr, nil
}

func writeJSON(output io.Writer, v interface{}) error {
	pretty, err := json.MarshalIndent(v, "", "\t")
	if err != nil {
		return fmt.Errorf("cannot JSON serialize: %s", err)
	}
	if _, err := output.Write(pretty); err != nil {
		return err
	}
	_, err = fmt.Fprintln(output)
	return err
}
