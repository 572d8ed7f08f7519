package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/tollgate-dao/tollgate/app"
	tgapp "github.com/tollgate-dao/tollgate/cmd/tollgate/app"
)

func cmdInit(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Initialize the application state from a genesis file.

When no genesis file is given, a development genesis is written to the home
directory first. It creates a single USDC token owned by the admin user, who
also holds every role and owns every configuration.
`)
		fl.PrintDefaults()
	}
	var (
		homeFl    = homeFlag(fl)
		verboseFl = verboseFlag(fl)
		genesisFl = fl.String("genesis", "", "Path to the genesis file. Leave empty to generate a development genesis.")
		chainFl   = fl.String("chain-id", "tollgate-dev", "Chain ID of the generated genesis.")
		adminFl   = fl.String("admin", "admin", "Name of the administrator user of the generated genesis.")
		timeFl    = fl.String("time", "", "Genesis time of the generated genesis, in RFC 3339 format. Defaults to now.")
	)
	fl.Parse(args)

	if err := os.MkdirAll(*homeFl, 0700); err != nil {
		return fmt.Errorf("cannot create home directory: %s", err)
	}

	genesisPath := *genesisFl
	if genesisPath == "" {
		genesisTime, err := parseTime(*timeFl)
		if err != nil {
			return err
		}
		gen, err := tgapp.DevGenesis(*chainFl, genesisTime, *adminFl)
		if err != nil {
			return fmt.Errorf("cannot create genesis: %s", err)
		}
		raw, err := json.MarshalIndent(gen, "", "  ")
		if err != nil {
			return fmt.Errorf("cannot serialize genesis: %s", err)
		}
		genesisPath = filepath.Join(*homeFl, "genesis.json")
		if _, err := os.Stat(genesisPath); !os.IsNotExist(err) {
			return fmt.Errorf("genesis file %q already exists, delete this file and try again", genesisPath)
		}
		if err := ioutil.WriteFile(genesisPath, raw, 0600); err != nil {
			return fmt.Errorf("cannot write genesis: %s", err)
		}
	}

	gen, err := app.LoadGenesis(genesisPath)
	if err != nil {
		return err
	}
	base, _, err := openApp(*homeFl, *verboseFl)
	if err != nil {
		return err
	}
	defer base.Close()
	if err := base.InitChain(gen); err != nil {
		return err
	}
	id, err := base.Commit()
	if err != nil {
		return err
	}
	return writeJSON(output, map[string]interface{}{
		"chain_id": gen.ChainID,
		"genesis":  genesisPath,
		"height":   id.Version,
		"hash":     fmt.Sprintf("%X", id.Hash),
	})
}
