package main

import (
	"bytes"
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tollgate-dao/tollgate/tollgatetest/assert"
	"github.com/tollgate-dao/tollgate/x"
	"github.com/tollgate-dao/tollgate/x/auth"
	"github.com/tollgate-dao/tollgate/x/ledger"
)

// initHome creates the state of a development chain in a temporary
// directory.
func initHome(t *testing.T) (string, func()) {
	t.Helper()
	home, err := ioutil.TempDir("", "tollgate")
	if err != nil {
		t.Fatalf("cannot create temporary directory: %s", err)
	}
	var output bytes.Buffer
	args := []string{"-home", home, "-admin", "alice", "-time", "2024-03-01T00:00:00Z"}
	if err := cmdInit(nil, &output, args); err != nil {
		os.RemoveAll(home)
		t.Fatalf("cannot initialize: %s", err)
	}
	return home, func() { os.RemoveAll(home) }
}

func TestCmdInitRefusesToOverwriteGenesis(t *testing.T) {
	home, cleanup := initHome(t)
	defer cleanup()

	if _, err := os.Stat(filepath.Join(home, "genesis.json")); err != nil {
		t.Fatalf("genesis file not written: %s", err)
	}
	err := cmdInit(nil, ioutil.Discard, []string{"-home", home})
	if err == nil || !strings.Contains(err.Error(), "already exists") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCmdExecAndView(t *testing.T) {
	home, cleanup := initHome(t)
	defer cleanup()

	token := ledger.TokenAddress("USDC")
	input := strings.NewReader(`
		{"signers": ["alice"], "path": "feecollect/collect", "msg": {"token": "` + token.String() + `", "amount": 100000, "operation": "swap"}}
		{"signers": ["bob"], "path": "feecollect/collect", "msg": {"token": "` + token.String() + `", "amount": 100000, "operation": "swap"}}
	`)
	metricsPath := filepath.Join(home, "metrics.txt")
	var output bytes.Buffer
	args := []string{"-home", home, "-time", "2024-03-01T01:00:00Z", "-metrics", metricsPath}
	if err := cmdExec(input, &output, args); err != nil {
		t.Fatalf("cannot execute: %s", err)
	}

	var executed struct {
		Height  int64        `json:"height"`
		Results []execResult `json:"results"`
	}
	if err := json.Unmarshal(output.Bytes(), &executed); err != nil {
		t.Fatalf("cannot decode output: %s\n%s", err, output.String())
	}
	assert.Equal(t, int64(2), executed.Height)
	if len(executed.Results) != 2 {
		t.Fatalf("want 2 results, got %d", len(executed.Results))
	}
	assert.Equal(t, "", executed.Results[0].Error)
	assert.Equal(t, "000000000000012C", executed.Results[0].Data)
	assert.Equal(t, "feecollect/collect", executed.Results[0].Tags["action"])
	if executed.Results[1].Code == 0 {
		t.Fatal("a signer without the collector role must fail")
	}

	raw, err := ioutil.ReadFile(metricsPath)
	if err != nil {
		t.Fatalf("cannot read metrics: %s", err)
	}
	if !strings.Contains(string(raw), "tollgate_fees_collected_amount_total") {
		t.Fatalf("fee metrics not written:\n%s", raw)
	}

	output.Reset()
	if err := cmdView(nil, &output, []string{"-home", home, "-token", "token:USDC"}); err != nil {
		t.Fatalf("cannot view: %s", err)
	}
	var view struct {
		Balances map[string]uint64 `json:"balances"`
	}
	if err := json.Unmarshal(output.Bytes(), &view); err != nil {
		t.Fatalf("cannot decode output: %s\n%s", err, output.String())
	}
	assert.Equal(t, uint64(240), view.Balances["treasury"])
	assert.Equal(t, uint64(60), view.Balances["rewards"])
	assert.Equal(t, uint64(0), view.Balances["collector"])
}

func TestCmdQuote(t *testing.T) {
	home, cleanup := initHome(t)
	defer cleanup()

	var output bytes.Buffer
	args := []string{"-home", home, "-operation", "invest", "-amount", "20000", "-payer", "user:alice"}
	if err := cmdQuote(nil, &output, args); err != nil {
		t.Fatalf("cannot quote: %s", err)
	}
	var quote struct {
		Fee           uint64 `json:"fee"`
		PercentageBps uint32 `json:"percentage_bps"`
	}
	if err := json.Unmarshal(output.Bytes(), &quote); err != nil {
		t.Fatalf("cannot decode output: %s\n%s", err, output.String())
	}
	// 0.5% of 20000 plus the flat fee of the upper tier.
	assert.Equal(t, uint64(110), quote.Fee)
	assert.Equal(t, uint32(50), quote.PercentageBps)

	err := cmdQuote(nil, ioutil.Discard, []string{"-home", home, "-operation", "lend", "-amount", "1"})
	if err == nil {
		t.Fatal("an unknown operation must not be quoted")
	}
}

func TestCmdAddress(t *testing.T) {
	cases := map[string]struct {
		Account string
		Want    string
	}{
		"user":   {Account: "user:alice", Want: auth.UserAddress("alice").String()},
		"module": {Account: "module:treasury", Want: x.ModuleAddress("treasury").String()},
		"token":  {Account: "token:USDC", Want: ledger.TokenAddress("USDC").String()},
		"hex":    {Account: "0102030405060708090A0B0C0D0E0F1011121314", Want: "0102030405060708090A0B0C0D0E0F1011121314"},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var output bytes.Buffer
			if err := cmdAddress(nil, &output, []string{tc.Account}); err != nil {
				t.Fatalf("cannot resolve address: %s", err)
			}
			assert.Equal(t, tc.Want+"\n", output.String())
		})
	}
}

func TestCmdAddressBech32RoundTrip(t *testing.T) {
	var output bytes.Buffer
	if err := cmdAddress(nil, &output, []string{"-bech32", "tg", "user:alice"}); err != nil {
		t.Fatalf("cannot resolve address: %s", err)
	}
	lines := strings.Split(strings.TrimSpace(output.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("unexpected output: %q", output.String())
	}
	addr, err := parseAccount(lines[1])
	if err != nil {
		t.Fatalf("cannot parse bech32 address: %s", err)
	}
	assert.Equal(t, auth.UserAddress("alice"), addr)
}
