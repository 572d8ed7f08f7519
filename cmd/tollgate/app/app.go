/*
Package app links together all the various components
to construct the tollgate application.
*/
package app

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/tendermint/tendermint/libs/log"
	"github.com/tollgate-dao/tollgate"
	"github.com/tollgate-dao/tollgate/app"
	"github.com/tollgate-dao/tollgate/gconf"
	"github.com/tollgate-dao/tollgate/store/iavl"
	"github.com/tollgate-dao/tollgate/x"
	"github.com/tollgate-dao/tollgate/x/auth"
	"github.com/tollgate-dao/tollgate/x/feecalc"
	"github.com/tollgate-dao/tollgate/x/feecollect"
	"github.com/tollgate-dao/tollgate/x/identity"
	"github.com/tollgate-dao/tollgate/x/ledger"
	"github.com/tollgate-dao/tollgate/x/rewards"
	"github.com/tollgate-dao/tollgate/x/roles"
	"github.com/tollgate-dao/tollgate/x/treasury"
	"github.com/tollgate-dao/tollgate/x/utils"
)

// Modules holds the controllers shared by the handlers, the initializers
// and the read only commands.
type Modules struct {
	Roles      *roles.Controller
	Identity   *identity.Controller
	Ledger     *ledger.Controller
	Calculator *feecalc.Calculator
	Collector  *feecollect.Collector
	Treasury   *treasury.Treasury
	Rewards    *rewards.Distributor
}

// NewModules creates the fee pipeline. Fees flow from the collector to the
// treasury, the treasury pays its recipients and the distributor pays
// participants from the tokens held by its account.
func NewModules() *Modules {
	lctrl := ledger.NewController()
	ictrl := identity.NewController()
	calc := feecalc.NewCalculator(ictrl)
	t := treasury.NewTreasury(lctrl)
	return &Modules{
		Roles:      roles.NewController(),
		Identity:   ictrl,
		Ledger:     lctrl,
		Calculator: calc,
		Collector:  feecollect.NewCollector(calc, lctrl, t),
		Treasury:   t,
		Rewards:    rewards.NewDistributor(lctrl),
	}
}

// Authenticator returns the authentication of transaction signers.
func Authenticator() x.Authenticator {
	return auth.Authenticate{}
}

// Chain returns a chain of decorators, to handle authentication,
// logging, metrics and recovery.
func Chain() app.Decorators {
	return app.ChainDecorators(
		utils.NewLogging(),
		utils.NewRecovery(),
		utils.NewMetrics(),
		utils.NewActionTagger(),
		// on CheckTx, bad tx don't affect state
		utils.NewSavepoint().OnCheck(),
		auth.NewDecorator(),
		// on DeliverTx, a failed message leaves no partial state
		utils.NewSavepoint().OnDeliver(),
	)
}

// Router returns a router dispatching to all extensions.
func Router(authFn x.Authenticator, m *Modules) *app.Router {
	authz := roles.NewChecker(authFn, m.Roles)
	r := app.NewRouter()
	roles.RegisterRoutes(r, authz, m.Roles)
	identity.RegisterRoutes(r, authz, m.Identity)
	ledger.RegisterRoutes(r, authFn, authz, m.Ledger)
	feecalc.RegisterRoutes(r, authFn, authz, m.Calculator)
	feecollect.RegisterRoutes(r, authFn, authz, m.Collector)
	treasury.RegisterRoutes(r, authFn, authz, m.Treasury)
	rewards.RegisterRoutes(r, authFn, authz, m.Rewards)
	return r
}

// Stack wires up the router with the decorator chain. This can be passed
// into BaseApp.
func Stack(m *Modules) tollgate.Handler {
	authFn := Authenticator()
	return Chain().WithHandler(Router(authFn, m))
}

// Initializers returns the genesis initializers. Configurations are loaded
// first and the ledger precedes the extensions holding its tokens.
func Initializers(m *Modules) tollgate.Initializer {
	return app.ChainInitializers(
		gconf.Initializer{Configs: map[string]gconf.Configuration{
			"feecalc":    &feecalc.Configuration{},
			"feecollect": &feecollect.Configuration{},
			"treasury":   &treasury.Configuration{},
			"rewards":    &rewards.Configuration{},
		}},
		&roles.Initializer{},
		&ledger.Initializer{Ctrl: m.Ledger},
		&identity.Initializer{},
		&feecalc.Initializer{},
		&treasury.Initializer{Ledger: m.Ledger},
		&rewards.Initializer{Ledger: m.Ledger},
	)
}

// Application constructs the application with the given arguments. An
// empty dbPath keeps the state in memory.
func Application(name, dbPath string, logger log.Logger) (*app.BaseApp, *Modules, error) {
	kv, err := CommitKVStore(dbPath)
	if err != nil {
		return nil, nil, err
	}
	m := NewModules()
	base, err := app.NewBaseApp(name, kv, Stack(m), Initializers(m), logger)
	if err != nil {
		return nil, nil, err
	}
	return base, m, nil
}

// CommitKVStore returns an initialized KVStore that persists
// the data to the named path.
func CommitKVStore(dbPath string) (tollgate.CommitKVStore, error) {
	// memory backed case, just for testing
	if dbPath == "" {
		return iavl.NewMemCommitStore(), nil
	}

	// Expand the path fully
	path, err := filepath.Abs(dbPath)
	if err != nil {
		return nil, fmt.Errorf("invalid database name: %s", path)
	}

	// Some external calls accidently add a ".db", which is now removed
	path = strings.TrimSuffix(path, filepath.Ext(path))

	// Split the database name into it's components (dir, name)
	dir := filepath.Dir(path)
	name := filepath.Base(path)
	return iavl.NewCommitStore(dir, name), nil
}
