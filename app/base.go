package app

import (
	"context"
	"time"

	"github.com/tendermint/tendermint/libs/log"
	"github.com/tollgate-dao/tollgate"
	"github.com/tollgate-dao/tollgate/errors"
)

// BaseApp executes transactions against a commit store. Transactions are
// grouped into blocks, each block is started with BeginBlock and persisted
// with Commit. Execution is sequential, BaseApp must not be used
// concurrently.
type BaseApp struct {
	name        string
	store       *CommitStore
	handler     tollgate.Handler
	initializer tollgate.Initializer
	logger      log.Logger

	// chainID is loaded from db in initialization
	// saved once in InitChain
	chainID string

	// blockContext contains context info that is valid for the
	// current block (eg. height, time), reset on BeginBlock
	blockContext tollgate.Context
}

// NewBaseApp loads the latest state of the given store and returns an
// application ready to process blocks.
func NewBaseApp(
	name string,
	store tollgate.CommitKVStore,
	handler tollgate.Handler,
	init tollgate.Initializer,
	logger log.Logger,
) (*BaseApp, error) {
	cs, err := NewCommitStore(store)
	if err != nil {
		return nil, errors.Wrap(err, "load store")
	}
	if logger == nil {
		logger = log.NewNopLogger()
	}
	b := &BaseApp{
		name:        name,
		store:       cs,
		handler:     handler,
		initializer: init,
		logger:      logger.With("module", name),
	}
	chainID, err := loadChainID(cs.DeliverStore())
	if err != nil {
		return nil, err
	}
	b.chainID = chainID
	b.blockContext = b.baseContext()
	return b, nil
}

func (b *BaseApp) baseContext() tollgate.Context {
	ctx := tollgate.WithLogger(context.Background(), b.logger)
	if b.chainID != "" {
		ctx = tollgate.WithChainID(ctx, b.chainID)
	}
	return ctx
}

// ChainID returns the chain ID this application was initialized with or
// an empty string.
func (b *BaseApp) ChainID() string {
	return b.chainID
}

// InitChain stores the chain ID and runs the initializer with the genesis
// application state. The genesis time is used as the block time. Changes
// are persisted with the next Commit.
func (b *BaseApp) InitChain(gen *Genesis) error {
	if b.chainID != "" {
		return errors.Wrapf(errors.ErrState, "state previously initialized for chain %q", b.chainID)
	}
	if len(gen.AppState) == 0 {
		return errors.Wrap(errors.ErrEmpty, "app_state not set in genesis")
	}
	db := b.store.DeliverStore()
	if err := saveChainID(db, gen.ChainID); err != nil {
		return err
	}
	b.chainID = gen.ChainID

	ctx := tollgate.WithHeight(b.baseContext(), 0)
	ctx = tollgate.WithBlockTime(ctx, gen.GenesisTime)
	if err := b.initializer.FromGenesis(ctx, gen.AppState, db); err != nil {
		b.store.Rollback()
		b.chainID = ""
		return errors.Wrap(err, "initialize from genesis")
	}
	b.logger.Info("chain initialized", "chain_id", b.chainID)
	return nil
}

// BeginBlock sets up the context of the next block. Block height follows
// the latest committed version.
func (b *BaseApp) BeginBlock(blockTime time.Time) error {
	if b.chainID == "" {
		return errors.Wrap(errors.ErrState, "chain not initialized")
	}
	info, err := b.store.CommitInfo()
	if err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	ctx := tollgate.WithHeight(b.baseContext(), info.Version+1)
	b.blockContext = tollgate.WithBlockTime(ctx, blockTime)
	return nil
}

// BlockContext returns the context of the current block.
func (b *BaseApp) BlockContext() tollgate.Context {
	return b.blockContext
}

// CheckTx validates a transaction against the check state.
func (b *BaseApp) CheckTx(tx tollgate.Tx) (*tollgate.CheckResult, error) {
	ctx := tollgate.WithLogInfo(b.blockContext,
		"call", "check_tx",
		"path", tollgate.GetPath(tx))
	return b.handler.Check(ctx, b.store.CheckStore(), tx)
}

// DeliverTx executes a transaction against the deliver state.
func (b *BaseApp) DeliverTx(tx tollgate.Tx) (*tollgate.DeliverResult, error) {
	ctx := tollgate.WithLogInfo(b.blockContext,
		"call", "deliver_tx",
		"path", tollgate.GetPath(tx))
	return b.handler.Deliver(ctx, b.store.DeliverStore(), tx)
}

// Commit persists the state of the current block.
func (b *BaseApp) Commit() (tollgate.CommitID, error) {
	id, err := b.store.Commit()
	if err != nil {
		return id, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	b.logger.Debug("commit", "height", id.Version, "hash", id.Hash)
	return id, nil
}

// Close releases the store. Uncommitted changes are lost.
func (b *BaseApp) Close() error {
	return b.store.Close()
}

// ReadStore gives read access to the latest, possibly not yet committed,
// state.
func (b *BaseApp) ReadStore() tollgate.ReadOnlyKVStore {
	return b.store.DeliverStore()
}
