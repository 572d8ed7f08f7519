package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tollgate-dao/tollgate"
	"github.com/tollgate-dao/tollgate/errors"
	"github.com/tollgate-dao/tollgate/store/iavl"
	"github.com/tollgate-dao/tollgate/tollgatetest"
)

// blockRecorder stores the height and time of the block it was executed in.
type blockRecorder struct {
	height int64
	time   time.Time
}

func (r *blockRecorder) Check(ctx tollgate.Context, db tollgate.KVStore, tx tollgate.Tx) (*tollgate.CheckResult, error) {
	return &tollgate.CheckResult{}, nil
}

func (r *blockRecorder) Deliver(ctx tollgate.Context, db tollgate.KVStore, tx tollgate.Tx) (*tollgate.DeliverResult, error) {
	r.height, _ = tollgate.GetHeight(ctx)
	t, err := tollgate.BlockTime(ctx)
	if err != nil {
		return nil, err
	}
	r.time = t
	return &tollgate.DeliverResult{}, db.Set([]byte("last"), []byte(tollgate.GetChainID(ctx)))
}

func TestBaseAppLifecycle(t *testing.T) {
	store := iavl.NewMemCommitStore()

	rec := &blockRecorder{}
	router := NewRouter()
	router.Handle("record", rec)

	base, err := NewBaseApp("test", store, router, dummyInit{}, nil)
	require.NoError(t, err)

	tx := &tollgatetest.Tx{Msg: &tollgatetest.Msg{RoutePath: "record"}}

	// Nothing can be executed before the chain is initialized.
	require.True(t, errors.ErrState.Is(base.BeginBlock(time.Now())))

	genesisTime := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, base.InitChain(&Genesis{
		ChainID:     "test-chain-1",
		GenesisTime: genesisTime,
		AppState:    tollgate.Options{dummyKey: []byte(`"value"`)},
	}))
	first, err := base.Commit()
	require.NoError(t, err)
	assert.Equal(t, int64(1), first.Version)

	// The chain can be initialized only once.
	err = base.InitChain(&Genesis{ChainID: "test-chain-2", GenesisTime: genesisTime})
	assert.True(t, errors.ErrState.Is(err))

	blockTime := genesisTime.Add(time.Hour)
	require.NoError(t, base.BeginBlock(blockTime))
	_, err = base.CheckTx(tx)
	require.NoError(t, err)
	_, err = base.DeliverTx(tx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), rec.height)
	assert.Equal(t, blockTime, rec.time)

	// Uncommitted changes are visible through the read store only.
	got, err := store.Get([]byte("last"))
	require.NoError(t, err)
	assert.Nil(t, got)
	got, err = base.ReadStore().Get([]byte("last"))
	require.NoError(t, err)
	assert.Equal(t, []byte("test-chain-1"), got)

	second, err := base.Commit()
	require.NoError(t, err)
	assert.Equal(t, int64(2), second.Version)
	got, err = store.Get([]byte("last"))
	require.NoError(t, err)
	assert.Equal(t, []byte("test-chain-1"), got)

	// A reopened application finds the chain ID.
	reopened, err := NewBaseApp("test", store, router, dummyInit{}, nil)
	require.NoError(t, err)
	assert.Equal(t, "test-chain-1", reopened.ChainID())
}
