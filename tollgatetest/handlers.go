package tollgatetest

import "github.com/tollgate-dao/tollgate"

// Handler is a mock implementation of the tollgate.Handler interface.
//
// Each method call is counted and returns configured result and error.
type Handler struct {
	checkCall   int
	CheckResult tollgate.CheckResult
	CheckErr    error

	deliverCall   int
	DeliverResult tollgate.DeliverResult
	DeliverErr    error

	// Write if set is stored on every call, before the result is returned.
	Write *Pair
}

// Pair is a key value pair written to the store.
type Pair struct {
	Key   []byte
	Value []byte
}

var _ tollgate.Handler = (*Handler)(nil)

func (h *Handler) Check(ctx tollgate.Context, db tollgate.KVStore, tx tollgate.Tx) (*tollgate.CheckResult, error) {
	h.checkCall++
	if err := h.write(db); err != nil {
		return nil, err
	}
	res := h.CheckResult
	return &res, h.CheckErr
}

func (h *Handler) Deliver(ctx tollgate.Context, db tollgate.KVStore, tx tollgate.Tx) (*tollgate.DeliverResult, error) {
	h.deliverCall++
	if err := h.write(db); err != nil {
		return nil, err
	}
	res := h.DeliverResult
	return &res, h.DeliverErr
}

func (h *Handler) write(db tollgate.KVStore) error {
	if h.Write == nil {
		return nil
	}
	return db.Set(h.Write.Key, h.Write.Value)
}

func (h *Handler) CheckCallCount() int {
	return h.checkCall
}

func (h *Handler) DeliverCallCount() int {
	return h.deliverCall
}

func (h *Handler) CallCount() int {
	return h.checkCall + h.deliverCall
}
