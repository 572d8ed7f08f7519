package tollgatetest

import "github.com/tollgate-dao/tollgate"

// Decorator is a mock implementation of the tollgate.Decorator interface.
//
// Set CheckErr or DeliverErr to force error response for corresponding method.
// If error attributes are not set then wrapped handler method is called and
// its result returned.
// Each method call is counted. Regardless of the method call result the
// counter is incremented.
type Decorator struct {
	checkCall int
	// CheckErr if set is returned by the Check method before calling
	// the wrapped handler.
	CheckErr error

	deliverCall int
	// DeliverErr if set is returned by the Deliver method before calling
	// the wrapped handler.
	DeliverErr error
}

var _ tollgate.Decorator = (*Decorator)(nil)

func (d *Decorator) Check(ctx tollgate.Context, db tollgate.KVStore, tx tollgate.Tx, next tollgate.Checker) (*tollgate.CheckResult, error) {
	d.checkCall++

	if d.CheckErr != nil {
		return &tollgate.CheckResult{}, d.CheckErr
	}
	return next.Check(ctx, db, tx)
}

func (d *Decorator) Deliver(ctx tollgate.Context, db tollgate.KVStore, tx tollgate.Tx, next tollgate.Deliverer) (*tollgate.DeliverResult, error) {
	d.deliverCall++

	if d.DeliverErr != nil {
		return &tollgate.DeliverResult{}, d.DeliverErr
	}
	return next.Deliver(ctx, db, tx)
}

func (d *Decorator) CheckCallCount() int {
	return d.checkCall
}

func (d *Decorator) DeliverCallCount() int {
	return d.deliverCall
}

func (d *Decorator) CallCount() int {
	return d.checkCall + d.deliverCall
}

// Decorate returns a handler that is calling given decorator before the
// handler.
func Decorate(h tollgate.Handler, d tollgate.Decorator) tollgate.Handler {
	return &decoratedHandler{hn: h, dc: d}
}

type decoratedHandler struct {
	hn tollgate.Handler
	dc tollgate.Decorator
}

var _ tollgate.Handler = (*decoratedHandler)(nil)

func (d *decoratedHandler) Check(ctx tollgate.Context, db tollgate.KVStore, tx tollgate.Tx) (*tollgate.CheckResult, error) {
	return d.dc.Check(ctx, db, tx, d.hn)
}

func (d *decoratedHandler) Deliver(ctx tollgate.Context, db tollgate.KVStore, tx tollgate.Tx) (*tollgate.DeliverResult, error) {
	return d.dc.Deliver(ctx, db, tx, d.hn)
}
