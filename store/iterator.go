package store

import (
	"bytes"

	"github.com/google/btree"
	"github.com/tollgate-dao/tollgate/errors"
)

// ascendBtree collects all cached items within [start, end) in ascending
// order. The cache holds only the writes of a single savepoint so the range
// is copied rather than streamed.
func ascendBtree(bt *btree.BTree, start, end []byte) []keyer {
	var items []keyer
	collect := func(item btree.Item) bool {
		items = append(items, item.(keyer))
		return true
	}

	switch {
	case start == nil && end == nil:
		bt.Ascend(collect)
	case start == nil:
		bt.AscendLessThan(bkey{end}, collect)
	case end == nil:
		bt.AscendGreaterOrEqual(bkey{start}, collect)
	default:
		bt.AscendRange(bkey{start}, bkey{end}, collect)
	}
	return items
}

// descendBtree collects all cached items within [start, end) in descending
// order.
func descendBtree(bt *btree.BTree, start, end []byte) []keyer {
	var items []keyer
	collect := func(item btree.Item) bool {
		items = append(items, item.(keyer))
		return true
	}

	switch {
	case start == nil && end == nil:
		bt.Descend(collect)
	case start == nil:
		bt.DescendLessOrEqual(bkeyLess{end}, collect)
	case end == nil:
		bt.DescendGreaterThan(bkeyLess{start}, collect)
	default:
		bt.DescendRange(bkeyLess{end}, bkeyLess{start}, collect)
	}
	return items
}

// source marks where the current item comes from
type source int32

const (
	us source = iota
	parent
	both
)

// itemIter combines cached items with the iterator of the parent store,
// taking into consideration overwrites and deletes.
type itemIter struct {
	items []keyer
	idx   int

	parent     Iterator
	parentKey  []byte
	parentVal  []byte
	parentDone bool

	ascending bool
}

var _ Iterator = (*itemIter)(nil)

func newItemIter(items []keyer, parent Iterator, ascending bool) (*itemIter, error) {
	iter := &itemIter{
		items:     items,
		parent:    parent,
		ascending: ascending,
	}
	if err := iter.advanceParent(); err != nil {
		parent.Release()
		return nil, err
	}
	return iter, nil
}

func (i *itemIter) advanceParent() error {
	key, value, err := i.parent.Next()
	switch {
	case errors.ErrIteratorDone.Is(err):
		i.parentKey, i.parentVal, i.parentDone = nil, nil, true
		return nil
	case err != nil:
		return err
	default:
		i.parentKey, i.parentVal = key, value
		return nil
	}
}

// Next implements Iterator. Deleted entries are skipped.
func (i *itemIter) Next() (key, value []byte, err error) {
	for {
		src, ok := i.firstKey()
		if !ok {
			return nil, nil, errors.Wrap(errors.ErrIteratorDone, "cache iterator")
		}

		switch src {
		case parent:
			key, value = i.parentKey, i.parentVal
			if err := i.advanceParent(); err != nil {
				return nil, nil, err
			}
			return key, value, nil
		case both:
			// Cached value shadows the parent one.
			if err := i.advanceParent(); err != nil {
				return nil, nil, err
			}
		}

		item := i.items[i.idx]
		i.idx++
		if set, ok := item.(setItem); ok {
			return set.key, set.value, nil
		}
	}
}

// Release releases the Iterator.
func (i *itemIter) Release() {
	i.parent.Release()
	i.items = nil
}

// firstKey selects the source with the next key in the iteration order. It
// returns false if both sources are exhausted.
func (i *itemIter) firstKey() (source, bool) {
	usValid := i.idx < len(i.items)
	switch {
	case !usValid && i.parentDone:
		return 0, false
	case !usValid:
		return parent, true
	case i.parentDone:
		return us, true
	}

	cmp := bytes.Compare(i.parentKey, i.items[i.idx].Key())
	if !i.ascending {
		cmp = -cmp
	}
	switch {
	case cmp < 0:
		return parent, true
	case cmp > 0:
		return us, true
	default:
		return both, true
	}
}
