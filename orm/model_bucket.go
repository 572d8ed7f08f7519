/*
Package orm provides an easy to use db wrapper

Break state space into prefixed sections called Buckets.
  - Each bucket contains only one type of model.
  - It has a primary key, either provided by the caller or assigned from a
    sequence.
  - It may possess one or more secondary indexes (1:1 or 1:N)
  - Easy queries for one and iteration.
*/
package orm

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"reflect"
	"regexp"

	"github.com/gogo/protobuf/proto"
	"github.com/tollgate-dao/tollgate"
	"github.com/tollgate-dao/tollgate/errors"
)

var (
	isBucketName = regexp.MustCompile(`^[a-z_]{3,20}$`).MatchString
)

// Model is implemented by any entity that can be stored using ModelBucket.
type Model interface {
	proto.Message
	Validate() error
}

// ModelSlicePtr represents a pointer to a slice of models. Think of it as
// *[]Model Because of Go type system, using []Model type would not work for
// us. Instead we use a placeholder type and the validation is done during the
// runtime.
type ModelSlicePtr interface{}

// Indexer calculates the secondary index key for a given model. Returning a
// nil key means the model is not indexed.
type Indexer func(Model) ([]byte, error)

// ModelBucket is implemented by buckets that operates on Models.
type ModelBucket interface {
	// One query the database for a single model instance. Lookup is done
	// by the primary index key. Result is loaded into given destination
	// model.
	// This method returns ErrNotFound if the entity does not exist in the
	// database.
	// If given model type cannot be used to contain stored entity, ErrType
	// is returned.
	One(db tollgate.ReadOnlyKVStore, key []byte, dest Model) error

	// Has returns nil if an entity with given primary key value exists. It
	// returns ErrNotFound if no entity can be found.
	Has(db tollgate.ReadOnlyKVStore, key []byte) error

	// ByIndex returns all keys of entities that are indexed by given index
	// under given value, in primary key order. When destination is not
	// nil, all found models are appended to it.
	ByIndex(db tollgate.ReadOnlyKVStore, indexName string, key []byte, dest ModelSlicePtr) ([][]byte, error)

	// Put saves given model in the database. Before inserting into the
	// database, model is validated using its Validate method.
	// If the key is nil or zero length then a sequence generator provided
	// by WithIDSequence is used to compute an unique key value.
	// Put returns the key of the stored model.
	Put(db tollgate.KVStore, key []byte, m Model) ([]byte, error)

	// Delete removes an entity with given primary key from the database.
	// It returns ErrNotFound if an entity with given key does not exist.
	Delete(db tollgate.KVStore, key []byte) error

	// PrefixScan returns an iterator over all entities which primary key
	// starts with given prefix. A nil prefix iterates over all entities.
	PrefixScan(db tollgate.ReadOnlyKVStore, prefix []byte, reverse bool) (*ModelIterator, error)
}

// ModelBucketOption is implemented by any function that can configure
// ModelBucket during creation.
type ModelBucketOption func(mb *modelBucket)

// WithIndex configures the bucket to build an index with given name. All
// entities stored in the bucket are indexed using value returned by the
// indexer function. If an index is unique, there can be only one entity
// referenced per index value.
func WithIndex(name string, indexer Indexer, unique bool) ModelBucketOption {
	return func(mb *modelBucket) {
		if !isBucketName(name) {
			panic(fmt.Sprintf("illegal index name: %q", name))
		}
		if _, ok := mb.indexes[name]; ok {
			panic(fmt.Sprintf("index %q declared twice", name))
		}
		idx := &index{
			name:    name,
			prefix:  []byte("_i." + mb.name + "." + name + ":"),
			indexer: indexer,
			unique:  unique,
		}
		mb.indexes[name] = idx
		mb.indexOrder = append(mb.indexOrder, idx)
	}
}

// WithIDSequence configures the bucket to use the given sequence instance for
// generating ID.
func WithIDSequence(s Sequence) ModelBucketOption {
	return func(mb *modelBucket) {
		mb.idSeq = &s
	}
}

// NewModelBucket returns a ModelBucket instance storing models of the same
// type as the given one, under the given name.
func NewModelBucket(name string, m Model, opts ...ModelBucketOption) ModelBucket {
	if !isBucketName(name) {
		panic(fmt.Sprintf("illegal bucket: %q", name))
	}
	mb := &modelBucket{
		name:    name,
		prefix:  []byte(name + ":"),
		model:   reflect.TypeOf(m),
		indexes: make(map[string]*index),
	}
	for _, fn := range opts {
		fn(mb)
	}
	return mb
}

type modelBucket struct {
	name       string
	prefix     []byte
	model      reflect.Type
	idSeq      *Sequence
	indexes    map[string]*index
	indexOrder []*index
}

var _ ModelBucket = (*modelBucket)(nil)

func (mb *modelBucket) dbKey(key []byte) []byte {
	out := make([]byte, len(mb.prefix)+len(key))
	copy(out, mb.prefix)
	copy(out[len(mb.prefix):], key)
	return out
}

func (mb *modelBucket) newModel() Model {
	return reflect.New(mb.model.Elem()).Interface().(Model)
}

func (mb *modelBucket) One(db tollgate.ReadOnlyKVStore, key []byte, dest Model) error {
	if reflect.TypeOf(dest) != mb.model {
		return errors.Wrapf(errors.ErrType, "%s cannot be represented as %T", mb.model, dest)
	}
	raw, err := db.Get(mb.dbKey(key))
	if err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	if raw == nil {
		return errors.Wrapf(errors.ErrNotFound, "%T not in the store", dest)
	}
	return tollgate.Unmarshal(raw, dest)
}

func (mb *modelBucket) Has(db tollgate.ReadOnlyKVStore, key []byte) error {
	if len(key) == 0 {
		return errors.Wrap(errors.ErrNotFound, "empty key")
	}
	ok, err := db.Has(mb.dbKey(key))
	if err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	if !ok {
		return errors.Wrapf(errors.ErrNotFound, "%s not in the store", mb.model)
	}
	return nil
}

func (mb *modelBucket) ByIndex(db tollgate.ReadOnlyKVStore, indexName string, key []byte, dest ModelSlicePtr) ([][]byte, error) {
	idx, ok := mb.indexes[indexName]
	if !ok {
		return nil, errors.Wrapf(ErrInvalidIndex, "name %q", indexName)
	}
	keys, err := idx.keys(db, key)
	if err != nil {
		return nil, err
	}
	if dest == nil {
		return keys, nil
	}

	destValue := reflect.ValueOf(dest)
	if destValue.Kind() != reflect.Ptr || destValue.Elem().Kind() != reflect.Slice {
		return nil, errors.Wrap(errors.ErrType, "destination must be a pointer to a slice of models")
	}
	slice := destValue.Elem()
	elemType := slice.Type().Elem()
	if elemType != mb.model && elemType != mb.model.Elem() {
		return nil, errors.Wrapf(errors.ErrType, "%s cannot be represented as %s", mb.model, elemType)
	}

	for _, k := range keys {
		m := mb.newModel()
		if err := mb.One(db, k, m); err != nil {
			return nil, errors.Wrapf(err, "index %q points to a missing entity", indexName)
		}
		v := reflect.ValueOf(m)
		if elemType.Kind() != reflect.Ptr {
			v = v.Elem()
		}
		slice = reflect.Append(slice, v)
	}
	destValue.Elem().Set(slice)
	return keys, nil
}

func (mb *modelBucket) Put(db tollgate.KVStore, key []byte, m Model) ([]byte, error) {
	if reflect.TypeOf(m) != mb.model {
		return nil, errors.Wrapf(errors.ErrType, "cannot store %T in %s bucket", m, mb.name)
	}
	if err := m.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid model")
	}

	if len(key) == 0 {
		if mb.idSeq == nil {
			return nil, errors.Wrap(errors.ErrHuman, "ID sequence not configured")
		}
		next, err := mb.idSeq.NextVal(db)
		if err != nil {
			return nil, errors.Wrap(err, "ID sequence")
		}
		key = next
	}

	if len(mb.indexOrder) > 0 {
		var prev Model
		old := mb.newModel()
		switch err := mb.One(db, key, old); {
		case err == nil:
			prev = old
		case !errors.ErrNotFound.Is(err):
			return nil, errors.Wrap(err, "cannot load previous state")
		}
		for _, idx := range mb.indexOrder {
			if err := idx.update(db, key, prev, m); err != nil {
				return nil, errors.Wrapf(err, "index %q", idx.name)
			}
		}
	}

	raw, err := tollgate.Marshal(m)
	if err != nil {
		return nil, err
	}
	if err := db.Set(mb.dbKey(key), raw); err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return key, nil
}

func (mb *modelBucket) Delete(db tollgate.KVStore, key []byte) error {
	prev := mb.newModel()
	if err := mb.One(db, key, prev); err != nil {
		return err
	}
	for _, idx := range mb.indexOrder {
		if err := idx.update(db, key, prev, nil); err != nil {
			return errors.Wrapf(err, "index %q", idx.name)
		}
	}
	if err := db.Delete(mb.dbKey(key)); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}

func (mb *modelBucket) PrefixScan(db tollgate.ReadOnlyKVStore, prefix []byte, reverse bool) (*ModelIterator, error) {
	start, end := prefixRange(mb.dbKey(prefix))
	var (
		it  tollgate.Iterator
		err error
	)
	if reverse {
		it, err = db.ReverseIterator(start, end)
	} else {
		it, err = db.Iterator(start, end)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return &ModelIterator{
		it:        it,
		prefixLen: len(mb.prefix),
		model:     mb.model,
	}, nil
}

// ModelIterator loads models of a single bucket one by one.
type ModelIterator struct {
	it        tollgate.Iterator
	prefixLen int
	model     reflect.Type
}

// LoadNext loads the next model into the destination and returns its primary
// key. ErrIteratorDone is returned when there are no more entities.
func (m *ModelIterator) LoadNext(dest Model) ([]byte, error) {
	if reflect.TypeOf(dest) != m.model {
		return nil, errors.Wrapf(errors.ErrType, "%s cannot be represented as %T", m.model, dest)
	}
	key, value, err := m.it.Next()
	if err != nil {
		return nil, err
	}
	if err := tollgate.Unmarshal(value, dest); err != nil {
		return nil, err
	}
	return key[m.prefixLen:], nil
}

// Release releases the underlying iterator.
func (m *ModelIterator) Release() {
	m.it.Release()
}

// index is a secondary index stored as one database entry per (value,
// primary key) pair. The entry key is the index prefix, the two bytes long
// length of the value, the value and the primary key. The entry value is the
// primary key.
type index struct {
	name    string
	prefix  []byte
	indexer Indexer
	unique  bool
}

func (i *index) valuePrefix(value []byte) []byte {
	out := make([]byte, len(i.prefix)+2+len(value))
	copy(out, i.prefix)
	binary.BigEndian.PutUint16(out[len(i.prefix):], uint16(len(value)))
	copy(out[len(i.prefix)+2:], value)
	return out
}

func (i *index) entryKey(value, pk []byte) []byte {
	return append(i.valuePrefix(value), pk...)
}

func (i *index) keys(db tollgate.ReadOnlyKVStore, value []byte) ([][]byte, error) {
	start, end := prefixRange(i.valuePrefix(value))
	it, err := db.Iterator(start, end)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	defer it.Release()

	var keys [][]byte
	for {
		switch _, pk, err := it.Next(); {
		case err == nil:
			keys = append(keys, pk)
		case errors.ErrIteratorDone.Is(err):
			return keys, nil
		default:
			return nil, errors.Wrap(errors.ErrDatabase, err.Error())
		}
	}
}

// update moves the reference to the entity stored under pk. A nil prev means
// insert, a nil next means delete.
func (i *index) update(db tollgate.KVStore, pk []byte, prev, next Model) error {
	var prevVal, nextVal []byte
	if prev != nil {
		v, err := i.indexer(prev)
		if err != nil {
			return err
		}
		prevVal = v
	}
	if next != nil {
		v, err := i.indexer(next)
		if err != nil {
			return err
		}
		nextVal = v
	}
	if len(prevVal) > 0xFFFF || len(nextVal) > 0xFFFF {
		return errors.Wrap(errors.ErrInput, "index value too long")
	}

	if prevVal != nil && nextVal != nil && bytes.Equal(prevVal, nextVal) {
		return nil
	}
	if prevVal != nil {
		if err := db.Delete(i.entryKey(prevVal, pk)); err != nil {
			return errors.Wrap(errors.ErrDatabase, err.Error())
		}
	}
	if nextVal == nil {
		return nil
	}
	if i.unique {
		keys, err := i.keys(db, nextVal)
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			return errors.Wrapf(errors.ErrDuplicate, "unique value %X already used", nextVal)
		}
	}
	if err := db.Set(i.entryKey(nextVal, pk), pk); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}

// prefixRange turns a prefix into a (start, end) range. The end is nil if
// all bytes of the prefix are 0xFF.
func prefixRange(prefix []byte) ([]byte, []byte) {
	end := make([]byte, len(prefix))
	copy(end, prefix)
	for i := len(end) - 1; i >= 0; i-- {
		if end[i] < 0xFF {
			end[i]++
			return prefix, end[:i+1]
		}
	}
	return prefix, nil
}
