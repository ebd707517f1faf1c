package orm

import (
	"bytes"
	"reflect"
	"regexp"

	"github.com/iov-one/timelock"
	"github.com/iov-one/timelock/errors"
)

var isBucketName = regexp.MustCompile(`^[a-z_]{3,10}$`).MatchString

// Model is implemented by any entity that can be stored using ModelBucket.
type Model interface {
	timelock.Persistent
	Validate() error
}

// ModelSlicePtr represents a pointer to a slice of models. Think of it as
// *[]Model Because of Go type system, using []Model type would not work for us.
// Instead we use a placeholder type and the validation is done during the
// runtime.
type ModelSlicePtr interface{}

// ModelBucket stores models of a single type under a common key prefix.
type ModelBucket interface {
	// One query the database for a single model instance. Lookup is done
	// by the primary index key. Result is loaded into given destination
	// model.
	// This method returns ErrNotFound if the entity does not exist in the
	// database.
	// If given model type cannot be used to contain stored entity, ErrType
	// is returned.
	One(db timelock.ReadOnlyKVStore, key []byte, dest Model) error

	// Has returns nil if an entity with given primary key value exists. It
	// returns ErrNotFound if no entity can be found.
	Has(db timelock.ReadOnlyKVStore, key []byte) error

	// ByPrefix loads all entities whose primary key starts with given
	// prefix into destination, ordered by key. Destination must be a
	// pointer to a slice of models. Primary keys of loaded entities are
	// returned.
	ByPrefix(db timelock.ReadOnlyKVStore, prefix []byte, dest ModelSlicePtr) ([][]byte, error)

	// Put saves given model in the database. Before inserting into the
	// database, model is validated using its Validate method. If the key
	// is nil or zero length then a sequence generator is used to create a
	// unique key value. Using a key that already exists in the database
	// overwrites the stored entity.
	// The key under which the model was stored is returned.
	Put(db timelock.KVStore, key []byte, m Model) ([]byte, error)

	// Delete removes an entity with given primary key from the database.
	// It returns ErrNotFound if an entity with given key does not exist.
	Delete(db timelock.KVStore, key []byte) error

	// Register registers this buckets content to be accessible via query
	// requests under the given name.
	Register(name string, r timelock.QueryRouter)
}

// NewModelBucket returns a ModelBucket instance. The name is the prefix of
// every key stored by the bucket. A bucket is storing only instances of the
// same type as the given model.
func NewModelBucket(name string, m Model) ModelBucket {
	if !isBucketName(name) {
		panic("invalid bucket name: " + name)
	}
	tp := reflect.TypeOf(m)
	if tp.Kind() != reflect.Ptr {
		panic("model must be a pointer")
	}

	return &modelBucket{
		name:   name,
		prefix: []byte(name + ":"),
		model:  tp,
		idSeq:  NewSequence(name, "id"),
	}
}

type modelBucket struct {
	name   string
	prefix []byte
	model  reflect.Type
	idSeq  Sequence
}

var _ ModelBucket = (*modelBucket)(nil)

func (mb *modelBucket) dbKey(key []byte) []byte {
	return append(append([]byte(nil), mb.prefix...), key...)
}

func (mb *modelBucket) One(db timelock.ReadOnlyKVStore, key []byte, dest Model) error {
	if reflect.TypeOf(dest) != mb.model {
		return errors.Wrapf(errors.ErrType, "%T cannot be represented as %s", dest, mb.model)
	}
	raw, err := db.Get(mb.dbKey(key))
	if err != nil {
		return errors.Wrap(err, "cannot get from the database")
	}
	if raw == nil {
		return errors.Wrapf(errors.ErrNotFound, "%s %X", mb.name, key)
	}
	// Generated decoders merge into existing fields.
	reflect.ValueOf(dest).Elem().Set(reflect.Zero(mb.model.Elem()))
	if err := dest.Unmarshal(raw); err != nil {
		return errors.Wrapf(errors.ErrModel, "cannot unmarshal %s: %s", mb.name, err)
	}
	return nil
}

func (mb *modelBucket) Has(db timelock.ReadOnlyKVStore, key []byte) error {
	if len(key) == 0 {
		return errors.Wrap(errors.ErrNotFound, "zero length key")
	}
	ok, err := db.Has(mb.dbKey(key))
	if err != nil {
		return errors.Wrap(err, "cannot query the database")
	}
	if !ok {
		return errors.Wrapf(errors.ErrNotFound, "%s %X", mb.name, key)
	}
	return nil
}

func (mb *modelBucket) ByPrefix(db timelock.ReadOnlyKVStore, prefix []byte, dest ModelSlicePtr) ([][]byte, error) {
	dptr := reflect.ValueOf(dest)
	if dptr.Kind() != reflect.Ptr || dptr.Elem().Kind() != reflect.Slice {
		return nil, errors.Wrap(errors.ErrType, "destination must be a pointer to slice of models")
	}
	if dptr.IsNil() {
		return nil, errors.Wrap(errors.ErrType, "got nil destination")
	}
	dslice := dptr.Elem()
	if dslice.Type().Elem() != mb.model {
		return nil, errors.Wrapf(errors.ErrType, "this bucket operates on %s model and cannot return %s", mb.model, dslice.Type().Elem())
	}

	start := mb.dbKey(prefix)
	it, err := db.Iterator(start, prefixEnd(start))
	if err != nil {
		return nil, errors.Wrap(err, "cannot create iterator")
	}
	defer it.Close()

	var keys [][]byte
	for it.Valid() {
		m := reflect.New(mb.model.Elem())
		if err := m.Interface().(Model).Unmarshal(it.Value()); err != nil {
			return nil, errors.Wrapf(errors.ErrModel, "cannot unmarshal %s: %s", mb.name, err)
		}
		dslice = reflect.Append(dslice, m)
		keys = append(keys, bytes.TrimPrefix(it.Key(), mb.prefix))
		if err := it.Next(); err != nil {
			return nil, errors.Wrap(err, "iterator")
		}
	}
	dptr.Elem().Set(dslice)
	return keys, nil
}

func (mb *modelBucket) Put(db timelock.KVStore, key []byte, m Model) ([]byte, error) {
	if reflect.TypeOf(m) != mb.model {
		return nil, errors.Wrapf(errors.ErrType, "cannot store %T type in this bucket", m)
	}
	if err := m.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid model")
	}

	if len(key) == 0 {
		var err error
		key, err = mb.idSeq.NextVal(db)
		if err != nil {
			return nil, errors.Wrap(err, "ID sequence")
		}
	}

	raw, err := m.Marshal()
	if err != nil {
		return nil, errors.Wrap(err, "cannot serialize model")
	}
	if err := db.Set(mb.dbKey(key), raw); err != nil {
		return nil, errors.Wrap(err, "cannot store in the database")
	}
	return key, nil
}

func (mb *modelBucket) Delete(db timelock.KVStore, key []byte) error {
	if err := mb.Has(db, key); err != nil {
		return err
	}
	if err := db.Delete(mb.dbKey(key)); err != nil {
		return errors.Wrap(err, "cannot delete from the database")
	}
	return nil
}

func (mb *modelBucket) Register(name string, r timelock.QueryRouter) {
	if name == "" {
		name = mb.name
	}
	r.Register("/"+name, prefixQuery{prefix: mb.prefix})
}
