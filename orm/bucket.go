/*
Package orm provides an easy to use db wrapper

Break state space into prefixed sections called Buckets.
Each bucket contains only one type of object, keyed by a primary key
that may be composite. Sequences hand out monotonic identifiers
stored next to the data they number.
*/
package orm

import (
	"fmt"
	"regexp"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/otc"
	"github.com/iov-one/otc/errors"
)

const (
	// SeqID is a constant to use to get a default ID sequence
	SeqID = "id"
)

var (
	isBucketName = regexp.MustCompile(`^[a-z_]{3,10}$`).MatchString
)

// Bucket is a prefixed subspace of the DB. All values in a bucket are
// of the type produced by its constructor.
//
// This is a generic building block that should generally
// be embedded in a type-safe wrapper to ensure all data
// is the same type.
type Bucket struct {
	name     string
	prefix   []byte
	newModel func() Model
}

var _ otc.QueryHandler = Bucket{}

// NewBucket creates a bucket to store data. newModel must return an
// empty instance of the stored type each time it is called.
func NewBucket(name string, newModel func() Model) Bucket {
	if !isBucketName(name) {
		panic(fmt.Sprintf("Illegal bucket: %s", name))
	}

	return Bucket{
		name:     name,
		prefix:   append([]byte(name), ':'),
		newModel: newModel,
	}
}

// Name returns the name of the bucket.
func (b Bucket) Name() string {
	return b.name
}

// Sequence returns a sequence stored next to this bucket.
func (b Bucket) Sequence(name string) Sequence {
	return NewSequence(b.name, name)
}

// Register registers this Bucket for queries under /name. An empty name
// falls back to the bucket name.
func (b Bucket) Register(name string, r otc.QueryRouter) {
	if name == "" {
		name = b.name
	}
	r.Register("/"+name, b)
}

// Query handles queries from the QueryRouter
func (b Bucket) Query(db otc.ReadOnlyKVStore, mod string, data []byte) ([]otc.Model, error) {
	switch mod {
	case otc.KeyQueryMod:
		key := b.DBKey(data)
		value, err := db.Get(key)
		if err != nil {
			return nil, err
		}
		// return nothing on miss
		if value == nil {
			return nil, nil
		}
		return []otc.Model{{Key: key, Value: value}}, nil
	case otc.PrefixQueryMod:
		return queryPrefix(db, b.DBKey(data), false)
	default:
		return nil, errors.Wrapf(errors.ErrInvalidInput, "unknown query mod: %q", mod)
	}
}

// DBKey is the full key we store in the db, including prefix.
// We copy into a new array rather than use append, as we don't
// want consecutive calls to overwrite the same byte array.
func (b Bucket) DBKey(key []byte) []byte {
	l := len(b.prefix)
	out := make([]byte, l+len(key))
	copy(out, b.prefix)
	copy(out[l:], key)
	return out
}

// Get one element. Returns nil without an error if the key is missing.
func (b Bucket) Get(db otc.ReadOnlyKVStore, key []byte) (Object, error) {
	bz, err := db.Get(b.DBKey(key))
	if err != nil {
		return nil, err
	}
	if bz == nil {
		return nil, nil
	}
	return b.Parse(key, bz)
}

// Has returns true if a value is stored under the key.
func (b Bucket) Has(db otc.ReadOnlyKVStore, key []byte) (bool, error) {
	return db.Has(b.DBKey(key))
}

// Parse takes a key and value data (otc.Model) and
// reconstructs the data this Bucket would return.
func (b Bucket) Parse(key, value []byte) (Object, error) {
	m := b.newModel()
	if err := proto.Unmarshal(value, m); err != nil {
		return nil, errors.Wrapf(errors.ErrInvalidModel, "bucket %s: %s", b.name, err)
	}
	return NewSimpleObj(key, m), nil
}

// Save will write a model, it must be of the same type as the bucket.
func (b Bucket) Save(db otc.KVStore, obj Object) error {
	if err := obj.Validate(); err != nil {
		return err
	}
	bz, err := proto.Marshal(obj.Value())
	if err != nil {
		return errors.Wrapf(errors.ErrInvalidModel, "bucket %s: %s", b.name, err)
	}
	return db.Set(b.DBKey(obj.Key()), bz)
}

// Delete will remove the value at a key
func (b Bucket) Delete(db otc.KVStore, key []byte) error {
	return db.Delete(b.DBKey(key))
}

// PrefixScan returns all objects whose key starts with prefix, ordered
// by key. An empty prefix scans the whole bucket.
func (b Bucket) PrefixScan(db otc.ReadOnlyKVStore, prefix []byte, reverse bool) ([]Object, error) {
	models, err := queryPrefix(db, b.DBKey(prefix), reverse)
	if err != nil {
		return nil, err
	}
	res := make([]Object, 0, len(models))
	for _, m := range models {
		obj, err := b.Parse(m.Key[len(b.prefix):], m.Value)
		if err != nil {
			return nil, err
		}
		res = append(res, obj)
	}
	return res, nil
}
