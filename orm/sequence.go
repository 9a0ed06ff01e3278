package orm

import (
	"encoding/binary"

	"github.com/iov-one/otc"
	"github.com/iov-one/otc/errors"
)

// Sequence maintains a counter, and generates a
// series of unique values. The first value is zero.
type Sequence struct {
	id []byte
}

// NewSequence returns a sequence counter. Sequence is using following pattern
// to construct a key:
//    _s.<bucket>:<name>
func NewSequence(bucket, name string) Sequence {
	id := "_s." + bucket + ":" + name
	return Sequence{
		id: []byte(id),
	}
}

// NextVal returns the current value and advances the counter. The caller
// owns the returned value; no other call will ever get it again.
func (s Sequence) NextVal(db otc.KVStore) (uint64, error) {
	val, err := s.Peek(db)
	if err != nil {
		return 0, err
	}
	if val == ^uint64(0) {
		return 0, errors.Wrap(errors.ErrOverflow, "sequence exhausted")
	}
	if err := db.Set(s.id, EncodeSequence(val+1)); err != nil {
		return 0, err
	}
	return val, nil
}

// Peek returns the value the next NextVal call will hand out without
// modifying the sequence.
func (s Sequence) Peek(db otc.ReadOnlyKVStore) (uint64, error) {
	raw, err := db.Get(s.id)
	if err != nil {
		return 0, err
	}
	return DecodeSequence(raw)
}

// DecodeSequence reads a stored counter. A missing value is zero.
func DecodeSequence(bz []byte) (uint64, error) {
	if bz == nil {
		return 0, nil
	}
	if len(bz) != 8 {
		return 0, errors.Wrapf(errors.ErrInvalidModel, "sequence is %d bytes, want 8", len(bz))
	}
	return binary.BigEndian.Uint64(bz), nil
}

// EncodeSequence is the inverse of DecodeSequence.
func EncodeSequence(val uint64) []byte {
	bz := make([]byte, 8)
	binary.BigEndian.PutUint64(bz, val)
	return bz
}
