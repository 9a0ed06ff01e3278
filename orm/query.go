package orm

import (
	"github.com/iov-one/otc"
	"github.com/iov-one/otc/errors"
)

// ConsumeIterator will read all remaining data into an
// array and release the iterator
func ConsumeIterator(itr otc.Iterator) ([]otc.Model, error) {
	defer itr.Release()

	var res []otc.Model
	for {
		key, value, err := itr.Next()
		if errors.ErrIteratorDone.Is(err) {
			return res, nil
		}
		if err != nil {
			return nil, err
		}
		res = append(res, otc.Model{Key: key, Value: value})
	}
}

func queryPrefix(db otc.ReadOnlyKVStore, prefix []byte, reverse bool) ([]otc.Model, error) {
	var (
		itr otc.Iterator
		err error
	)
	end := PrefixEnd(prefix)
	if reverse {
		itr, err = db.ReverseIterator(prefix, end)
	} else {
		itr, err = db.Iterator(prefix, end)
	}
	if err != nil {
		return nil, err
	}
	return ConsumeIterator(itr)
}

// PrefixEnd returns the smallest key greater than every key with the
// given prefix. nil means there is no such key.
func PrefixEnd(prefix []byte) []byte {
	end := make([]byte, len(prefix))
	copy(end, prefix)
	for i := len(end) - 1; i >= 0; i-- {
		if end[i] < 0xff {
			end[i]++
			return end[:i+1]
		}
	}
	return nil
}
