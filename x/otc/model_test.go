package otc

import (
	"testing"

	"github.com/iov-one/otc"
	"github.com/iov-one/otc/asset"
	"github.com/iov-one/otc/errors"
	"github.com/iov-one/otc/orm"
	"github.com/iov-one/otc/otctest"
	"github.com/iov-one/otc/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDeposit(escrow, want asset.Asset) *Deposit {
	return &Deposit{Deposit: escrow, Offer: Offer{Exchange: want}}
}

func TestDepositKey(t *testing.T) {
	owner := otc.Address("juno1owner")
	key := DepositKey(owner, 258)
	assert.Equal(t, append(append([]byte{0, 10}, "juno1owner"...), 0, 0, 0, 0, 0, 0, 1, 2), key)

	gotOwner, gotID, err := ParseDepositKey(key)
	require.NoError(t, err)
	assert.Equal(t, owner, gotOwner)
	assert.Equal(t, uint64(258), gotID)

	_, _, err = ParseDepositKey(key[:len(key)-1])
	assert.True(t, errors.ErrInvalidModel.Is(err))

	// ids sort numerically within an owner
	assert.True(t, string(DepositKey(owner, 9)) < string(DepositKey(owner, 10)))
}

func TestLedger(t *testing.T) {
	db := store.MemStore()
	b := NewDepositBucket()

	// one owner name is the prefix of the other
	short := otc.Address("juno1ab")
	long := otc.Address("juno1abc")
	escrow := asset.NewNative(100, "ujuno")
	want := asset.NewToken(5, "juno1token")

	var ids []uint64
	for _, owner := range []otc.Address{long, short, long, short} {
		id, err := b.Insert(db, owner, newDeposit(escrow, want))
		require.NoError(t, err)
		ids = append(ids, id)
	}
	assert.Equal(t, []uint64{0, 1, 2, 3}, ids)

	got, err := b.One(db, short, 1)
	require.NoError(t, err)
	assert.True(t, got.Deposit.Equal(escrow))
	assert.True(t, got.Offer.Exchange.Equal(want))
	assert.Equal(t, otc.Address(""), got.Offer.From)

	_, err = b.One(db, long, 1)
	assert.True(t, errors.ErrNotFound.Is(err))

	entries, err := b.ByOwner(db, short)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, uint64(1), entries[0].ID)
	assert.Equal(t, uint64(3), entries[1].ID)
	for _, e := range entries {
		assert.Equal(t, short, e.Owner)
	}

	all, err := b.All(db)
	require.NoError(t, err)
	assert.Len(t, all, 4)

	e, err := b.FindByID(db, 2)
	require.NoError(t, err)
	assert.Equal(t, long, e.Owner)

	require.NoError(t, b.Remove(db, long, 2))
	_, err = b.FindByID(db, 2)
	assert.True(t, errors.ErrNotFound.Is(err))

	err = b.Remove(db, long, 2)
	assert.True(t, errors.ErrNotFound.Is(err))

	// ids are never reused after removal
	id, err := b.Insert(db, long, newDeposit(escrow, want))
	require.NoError(t, err)
	assert.Equal(t, uint64(4), id)
}

func TestLedgerInconsistentID(t *testing.T) {
	db := store.MemStore()
	b := NewDepositBucket()
	alice := otctest.NewAddress(t)
	bob := otctest.NewAddress(t)
	d := newDeposit(asset.NewNative(1, "ujuno"), asset.NewNative(1, "uusdc"))

	// bypass the sequence to break id uniqueness
	for _, owner := range []otc.Address{alice, bob} {
		obj := newDepositRecord(d)
		require.NoError(t, b.Save(db, ormObj(DepositKey(owner, 7), obj)))
	}
	_, err := b.FindByID(db, 7)
	assert.True(t, errors.ErrInconsistentState.Is(err))
}

func TestLedgerRejectsInvalid(t *testing.T) {
	db := store.MemStore()
	b := NewDepositBucket()

	_, err := b.Insert(db, "", newDeposit(asset.NewNative(1, "ujuno"), asset.NewNative(1, "uusdc")))
	assert.True(t, errors.ErrEmpty.Is(err))

	_, err = b.Insert(db, "juno1x", newDeposit(asset.NewNative(0, "ujuno"), asset.NewNative(1, "uusdc")))
	assert.True(t, errors.ErrInvalidAmount.Is(err))

	// failed inserts do not consume ids
	next, err := b.NextID(db)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), next)
}

func ormObj(key []byte, rec *depositRecord) *orm.SimpleObj {
	return orm.NewSimpleObj(key, rec)
}
