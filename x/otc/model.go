package otc

import (
	"encoding/binary"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/otc"
	"github.com/iov-one/otc/asset"
	"github.com/iov-one/otc/errors"
	"github.com/iov-one/otc/orm"
)

const (
	// BucketName is where deposits are stored.
	BucketName = "deposit"
)

// Offer describes what the depositor wants in return.
type Offer struct {
	Exchange asset.Asset `json:"exchange"`
	// From, when set, is the only party allowed to accept.
	From otc.Address `json:"from,omitempty"`
}

// Deposit is an escrowed asset together with its offer. Deposits are
// never modified, only removed.
type Deposit struct {
	Deposit asset.Asset `json:"deposit"`
	Offer   Offer       `json:"offer"`
}

// Validate ensures both assets are well formed.
func (d *Deposit) Validate() error {
	if d == nil {
		return errors.Wrap(errors.ErrEmpty, "deposit")
	}
	if err := d.Deposit.Validate(); err != nil {
		return errors.Wrap(err, "deposit")
	}
	if err := d.Offer.Exchange.Validate(); err != nil {
		return errors.Wrap(err, "exchange")
	}
	return nil
}

// Entry is a deposit together with the key it is stored under.
type Entry struct {
	Owner   otc.Address `json:"owner"`
	ID      uint64      `json:"id"`
	Deposit Deposit     `json:"deposit"`
}

// depositRecord is the persisted form of a Deposit.
type depositRecord struct {
	Deposit  *asset.Record `protobuf:"bytes,1,opt,name=deposit,proto3" json:"deposit,omitempty"`
	Exchange *asset.Record `protobuf:"bytes,2,opt,name=exchange,proto3" json:"exchange,omitempty"`
	From     string        `protobuf:"bytes,3,opt,name=from,proto3" json:"from,omitempty"`
}

var _ orm.Model = (*depositRecord)(nil)

func (m *depositRecord) Reset()         { *m = depositRecord{} }
func (m *depositRecord) String() string { return proto.CompactTextString(m) }
func (*depositRecord) ProtoMessage()    {}

func (m *depositRecord) Validate() error {
	d, err := m.toDeposit()
	if err != nil {
		return errors.Wrap(errors.ErrInvalidModel, err.Error())
	}
	return d.Validate()
}

func (m *depositRecord) toDeposit() (*Deposit, error) {
	dep, err := m.Deposit.Asset()
	if err != nil {
		return nil, errors.Wrap(err, "deposit")
	}
	exch, err := m.Exchange.Asset()
	if err != nil {
		return nil, errors.Wrap(err, "exchange")
	}
	return &Deposit{
		Deposit: dep,
		Offer: Offer{
			Exchange: exch,
			From:     otc.Address(m.From),
		},
	}, nil
}

func newDepositRecord(d *Deposit) *depositRecord {
	return &depositRecord{
		Deposit:  d.Deposit.ToRecord(),
		Exchange: d.Offer.Exchange.ToRecord(),
		From:     string(d.Offer.From),
	}
}

// OwnerPrefix is the key prefix shared by all deposits of one owner. The
// owner is length prefixed so that no owner is a prefix of another.
func OwnerPrefix(owner otc.Address) []byte {
	out := make([]byte, 2+len(owner))
	binary.BigEndian.PutUint16(out, uint16(len(owner)))
	copy(out[2:], owner)
	return out
}

// DepositKey returns the bucket key of a deposit. Keys of one owner sort
// by id.
func DepositKey(owner otc.Address, id uint64) []byte {
	prefix := OwnerPrefix(owner)
	out := make([]byte, len(prefix)+8)
	copy(out, prefix)
	binary.BigEndian.PutUint64(out[len(prefix):], id)
	return out
}

// ParseDepositKey is the inverse of DepositKey.
func ParseDepositKey(key []byte) (otc.Address, uint64, error) {
	if len(key) < 2 {
		return "", 0, errors.Wrap(errors.ErrInvalidModel, "deposit key too short")
	}
	n := int(binary.BigEndian.Uint16(key))
	if len(key) != 2+n+8 {
		return "", 0, errors.Wrapf(errors.ErrInvalidModel, "deposit key of %d bytes, owner of %d", len(key), n)
	}
	owner := otc.Address(key[2 : 2+n])
	return owner, binary.BigEndian.Uint64(key[2+n:]), nil
}

// DepositBucket is the deposit ledger. It owns the identifier sequence
// so that ids are allocated in the same store as the records.
type DepositBucket struct {
	orm.Bucket
	seq orm.Sequence
}

// NewDepositBucket initializes the ledger.
func NewDepositBucket() DepositBucket {
	b := orm.NewBucket(BucketName, func() orm.Model { return &depositRecord{} })
	return DepositBucket{
		Bucket: b,
		seq:    b.Sequence(orm.SeqID),
	}
}

// NextID returns the id the next insert will use.
func (b DepositBucket) NextID(db otc.ReadOnlyKVStore) (uint64, error) {
	return b.seq.Peek(db)
}

// Insert allocates a fresh id and stores the deposit under (owner, id).
func (b DepositBucket) Insert(db otc.KVStore, owner otc.Address, d *Deposit) (uint64, error) {
	if owner == "" {
		return 0, errors.Wrap(errors.ErrEmpty, "owner")
	}
	if err := d.Validate(); err != nil {
		return 0, err
	}
	id, err := b.seq.NextVal(db)
	if err != nil {
		return 0, errors.Wrap(err, "cannot acquire id")
	}
	obj := orm.NewSimpleObj(DepositKey(owner, id), newDepositRecord(d))
	if err := b.Save(db, obj); err != nil {
		return 0, errors.Wrap(err, "cannot store deposit")
	}
	return id, nil
}

// One returns the deposit stored under (owner, id).
func (b DepositBucket) One(db otc.ReadOnlyKVStore, owner otc.Address, id uint64) (*Deposit, error) {
	obj, err := b.Get(db, DepositKey(owner, id))
	if err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, errors.Wrapf(errors.ErrNotFound, "deposit %d of %s", id, owner)
	}
	return asDeposit(obj)
}

// ByOwner returns all deposits of the owner ordered by id.
func (b DepositBucket) ByOwner(db otc.ReadOnlyKVStore, owner otc.Address) ([]Entry, error) {
	objs, err := b.PrefixScan(db, OwnerPrefix(owner), false)
	if err != nil {
		return nil, err
	}
	return asEntries(objs)
}

// All returns every deposit ordered by owner and then id.
func (b DepositBucket) All(db otc.ReadOnlyKVStore) ([]Entry, error) {
	objs, err := b.PrefixScan(db, nil, false)
	if err != nil {
		return nil, err
	}
	return asEntries(objs)
}

// FindByID scans the ledger for the deposit with the given id.
func (b DepositBucket) FindByID(db otc.ReadOnlyKVStore, id uint64) (*Entry, error) {
	all, err := b.All(db)
	if err != nil {
		return nil, err
	}
	var found []Entry
	for _, e := range all {
		if e.ID == id {
			found = append(found, e)
		}
	}
	switch len(found) {
	case 0:
		return nil, errors.Wrapf(errors.ErrNotFound, "deposit %d", id)
	case 1:
		return &found[0], nil
	default:
		return nil, errors.Wrapf(errors.ErrInconsistentState, "%d deposits share id %d", len(found), id)
	}
}

// Remove deletes the deposit stored under (owner, id). A missing key is an
// error.
func (b DepositBucket) Remove(db otc.KVStore, owner otc.Address, id uint64) error {
	key := DepositKey(owner, id)
	has, err := b.Has(db, key)
	if err != nil {
		return err
	}
	if !has {
		return errors.Wrapf(errors.ErrNotFound, "deposit %d of %s", id, owner)
	}
	return b.Delete(db, key)
}

func asDeposit(obj orm.Object) (*Deposit, error) {
	rec, ok := obj.Value().(*depositRecord)
	if !ok {
		return nil, errors.Wrapf(errors.ErrInvalidModel, "invalid type: %T", obj.Value())
	}
	return rec.toDeposit()
}

func asEntries(objs []orm.Object) ([]Entry, error) {
	res := make([]Entry, 0, len(objs))
	for _, obj := range objs {
		owner, id, err := ParseDepositKey(obj.Key())
		if err != nil {
			return nil, err
		}
		d, err := asDeposit(obj)
		if err != nil {
			return nil, err
		}
		res = append(res, Entry{Owner: owner, ID: id, Deposit: *d})
	}
	return res, nil
}
