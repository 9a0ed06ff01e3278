package otc

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/otc"
	"github.com/iov-one/otc/errors"
	"github.com/iov-one/otc/orm"
	"github.com/shopspring/decimal"
)

const (
	// OptionsKey is the genesis app_state section read by Initializer.
	OptionsKey = "otc"
	// DefaultContractName is stored when genesis does not name the
	// exchange.
	DefaultContractName = "otc-exchange"

	confBucketName = "otc_conf"
	feeKey         = confBucketName + ":fee"
	infoKey        = confBucketName + ":info"
)

// DefaultServiceFee is one percent.
var DefaultServiceFee = decimal.New(1, -2)

// FeeConfig is stored at genesis and only reported by queries. The engine
// does not deduct any fee.
type FeeConfig struct {
	FeeAddress otc.Address     `json:"fee_address"`
	ServiceFee decimal.Decimal `json:"service_fee"`
}

// Validate requires an address and a fee ratio in [0, 1).
func (c FeeConfig) Validate() error {
	if c.FeeAddress == "" {
		return errors.Wrap(errors.ErrEmpty, "fee address")
	}
	if c.ServiceFee.IsNegative() || c.ServiceFee.GreaterThanOrEqual(decimal.New(1, 0)) {
		return errors.Wrapf(errors.ErrInvalidInput, "service fee %s out of range", c.ServiceFee)
	}
	return nil
}

// ContractInfo names the exchange and the code version that set it up.
type ContractInfo struct {
	Name    string `protobuf:"bytes,1,opt,name=name,proto3" json:"name"`
	Version string `protobuf:"bytes,2,opt,name=version,proto3" json:"version"`
}

var _ orm.Model = (*ContractInfo)(nil)

func (m *ContractInfo) Reset()         { *m = ContractInfo{} }
func (m *ContractInfo) String() string { return proto.CompactTextString(m) }
func (*ContractInfo) ProtoMessage()    {}

// Validate requires both fields.
func (m *ContractInfo) Validate() error {
	if m.Name == "" {
		return errors.Wrap(errors.ErrEmpty, "contract name")
	}
	if m.Version == "" {
		return errors.Wrap(errors.ErrEmpty, "contract version")
	}
	return nil
}

type feeRecord struct {
	FeeAddress string `protobuf:"bytes,1,opt,name=fee_address,proto3" json:"fee_address,omitempty"`
	ServiceFee string `protobuf:"bytes,2,opt,name=service_fee,proto3" json:"service_fee,omitempty"`
}

var _ orm.Model = (*feeRecord)(nil)

func (m *feeRecord) Reset()         { *m = feeRecord{} }
func (m *feeRecord) String() string { return proto.CompactTextString(m) }
func (*feeRecord) ProtoMessage()    {}

func (m *feeRecord) Validate() error {
	c, err := m.toConfig()
	if err != nil {
		return err
	}
	return c.Validate()
}

func (m *feeRecord) toConfig() (FeeConfig, error) {
	fee, err := decimal.NewFromString(m.ServiceFee)
	if err != nil {
		return FeeConfig{}, errors.Wrapf(errors.ErrInvalidModel, "service fee %q", m.ServiceFee)
	}
	return FeeConfig{FeeAddress: otc.Address(m.FeeAddress), ServiceFee: fee}, nil
}

var (
	feeBucket  = orm.NewBucket(confBucketName, func() orm.Model { return &feeRecord{} })
	infoBucket = orm.NewBucket(confBucketName, func() orm.Model { return &ContractInfo{} })
)

// SaveFeeConfig validates and stores the fee configuration.
func SaveFeeConfig(db otc.KVStore, c FeeConfig) error {
	rec := &feeRecord{FeeAddress: c.FeeAddress.String(), ServiceFee: c.ServiceFee.String()}
	return feeBucket.Save(db, orm.NewSimpleObj([]byte("fee"), rec))
}

// LoadFeeConfig returns the stored fee configuration.
func LoadFeeConfig(db otc.ReadOnlyKVStore) (FeeConfig, error) {
	obj, err := feeBucket.Get(db, []byte("fee"))
	if err != nil {
		return FeeConfig{}, err
	}
	if obj == nil {
		return FeeConfig{}, errors.Wrap(errors.ErrNotFound, "fee config")
	}
	rec, ok := obj.Value().(*feeRecord)
	if !ok {
		return FeeConfig{}, errors.Wrapf(errors.ErrInvalidModel, "invalid type: %T", obj.Value())
	}
	return rec.toConfig()
}

// SaveContractInfo stores the contract info.
func SaveContractInfo(db otc.KVStore, info ContractInfo) error {
	return infoBucket.Save(db, orm.NewSimpleObj([]byte("info"), &info))
}

// LoadContractInfo returns the stored contract info.
func LoadContractInfo(db otc.ReadOnlyKVStore) (ContractInfo, error) {
	obj, err := infoBucket.Get(db, []byte("info"))
	if err != nil {
		return ContractInfo{}, err
	}
	if obj == nil {
		return ContractInfo{}, errors.Wrap(errors.ErrNotFound, "contract info")
	}
	info, ok := obj.Value().(*ContractInfo)
	if !ok {
		return ContractInfo{}, errors.Wrapf(errors.ErrInvalidModel, "invalid type: %T", obj.Value())
	}
	return *info, nil
}

// Initializer fulfils the Initializer interface to load data from the
// genesis file.
type Initializer struct {
	Validator otc.AddressValidator
}

var _ otc.Initializer = (*Initializer)(nil)

// FromGenesis reads the otc section of the app state and stores the fee
// configuration and contract info.
func (i *Initializer) FromGenesis(opts otc.Options, db otc.KVStore) error {
	var conf struct {
		FeeAddress   string           `json:"fee_address"`
		ServiceFee   *decimal.Decimal `json:"service_fee"`
		ContractName string           `json:"contract_name"`
	}
	if err := opts.ReadOptions(OptionsKey, &conf); err != nil {
		return errors.Wrap(errors.ErrInvalidInput, err.Error())
	}

	feeAddr, err := i.Validator.ValidateAddress(conf.FeeAddress)
	if err != nil {
		return errors.Wrap(err, "fee address")
	}
	fee := FeeConfig{FeeAddress: feeAddr, ServiceFee: DefaultServiceFee}
	if conf.ServiceFee != nil {
		fee.ServiceFee = *conf.ServiceFee
	}
	if err := SaveFeeConfig(db, fee); err != nil {
		return err
	}

	name := conf.ContractName
	if name == "" {
		name = DefaultContractName
	}
	return SaveContractInfo(db, ContractInfo{Name: name, Version: otc.Version()})
}
