package otc

import (
	"github.com/tendermint/tendermint/libs/common"
)

// Instruction is an outbound transfer that the host executes once the
// ledger changes of the call that produced it are committed.
type Instruction interface {
	// Validate returns an error if the instruction cannot be executed.
	Validate() error
}

// DeliverResult captures any non-error result of a delivered transaction.
type DeliverResult struct {
	// Data is a machine-parseable return value, like id of created entity.
	Data []byte
	// Log is human-readable informational string.
	Log string
	// Instructions is the ordered list of transfers to execute.
	Instructions []Instruction
	// Tags are the attributes confirming what happened, indexed by the
	// host.
	Tags []common.KVPair
}

// AddTag appends a string attribute.
func (d *DeliverResult) AddTag(key, value string) {
	d.Tags = append(d.Tags, common.KVPair{Key: []byte(key), Value: []byte(value)})
}

// Tag returns the value of the first attribute with given key.
func (d *DeliverResult) Tag(key string) (string, bool) {
	for _, t := range d.Tags {
		if string(t.Key) == key {
			return string(t.Value), true
		}
	}
	return "", false
}

// CheckResult captures any non-error result of a checked transaction.
type CheckResult struct {
	// Data is a machine-parseable return value.
	Data []byte
	// Log is human-readable informational string.
	Log string
	// GasAllocated is the maximum units of work we allow this tx to perform.
	GasAllocated int64
}

// NewCheck sets the gas used and the log but no more info.
func NewCheck(gasAllocated int64, log string) *CheckResult {
	return &CheckResult{
		GasAllocated: gasAllocated,
		Log:          log,
	}
}
