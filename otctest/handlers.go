package otctest

import (
	"context"

	"github.com/iov-one/otc"
)

// Handler is a test double counting its calls. When Write is set, Deliver
// stores it before returning, which allows checking that writes of failed
// calls are discarded.
type Handler struct {
	checkCall   int
	CheckResult otc.CheckResult
	CheckErr    error

	deliverCall   int
	DeliverResult otc.DeliverResult
	DeliverErr    error

	Write *otc.Model
}

var _ otc.Handler = (*Handler)(nil)

func (h *Handler) Check(ctx context.Context, db otc.KVStore, tx otc.Tx) (*otc.CheckResult, error) {
	h.checkCall++
	if h.CheckErr != nil {
		return nil, h.CheckErr
	}
	res := h.CheckResult
	return &res, nil
}

func (h *Handler) Deliver(ctx context.Context, db otc.KVStore, tx otc.Tx) (*otc.DeliverResult, error) {
	h.deliverCall++
	if h.Write != nil {
		if err := db.Set(h.Write.Key, h.Write.Value); err != nil {
			return nil, err
		}
	}
	if h.DeliverErr != nil {
		return nil, h.DeliverErr
	}
	res := h.DeliverResult
	return &res, nil
}

func (h *Handler) CheckCallCount() int {
	return h.checkCall
}

func (h *Handler) DeliverCallCount() int {
	return h.deliverCall
}

func (h *Handler) CallCount() int {
	return h.checkCall + h.deliverCall
}
