package app

import (
	"context"
	"testing"

	"github.com/iov-one/otc"
	"github.com/iov-one/otc/errors"
	"github.com/iov-one/otc/otctest"
	"github.com/iov-one/otc/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder appends its name to the shared log before calling next.
type recorder struct {
	name string
	log  *[]string
}

func (r recorder) Check(ctx context.Context, db otc.KVStore, tx otc.Tx, next otc.Checker) (*otc.CheckResult, error) {
	*r.log = append(*r.log, r.name)
	return next.Check(ctx, db, tx)
}

func (r recorder) Deliver(ctx context.Context, db otc.KVStore, tx otc.Tx, next otc.Deliverer) (*otc.DeliverResult, error) {
	*r.log = append(*r.log, r.name)
	return next.Deliver(ctx, db, tx)
}

func TestChainOrder(t *testing.T) {
	var calls []string
	h := &otctest.Handler{}
	var nilDecorator *recorder

	stack := ChainDecorators(
		recorder{name: "first", log: &calls},
		nil,
		nilDecorator,
	).Chain(
		recorder{name: "second", log: &calls},
	).WithHandler(h)

	_, err := stack.Deliver(context.Background(), store.MemStore(), &otctest.Tx{})
	require.NoError(t, err)
	_, err = stack.Check(context.Background(), store.MemStore(), &otctest.Tx{})
	require.NoError(t, err)

	assert.Equal(t, []string{"first", "second", "first", "second"}, calls)
	assert.Equal(t, 1, h.DeliverCallCount())
	assert.Equal(t, 1, h.CheckCallCount())
}

func TestRouter(t *testing.T) {
	r := NewRouter()
	h := &otctest.Handler{}
	r.Handle(&otctest.Msg{RoutePath: "test/good"}, h)

	assert.Panics(t, func() {
		r.Handle(&otctest.Msg{RoutePath: "test/good"}, h)
	}, "duplicate route")
	assert.Panics(t, func() {
		r.Handle(&otctest.Msg{RoutePath: "bad path!"}, h)
	}, "invalid route")

	db := store.MemStore()
	_, err := r.Deliver(context.Background(), db, &otctest.Tx{Msg: &otctest.Msg{RoutePath: "test/good"}})
	require.NoError(t, err)
	assert.Equal(t, 1, h.DeliverCallCount())

	_, err = r.Check(context.Background(), db, &otctest.Tx{Msg: &otctest.Msg{RoutePath: "test/missing"}})
	assert.True(t, errors.ErrNotFound.Is(err))

	_, err = r.Deliver(context.Background(), db, &otctest.Tx{})
	assert.True(t, errors.ErrEmpty.Is(err))
}
