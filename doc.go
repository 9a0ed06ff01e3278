/*
Package otc defines the interfaces shared by the escrow exchange packages,
as well as implementations of some of the simpler components.

The keyed store (KVStore, Iterator and the cache wrapping variants) is the
substrate of every ledger. Handlers process one Msg carried by a Tx against
a store and either return a result or an error; the application only
persists the writes of a call when its handler succeeded.

Request scoped values are passed through context.Context. For every value
XYZ of type T that is supported there are two functions:

  WithXYZ(context.Context, T) context.Context
  GetXYZ(context.Context) (T, bool)
*/
package otc
