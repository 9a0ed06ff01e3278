package store

import "github.com/iov-one/otc"

// Move references for all storage types into this package
// for shorter names everywhere.

type ReadOnlyKVStore = otc.ReadOnlyKVStore
type SetDeleter = otc.SetDeleter
type KVStore = otc.KVStore
type Batch = otc.Batch
type Iterator = otc.Iterator
type CacheableKVStore = otc.CacheableKVStore
type KVCacheWrap = otc.KVCacheWrap
type CommitKVStore = otc.CommitKVStore
type CommitID = otc.CommitID
type Model = otc.Model
