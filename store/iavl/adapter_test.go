package iavl

import (
	"io/ioutil"
	"os"
	"testing"

	"github.com/iov-one/otc/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertGetHas(t *testing.T, kv store.ReadOnlyKVStore, key, val []byte, has bool) {
	t.Helper()
	got, err := kv.Get(key)
	require.NoError(t, err)
	assert.Equal(t, val, got)
	exists, err := kv.Has(key)
	require.NoError(t, err)
	assert.Equal(t, has, exists)
}

func TestCommitCycle(t *testing.T) {
	commit := NewMemCommitStore()

	id, err := commit.LatestVersion()
	require.NoError(t, err)
	assert.Equal(t, int64(0), id.Version)

	k, v := []byte("deposit"), []byte("one")
	cache := commit.CacheWrap()
	require.NoError(t, cache.Set(k, v))

	// not yet written into the working tree
	side := commit.CacheWrap()
	assertGetHas(t, side, k, nil, false)

	require.NoError(t, cache.Write())
	assertGetHas(t, commit.CacheWrap(), k, v, true)

	// committed state lags until Commit
	got, err := commit.Get(k)
	require.NoError(t, err)
	assert.Nil(t, got)

	id, err = commit.Commit()
	require.NoError(t, err)
	assert.Equal(t, int64(1), id.Version)
	assert.NotEmpty(t, id.Hash)

	got, err = commit.Get(k)
	require.NoError(t, err)
	assert.Equal(t, v, got)

	c2 := commit.CacheWrap()
	require.NoError(t, c2.Delete(k))
	require.NoError(t, c2.Write())
	id2, err := commit.Commit()
	require.NoError(t, err)
	assert.Equal(t, int64(2), id2.Version)
	assert.NotEqual(t, id.Hash, id2.Hash)
	assertGetHas(t, commit.CacheWrap(), k, nil, false)
}

func TestIterateAdapter(t *testing.T) {
	commit := NewMemCommitStore()
	a := commit.Adapter()
	for _, k := range []string{"a", "b", "c"} {
		require.NoError(t, a.Set([]byte(k), []byte(k+k)))
	}

	it, err := a.ReverseIterator([]byte("a"), []byte("c"))
	require.NoError(t, err)
	defer it.Release()
	k, v, err := it.Next()
	require.NoError(t, err)
	assert.Equal(t, []byte("b"), k)
	assert.Equal(t, []byte("bb"), v)
}

func TestReloadFromDisk(t *testing.T) {
	dir, err := ioutil.TempDir("", "otc-iavl-")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	commit, err := NewCommitStore(dir, "state")
	require.NoError(t, err)
	defer commit.Close()
	cache := commit.CacheWrap()
	require.NoError(t, cache.Set([]byte("key"), []byte("value")))
	require.NoError(t, cache.Write())
	want, err := commit.Commit()
	require.NoError(t, err)

	// a second tree on the same db sees the saved version
	again := newCommitStore(commit.db)
	require.NoError(t, again.LoadLatestVersion())
	got, err := again.LatestVersion()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
