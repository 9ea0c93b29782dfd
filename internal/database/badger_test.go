package database

import (
	"path/filepath"
	"testing"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenBadger(t *testing.T) {
	t.Run("in_memory", func(t *testing.T) {
		db, err := OpenBadger("")
		require.NoError(t, err)
		assert.True(t, db.Opts().InMemory)
		assert.NoError(t, db.Close())
	})

	t.Run("on_disk_persists", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "nested", "db")

		db, err := OpenBadger(dir)
		require.NoError(t, err)
		require.NoError(t, db.Update(func(txn *badger.Txn) error {
			return txn.Set([]byte("k"), []byte("v"))
		}))
		require.NoError(t, db.Close())

		db, err = OpenBadger(dir)
		require.NoError(t, err)
		defer db.Close()
		err = db.View(func(txn *badger.Txn) error {
			item, err := txn.Get([]byte("k"))
			if err != nil {
				return err
			}
			val, err := item.ValueCopy(nil)
			assert.Equal(t, "v", string(val))
			return err
		})
		assert.NoError(t, err)
	})
}
