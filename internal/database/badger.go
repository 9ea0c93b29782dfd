package database

import (
	"fmt"
	"os"

	badger "github.com/dgraph-io/badger/v4"

	"github.com/Dias221467/goai-backend/pkg/logger"
)

// OpenBadger opens the badger store at path. An empty path runs in memory.
func OpenBadger(path string) (*badger.DB, error) {
	var opts badger.Options
	if path == "" {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(path, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create badger directory: %w", err)
		}
		opts = badger.DefaultOptions(path)
	}
	opts = opts.WithLoggingLevel(badger.ERROR)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger: %w", err)
	}

	logger.Log.WithField("path", path).Info("Badger store opened")
	return db, nil
}
