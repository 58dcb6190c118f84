package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"trade-journal-go/internal/config"
	"trade-journal-go/internal/models"
)

func TestNewDatabase(t *testing.T) {
	t.Run("Creates blob table", func(t *testing.T) {
		db, err := NewDatabase(&config.Storage{DSN: "file::memory:"})
		require.NoError(t, err)
		assert.True(t, db.Migrator().HasTable(&models.Blob{}))
	})

	t.Run("Keeps data across reopen", func(t *testing.T) {
		dsn := filepath.Join(t.TempDir(), "journal.db")

		db, err := NewDatabase(&config.Storage{DSN: dsn})
		require.NoError(t, err)
		require.NoError(t, db.Create(&models.Blob{Name: "trades", Data: []byte("[]")}).Error)
		sqlDB, _ := db.DB()
		require.NoError(t, sqlDB.Close())

		db, err = NewDatabase(&config.Storage{DSN: dsn})
		require.NoError(t, err)
		var blob models.Blob
		require.NoError(t, db.First(&blob, "name = ?", "trades").Error)
		assert.Equal(t, []byte("[]"), blob.Data)
	})

	t.Run("Missing DSN", func(t *testing.T) {
		_, err := NewDatabase(&config.Storage{})
		assert.Error(t, err)
	})
}
