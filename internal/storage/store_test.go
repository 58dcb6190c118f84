package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"trade-journal-go/internal/config"
	"trade-journal-go/internal/database"
)

// MockStore is a mock implementation of the Store interface.
type MockStore struct {
	mock.Mock
}

func (m *MockStore) Load(ctx context.Context, key string) ([]byte, bool, error) {
	args := m.Called(ctx, key)
	data, _ := args.Get(0).([]byte)
	return data, args.Bool(1), args.Error(2)
}

func (m *MockStore) Save(ctx context.Context, key string, data []byte) error {
	args := m.Called(ctx, key, data)
	return args.Error(0)
}

// setupSQLStore opens a fresh in-memory database for each test.
func setupSQLStore(t *testing.T) *SQLStore {
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1) // every new connection would see its own empty :memory: database
	require.NoError(t, database.AutoMigrate(db))
	return NewSQLStore(db)
}

func TestStores(t *testing.T) {
	backends := map[string]func(t *testing.T) Store{
		"Memory": func(t *testing.T) Store { return NewMemoryStore() },
		"SQLite": func(t *testing.T) Store { return setupSQLStore(t) },
	}

	for name, newStore := range backends {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			s := newStore(t)

			data, ok, err := s.Load(ctx, KeyTrades)
			assert.NoError(t, err)
			assert.False(t, ok)
			assert.Nil(t, data)

			require.NoError(t, s.Save(ctx, KeyTrades, []byte(`[1]`)))
			require.NoError(t, s.Save(ctx, KeyTrades, []byte(`[1,2]`)))
			require.NoError(t, s.Save(ctx, KeyUser, []byte(`{}`)))

			data, ok, err = s.Load(ctx, KeyTrades)
			assert.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, []byte(`[1,2]`), data)
		})
	}
}

func TestMemoryStoreCopiesData(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	buf := []byte("abc")
	require.NoError(t, s.Save(ctx, "k", buf))
	buf[0] = 'x'

	data, _, _ := s.Load(ctx, "k")
	assert.Equal(t, "abc", string(data))
	data[1] = 'y'

	again, _, _ := s.Load(ctx, "k")
	assert.Equal(t, "abc", string(again))
}

func TestJSONHelpers(t *testing.T) {
	ctx := context.Background()

	t.Run("Round trip", func(t *testing.T) {
		s := NewMemoryStore()
		require.NoError(t, SaveJSON(ctx, s, KeySettings, map[string]int{"pageSize": 10}))

		var out map[string]int
		ok, err := LoadJSON(ctx, s, KeySettings, &out)
		assert.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, 10, out["pageSize"])
	})

	t.Run("Missing key", func(t *testing.T) {
		var out []int
		ok, err := LoadJSON(ctx, NewMemoryStore(), KeyDrafts, &out)
		assert.NoError(t, err)
		assert.False(t, ok)
		assert.Nil(t, out)
	})

	t.Run("Corrupt blob", func(t *testing.T) {
		s := NewMemoryStore()
		require.NoError(t, s.Save(ctx, KeyTrades, []byte("{not json")))

		var out []int
		_, err := LoadJSON(ctx, s, KeyTrades, &out)
		assert.ErrorIs(t, err, ErrStorage)
		var se *Error
		require.ErrorAs(t, err, &se)
		assert.Equal(t, "decode", se.Op)
	})

	t.Run("Backend failure is wrapped", func(t *testing.T) {
		s := new(MockStore)
		quota := errors.New("quota exceeded")
		s.On("Save", ctx, KeyTrades, mock.Anything).Return(quota)

		err := SaveJSON(ctx, s, KeyTrades, []int{1})
		assert.ErrorIs(t, err, ErrStorage)
		assert.ErrorIs(t, err, quota)
		s.AssertExpectations(t)
	})

	t.Run("Unencodable value", func(t *testing.T) {
		err := SaveJSON(ctx, NewMemoryStore(), KeyTrades, make(chan int))
		assert.ErrorIs(t, err, ErrStorage)
	})
}

func TestOpen(t *testing.T) {
	log := zap.NewNop()

	s, err := Open(&config.Storage{Driver: "memory"}, log)
	assert.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, s)

	s, err = Open(&config.Storage{Driver: "sqlite", DSN: "file::memory:"}, log)
	assert.NoError(t, err)
	assert.IsType(t, &SQLStore{}, s)

	_, err = Open(&config.Storage{Driver: "redis"}, log)
	assert.Error(t, err)
}
