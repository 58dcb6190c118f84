package storage

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"trade-journal-go/internal/config"
	"trade-journal-go/internal/database"
)

// Names of the independent blobs the journal persists.
const (
	KeyTrades    = "trades"
	KeyUser      = "user"
	KeySettings  = "settings"
	KeyDrafts    = "drafts"
	KeyTemplates = "templates"
)

// Store is the persistence collaborator: a key-value store of serialized blobs.
// Load reports ok=false for a key that was never saved; that is not an error.
type Store interface {
	Load(ctx context.Context, key string) (data []byte, ok bool, err error)
	Save(ctx context.Context, key string, data []byte) error
}

// ErrStorage matches every *Error via errors.Is.
var ErrStorage = errors.New("storage failure")

// Error reports a failed storage operation on a single key.
type Error struct {
	Op  string
	Key string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("storage %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool { return target == ErrStorage }

// Open builds the store selected by cfg.Driver.
func Open(cfg *config.Storage, logger *zap.Logger) (Store, error) {
	switch cfg.Driver {
	case "memory":
		logger.Warn("Using in-memory storage, data is lost on exit")
		return NewMemoryStore(), nil
	case "sqlite", "":
		db, err := database.NewDatabase(cfg)
		if err != nil {
			return nil, err
		}
		logger.Info("Using sqlite storage", zap.String("dsn", cfg.DSN))
		return NewSQLStore(db), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
