package storage

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	"github.com/stephenafamo/bob"

	"github.com/carson-networks/budget-ledger/internal/config"
)

// Backend is what the ledger needs from persistence: a reader over committed
// state and writers that each own one atomic unit of work.
type Backend interface {
	Reader() *Reader
	Write(ctx context.Context) (*Writer, error)
}

// Storage is the PostgreSQL backend.
type Storage struct {
	DB *sql.DB
	db bob.DB
}

var _ Backend = (*Storage)(nil)

func NewStorage(env *config.Config) (*Storage, error) {
	return Open(env.PostgresDSN())
}

// Open connects to the database at dsn and verifies the connection.
func Open(dsn string) (*Storage, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return &Storage{
		DB: db,
		db: bob.NewDB(db),
	}, nil
}

func (s *Storage) Reader() *Reader {
	return NewReader(s.db)
}

// Write begins a database transaction. The caller must Commit or Rollback the writer.
func (s *Storage) Write(ctx context.Context) (*Writer, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return NewWriter(tx), nil
}

func (s *Storage) Close() error {
	return s.DB.Close()
}
