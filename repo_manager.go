package accounts

import (
	"context"
	"database/sql"
	"errors"
	"log"

	"github.com/goliatone/go-accounts/migrations"
	"github.com/goliatone/go-repository-bun"
	"github.com/uptrace/bun"
)

// RepositoryManager exposes all repositories
type RepositoryManager interface {
	repository.Validator
	repository.TransactionManager
	Users() Users
	Migrate(ctx context.Context) error
	SchemaVersion(ctx context.Context) (int64, error)
}

type mngr struct {
	db    *bun.DB
	users Users
}

func NewRepositoryManager(db *bun.DB, opts ...UsersOption) RepositoryManager {
	return &mngr{
		db:    db,
		users: NewUsersRepository(db, opts...),
	}
}

func (m mngr) Validate() error {
	if m.db == nil {
		return errors.New("repository database should be initialized")
	}

	if m.users == nil {
		return errors.New("repository users should be initialized")
	}

	return nil
}

func (m mngr) MustValidate() {
	if err := m.Validate(); err != nil {
		log.Panic(err)
	}
}

func (m mngr) RunInTx(ctx context.Context, opts *sql.TxOptions, f func(ctx context.Context, tx bun.Tx) error) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return m.db.RunInTx(ctx, opts, f)
	}
}

func (m mngr) Users() Users {
	return m.users
}

// Migrate applies the embedded schema migrations
func (m mngr) Migrate(ctx context.Context) error {
	if err := m.Validate(); err != nil {
		return err
	}
	return migrations.Up(ctx, m.db.DB, migrationDialect(m.db))
}

// SchemaVersion returns the last applied migration version
func (m mngr) SchemaVersion(ctx context.Context) (int64, error) {
	if err := m.Validate(); err != nil {
		return 0, err
	}
	return migrations.Version(ctx, m.db.DB, migrationDialect(m.db))
}
