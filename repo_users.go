package accounts

import (
	"context"
	"database/sql"
	stderrors "errors"
	"strings"
	"time"

	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Users is the Bun backed UserStore
type Users interface {
	UserStore

	FindByIDTx(ctx context.Context, tx bun.IDB, id string) (*User, error)
	FindAllTx(ctx context.Context, tx bun.IDB, page Pagination) ([]*User, error)
	FindByIDPageTx(ctx context.Context, tx bun.IDB, id string, page Pagination) ([]*User, error)
	SaveTx(ctx context.Context, tx bun.IDB, user *User) (*User, error)
}

type users struct {
	repo repository.Repository[*User]
	db   *bun.DB
	now  func() time.Time
}

var _ Users = (*users)(nil)

// UsersOption configures the users repository
type UsersOption func(*users)

// WithUsersClock overrides the clock used to stamp updated_at
func WithUsersClock(now func() time.Time) UsersOption {
	return func(u *users) {
		if now != nil {
			u.now = now
		}
	}
}

func NewUsersRepository(db *bun.DB, opts ...UsersOption) Users {
	repo := repository.NewRepository[*User](db, repository.ModelHandlers[*User]{
		NewRecord: func() *User { return &User{} },
		GetID: func(u *User) uuid.UUID {
			if u == nil {
				return uuid.Nil
			}
			return u.ID
		},
		SetID: func(u *User, id uuid.UUID) {
			if u != nil {
				u.ID = id
			}
		},
	})

	u := &users{
		repo: repo,
		db:   db,
		now:  time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(u)
		}
	}
	return u
}

func (a *users) FindByID(ctx context.Context, id string) (*User, error) {
	id = strings.TrimSpace(id)
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrUserNotFound
	}

	user, err := a.repo.GetByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to retrieve user").
			WithMetadata(map[string]any{"id": id})
	}
	return user, nil
}

func (a *users) FindByIDTx(ctx context.Context, tx bun.IDB, id string) (*User, error) {
	id = strings.TrimSpace(id)
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrUserNotFound
	}

	record := &User{}
	err := tx.NewSelect().
		Model(record).
		Where("?TableAlias.id = ?", id).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to retrieve user").
			WithMetadata(map[string]any{"id": id})
	}
	return record, nil
}

func (a *users) FindAll(ctx context.Context, page Pagination) ([]*User, error) {
	return a.FindAllTx(ctx, a.db, page)
}

func (a *users) FindAllTx(ctx context.Context, tx bun.IDB, page Pagination) ([]*User, error) {
	return a.list(ctx, tx, page)
}

func (a *users) FindByIDPage(ctx context.Context, id string, page Pagination) ([]*User, error) {
	return a.FindByIDPageTx(ctx, a.db, id, page)
}

func (a *users) FindByIDPageTx(ctx context.Context, tx bun.IDB, id string, page Pagination) ([]*User, error) {
	id = strings.TrimSpace(id)
	if _, err := uuid.Parse(id); err != nil {
		return []*User{}, nil
	}
	return a.list(ctx, tx, page, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("?TableAlias.id = ?", id)
	})
}

func (a *users) list(ctx context.Context, tx bun.IDB, page Pagination, criteria ...repository.SelectCriteria) ([]*User, error) {
	records := []*User{}
	q := tx.NewSelect().Model(&records)

	for _, c := range criteria {
		q.Apply(c)
	}

	err := q.
		OrderExpr("?TableAlias.created_at ASC, ?TableAlias.id ASC").
		Offset(page.Skip()).
		Limit(page.Size()).
		Scan(ctx)
	if err != nil && !stderrors.Is(err, sql.ErrNoRows) {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to list users").
			WithMetadata(map[string]any{"page": page.Page, "limit": page.Size()})
	}

	return records, nil
}

func (a *users) Save(ctx context.Context, user *User) (*User, error) {
	return a.SaveTx(ctx, a.db, user)
}

// SaveTx writes the mutable columns of user. The whole column set is written
// so false and empty values persist.
func (a *users) SaveTx(ctx context.Context, tx bun.IDB, user *User) (*User, error) {
	if user == nil || user.ID == uuid.Nil {
		return nil, ErrUserNotFound
	}

	user.UpdatedAt = a.now().UTC()

	res, err := tx.NewUpdate().
		Model(user).
		Column("username", "password_hash", "active", "updated_at").
		WherePK().
		Exec(ctx)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to save user").
			WithMetadata(map[string]any{"id": user.ID.String()})
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, ErrUserNotFound
	}

	return user, nil
}

func isNotFound(err error) bool {
	return repository.IsRecordNotFound(err) || stderrors.Is(err, sql.ErrNoRows)
}
