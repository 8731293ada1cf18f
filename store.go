package accounts

import "context"

// UserStore is the persistence contract used by UserService.
// FindByID returns ErrUserNotFound when no account matches id.
type UserStore interface {
	FindByID(ctx context.Context, id string) (*User, error)
	FindAll(ctx context.Context, page Pagination) ([]*User, error)
	FindByIDPage(ctx context.Context, id string, page Pagination) ([]*User, error)
	Save(ctx context.Context, user *User) (*User, error)
}
