package accounts_test

import (
	"context"

	"github.com/goliatone/go-accounts"
	"github.com/stretchr/testify/mock"
)

// MockUserStore implements accounts.UserStore
type MockUserStore struct {
	mock.Mock
}

func (m *MockUserStore) FindByID(ctx context.Context, id string) (*accounts.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*accounts.User)
	return user, args.Error(1)
}

func (m *MockUserStore) FindAll(ctx context.Context, page accounts.Pagination) ([]*accounts.User, error) {
	args := m.Called(ctx, page)
	users, _ := args.Get(0).([]*accounts.User)
	return users, args.Error(1)
}

func (m *MockUserStore) FindByIDPage(ctx context.Context, id string, page accounts.Pagination) ([]*accounts.User, error) {
	args := m.Called(ctx, id, page)
	users, _ := args.Get(0).([]*accounts.User)
	return users, args.Error(1)
}

func (m *MockUserStore) Save(ctx context.Context, user *accounts.User) (*accounts.User, error) {
	args := m.Called(ctx, user)
	saved, _ := args.Get(0).(*accounts.User)
	return saved, args.Error(1)
}

// MockUserOperations implements accounts.UserOperations
type MockUserOperations struct {
	mock.Mock
}

func (m *MockUserOperations) GetProfile(ctx context.Context, principal accounts.Principal) (*accounts.User, error) {
	args := m.Called(ctx, principal)
	user, _ := args.Get(0).(*accounts.User)
	return user, args.Error(1)
}

func (m *MockUserOperations) ListUsers(ctx context.Context, principal accounts.Principal, page accounts.Pagination) ([]*accounts.User, error) {
	args := m.Called(ctx, principal, page)
	users, _ := args.Get(0).([]*accounts.User)
	return users, args.Error(1)
}

func (m *MockUserOperations) UpdateUser(ctx context.Context, principal accounts.Principal, targetID string, patch accounts.UserPatch) (*accounts.User, error) {
	args := m.Called(ctx, principal, targetID, patch)
	user, _ := args.Get(0).(*accounts.User)
	return user, args.Error(1)
}

// MockHasher implements accounts.PasswordHasher
type MockHasher struct {
	mock.Mock
}

func (m *MockHasher) HashPassword(password string) (string, error) {
	args := m.Called(password)
	return args.String(0), args.Error(1)
}

func (m *MockHasher) ComparePasswordAndHash(password, hash string) error {
	args := m.Called(password, hash)
	return args.Error(0)
}

// recorderStub collects operation outcomes
type recorderStub struct {
	records []string
}

func (r *recorderStub) Record(operation, outcome string) {
	r.records = append(r.records, operation+":"+outcome)
}

// memoryStore is an in memory accounts.UserStore ordered by insertion
type memoryStore struct {
	users []*accounts.User
	saves int
}

func newMemoryStore(users ...*accounts.User) *memoryStore {
	s := &memoryStore{}
	for _, u := range users {
		s.users = append(s.users, u.Clone())
	}
	return s
}

func (s *memoryStore) FindByID(_ context.Context, id string) (*accounts.User, error) {
	for _, u := range s.users {
		if u.ID.String() == id {
			return u.Clone(), nil
		}
	}
	return nil, accounts.ErrUserNotFound
}

func (s *memoryStore) FindAll(_ context.Context, page accounts.Pagination) ([]*accounts.User, error) {
	return paginate(s.users, page), nil
}

func (s *memoryStore) FindByIDPage(_ context.Context, id string, page accounts.Pagination) ([]*accounts.User, error) {
	matches := []*accounts.User{}
	for _, u := range s.users {
		if u.ID.String() == id {
			matches = append(matches, u)
		}
	}
	return paginate(matches, page), nil
}

func (s *memoryStore) Save(_ context.Context, user *accounts.User) (*accounts.User, error) {
	s.saves++
	for i, u := range s.users {
		if u.ID == user.ID {
			s.users[i] = user.Clone()
			return user, nil
		}
	}
	return nil, accounts.ErrUserNotFound
}

func (s *memoryStore) get(id string) *accounts.User {
	for _, u := range s.users {
		if u.ID.String() == id {
			return u.Clone()
		}
	}
	return nil
}

func paginate(users []*accounts.User, page accounts.Pagination) []*accounts.User {
	out := []*accounts.User{}
	skip := page.Skip()
	if skip >= len(users) {
		return out
	}
	end := skip + page.Size()
	if end > len(users) {
		end = len(users)
	}
	for _, u := range users[skip:end] {
		out = append(out, u.Clone())
	}
	return out
}
