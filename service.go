package accounts

import (
	"context"

	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-print"
)

// UserService reads and updates accounts on behalf of a principal
type UserService struct {
	store    UserStore
	hasher   PasswordHasher
	logger   Logger
	recorder OperationRecorder
	maxLimit int
	debug    bool
}

// NewUserService will create a new UserService
func NewUserService(store UserStore) *UserService {
	if store == nil {
		panic("Missing UserStore in user service...")
	}
	return &UserService{
		store:    store,
		hasher:   NewBcryptHasher(),
		logger:   defLogger{},
		recorder: nopRecorder{},
		maxLimit: DefaultMaxLimit,
	}
}

func (s *UserService) WithLogger(l Logger) *UserService {
	if l != nil {
		s.logger = l
	}
	return s
}

func (s *UserService) WithHasher(h PasswordHasher) *UserService {
	if h != nil {
		s.hasher = h
	}
	return s
}

func (s *UserService) WithRecorder(r OperationRecorder) *UserService {
	if r != nil {
		s.recorder = r
	}
	return s
}

// WithMaxLimit caps list page sizes, zero disables the cap
func (s *UserService) WithMaxLimit(max int) *UserService {
	if max >= 0 {
		s.maxLimit = max
	}
	return s
}

// WithDebug dumps updated records to the debug log
func (s *UserService) WithDebug(debug bool) *UserService {
	s.debug = debug
	return s
}

// GetProfile returns the principal's own record. Lookup failures, not found
// included, surface as ErrInternal so account existence is not disclosed.
func (s *UserService) GetProfile(ctx context.Context, principal Principal) (user *User, err error) {
	defer func() { s.recorder.Record(OperationGetProfile, outcomeOf(err)) }()

	user, err = s.store.FindByID(ctx, principal.ID)
	if err != nil {
		s.logger.Error("get profile %s: %v", principal.ID, err)
		return nil, ErrInternal
	}

	if user == nil {
		s.logger.Error("get profile %s: store returned no record", principal.ID)
		return nil, ErrInternal
	}

	return user, nil
}

// ListUsers returns one page of accounts. Admins page through every account,
// any other principal pages through a result set holding only its own record.
func (s *UserService) ListUsers(ctx context.Context, principal Principal, page Pagination) (users []*User, err error) {
	defer func() { s.recorder.Record(OperationListUsers, outcomeOf(err)) }()

	page = NewPagination(page.Page, page.Limit, s.maxLimit)

	if principal.IsAdmin() {
		users, err = s.store.FindAll(ctx, page)
	} else {
		users, err = s.store.FindByIDPage(ctx, principal.ID, page)
	}

	if err != nil {
		s.logger.Error("list users for %s: %v", principal.ID, err)
		return nil, ErrInternal
	}

	if users == nil {
		users = []*User{}
	}

	return users, nil
}

// UpdateUser applies patch to the account targetID.
//
// The access policy runs first, so a denied principal never reaches the
// store. Fields are applied in order (username, password, active) to a copy
// of the stored record which is then saved once.
func (s *UserService) UpdateUser(ctx context.Context, principal Principal, targetID string, patch UserPatch) (user *User, err error) {
	defer func() { s.recorder.Record(OperationUpdateUser, outcomeOf(err)) }()

	if !CanUpdate(principal, targetID) {
		return nil, ErrForbidden
	}

	if err := patch.Validate(); err != nil {
		return nil, err
	}

	target, err := s.store.FindByID(ctx, targetID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("update user %s: lookup: %v", targetID, err)
		return nil, ErrInternal
	}

	if target == nil {
		return nil, ErrUserNotFound
	}

	updated := target.Clone()
	if err := patch.Apply(updated, s.hasher); err != nil {
		s.logger.Error("update user %s: hash password: %v", targetID, err)
		return nil, ErrInternal
	}

	saved, err := s.store.Save(ctx, updated)
	if err != nil {
		s.logger.Error("update user %s: save: %v", targetID, err)
		return nil, ErrInternal
	}

	if s.debug {
		s.logger.Debug("updated user by %s:\n%s", principal.ID, print.MaybePrettyJSON(saved))
	}

	return saved, nil
}
