package accounts

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-print"
)

// UserOperations is what the HTTP layer needs from the service
type UserOperations interface {
	GetProfile(ctx context.Context, principal Principal) (*User, error)
	ListUsers(ctx context.Context, principal Principal, page Pagination) ([]*User, error)
	UpdateUser(ctx context.Context, principal Principal, targetID string, patch UserPatch) (*User, error)
}

var _ UserOperations = (*UserService)(nil)

// RegisterUserRoutes mounts the account routes under router. Every route runs
// behind protected, which must resolve the request principal.
func RegisterUserRoutes(router fiber.Router, protected fiber.Handler, opts ...UserControllerOption) *UserController {
	controller := NewUserController(opts...)

	group := router.Group(controller.Routes.Base, protected)
	group.Get(controller.Routes.Profile, controller.Profile).Name("users.profile")
	group.Get(controller.Routes.List, controller.List).Name("users.list")
	group.Patch(controller.Routes.Update, controller.Update).Name("users.update")

	return controller
}

type UserControllerRoutes struct {
	Base    string
	Profile string
	List    string
	Update  string
}

type UserController struct {
	Debug    bool
	Logger   Logger
	Service  UserOperations
	Routes   *UserControllerRoutes
	MaxLimit int
}

type UserControllerOption func(*UserController) *UserController

func WithUserService(s UserOperations) UserControllerOption {
	return func(u *UserController) *UserController {
		u.Service = s
		return u
	}
}

func WithControllerLogger(l Logger) UserControllerOption {
	return func(u *UserController) *UserController {
		if l != nil {
			u.Logger = l
		}
		return u
	}
}

func WithControllerRoutes(r *UserControllerRoutes) UserControllerOption {
	return func(u *UserController) *UserController {
		if r != nil {
			u.Routes = r
		}
		return u
	}
}

func WithControllerDebug(debug bool) UserControllerOption {
	return func(u *UserController) *UserController {
		u.Debug = debug
		return u
	}
}

func WithControllerMaxLimit(max int) UserControllerOption {
	return func(u *UserController) *UserController {
		u.MaxLimit = max
		return u
	}
}

func NewUserController(opts ...UserControllerOption) *UserController {
	c := &UserController{
		Logger:   defLogger{},
		MaxLimit: DefaultMaxLimit,
		Routes: &UserControllerRoutes{
			Base:    "/api/users",
			Profile: "/profile",
			List:    "/",
			Update:  "/users/:userId",
		},
	}

	for _, opt := range opts {
		c = opt(c)
	}

	if c.Service == nil {
		panic("Missing UserOperations in user controller...")
	}

	return c
}

// Profile returns the caller's own record
func (u *UserController) Profile(c *fiber.Ctx) error {
	principal, ok := PrincipalFromContext(c.UserContext())
	if !ok {
		return writeError(c, ErrUnauthorized)
	}

	user, err := u.Service.GetProfile(c.UserContext(), principal)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(user)
}

// List returns {"users": [...]} for the requested page
func (u *UserController) List(c *fiber.Ctx) error {
	principal, ok := PrincipalFromContext(c.UserContext())
	if !ok {
		return writeError(c, ErrUnauthorized)
	}

	page := ParsePagination(c.Query("page"), c.Query("limit"), u.MaxLimit)

	users, err := u.Service.ListUsers(c.UserContext(), principal, page)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(fiber.Map{
		"users": users,
		"page":  page.Page,
		"limit": page.Limit,
	})
}

// Update applies a partial patch to the account in the userId path param
func (u *UserController) Update(c *fiber.Ctx) error {
	principal, ok := PrincipalFromContext(c.UserContext())
	if !ok {
		return writeError(c, ErrUnauthorized)
	}

	targetID := c.Params("userId")

	patch := UserPatch{}
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&patch); err != nil {
			// authorization outranks body errors
			if !CanUpdate(principal, targetID) {
				return writeError(c, ErrForbidden)
			}
			return writeError(c, errors.Wrap(err, errors.CategoryBadInput, "Invalid request body").
				WithCode(errors.CodeBadRequest).
				WithTextCode("INVALID_BODY"))
		}
	}

	user, err := u.Service.UpdateUser(c.UserContext(), principal, targetID, patch)
	if err != nil {
		if StatusCode(err) >= fiber.StatusInternalServerError {
			u.Logger.Error("update user %s failed: %v", targetID, err)
		}
		return writeError(c, err)
	}

	if u.Debug {
		u.Logger.Debug("======= USER UPDATE ======\n%s", print.MaybePrettyJSON(user))
	}

	return c.JSON(fiber.Map{
		"message": "User updated successfully",
		"user":    user,
	})
}
