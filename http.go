package accounts

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-accounts/middleware/jwtware"
	"github.com/goliatone/go-errors"
)

type jwtwareValidator struct {
	validator TokenValidator
}

func (v jwtwareValidator) Validate(tokenString string) (jwtware.AuthClaims, error) {
	claims, err := v.validator.Validate(tokenString)
	if err != nil {
		return nil, err
	}
	return claims, nil
}

// ProtectedRoute returns a fiber middleware that verifies the request token
// and stores the resolved Principal in the request user context.
func ProtectedRoute(cfg Config, validator TokenValidator, logger Logger) fiber.Handler {
	if logger == nil {
		logger = defLogger{}
	}

	return jwtware.New(jwtware.Config{
		ErrorHandler:   MakeAuthErrorHandler(logger),
		AuthScheme:     cfg.GetAuthScheme(),
		ContextKey:     cfg.GetContextKey(),
		TokenLookup:    cfg.GetTokenLookup(),
		TokenValidator: jwtwareValidator{validator: validator},
		ValidationListeners: []jwtware.ValidationListener{
			requirePrincipal,
		},
		ContextEnricher: enrichPrincipal,
	})
}

func requirePrincipal(_ *fiber.Ctx, claims jwtware.AuthClaims) error {
	ac, ok := claims.(AuthClaims)
	if !ok {
		return ErrUnableToMapClaims
	}
	_, err := PrincipalFromClaims(ac)
	return err
}

func enrichPrincipal(ctx context.Context, claims jwtware.AuthClaims) context.Context {
	ac, ok := claims.(AuthClaims)
	if !ok {
		return ctx
	}

	ctx = WithClaimsContext(ctx, ac)
	if principal, err := PrincipalFromClaims(ac); err == nil {
		ctx = WithPrincipal(ctx, principal)
	}
	return ctx
}

// MakeAuthErrorHandler renders token failures as 401 responses
func MakeAuthErrorHandler(logger Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var richErr *errors.Error

		switch {
		case IsTokenExpiredError(err):
			richErr = ErrTokenExpired
		case IsMalformedError(err):
			richErr = ErrTokenMalformed
		default:
			richErr = errors.Wrap(err, errors.CategoryAuth, "Invalid authentication token").
				WithCode(errors.CodeUnauthorized).
				WithTextCode(ErrUnauthorized.TextCode)
		}

		logger.Debug("rejected request %s %s: %v", c.Method(), c.Path(), err)

		return writeError(c, richErr)
	}
}

// writeError renders err as {"message": ..., "code": ...}
func writeError(c *fiber.Ctx, err error) error {
	status := StatusCode(err)

	body := fiber.Map{"message": ErrInternal.Message}

	var richErr *errors.Error
	if status < fiber.StatusInternalServerError && errors.As(err, &richErr) {
		body["message"] = richErr.Message
		if richErr.TextCode != "" {
			body["code"] = richErr.TextCode
		}
		if fields, ok := richErr.Metadata["fields"]; ok {
			body["errors"] = fields
		}
	}

	return c.Status(status).JSON(body)
}
