package accounts

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/goliatone/go-errors"
)

// HMACTokenValidator verifies tokens signed with a shared secret
type HMACTokenValidator struct {
	signingKey []byte
	method     string
	issuer     string
	audience   jwt.ClaimStrings
	logger     Logger
}

var _ TokenValidator = (*HMACTokenValidator)(nil)

// NewHMACTokenValidator creates a validator for HS256, HS384 or HS512 tokens.
// An empty method accepts any HMAC variant.
func NewHMACTokenValidator(signingKey []byte, method, issuer string, audience []string, logger Logger) *HMACTokenValidator {
	if logger == nil {
		logger = defLogger{}
	}
	return &HMACTokenValidator{
		signingKey: signingKey,
		method:     method,
		issuer:     issuer,
		audience:   audience,
		logger:     logger,
	}
}

// NewHMACTokenValidatorFromConfig reads key, method, issuer and audience from cfg
func NewHMACTokenValidatorFromConfig(cfg Config, logger Logger) *HMACTokenValidator {
	return NewHMACTokenValidator(
		[]byte(cfg.GetSigningKey()),
		cfg.GetSigningMethod(),
		cfg.GetIssuer(),
		cfg.GetAudience(),
		logger,
	)
}

// Validate parses and validates a token string, returning structured claims
func (ts *HMACTokenValidator) Validate(tokenString string) (AuthClaims, error) {
	parserOptions := make([]jwt.ParserOption, 0, 3)
	if ts.issuer != "" {
		parserOptions = append(parserOptions, jwt.WithIssuer(ts.issuer))
	}
	if len(ts.audience) > 0 {
		parserOptions = append(parserOptions, jwt.WithAudience(ts.audience...))
	}
	if ts.method != "" {
		parserOptions = append(parserOptions, jwt.WithValidMethods([]string{ts.method}))
	}

	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			ts.logger.Error("token validate encountered unexpected signing method %v", t.Header["alg"])
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return ts.signingKey, nil
	}, parserOptions...)

	return claimsFromToken(token, err)
}

func claimsFromToken(token *jwt.Token, err error) (AuthClaims, error) {
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, errors.Wrap(err, ErrTokenMalformed.Category, ErrTokenMalformed.Message).
			WithCode(ErrTokenMalformed.Code).
			WithTextCode(ErrTokenMalformed.TextCode)
	}

	if claims, ok := token.Claims.(*JWTClaims); ok && token.Valid {
		if claims.UserID() == "" {
			return nil, ErrUnableToMapClaims
		}
		return claims, nil
	}

	return nil, ErrTokenMalformed
}
