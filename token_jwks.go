package accounts

import (
	"fmt"
	"time"

	"github.com/MicahParks/keyfunc/v2"
	"github.com/golang-jwt/jwt/v5"
)

// JWKSTokenValidator verifies asymmetric tokens against a remote JWK Set
type JWKSTokenValidator struct {
	jwks     *keyfunc.JWKS
	issuer   string
	audience []string
}

var _ TokenValidator = (*JWKSTokenValidator)(nil)

// JWKSOption configures a JWKSTokenValidator
type JWKSOption func(*jwksSettings)

type jwksSettings struct {
	issuer          string
	audience        []string
	refreshInterval time.Duration
	logger          Logger
}

// WithJWKSIssuer requires the iss claim to match issuer
func WithJWKSIssuer(issuer string) JWKSOption {
	return func(s *jwksSettings) { s.issuer = issuer }
}

// WithJWKSAudience requires one of audience in the aud claim
func WithJWKSAudience(audience ...string) JWKSOption {
	return func(s *jwksSettings) { s.audience = audience }
}

// WithJWKSRefreshInterval sets how often the key set is refreshed
func WithJWKSRefreshInterval(d time.Duration) JWKSOption {
	return func(s *jwksSettings) { s.refreshInterval = d }
}

func WithJWKSLogger(l Logger) JWKSOption {
	return func(s *jwksSettings) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewJWKSTokenValidator fetches the key set at url. Call Close to stop the
// background refresh.
func NewJWKSTokenValidator(url string, opts ...JWKSOption) (*JWKSTokenValidator, error) {
	settings := &jwksSettings{
		refreshInterval: time.Hour,
		logger:          defLogger{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(settings)
		}
	}

	jwks, err := keyfunc.Get(url, keyfunc.Options{
		RefreshErrorHandler: func(err error) {
			settings.logger.Error("failed to do a background refresh of JWT set: %s", err)
		},
		RefreshInterval:   settings.refreshInterval,
		RefreshRateLimit:  time.Minute * 5,
		RefreshTimeout:    time.Second * 10,
		RefreshUnknownKID: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get JWK set from %s: %w", url, err)
	}

	return &JWKSTokenValidator{
		jwks:     jwks,
		issuer:   settings.issuer,
		audience: settings.audience,
	}, nil
}

// Validate satisfies the TokenValidator interface.
func (v *JWKSTokenValidator) Validate(tokenString string) (AuthClaims, error) {
	parserOptions := []jwt.ParserOption{
		jwt.WithValidMethods([]string{"RS256", "RS384", "RS512", "ES256", "ES384", "ES512", "PS256", "PS384", "PS512", "EdDSA"}),
	}
	if v.issuer != "" {
		parserOptions = append(parserOptions, jwt.WithIssuer(v.issuer))
	}
	if len(v.audience) > 0 {
		parserOptions = append(parserOptions, jwt.WithAudience(v.audience...))
	}

	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, v.jwks.Keyfunc, parserOptions...)
	return claimsFromToken(token, err)
}

// Close stops the background refresh goroutine
func (v *JWKSTokenValidator) Close() {
	if v.jwks != nil {
		v.jwks.EndBackground()
	}
}
