package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-accounts"
	"github.com/goliatone/go-accounts/config"
)

func TestNewValidator_HMAC(t *testing.T) {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.Auth.SigningKey = "secret"

	validator, closer, err := newValidator(cfg, accounts.NopLogger())
	require.NoError(t, err)
	defer closer()

	claims := &accounts.JWTClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "6f1c2a7e-8d55-4a3c-9a55-1c2f0e8b6d41",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		},
		UserRole: "admin",
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	got, err := validator.Validate(signed)
	require.NoError(t, err)
	assert.Equal(t, "6f1c2a7e-8d55-4a3c-9a55-1c2f0e8b6d41", got.UserID())
	assert.True(t, got.IsAdmin())

	_, err = validator.Validate("not-a-token")
	assert.Error(t, err)
}

func TestNewValidator_NoSources(t *testing.T) {
	cfg := &config.Config{}
	cfg.LoadDefaults()

	validator, closer, err := newValidator(cfg, accounts.NopLogger())
	require.NoError(t, err)
	defer closer()

	_, err = validator.Validate("anything")
	assert.ErrorIs(t, err, accounts.ErrTokenMalformed)
}

func TestHealthHandler(t *testing.T) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := accounts.OpenDB(accounts.DriverSQLite, dsn)
	require.NoError(t, err)

	repo := accounts.NewRepositoryManager(db)
	require.NoError(t, repo.Migrate(context.Background()))

	app := fiber.New()
	app.Get("/healthz", healthHandler(repo, accounts.NopLogger()))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/healthz", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	body := map[string]any{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, float64(1), body["schema_version"])

	require.NoError(t, db.Close())

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/healthz", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestNewLogger(t *testing.T) {
	for _, debug := range []bool{false, true} {
		logger := newLogger(debug)
		assert.NotPanics(t, func() {
			logger.Debug("debug %d", 1)
			logger.Info("info %s", "ok")
			logger.Warn("warn")
			logger.Error("error %v", assert.AnError)
		})
	}
}
