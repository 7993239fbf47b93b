package integration

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "github.com/lib/pq"
)

func TestSignupFlow(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	pair := app.signup(t, "alice@example.com", "password-one", "Alice")

	// The refresh token is stored only as a digest.
	digest := app.refreshTokenHash(t, "alice@example.com")
	require.True(t, digest.Valid)
	assert.NotEqual(t, pair.RefreshToken, digest.String)

	// A second signup with the same email is rejected.
	resp := app.postJSON(t, http.MethodPost, "/auth/signup", map[string]any{
		"email":        "alice@example.com",
		"password":     "another-password",
		"display_name": "Mallory",
	}, "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestSigninRotatesRefreshToken(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	app.signup(t, "alice@example.com", "password-one", "Alice")
	digestAfterSignup := app.refreshTokenHash(t, "alice@example.com")

	resp := app.postJSON(t, http.MethodPost, "/auth/signin", map[string]any{
		"email":    "alice@example.com",
		"password": "password-one",
	}, "")
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var pair tokenPair
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&pair))
	require.NotEmpty(t, pair.RefreshToken)

	digestAfterSignin := app.refreshTokenHash(t, "alice@example.com")
	require.True(t, digestAfterSignin.Valid)
	assert.NotEqual(t, digestAfterSignup.String, digestAfterSignin.String)
}

func TestSigninRejectsBadCredentials(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	app.signup(t, "alice@example.com", "password-one", "Alice")

	wrongPassword := app.postJSON(t, http.MethodPost, "/auth/signin", map[string]any{
		"email":    "alice@example.com",
		"password": "wrong-password",
	}, "")
	defer wrongPassword.Body.Close()
	assert.Equal(t, http.StatusForbidden, wrongPassword.StatusCode)

	unknownEmail := app.postJSON(t, http.MethodPost, "/auth/signin", map[string]any{
		"email":    "nobody@example.com",
		"password": "password-one",
	}, "")
	defer unknownEmail.Body.Close()
	assert.Equal(t, http.StatusForbidden, unknownEmail.StatusCode)
}

func TestDeactivateAndReactivate(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	pair := app.signup(t, "alice@example.com", "password-one", "Alice")

	resp := app.postJSON(t, http.MethodPatch, "/auth/deactivate", map[string]any{
		"email":    "alice@example.com",
		"password": "password-one",
	}, pair.AccessToken)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var user map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&user))
	assert.Equal(t, false, user["active"])
	assert.NotContains(t, user, "password_hash")

	// Deactivating revokes the stored refresh token.
	digest := app.refreshTokenHash(t, "alice@example.com")
	assert.False(t, digest.Valid)

	// A successful signin brings the account back.
	signin := app.postJSON(t, http.MethodPost, "/auth/signin", map[string]any{
		"email":    "alice@example.com",
		"password": "password-one",
	}, "")
	defer signin.Body.Close()
	require.Equal(t, http.StatusOK, signin.StatusCode)

	var active bool
	require.NoError(t, app.DB.QueryRow("SELECT active FROM users WHERE email = $1", "alice@example.com").Scan(&active))
	assert.True(t, active)
}

func TestDeactivateRejectsForeignToken(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	app.signup(t, "alice@example.com", "password-one", "Alice")
	bobPair := app.signup(t, "bob@example.com", "password-two", "Bob")

	// Bob's session plus Alice's password must not deactivate Alice.
	resp := app.postJSON(t, http.MethodPatch, "/auth/deactivate", map[string]any{
		"email":    "alice@example.com",
		"password": "password-one",
	}, bobPair.AccessToken)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	var active bool
	require.NoError(t, app.DB.QueryRow("SELECT active FROM users WHERE email = $1", "alice@example.com").Scan(&active))
	assert.True(t, active)
}

func TestRefreshRotation(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	pair := app.signup(t, "alice@example.com", "password-one", "Alice")

	resp := app.postJSON(t, http.MethodPost, "/auth/refresh", map[string]any{
		"refresh_token": pair.RefreshToken,
	}, "")
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var refreshed tokenPair
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&refreshed))
	require.NotEmpty(t, refreshed.RefreshToken)

	// The old refresh token has been rotated out.
	replay := app.postJSON(t, http.MethodPost, "/auth/refresh", map[string]any{
		"refresh_token": pair.RefreshToken,
	}, "")
	defer replay.Body.Close()
	assert.Equal(t, http.StatusForbidden, replay.StatusCode)
}

func TestLogoutIsIdempotent(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	pair := app.signup(t, "alice@example.com", "password-one", "Alice")

	for i := 0; i < 2; i++ {
		resp := app.postJSON(t, http.MethodPost, "/auth/logout", map[string]any{}, pair.AccessToken)
		resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		digest := app.refreshTokenHash(t, "alice@example.com")
		assert.False(t, digest.Valid)
	}
}

func TestSignupValidation(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	resp := app.postJSON(t, http.MethodPost, "/auth/signup", map[string]any{
		"email":        "not-an-email",
		"password":     "short",
		"display_name": "",
	}, "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
