package integration

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	handler "github.com/rjoohappeh/forum-backend/internal/adapters/handler/http"
	"github.com/rjoohappeh/forum-backend/internal/adapters/hash"
	"github.com/rjoohappeh/forum-backend/internal/adapters/metrics"
	repo "github.com/rjoohappeh/forum-backend/internal/adapters/repository/postgres"
	"github.com/rjoohappeh/forum-backend/internal/adapters/token"
	"github.com/rjoohappeh/forum-backend/internal/core/services"
)

type TestApp struct {
	DB          *sql.DB
	Server      *httptest.Server
	Client      *http.Client
	DBContainer testcontainers.Container
}

func setupPostgresContainer(ctx context.Context) (testcontainers.Container, string, error) {
	dbName := "testdb"
	user := "user"
	password := "password"

	pgContainer, err := postgres.Run(ctx, "postgres:15-alpine",
		postgres.WithDatabase(dbName),
		postgres.WithUsername(user),
		postgres.WithPassword(password),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Second),
		),
	)
	if err != nil {
		return nil, "", fmt.Errorf("failed to start postgres container: %w", err)
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return nil, "", err
	}

	return pgContainer, connStr, nil
}

func applyMigrations(db *sql.DB) error {
	dirPath := "../../internal/adapters/repository/postgres/migrations"

	entries, err := os.ReadDir(dirPath)
	if err != nil {
		return fmt.Errorf("failed to read migrations directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		if !strings.HasSuffix(entry.Name(), "up.sql") {
			continue
		}

		fullPath := filepath.Join(dirPath, entry.Name())
		content, err := os.ReadFile(fullPath)
		if err != nil {
			return fmt.Errorf("failed to read migration file %s: %w", entry.Name(), err)
		}

		_, err = db.Exec(string(content))
		if err != nil {
			return fmt.Errorf("failed to execute migration %s: %w", entry.Name(), err)
		}
	}

	return nil
}

func setupTestApp(t *testing.T) *TestApp {
	t.Helper()

	ctx := context.Background()
	dbContainer, dbURL, err := setupPostgresContainer(ctx)
	require.NoError(t, err)

	db, err := sql.Open("postgres", dbURL)
	require.NoError(t, err)

	err = applyMigrations(db)
	require.NoError(t, err)

	userRepo := repo.NewUserRepository(db)
	postRepo := repo.NewPostRepository(db)

	// Minimal bcrypt cost: the hashing properties are not under test here.
	hasher := hash.NewBcryptHasher(4)
	issuer := token.NewJWTIssuer([]byte("at-secret"), []byte("rt-secret"), 15*time.Minute, 7*24*time.Hour)
	collector := metrics.NewCollector()
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	authSvc := services.NewAuthService(userRepo, hasher, issuer)
	userSvc := services.NewUserService(userRepo)
	postSvc := services.NewPostService(postRepo)

	router := handler.NewHandler(handler.RouterDeps{
		AuthHandler: handler.NewAuthHandler(logger, authSvc, collector),
		UserHandler: handler.NewUserHandler(userSvc),
		PostHandler: handler.NewPostHandler(postSvc),
		TokenIssuer: issuer,
		Metrics:     collector,
	})

	server := httptest.NewServer(router)

	return &TestApp{
		DB:          db,
		Server:      server,
		Client:      server.Client(),
		DBContainer: dbContainer,
	}
}

func (app *TestApp) Teardown(t *testing.T) {
	app.Server.Close()
	app.DB.Close()
	if err := app.DBContainer.Terminate(context.Background()); err != nil {
		t.Logf("failed to terminate container: %v", err)
	}
}

type tokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

func (app *TestApp) postJSON(t *testing.T, method, path string, body map[string]any, bearer string) *http.Response {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req, err := http.NewRequest(method, app.Server.URL+path, bytes.NewReader(payload))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := app.Client.Do(req)
	require.NoError(t, err)
	return resp
}

func (app *TestApp) signup(t *testing.T, email, password, displayName string) tokenPair {
	t.Helper()

	resp := app.postJSON(t, http.MethodPost, "/auth/signup", map[string]any{
		"email":        email,
		"password":     password,
		"display_name": displayName,
	}, "")
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var pair tokenPair
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&pair))
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	return pair
}

func (app *TestApp) refreshTokenHash(t *testing.T, email string) sql.NullString {
	t.Helper()

	var digest sql.NullString
	err := app.DB.QueryRow("SELECT refresh_token_hash FROM users WHERE email = $1", email).Scan(&digest)
	require.NoError(t, err)
	return digest
}
