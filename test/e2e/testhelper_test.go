package e2e_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"

	"github.com/marcos-nsantos/flickr2-backend/internal/adapter/handler"
	pgRepo "github.com/marcos-nsantos/flickr2-backend/internal/adapter/repository/postgres"
	"github.com/marcos-nsantos/flickr2-backend/internal/domain/entity"
	"github.com/marcos-nsantos/flickr2-backend/internal/infrastructure/auth"
	"github.com/marcos-nsantos/flickr2-backend/internal/infrastructure/config"
	"github.com/marcos-nsantos/flickr2-backend/internal/infrastructure/database"
	"github.com/marcos-nsantos/flickr2-backend/internal/infrastructure/middleware"
	"github.com/marcos-nsantos/flickr2-backend/internal/infrastructure/observability"
	"github.com/marcos-nsantos/flickr2-backend/internal/infrastructure/server"
	"github.com/marcos-nsantos/flickr2-backend/internal/infrastructure/storage"
	"github.com/marcos-nsantos/flickr2-backend/internal/pkg/httputil"
	"github.com/marcos-nsantos/flickr2-backend/internal/usecase/account"
	"github.com/marcos-nsantos/flickr2-backend/internal/usecase/album"
	"github.com/marcos-nsantos/flickr2-backend/internal/usecase/photo"
	"github.com/marcos-nsantos/flickr2-backend/internal/usecase/tag"
)

const (
	testDBUser     = "testuser"
	testDBPassword = "testpass"
	testDBName     = "testdb"
	testAppName    = "flickr2App"
)

var testOIDC = config.OIDCConfig{
	IssuerURI:  "http://localhost:9080/realms/jhipster",
	Audience:   []string{"account"},
	HMACSecret: "test-secret-key-for-e2e-tests",
	ClientID:   "web_app",
	TokenTTL:   15 * time.Minute,
}

type TestApp struct {
	Server     *httptest.Server
	Pool       *pgxpool.Pool
	Container  testcontainers.Container
	BaseURL    string
	issuer     *auth.TokenIssuer
	httpClient *http.Client
}

func setupTestApp(t *testing.T) *TestApp {
	t.Helper()

	if testing.Short() {
		t.Skip("Skipping e2e test in short mode")
	}

	gin.SetMode(gin.TestMode)
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase(testDBName),
		postgres.WithUsername(testDBUser),
		postgres.WithPassword(testDBPassword),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)

	logger := zap.NewNop()
	require.NoError(t, database.RunMigrations(ctx, pool, getMigrationsPath(), logger))

	verifier, err := auth.NewTokenVerifier(ctx, testOIDC)
	require.NoError(t, err)

	photoSvc := photo.NewService(pgRepo.NewPhotoRepo(pool), storage.NewImageProcessor(), logger)
	alerts := httputil.NewAlerts(testAppName)

	router := server.NewRouter(server.RouterConfig{
		AlbumHandler:   handler.NewAlbumHandler(album.NewService(pgRepo.NewAlbumRepo(pool)), photoSvc, alerts),
		PhotoHandler:   handler.NewPhotoHandler(photoSvc, alerts),
		TagHandler:     handler.NewTagHandler(tag.NewService(pgRepo.NewTagRepo(pool)), photoSvc, alerts),
		AccountHandler: handler.NewAccountHandler(account.NewService(pgRepo.NewUserRepo(pool), logger), alerts, testOIDC.IssuerURI, testOIDC.ClientID),
		AuthMiddleware: middleware.NewAuthMiddleware(verifier),
		Metrics:        observability.NewMetrics(testAppName),
		Health:         map[string]server.HealthCheck{"db": pool.Ping},
		App:            config.AppConfig{Name: testAppName, Version: "test"},
		Logger:         logger,
		Environment:    "test",
	})

	ts := httptest.NewServer(router.Engine())

	return &TestApp{
		Server:    ts,
		Pool:      pool,
		Container: pgContainer,
		BaseURL:   ts.URL,
		issuer:    auth.NewTokenIssuer(testOIDC),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
			// image redirects are asserted, not followed
			CheckRedirect: func(*http.Request, []*http.Response) error { return http.ErrUseLastResponse },
		},
	}
}

func (app *TestApp) cleanup(t *testing.T) {
	t.Helper()

	app.Server.Close()
	app.Pool.Close()

	if err := app.Container.Terminate(context.Background()); err != nil {
		t.Logf("failed to terminate container: %v", err)
	}
}

// login mints a token for subject and registers the account, returning the
// bearer header set.
func (app *TestApp) login(t *testing.T, subject, login string, authorities ...string) map[string]string {
	t.Helper()

	if len(authorities) == 0 {
		authorities = []string{entity.AuthorityUser}
	}
	token, _, err := app.issuer.Issue(&entity.Principal{
		Subject:     subject,
		Login:       login,
		Authorities: authorities,
	})
	require.NoError(t, err)

	headers := authHeader(token)
	resp, err := app.get("/api/account", headers)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	return headers
}

func (app *TestApp) request(method, path string, body any, headers map[string]string) (*http.Response, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		bodyReader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequest(method, app.BaseURL+path, bodyReader)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return app.httpClient.Do(req)
}

func (app *TestApp) get(path string, headers map[string]string) (*http.Response, error) {
	return app.request(http.MethodGet, path, nil, headers)
}

func (app *TestApp) post(path string, body any, headers map[string]string) (*http.Response, error) {
	return app.request(http.MethodPost, path, body, headers)
}

func (app *TestApp) put(path string, body any, headers map[string]string) (*http.Response, error) {
	return app.request(http.MethodPut, path, body, headers)
}

func (app *TestApp) patch(path string, body any, headers map[string]string) (*http.Response, error) {
	return app.request(http.MethodPatch, path, body, headers)
}

func (app *TestApp) delete(path string, headers map[string]string) (*http.Response, error) {
	return app.request(http.MethodDelete, path, nil, headers)
}

func parseResponse(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	if dest != nil {
		err = json.Unmarshal(body, dest)
		require.NoError(t, err, "response body: %s", string(body))
	}
}

func authHeader(token string) map[string]string {
	return map[string]string{
		"Authorization": "Bearer " + token,
	}
}

func alertHeader(resp *http.Response) string {
	return resp.Header.Get("X-" + testAppName + "-alert")
}

func errorHeader(resp *http.Response) string {
	return resp.Header.Get("X-" + testAppName + "-error")
}

func getMigrationsPath() string {
	_, filename, _, _ := runtime.Caller(0)
	testDir := filepath.Dir(filename)
	return filepath.Join(testDir, "..", "..", "migrations")
}
