package app

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/gin-gonic/gin"
	"github.com/oszuidwest/zwfm-arcview/internal/apperrors"
	"github.com/oszuidwest/zwfm-arcview/internal/config"
	"github.com/oszuidwest/zwfm-arcview/internal/routes"
	"github.com/oszuidwest/zwfm-arcview/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Instance.Path = filepath.Join(t.TempDir(), "instance")
	cfg.Web.TemplatesPath = filepath.Join(t.TempDir(), "no-templates")
	return cfg
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var arcTemplate = fstest.MapFS{
	"arcv/index.html": {Data: []byte(`<h1>{{ .Title }}</h1>`)},
}

func newApp(t *testing.T, cfg *config.Config, opts ...Option) *App {
	t.Helper()
	opts = append([]Option{WithLogger(quietLogger())}, opts...)
	a, err := New(cfg, opts...)
	require.NoError(t, err)
	return a
}

func get(a *App, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	a.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestRoutes(t *testing.T) {
	a := newApp(t, testConfig(t), WithTemplateSources(arcTemplate))

	tests := []struct {
		name           string
		path           string
		expectedStatus int
		expectedBody   string
	}{
		{name: "root", path: "/", expectedStatus: 200, expectedBody: "This is the starting line"},
		{name: "welcome", path: "/welcome", expectedStatus: 200, expectedBody: "Welcome to the Flask App!"},
		{name: "arc page", path: "/arcapp/arc", expectedStatus: 200, expectedBody: "<h1>Arc View</h1>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := get(a, tt.path)
			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.expectedBody, w.Body.String())
		})
	}
}

func TestHeadOnPageRoutes(t *testing.T) {
	a := newApp(t, testConfig(t), WithTemplateSources(arcTemplate))

	for _, path := range []string{"/", "/welcome", "/arcapp/arc"} {
		t.Run(path, func(t *testing.T) {
			w := httptest.NewRecorder()
			a.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodHead, path, nil))
			assert.Equal(t, http.StatusOK, w.Code)
		})
	}
}

func TestRepeatedRequestsAreStable(t *testing.T) {
	a := newApp(t, testConfig(t))

	for i := 0; i < 3; i++ {
		assert.Equal(t, "This is the starting line", get(a, "/").Body.String())
		assert.Equal(t, "Welcome to the Flask App!", get(a, "/welcome").Body.String())
	}
}

func TestArcPageUsesEmbeddedTemplateByDefault(t *testing.T) {
	a := newApp(t, testConfig(t))

	w := get(a, "/arcapp/arc")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "<title>Arc View</title>")
}

func TestArcPagePrefersTemplatesDirectory(t *testing.T) {
	cfg := testConfig(t)
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "arcv"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "arcv", "index.html"), []byte("from disk"), 0o600))
	cfg.Web.TemplatesPath = dir

	w := get(newApp(t, cfg), "/arcapp/arc")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "from disk", w.Body.String())
}

func TestArcPageMissingTemplate(t *testing.T) {
	a := newApp(t, testConfig(t), WithTemplateSources(fstest.MapFS{}))

	w := get(a, "/arcapp/arc")
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var problem utils.ProblemDetail
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &problem))
	assert.Equal(t, utils.ProblemTypeInternalServerError, problem.Type)
	assert.Equal(t, "/arcapp/arc", problem.Instance)
	assert.NotEmpty(t, problem.TraceID)
}

func TestNotFound(t *testing.T) {
	a := newApp(t, testConfig(t))

	w := get(a, "/nonexistent")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "application/problem+json", w.Header().Get("Content-Type"))

	var problem utils.ProblemDetail
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &problem))
	assert.Equal(t, utils.ProblemTypeResourceNotFound, problem.Type)

	assert.Equal(t, http.StatusNotFound, get(a, "/arc").Code, "blueprint routes need the prefix")
}

func TestStaticAssets(t *testing.T) {
	a := newApp(t, testConfig(t))

	w := get(a, "/static/js/map.js")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "L.map")
}

func TestFactoryInstancesAreIndependent(t *testing.T) {
	cfg := testConfig(t)
	first := newApp(t, cfg)
	second := newApp(t, cfg)

	assert.NotSame(t, first.Engine(), second.Engine())

	firstRoutes := first.Routes()
	require.NotEmpty(t, firstRoutes)
	assert.Equal(t, firstRoutes, second.Routes())

	first.Engine().GET("/only-first", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	assert.Equal(t, http.StatusNoContent, get(first, "/only-first").Code)
	assert.Equal(t, http.StatusNotFound, get(second, "/only-first").Code)
}

func TestRouteTable(t *testing.T) {
	a := newApp(t, testConfig(t))

	var gets []string
	for _, e := range a.Routes() {
		if e.Method == http.MethodGet {
			gets = append(gets, e.Path)
		}
	}
	assert.Contains(t, gets, "/")
	assert.Contains(t, gets, "/welcome")
	assert.Contains(t, gets, "/arcapp/arc")
}

func TestWithBlueprints(t *testing.T) {
	extra := &routes.Blueprint{
		Name:   "extra",
		Prefix: "/extra",
		Routes: []routes.Route{routes.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })},
	}
	a := newApp(t, testConfig(t), WithBlueprints(extra))

	assert.Equal(t, "pong", get(a, "/extra/ping").Body.String())
	assert.Equal(t, http.StatusOK, get(a, "/arcapp/arc").Code)
}

func TestInstanceDirectoryCreated(t *testing.T) {
	cfg := testConfig(t)
	a := newApp(t, cfg)

	assert.NoError(t, a.InstanceErr)
	info, err := os.Stat(a.Instance.Path)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestInstanceDirectoryExisting(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, os.MkdirAll(cfg.Instance.Path, 0o755))
	marker := filepath.Join(cfg.Instance.Path, "app.db")
	require.NoError(t, os.WriteFile(marker, []byte("data"), 0o600))

	a := newApp(t, cfg)
	assert.NoError(t, a.InstanceErr)

	data, err := os.ReadFile(marker)
	require.NoError(t, err)
	assert.Equal(t, "data", string(data))
}

func TestInstanceDirectoryFailureIsLogged(t *testing.T) {
	cfg := testConfig(t)
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, nil, 0o600))
	cfg.Instance.Path = filepath.Join(blocker, "instance")

	var buf bytes.Buffer
	a, err := New(cfg, WithLogger(slog.New(slog.NewTextHandler(&buf, nil))))
	require.NoError(t, err, "factory succeeds outside strict mode")

	assert.True(t, errors.Is(a.InstanceErr, apperrors.ErrInstancePath))
	assert.Contains(t, buf.String(), "Instance directory unavailable")
	assert.Equal(t, http.StatusOK, get(a, "/").Code)
}

func TestInstanceDirectoryFailureStrict(t *testing.T) {
	cfg := testConfig(t)
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, nil, 0o600))
	cfg.Instance.Path = filepath.Join(blocker, "instance")
	cfg.Instance.Strict = true

	a, err := New(cfg, WithLogger(quietLogger()))
	require.Error(t, err)
	assert.Nil(t, a)
	assert.Equal(t, apperrors.CodeInstancePath, apperrors.CodeOf(err))
}

func TestProductionDefaultSecretWarns(t *testing.T) {
	cfg := testConfig(t)
	cfg.Environment = config.EnvProduction

	var buf bytes.Buffer
	_, err := New(cfg, WithLogger(slog.New(slog.NewTextHandler(&buf, nil))))
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "default secret key")
}

func TestEmptySecretKeyRejected(t *testing.T) {
	cfg := testConfig(t)
	cfg.SecretKey = ""

	_, err := New(cfg, WithLogger(quietLogger()))
	assert.Error(t, err)
}
