package router

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/menu-interativo/back-end/internal/auth"
	"github.com/menu-interativo/back-end/internal/handler"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestRouter mounts handlers without services. Only requests that stop
// before reaching a service are safe to send.
func newTestRouter(t *testing.T, uploadDir string) http.Handler {
	t.Helper()
	logger := zerolog.Nop()
	authorizer := auth.NewAuthorizer(auth.NewTokenManager("router-test-secret", time.Hour), nil, logger)

	return New(Handlers{
		Users:   handler.NewUserHandler(nil, authorizer, logger),
		Tables:  handler.NewTableHandler(nil, nil, authorizer, logger),
		Orders:  handler.NewOrderHandler(nil, authorizer, handler.SessionCookie{Name: "sessionId"}, logger),
		Dishes:  handler.NewDishHandler(nil, authorizer, logger),
		Reports: handler.NewReportHandler(nil, nil, authorizer, logger),
	}, Options{
		UploadDir:   uploadDir,
		CORSOrigins: []string{"http://localhost:5173"},
	}, logger)
}

func TestRouter_Health(t *testing.T) {
	router := newTestRouter(t, "")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"healthy"}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get(chimw.RequestIDHeader))
}

func TestRouter_NotFound(t *testing.T) {
	router := newTestRouter(t, "")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/products", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"message":"Route not found","code":"NOT_FOUND"}`, w.Body.String())
}

func TestRouter_GatedRoutes(t *testing.T) {
	router := newTestRouter(t, "")

	tests := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/profile"},
		{http.MethodGet, "/users"},
		{http.MethodPut, "/users/9b1deb4d-3b7d-4bad-9bdd-2b0d7b3dcb6d/assign-tables"},
		{http.MethodPut, "/user/9b1deb4d-3b7d-4bad-9bdd-2b0d7b3dcb6d/assign-tables"},
		{http.MethodGet, "/tables/assigned"},
		{http.MethodGet, "/tables/9b1deb4d-3b7d-4bad-9bdd-2b0d7b3dcb6d/orders/current"},
		{http.MethodPost, "/tables/9b1deb4d-3b7d-4bad-9bdd-2b0d7b3dcb6d/bill"},
		{http.MethodPatch, "/bills/9b1deb4d-3b7d-4bad-9bdd-2b0d7b3dcb6d/pay"},
		{http.MethodGet, "/orders"},
		{http.MethodPatch, "/orders/9b1deb4d-3b7d-4bad-9bdd-2b0d7b3dcb6d/status"},
		{http.MethodPost, "/dishes"},
		{http.MethodPut, "/dishes/x-burger/customizations"},
		{http.MethodGet, "/sales/statistics"},
		{http.MethodGet, "/reviews/statistics"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			req.Header.Set("Authorization", "Bearer not-a-token")
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

func TestRouter_Uploads(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "dishes"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "dishes", "pudim.png"), []byte("\x89PNG"), 0o644))
	router := newTestRouter(t, dir)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/uploads/dishes/pudim.png", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "\x89PNG", w.Body.String())

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/uploads/dishes/missing.png", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouter_Preflight(t *testing.T) {
	router := newTestRouter(t, "")

	req := httptest.NewRequest(http.MethodOptions, "/orders", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
}
