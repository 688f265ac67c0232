package server

import (
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kuliner-chatbot-be/internal/bootstrap"
	"kuliner-chatbot-be/internal/config"
	"kuliner-chatbot-be/internal/controller"
	"kuliner-chatbot-be/internal/pkg/logger"
	"kuliner-chatbot-be/internal/service"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	log := logger.NewNopLogger()
	cfg := &config.Config{App: config.AppConfig{Port: "0", CorsAllowedOrigins: "http://localhost:3000"}}
	container := &bootstrap.Container{
		Logger:           log,
		HealthController: controller.NewHealthController(),
		PostController:   controller.NewPostController(service.NewPostService(filepath.Join(t.TempDir(), "none.csv"), log)),
		ChatbotController: controller.NewChatbotController(
			service.NewChatbotService(nil, nil, log),
			log,
		),
	}
	return New(cfg, container)
}

func TestServerRoutes(t *testing.T) {
	app := testServer(t).GetApp()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/posts", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(body), "go_goroutines"))
}

func TestServerCORS(t *testing.T) {
	app := testServer(t).GetApp()

	req := httptest.NewRequest(http.MethodOptions, "/api/chat", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:3000", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestServerRecoversFromPanics(t *testing.T) {
	srv := testServer(t)
	srv.GetApp().Get("/boom", func(c *fiber.Ctx) error { panic("boom") })

	resp, err := srv.GetApp().Test(httptest.NewRequest(http.MethodGet, "/boom", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}
