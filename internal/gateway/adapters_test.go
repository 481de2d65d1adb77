package gateway

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/gin-gonic/gin"
	"github.com/gong-fq/eng5/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestEngine_Routes(t *testing.T) {
	tutor := successTutor()
	engine := NewEngine(NewHandler(testConfig("sk-test"), tutor), "/api/chat")

	t.Run("preflight", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodOptions, "/api/chat", nil)
		req.Header.Set("Origin", "https://learn.example.com")
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Body.String())
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "POST, OPTIONS", w.Header().Get("Access-Control-Allow-Methods"))
	})

	t.Run("post", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(`{"message":"Explain 'used to'"}`))
		engine.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var result models.CompletionResult
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
		assert.Equal(t, "Answer to: Explain 'used to'", result.Text)
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
		assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	})

	t.Run("get is rejected", func(t *testing.T) {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/chat", nil))

		assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("empty post", func(t *testing.T) {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/chat", nil))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Request body is required")
	})

	t.Run("health", func(t *testing.T) {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
	})
}

func TestHandleEvent(t *testing.T) {
	h := NewHandler(testConfig("sk-test"), successTutor())

	t.Run("plain body", func(t *testing.T) {
		resp, err := h.HandleEvent(context.Background(), events.APIGatewayProxyRequest{
			HTTPMethod: "POST",
			Body:       `{"message":"Hi there"}`,
			Headers:    map[string]string{"origin": "https://learn.example.com"},
		})

		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "*", resp.Headers["Access-Control-Allow-Origin"])
		assert.Contains(t, resp.Body, `"text":"Answer to: Hi there"`)
	})

	t.Run("base64 body", func(t *testing.T) {
		resp, err := h.HandleEvent(context.Background(), events.APIGatewayProxyRequest{
			HTTPMethod:      "POST",
			Body:            base64.StdEncoding.EncodeToString([]byte(`{"message":"Encoded"}`)),
			IsBase64Encoded: true,
		})

		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, resp.Body, `"text":"Answer to: Encoded"`)
	})

	t.Run("broken base64 is invalid json", func(t *testing.T) {
		resp, err := h.HandleEvent(context.Background(), events.APIGatewayProxyRequest{
			HTTPMethod:      "POST",
			Body:            "%%%not-base64",
			IsBase64Encoded: true,
		})

		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Contains(t, resp.Body, "Invalid JSON format in request body")
	})

	t.Run("preflight", func(t *testing.T) {
		resp, err := h.HandleEvent(context.Background(), events.APIGatewayProxyRequest{HTTPMethod: "OPTIONS"})

		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Empty(t, resp.Body)
	})
}
