package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/gong-fq/eng5/internal/config"
	"github.com/gong-fq/eng5/internal/logger"
	"github.com/gong-fq/eng5/internal/models"
)

// Tutor answers a single learner question
type Tutor interface {
	Ask(ctx context.Context, message string) (*models.CompletionResult, error)
}

// Request is what the hosting runtime hands over for one invocation
type Request struct {
	Method string
	Body   []byte
	Origin string
}

// Response is what the hosting runtime writes back
type Response struct {
	StatusCode int
	Headers    map[string]string
	Body       []byte
}

// Handler validates inbound requests, calls the tutor and maps the outcome
// to an HTTP response. It holds no per-request state.
type Handler struct {
	tutor    Tutor
	deepseek config.DeepSeekConfig
	logger   *logger.Logger
}

// NewHandler creates the request gateway
func NewHandler(cfg *config.Config, tutor Tutor) *Handler {
	return &Handler{
		tutor:    tutor,
		deepseek: cfg.DeepSeek,
		logger:   logger.GetLogger().WithComponent("gateway"),
	}
}

// Handle runs one invocation end to end
func (h *Handler) Handle(ctx context.Context, req Request) Response {
	requestID := uuid.NewString()
	log := h.logger.WithRequestID(requestID)
	start := time.Now()

	resp := h.handle(ctx, log, req)
	resp.Headers["X-Request-ID"] = requestID

	log.Info("%s from origin %q -> %d in %s", req.Method, req.Origin, resp.StatusCode, time.Since(start))
	return resp
}

func (h *Handler) handle(ctx context.Context, log *logger.Logger, req Request) Response {
	method := strings.ToUpper(req.Method)

	if method == http.MethodOptions {
		return Response{StatusCode: http.StatusOK, Headers: corsHeaders()}
	}

	if method != http.MethodPost {
		return jsonResponse(http.StatusMethodNotAllowed, &models.ErrorResponse{
			Error:   "Method Not Allowed",
			Message: "Only POST requests are accepted",
		})
	}

	if len(req.Body) == 0 {
		return jsonResponse(http.StatusBadRequest, models.NewErrorResponse("Request body is required"))
	}

	var payload struct {
		Message interface{} `json:"message"`
	}
	if err := json.Unmarshal(req.Body, &payload); err != nil {
		log.Warn("Invalid JSON body: %v", err)
		return jsonResponse(http.StatusBadRequest, models.NewErrorResponse("Invalid JSON format in request body"))
	}

	text, _ := payload.Message.(string)
	chat := models.ChatPayload{Message: strings.TrimSpace(text)}
	if chat.Message == "" {
		return jsonResponse(http.StatusBadRequest, models.NewErrorResponse("Message content is required"))
	}

	if !h.deepseek.HasAPIKey() {
		log.Error("DEEPSEEK_API_KEY is not configured")
		return jsonResponse(http.StatusInternalServerError, &models.ErrorResponse{
			Error:   "Server configuration error",
			Message: "The AI service API key is not configured on the server",
		})
	}

	log.Debug("Forwarding a %d character message", len(chat.Message))
	result, err := h.tutor.Ask(ctx, chat.Message)
	if err != nil {
		status, body := mapError(err)
		log.WithError(err).Error("Completion failed, responding %d", status)
		return jsonResponse(status, body)
	}

	return jsonResponse(http.StatusOK, result)
}

func corsHeaders() map[string]string {
	return map[string]string{
		"Access-Control-Allow-Origin":  "*",
		"Access-Control-Allow-Headers": "Content-Type",
		"Access-Control-Allow-Methods": "POST, OPTIONS",
	}
}

func jsonResponse(status int, v interface{}) Response {
	headers := corsHeaders()
	headers["Content-Type"] = "application/json; charset=utf-8"

	body, err := json.Marshal(v)
	if err != nil {
		status = http.StatusInternalServerError
		body = []byte(`{"success":false,"error":"Failed to encode response"}`)
	}
	return Response{StatusCode: status, Headers: headers, Body: body}
}
