package gateway

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gong-fq/eng5/internal/clients"
	"github.com/gong-fq/eng5/internal/models"
)

const (
	msgAuth      = "Invalid or expired API key"
	msgRateLimit = "Rate limit exceeded, please try again later"
	msgTimeout   = "The AI service took too long to respond"
	msgNetwork   = "Unable to reach the AI service"
	msgMalformed = "Received an invalid response from the AI service"
	msgGeneric   = "Failed to get a response from the AI service"

	helpHint = "Please check your network connection and try again in a moment. If the problem persists, contact the site administrator."
)

var (
	authMarkers      = []string{"invalid_api_key", "invalid api key", "unauthorized", "authentication"}
	rateLimitMarkers = []string{"rate limit", "rate_limit", "too many requests"}
)

// mapError converts a tutor failure into a status code and response body
func mapError(err error) (int, *models.ErrorResponse) {
	status, msg := classify(err)
	return status, &models.ErrorResponse{
		Error:   msg,
		Details: err.Error(),
		Help:    helpHint,
	}
}

func classify(err error) (int, string) {
	var clientErr *clients.Error
	if !errors.As(err, &clientErr) {
		return http.StatusBadGateway, msgGeneric
	}

	text := strings.ToLower(clientErr.Message)
	switch {
	case clientErr.Kind == clients.KindConfiguration:
		return http.StatusInternalServerError, "Server configuration error"
	case clientErr.StatusCode == http.StatusUnauthorized || clientErr.StatusCode == http.StatusForbidden ||
		(clientErr.Kind == clients.KindUpstreamStatus && containsAny(text, authMarkers)):
		return http.StatusUnauthorized, msgAuth
	case clientErr.StatusCode == http.StatusTooManyRequests ||
		(clientErr.Kind == clients.KindUpstreamStatus && containsAny(text, rateLimitMarkers)):
		return http.StatusTooManyRequests, msgRateLimit
	case clientErr.Timeout():
		return http.StatusGatewayTimeout, msgTimeout
	case clientErr.Kind == clients.KindTransport:
		return http.StatusServiceUnavailable, msgNetwork
	case clientErr.Kind == clients.KindResponseParse || clientErr.Kind == clients.KindMalformedResponse:
		return http.StatusBadGateway, msgMalformed
	default:
		return http.StatusBadGateway, msgGeneric
	}
}

func containsAny(s string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}
