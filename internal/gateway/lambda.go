package gateway

import (
	"context"
	"encoding/base64"

	"github.com/aws/aws-lambda-go/events"
)

// HandleEvent adapts the gateway to AWS Lambda behind API Gateway
func (h *Handler) HandleEvent(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	body := []byte(event.Body)
	if event.IsBase64Encoded && event.Body != "" {
		decoded, err := base64.StdEncoding.DecodeString(event.Body)
		if err != nil {
			h.logger.WithError(err).Warn("Failed to decode base64 body, passing it through")
		} else {
			body = decoded
		}
	}

	origin := event.Headers["origin"]
	if origin == "" {
		origin = event.Headers["Origin"]
	}

	resp := h.Handle(ctx, Request{
		Method: event.HTTPMethod,
		Body:   body,
		Origin: origin,
	})

	return events.APIGatewayProxyResponse{
		StatusCode: resp.StatusCode,
		Headers:    resp.Headers,
		Body:       string(resp.Body),
	}, nil
}
