package clients

import (
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"syscall"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// Kind classifies a failed completion call
type Kind int

const (
	KindConfiguration Kind = iota + 1
	KindUpstreamStatus
	KindResponseParse
	KindMalformedResponse
	KindTransport
	KindTimeout
)

var kindNames = map[Kind]string{
	KindConfiguration:     "ConfigurationError",
	KindUpstreamStatus:    "UpstreamStatusError",
	KindResponseParse:     "ResponseParseError",
	KindMalformedResponse: "MalformedResponseError",
	KindTransport:         "TransportError",
	KindTimeout:           "TimeoutError",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Error is returned by DeepSeekClient for every failure. It is terminal:
// the client never retries.
type Error struct {
	Kind       Kind
	StatusCode int
	Message    string
	Err        error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Timeout reports whether the call failed because it took too long, either
// on the client deadline or inside the transport.
func (e *Error) Timeout() bool {
	if e.Kind == KindTimeout {
		return true
	}
	var ne net.Error
	return e.Kind == KindTransport && errors.As(e.Err, &ne) && ne.Timeout()
}

func newTimeoutError(after time.Duration) *Error {
	return &Error{
		Kind:    KindTimeout,
		Message: fmt.Sprintf("request timeout: no response from DeepSeek within %s", after),
	}
}

func newStatusError(status int, body []byte) *Error {
	return &Error{
		Kind:       KindUpstreamStatus,
		StatusCode: status,
		Message:    upstreamErrorMessage(status, body),
	}
}

// upstreamErrorMessage prefers the provider's error.message field
func upstreamErrorMessage(status int, body []byte) string {
	var resp openai.ErrorResponse
	if err := json.Unmarshal(body, &resp); err == nil && resp.Error != nil && resp.Error.Message != "" {
		return fmt.Sprintf("DeepSeek API error (status %d): %s", status, resp.Error.Message)
	}
	return fmt.Sprintf("DeepSeek API request failed with status %d", status)
}

func newTransportError(err error) *Error {
	var (
		dnsErr *net.DNSError
		netErr net.Error
		msg    string
	)
	switch {
	case errors.As(err, &dnsErr):
		msg = fmt.Sprintf("network error: DNS lookup failed for %s: %v", dnsErr.Name, err)
	case errors.Is(err, syscall.ECONNREFUSED):
		msg = fmt.Sprintf("network error: connection refused: %v", err)
	case errors.As(err, &netErr) && netErr.Timeout():
		msg = fmt.Sprintf("network error: connection timeout: %v", err)
	default:
		msg = fmt.Sprintf("network error: %v", err)
	}
	return &Error{Kind: KindTransport, Message: msg, Err: err}
}
