package gateway

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
)

const maxBodyBytes = 1 << 20

// ServeHTTP adapts the gateway to net/http runtimes such as Vercel
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var body []byte
	if r.Body != nil {
		data, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
		if err != nil {
			h.logger.WithError(err).Warn("Failed to read request body")
		}
		body = data
	}

	resp := h.Handle(r.Context(), Request{
		Method: r.Method,
		Body:   body,
		Origin: r.Header.Get("Origin"),
	})

	for k, v := range resp.Headers {
		w.Header().Set(k, v)
	}
	w.WriteHeader(resp.StatusCode)
	if len(resp.Body) > 0 {
		if _, err := w.Write(resp.Body); err != nil {
			h.logger.WithError(err).Warn("Failed to write response")
		}
	}
}

// ServeGin is the gin form of ServeHTTP
func (h *Handler) ServeGin(c *gin.Context) {
	h.ServeHTTP(c.Writer, c.Request)
}

// NewEngine builds a gin engine with the chat route on path, answering every method
func NewEngine(h *Handler, path string, middleware ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(middleware...)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.Any(path, h.ServeGin)

	return r
}
