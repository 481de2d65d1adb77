package handler

import (
	"log"
	"net/http"
	"os"

	"github.com/gong-fq/eng5/internal/config"
	"github.com/gong-fq/eng5/internal/gateway"
	"github.com/gong-fq/eng5/internal/logger"
	"github.com/gong-fq/eng5/internal/modelbridge"
)

var defaultHandler = newHandler()

// newHandler runs once per cold start; environment variables come from the Vercel project settings
func newHandler() http.Handler {
	cfg, err := config.Load("")
	if err != nil {
		// Keep serving with defaults, but hold on to the key and base URL so a
		// single bad variable does not turn every request into a 500.
		log.Printf("load config: %v, continuing with defaults", err)
		cfg = config.Default()
		cfg.DeepSeek.APIKey = os.Getenv("DEEPSEEK_API_KEY")
		if base := os.Getenv("DEEPSEEK_API_BASE"); base != "" {
			cfg.DeepSeek.APIBase = base
		}
	}
	logger.InitLogger(logger.ParseLevel(cfg.Log.Level), "vercel")

	return gateway.NewHandler(cfg, modelbridge.NewModelBridge(cfg))
}

// Handler is the entry point for Vercel's Go runtime
func Handler(w http.ResponseWriter, r *http.Request) {
	defaultHandler.ServeHTTP(w, r)
}
