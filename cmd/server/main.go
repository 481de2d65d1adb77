package main

import (
	"log"

	"github.com/alecthomas/kingpin/v2"
	"github.com/gin-gonic/gin"

	"github.com/gong-fq/eng5/internal/config"
	"github.com/gong-fq/eng5/internal/gateway"
	"github.com/gong-fq/eng5/internal/logger"
	"github.com/gong-fq/eng5/internal/modelbridge"
)

var (
	configPath = kingpin.Flag("config", "Path to the YAML configuration file").Short('c').Envar("ENG5_CONFIG").String()
	address    = kingpin.Flag("address", "Listen address, overrides server.address").Short('a').String()
)

func main() {
	kingpin.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	if *address != "" {
		cfg.Server.Address = *address
	}
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}

	logger.InitLogger(logger.ParseLevel(cfg.Log.Level), "server")
	l := logger.GetLogger()
	if !cfg.DeepSeek.HasAPIKey() {
		l.Warn("DEEPSEEK_API_KEY is not set, chat requests will fail with 500")
	}

	bridge := modelbridge.NewModelBridge(cfg)
	handler := gateway.NewHandler(cfg, bridge)
	r := gateway.NewEngine(handler, cfg.Server.Path, gin.Logger(), gin.Recovery())

	l.Info("Listening on %s, chat endpoint %s", cfg.Server.Address, cfg.Server.Path)
	if err := r.Run(cfg.Server.Address); err != nil {
		l.Fatal("Server stopped: %v", err)
	}
}
