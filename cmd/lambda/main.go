package main

import (
	"log"
	"os"

	"github.com/aws/aws-lambda-go/lambda"

	"github.com/gong-fq/eng5/internal/config"
	"github.com/gong-fq/eng5/internal/gateway"
	"github.com/gong-fq/eng5/internal/logger"
	"github.com/gong-fq/eng5/internal/modelbridge"
)

func main() {
	cfg, err := config.Load(os.Getenv("ENG5_CONFIG"))
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger.InitLogger(logger.ParseLevel(cfg.Log.Level), "lambda")

	handler := gateway.NewHandler(cfg, modelbridge.NewModelBridge(cfg))
	lambda.Start(handler.HandleEvent)
}
