package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/contact-api/internal/app"
	"github.com/contact-api/internal/config"
	lambdatransport "github.com/contact-api/internal/transport/lambda"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	logger := app.NewLogger(os.Stdout, cfg, true)
	slog.SetDefault(logger)

	svc, err := app.NewContactService(context.Background(), cfg, logger)
	if err != nil {
		log.Fatalf("build contact service: %v", err)
	}

	lambda.Start(lambdatransport.NewHandler(svc).Handle)
}
