package main

import (
	"context"
	"log"
	"os"

	"github.com/greengrid/rectrade/internal/client/cli"
	"github.com/greengrid/rectrade/internal/client/config"
	"github.com/greengrid/rectrade/internal/logging"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()
	logger := logging.NewJSON(os.Stderr, cfg.LogLevel)

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)

}
