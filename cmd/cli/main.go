package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/mochamagic/internal/client/cli"
	"github.com/dmitrijs2005/mochamagic/internal/client/config"
	"github.com/dmitrijs2005/mochamagic/internal/logging"
)

func main() {

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadConfig()
	logger := logging.New(os.Stderr, "text", cfg.LogLevel)
	app, err := cli.NewApp(ctx, cfg, logger)

	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)

}
