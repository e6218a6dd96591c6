package main

import (
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/bothoster/internal/buildinfo"
	"github.com/dmitrijs2005/bothoster/internal/client/cli"
	"github.com/dmitrijs2005/bothoster/internal/client/config"
	"github.com/dmitrijs2005/bothoster/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	log := logging.New(cfg.LogLevel, os.Stderr)

	app, err := cli.NewApp(ctx, cfg, log)
	if err != nil {
		log.Error(ctx, "start", "error", err)
		os.Exit(1)
	}

	if err := app.Run(ctx); err != nil {
		log.Error(ctx, "run", "error", err)
		os.Exit(1)
	}

}
