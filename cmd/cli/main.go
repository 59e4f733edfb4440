package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/fraudsentry/internal/buildinfo"
	"github.com/dmitrijs2005/fraudsentry/internal/client/cli"
	"github.com/dmitrijs2005/fraudsentry/internal/client/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := cli.NewApp(ctx, cfg)

	if err != nil {
		log.Fatalf("%v", err)
		return
	}
	defer func() {
		if err := app.Close(); err != nil {
			log.Printf("close: %v", err)
		}
	}()

	app.Run(ctx)

}
