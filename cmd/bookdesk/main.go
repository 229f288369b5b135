package main

import (
	"context"
	"log"

	"github.com/bookdesk/bookdesk/internal/cli"
	"github.com/bookdesk/bookdesk/internal/config"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := cli.NewApp(ctx, cfg)

	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)

}
