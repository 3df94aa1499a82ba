package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"vetmissions_backend/internals/client/cli"
	"vetmissions_backend/internals/client/config"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	zerolog.SetGlobalLevel(zerolog.WarnLevel)

	cfg, args, err := config.Parse(os.Args[1:], os.Stderr)
	if err != nil {
		os.Exit(2)
	}

	app, err := cli.NewApp(cfg, os.Stdout)
	if err != nil {
		log.Fatal().Err(err).Msg("local store")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	runErr := app.Run(ctx, args)
	app.Close()
	if runErr != nil {
		app.Fail(runErr)
		os.Exit(1)
	}
}
