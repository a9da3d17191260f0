package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/MKhiriev/go-greeter/internal/client"
	"github.com/MKhiriev/go-greeter/internal/config"
	"github.com/MKhiriev/go-greeter/internal/logger"
	"github.com/MKhiriev/go-greeter/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.GetGreeterConfig()
	if errors.Is(err, pflag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", client.UserMessage(err), err)
		return 1
	}

	// the greeter draws on the terminal, so logs only ever go to a file
	log := logger.NewClientLogger("greeter", cfg.Log.FilePath).WithLevelName(cfg.Log.Level)
	logBuildInfo(log)
	log.Debug().Any("config", cfg).Msg("received configs")

	// SIGINT arrives as ctrl+c through the terminal in raw mode
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGHUP)
	defer stop()

	greeter, err := client.NewApp(ctx, cfg, log)
	if err != nil {
		log.Err(err).Msg("init greeter error")
		fmt.Fprintln(os.Stderr, client.UserMessage(err))
		return 1
	}

	if err = greeter.Run(ctx); err != nil {
		log.Err(err).Msg("greeter run error")
		fmt.Fprintln(os.Stderr, client.UserMessage(err))
		return 1
	}

	log.Info().Msg("session started, exiting")
	return 0
}

func logBuildInfo(log *logger.Logger) {
	info := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	log.Info().
		Str("version", info.BuildVersion()).
		Str("date", info.BuildDate()).
		Str("commit", info.BuildCommit()).
		Msg("build info")
}
