package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"syscall"

	"github.com/spf13/pflag"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/term"

	"github.com/MKhiriev/go-greeter/internal/config"
	"github.com/MKhiriev/go-greeter/internal/crypto"
	"github.com/MKhiriev/go-greeter/internal/handler"
	"github.com/MKhiriev/go-greeter/internal/logger"
	"github.com/MKhiriev/go-greeter/internal/server"
	"github.com/MKhiriev/go-greeter/internal/validators"
	"github.com/MKhiriev/go-greeter/internal/workers"
	"github.com/MKhiriev/go-greeter/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "hash-password" {
		if err := hashPassword(); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	printBuildInfo()

	log := logger.NewLogger("fakegreet")
	cfg, err := config.GetFakeGreetConfig()
	if errors.Is(err, pflag.ErrHelp) {
		return
	}
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}
	log = log.WithLevelName(cfg.LogLevel)
	log.Debug().Any("config", cfg).Msg("received configs")

	users, err := handler.LoadUsers(cfg.UsersFile)
	if err != nil {
		log.Fatal().Err(err).Msg("error loading users")
	}

	connHandler := handler.NewConnHandler(
		users,
		crypto.NewPasswordVerifier(bcrypt.DefaultCost),
		validators.NewRequestValidator(),
		log,
	)

	srv, err := server.NewServer(connHandler, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	group := workers.NewWorkers(
		srv,
		workers.NewSignalWorker(log, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT),
	)
	if err = group.Run(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("server run error")
	}
}

// hashPassword reads a password from the terminal and prints its bcrypt
// hash for the users file.
func hashPassword() error {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return errors.New("hash-password needs a terminal")
	}

	fmt.Fprint(os.Stderr, "Password: ")
	password, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return fmt.Errorf("read password: %w", err)
	}

	hash, err := crypto.NewPasswordVerifier(bcrypt.DefaultCost).Hash(string(password))
	if err != nil {
		return err
	}
	fmt.Println(hash)
	return nil
}

func printBuildInfo() {
	fmt.Println(models.NewAppBuildInfo(buildVersion, buildDate, buildCommit))
}
