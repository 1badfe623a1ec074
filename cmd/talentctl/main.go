package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/common-nighthawk/go-figure"
	"github.com/jrsteele09/go-talent-client/internal/config"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Err(err).Msg("talentctl failed")
		os.Exit(exitCode(err))
	}
}

func run(args []string) (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Msgf("Recovered from panic: %v", r)
			debug.PrintStack()
			returnError = errors.New("panic recovered")
		}
	}()

	c := config.New()
	setupLogging(c)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		displayAppname(c.GetAppName())
		usage()
		return nil
	}

	app, err := newApp(ctx, c)
	if err != nil {
		return err
	}
	defer app.Close()

	return app.dispatch(ctx, args[0], args[1:])
}

func setupLogging(c config.EnvConfig) {
	level, err := zerolog.ParseLevel(c.GetLogLevel())
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}

func usage() {
	fmt.Fprint(os.Stderr, `Usage: talentctl <command> [flags]

Commands:
  login -u <username> [-p <password>]   sign in and store the session (password falls back to TALENT_PASSWORD)
  logout                                forget the stored session
  whoami                                show the identity in the stored access token
  profile                               fetch the signed-in user's profile
  jobs                                  list job openings
  tasks [-done <id>]                    list your tasks, optionally completing one first
  request [-o file] <METHOD> <PATH> [json-body]
                                        send a raw request (use -o for binary responses)
`)
}
