// Command evaluate prints the score of every free cell of a board as one
// JSON object. With --remote the board is sent to a running bot instead.
//
//	evaluate empty
//	evaluate 0,6,18
//	evaluate --remote --nats-url=nats://host:4222 0,6,18
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/domino14/bingo16/bot"
	"github.com/domino14/bingo16/bridge"
	"github.com/domino14/bingo16/config"
	"github.com/domino14/bingo16/solver"
)

const remoteTimeout = time.Minute

func boardArg(args []string) string {
	if len(args) == 0 {
		return bridge.EmptyToken
	}
	return strings.Join(args, ",")
}

func runRemote(ctx context.Context, cfg *config.Config, args []string, stdout io.Writer) error {
	nc, err := nats.Connect(cfg.GetString(config.ConfigNatsURL))
	if err != nil {
		return err
	}
	defer nc.Close()
	resp, err := bot.NewClient(nc, cfg.GetString(config.ConfigBotChannel)).Evaluate(ctx, boardArg(args))
	if err != nil {
		return err
	}
	out, err := json.Marshal(resp.Evaluation)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(stdout, string(out))
	return err
}

func run(cfg *config.Config, args []string, stdout io.Writer) error {
	s, err := solver.FromConfig(cfg)
	if err != nil {
		return err
	}
	out, err := bridge.Handle(s, boardArg(args))
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(stdout, string(out))
	return err
}

func main() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	cfg := config.DefaultConfig()
	// one-shot process, nothing to memoize
	cfg.Set(config.ConfigEvalCacheMemoryFraction, 0)
	args, err := cfg.Load(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if cfg.GetBool(config.ConfigDebug) {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	if cfg.GetBool(config.ConfigRemote) {
		ctx, cancel := context.WithTimeout(context.Background(), remoteTimeout)
		err = runRemote(ctx, cfg, args, os.Stdout)
		cancel()
	} else {
		err = run(cfg, args, os.Stdout)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
