package main

import (
	"context"
	"encoding/json"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/domino14/bingo16/bot"
	"github.com/domino14/bingo16/config"
	"github.com/domino14/bingo16/solver"
)

var cfg *config.Config
var nc *nats.Conn

const replyTimeout = 3 * time.Second

// HandleRequest evaluates the board in evt. The encoded bot.Response is
// returned, and also sent to evt.ReplyChannel when one is given.
func HandleRequest(ctx context.Context, evt bot.LambdaEvent) (string, error) {
	logger := log.With().
		Str("requestID", evt.RequestID).
		Logger()

	s, err := solver.FromConfig(cfg)
	if err != nil {
		return "", err
	}
	resp := bot.NewBot(cfg, s).Evaluate(evt.Board)
	data, err := json.Marshal(resp)
	if err != nil {
		return "", err
	}
	logger.Info().Str("board", resp.Board).Str("error", resp.Error).Msg("evaluated")

	if evt.ReplyChannel != "" && nc != nil {
		logger.Info().Msg("sending-via-nats")
		err = retry.Do(
			func() error {
				// We only wait for an acknowledgement.
				_, err := nc.Request(evt.ReplyChannel, data, replyTimeout)
				return err
			},
			retry.Context(ctx),
			retry.DelayType(func(n uint, err error, config *retry.Config) time.Duration {
				logger.Err(err).Uint("n", n).
					Msg("did-not-receive-ack-try-again")
				return retry.BackOffDelay(n, err, config)
			}),
		)
		if err != nil {
			logger.Err(err).Msg("reply-failed")
		}
	}
	logger.Info().Msg("exiting-fn")
	return string(data), nil
}

func main() {
	cfg = config.DefaultConfig()
	if _, err := cfg.Load(nil); err != nil {
		log.Fatal().Err(err).Msg("bad-config")
	}
	log.Info().Msgf("Loaded config: %v", cfg.SanitizedSettings())
	if cfg.GetBool(config.ConfigDebug) {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	var err error
	nc, err = nats.Connect(cfg.GetString(config.ConfigNatsURL))
	if err != nil {
		log.Fatal().AnErr("natsConnectErr", err).Msg(":(")
	}

	lambda.Start(HandleRequest)
}
