package bot

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"

	"github.com/domino14/bingo16/bridge"
)

const (
	defaultTimeout  = 10 * time.Second
	defaultAttempts = 3
)

type Client struct {
	nc       *nats.Conn
	channel  string
	timeout  time.Duration
	attempts uint
}

func NewClient(nc *nats.Conn, channel string) *Client {
	return &Client{nc: nc, channel: channel, timeout: defaultTimeout, attempts: defaultAttempts}
}

// Evaluate sends a board to the bot and waits for its evaluation,
// retrying with backoff when no reply arrives.
func (c *Client) Evaluate(ctx context.Context, boardArg string) (*Response, error) {
	data, err := json.Marshal(bridge.Request{Board: boardArg})
	if err != nil {
		return nil, err
	}
	var res *nats.Msg
	err = retry.Do(
		func() error {
			var err error
			res, err = c.nc.Request(c.channel, data, c.timeout)
			return err
		},
		retry.Context(ctx),
		retry.Attempts(c.attempts),
		retry.LastErrorOnly(true),
		retry.DelayType(func(n uint, err error, config *retry.Config) time.Duration {
			log.Err(err).Uint("n", n).Msg("no-reply-try-again")
			return retry.BackOffDelay(n, err, config)
		}),
	)
	if err != nil {
		if c.nc.LastError() != nil {
			log.Error().Err(c.nc.LastError()).Msg("nats-last-error")
		}
		return nil, err
	}
	log.Debug().Int("bytes", len(res.Data)).Msg("bot-reply")

	resp := &Response{}
	if err := json.Unmarshal(res.Data, resp); err != nil {
		return nil, err
	}
	if resp.Error != "" {
		return resp, errors.New("bot returned: " + resp.Error)
	}
	return resp, nil
}
