// Package bot serves board evaluations over NATS request/reply.
package bot

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"

	"github.com/domino14/bingo16/bridge"
	"github.com/domino14/bingo16/config"
	"github.com/domino14/bingo16/solver"
)

// Response carries either the evaluation of every free cell plus the
// solver's pick, or an error message. Best is nil when the board has no
// move left.
type Response struct {
	Board      string            `json:"board"`
	Evaluation bridge.Evaluation `json:"evaluation,omitempty"`
	Best       *solver.Decision  `json:"best,omitempty"`
	Error      string            `json:"error,omitempty"`
}

// LambdaEvent is the payload of the serverless entry point. When
// ReplyChannel is set the response is also published there.
type LambdaEvent struct {
	RequestID    string `json:"request_id"`
	Board        string `json:"board"`
	ReplyChannel string `json:"reply_channel"`
}

type Bot struct {
	config *config.Config
	solver *solver.Solver
}

func NewBot(cfg *config.Config, s *solver.Solver) *Bot {
	return &Bot{config: cfg, solver: s}
}

func errorResponse(boardArg, message string, err error) *Response {
	msg := message
	if err != nil {
		msg = fmt.Sprintf("%s: %s", msg, err.Error())
	}
	return &Response{Board: boardArg, Error: msg}
}

// Evaluate answers one request. Failures are reported in the response.
func (b *Bot) Evaluate(boardArg string) *Response {
	bd, err := bridge.ParseBoard(boardArg)
	if err != nil {
		return errorResponse(boardArg, "bad board", err)
	}
	ev, best, err := bridge.Evaluate(b.solver, bd)
	if err != nil {
		return errorResponse(boardArg, "evaluation failed", err)
	}
	return &Response{Board: bd.String(), Evaluation: ev, Best: best}
}

func (b *Bot) handle(data []byte) *Response {
	req := bridge.Request{}
	if err := json.Unmarshal(data, &req); err != nil {
		return errorResponse("", "could not decode request", err)
	}
	return b.Evaluate(req.Board)
}

// Handle decodes a JSON bridge.Request and returns the encoded Response.
func (b *Bot) Handle(data []byte) []byte {
	resp := b.handle(data)
	out, err := json.Marshal(resp)
	if err != nil {
		// Response only holds plain data; this should not happen.
		return []byte(`{"error":"` + err.Error() + `"}`)
	}
	return out
}

// Main subscribes the bot to channel and answers requests until ctx is
// done.
func Main(ctx context.Context, channel string, b *Bot) error {
	nc, err := nats.Connect(b.config.GetString(config.ConfigNatsURL))
	if err != nil {
		return err
	}
	defer nc.Close()
	sub, err := nc.Subscribe(channel, func(m *nats.Msg) {
		log.Debug().Int("bytes", len(m.Data)).Msg("bot-recv")
		if err := m.Respond(b.Handle(m.Data)); err != nil {
			log.Err(err).Msg("bot-respond")
		}
	})
	if err != nil {
		return err
	}
	if err := nc.Flush(); err != nil {
		return err
	}
	if err := nc.LastError(); err != nil {
		return err
	}
	log.Info().Str("channel", channel).Msg("bot-listening")
	<-ctx.Done()
	return sub.Drain()
}
