package session

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"warped/internal/domain/sim"
)

var ErrClosed = errors.New("session closed")

const DefaultTickInterval = 50 * time.Millisecond

type Config struct {
	TickInterval time.Duration
	Clock        sim.Clock
	// OnStop runs on the session goroutine after the context ends.
	OnStop func(ctx context.Context, g *sim.Game)
}

// Session owns a Game on a single goroutine. Ticks and every request passed
// to Do are serialised there, so the Game never needs locking.
type Session struct {
	game     *sim.Game
	cfg      Config
	log      zerolog.Logger
	requests chan request
	done     chan struct{}
}

type request struct {
	fn   func(*sim.Game)
	done chan struct{}
}

func New(game *sim.Game, cfg Config, log zerolog.Logger) *Session {
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = DefaultTickInterval
	}
	if cfg.Clock == nil {
		cfg.Clock = game.Clock()
	}
	return &Session{
		game:     game,
		cfg:      cfg,
		log:      log.With().Str("component", "session").Logger(),
		requests: make(chan request),
		done:     make(chan struct{}),
	}
}

func (s *Session) Run(ctx context.Context) error {
	defer close(s.done)
	ticker := time.NewTicker(s.cfg.TickInterval)
	defer ticker.Stop()

	s.log.Info().Dur("tick_interval", s.cfg.TickInterval).Msg("session started")
	last := s.cfg.Clock.Now()
	for {
		select {
		case <-ctx.Done():
			if s.cfg.OnStop != nil {
				stopCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
				s.cfg.OnStop(stopCtx, s.game)
				cancel()
			}
			s.log.Info().Msg("session stopped")
			return nil
		case req := <-s.requests:
			req.fn(s.game)
			close(req.done)
		case <-ticker.C:
			now := s.cfg.Clock.Now()
			s.game.Tick(now.Sub(last))
			last = now
		}
	}
}

// Do runs fn on the session goroutine and waits for it to finish.
func (s *Session) Do(ctx context.Context, fn func(*sim.Game)) error {
	req := request{fn: fn, done: make(chan struct{})}
	select {
	case s.requests <- req:
	case <-s.done:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case <-req.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Subscribe registers fn as a state observer. The returned func unsubscribes.
func (s *Session) Subscribe(ctx context.Context, fn sim.Observer) (func(), error) {
	var unsub func()
	if err := s.Do(ctx, func(g *sim.Game) { unsub = g.Subscribe(fn) }); err != nil {
		return nil, err
	}
	return func() {
		_ = s.Do(context.Background(), func(*sim.Game) { unsub() })
	}, nil
}
