package command

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"warped/internal/app/ports"
	"warped/internal/domain/sim"
)

var (
	ErrInvalidRequest = errors.New("invalid command request")
	ErrUnknownCommand = errors.New("unknown command")
)

type Runner interface {
	Do(ctx context.Context, fn func(*sim.Game)) error
}

type Saver interface {
	Save(ctx context.Context, g *sim.Game) error
	Reset(ctx context.Context, g *sim.Game) error
}

type UseCase struct {
	Session Runner
	Saves   Saver
	Metrics ports.CommandMetrics
	Debug   bool
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	req.Command = Name(strings.TrimSpace(string(req.Command)))
	spec, ok := lookup(req.Command, u.Debug)
	if !ok {
		u.record(req.Command, sim.OutcomeInvalid)
		return Response{}, fmt.Errorf("%w: %q", ErrUnknownCommand, req.Command)
	}
	if !spec.Validate(req.Args) {
		u.record(req.Command, sim.OutcomeInvalid)
		return Response{}, ErrInvalidRequest
	}

	var (
		resp   = Response{Command: req.Command}
		runErr error
	)
	err := u.Session.Do(ctx, func(g *sim.Game) {
		before := lastLogID(g.State())
		resp.Outcome, runErr = spec.Run(ctx, u, g, req.Args)
		resp.Phase = g.State().Phase
		resp.Log = entriesSince(g.State().Log, before)
	})
	if err != nil {
		return Response{}, err
	}
	u.record(req.Command, resp.Outcome)
	if runErr != nil {
		return resp, runErr
	}
	return resp, nil
}

func (u UseCase) record(name Name, outcome sim.Outcome) {
	if u.Metrics != nil {
		u.Metrics.RecordCommand(string(name), outcome)
	}
}

func lastLogID(s *sim.State) int {
	if len(s.Log) == 0 {
		return -1
	}
	return s.Log[len(s.Log)-1].ID
}

// entriesSince returns entries appended after id. A log whose tail is older
// than id was replaced wholesale, so all of it is new.
func entriesSince(log []sim.LogEntry, id int) []sim.LogEntry {
	if len(log) == 0 {
		return []sim.LogEntry{}
	}
	if log[len(log)-1].ID < id {
		return append([]sim.LogEntry(nil), log...)
	}
	out := []sim.LogEntry{}
	for _, e := range log {
		if e.ID > id {
			out = append(out, e)
		}
	}
	return out
}
