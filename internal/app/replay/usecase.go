package replay

import (
	"context"
	"errors"

	"warped/internal/domain/sim"
)

const DefaultLimit = 50

var ErrInvalidRequest = errors.New("invalid replay request")

type Runner interface {
	Do(ctx context.Context, fn func(*sim.Game)) error
}

type UseCase struct {
	Session Runner
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	if req.Limit < 0 || (req.From > 0 && req.To > 0 && req.From > req.To) {
		return Response{}, ErrInvalidRequest
	}
	if req.Limit == 0 {
		req.Limit = DefaultLimit
	}
	var resp Response
	err := u.Session.Do(ctx, func(g *sim.Game) {
		log := g.State().Log
		resp.LatestID = -1
		if len(log) > 0 {
			resp.LatestID = log[len(log)-1].ID
		}
		resp.Entries = filter(log, req)
	})
	return resp, err
}

// filter keeps the newest Limit entries that pass the id and time window.
func filter(log []sim.LogEntry, req Request) []sim.LogEntry {
	out := make([]sim.LogEntry, 0, len(log))
	for _, e := range log {
		if req.SinceID != nil && e.ID <= *req.SinceID {
			continue
		}
		if req.From > 0 && e.Timestamp < req.From {
			continue
		}
		if req.To > 0 && e.Timestamp > req.To {
			continue
		}
		out = append(out, e)
	}
	if len(out) > req.Limit {
		out = out[len(out)-req.Limit:]
	}
	return out
}
