package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"

	"warped/internal/app/command"
	"warped/internal/app/ports"
	"warped/internal/app/replay"
	"warped/internal/app/session"
	"warped/internal/app/status"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/rs/zerolog"
)

type Handler struct {
	CommandUC command.UseCase
	StatusUC  status.UseCase
	ReplayUC  replay.UseCase
	KPI       kpiSnapshotProvider
	Logger    zerolog.Logger
}

func (h Handler) RegisterRoutes(s *server.Hertz) {
	api := s.Group("/api")
	api.POST("/command", h.command)
	api.GET("/state", h.state)
	api.GET("/status", h.status)
	api.GET("/log", h.log)
	api.POST("/save", h.named(command.Save))
	api.POST("/reset", h.named(command.Reset))

	s.GET("/ops/kpi", h.kpi)
}

func (h Handler) command(c context.Context, ctx *app.RequestContext) {
	var body command.Request
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	h.execute(c, ctx, body)
}

func (h Handler) named(name command.Name) app.HandlerFunc {
	return func(c context.Context, ctx *app.RequestContext) {
		h.execute(c, ctx, command.Request{Command: name})
	}
}

func (h Handler) execute(c context.Context, ctx *app.RequestContext, req command.Request) {
	resp, err := h.CommandUC.Execute(c, req)
	if err != nil {
		h.writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) state(c context.Context, ctx *app.RequestContext) {
	resp, err := h.StatusUC.State(c)
	if err != nil {
		h.writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) status(c context.Context, ctx *app.RequestContext) {
	resp, err := h.StatusUC.Execute(c, status.Request{LogLimit: queryLimit(ctx)})
	if err != nil {
		h.writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) log(c context.Context, ctx *app.RequestContext) {
	req := replay.Request{Limit: queryLimit(ctx)}
	req.From, _ = strconv.ParseInt(string(ctx.Query("from")), 10, 64)
	req.To, _ = strconv.ParseInt(string(ctx.Query("to")), 10, 64)
	if raw := string(ctx.Query("since")); raw != "" {
		since, err := strconv.Atoi(raw)
		if err != nil {
			writeErrorBody(ctx, consts.StatusBadRequest, "bad_request", "since must be a log id")
			return
		}
		req.SinceID = &since
	}
	resp, err := h.ReplayUC.Execute(c, req)
	if err != nil {
		h.writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

type kpiSnapshotProvider interface {
	SnapshotAny() any
}

func (h Handler) kpi(_ context.Context, ctx *app.RequestContext) {
	if h.KPI == nil {
		writeErrorBody(ctx, consts.StatusNotFound, "not_configured", "kpi provider not configured")
		return
	}
	ctx.JSON(consts.StatusOK, h.KPI.SnapshotAny())
}

func queryLimit(ctx *app.RequestContext) int {
	limit, _ := strconv.Atoi(string(ctx.Query("limit")))
	return limit
}

func decodeJSON(ctx *app.RequestContext, out any) error {
	body := ctx.Request.Body()
	if len(body) == 0 {
		return nil
	}
	return json.Unmarshal(body, out)
}

func (h Handler) writeError(ctx *app.RequestContext, err error) {
	switch {
	case errors.Is(err, command.ErrUnknownCommand):
		writeErrorBody(ctx, consts.StatusBadRequest, "unknown_command", err.Error())
	case errors.Is(err, command.ErrInvalidRequest),
		errors.Is(err, replay.ErrInvalidRequest):
		writeErrorBody(ctx, consts.StatusBadRequest, "bad_request", err.Error())
	case errors.Is(err, ports.ErrNotFound):
		writeErrorBody(ctx, consts.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, session.ErrClosed):
		writeErrorBody(ctx, consts.StatusServiceUnavailable, "session_closed", err.Error())
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		writeErrorBody(ctx, consts.StatusServiceUnavailable, "timeout", err.Error())
	default:
		h.Logger.Error().Err(err).Str("request_id", requestID(ctx)).Msg("request failed")
		writeErrorBody(ctx, consts.StatusInternalServerError, "internal_error", "internal error")
	}
}

func writeErrorBody(ctx *app.RequestContext, status int, code, message string) {
	ctx.JSON(status, map[string]any{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}
