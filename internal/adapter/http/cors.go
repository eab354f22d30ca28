package httpadapter

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

const corsAllowMethods = "GET,POST,OPTIONS"
const corsAllowHeaders = "Content-Type," + requestIDHeader

// corsPolicy answers for the configured origins. An empty list or a "*"
// entry allows any origin.
type corsPolicy struct {
	anyOrigin bool
	origins   map[string]bool
}

func newCORSPolicy(origins []string) corsPolicy {
	p := corsPolicy{origins: map[string]bool{}}
	if len(origins) == 0 {
		p.anyOrigin = true
	}
	for _, o := range origins {
		if o == "*" {
			p.anyOrigin = true
		}
		p.origins[o] = true
	}
	return p
}

func (p corsPolicy) apply(ctx *app.RequestContext) {
	if p.anyOrigin {
		ctx.Response.Header.Set("Access-Control-Allow-Origin", "*")
	} else {
		ctx.Response.Header.Set("Vary", "Origin")
		origin := string(ctx.Request.Header.Peek("Origin"))
		if !p.origins[origin] {
			return
		}
		ctx.Response.Header.Set("Access-Control-Allow-Origin", origin)
	}
	ctx.Response.Header.Set("Access-Control-Allow-Methods", corsAllowMethods)
	ctx.Response.Header.Set("Access-Control-Allow-Headers", corsAllowHeaders)
	ctx.Response.Header.Set("Access-Control-Expose-Headers", requestIDHeader)
	ctx.Response.Header.Set("Access-Control-Max-Age", "600")
}

// CORSMiddleware lets the browser client on the listed origins call the API
// and read X-Request-ID. Preflights end here with 204.
func CORSMiddleware(origins ...string) app.HandlerFunc {
	policy := newCORSPolicy(origins)
	return func(c context.Context, ctx *app.RequestContext) {
		policy.apply(ctx)
		if string(ctx.Method()) == consts.MethodOptions {
			ctx.AbortWithStatus(consts.StatusNoContent)
			return
		}
		ctx.Next(c)
	}
}
