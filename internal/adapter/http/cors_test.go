package httpadapter

import (
	"context"
	"testing"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

func TestCORSAnyOrigin(t *testing.T) {
	ctx := &app.RequestContext{}
	newCORSPolicy(nil).apply(ctx)

	if got, want := string(ctx.Response.Header.Peek("Access-Control-Allow-Origin")), "*"; got != want {
		t.Fatalf("allow-origin mismatch: got=%q want=%q", got, want)
	}
	if got, want := string(ctx.Response.Header.Peek("Access-Control-Allow-Methods")), corsAllowMethods; got != want {
		t.Fatalf("allow-methods mismatch: got=%q want=%q", got, want)
	}
	if got, want := string(ctx.Response.Header.Peek("Access-Control-Allow-Headers")), "Content-Type,X-Request-ID"; got != want {
		t.Fatalf("allow-headers mismatch: got=%q want=%q", got, want)
	}
	if got, want := string(ctx.Response.Header.Peek("Access-Control-Expose-Headers")), "X-Request-ID"; got != want {
		t.Fatalf("expose-headers mismatch: got=%q want=%q", got, want)
	}
}

func TestCORSListedOrigins(t *testing.T) {
	policy := newCORSPolicy([]string{"https://play.example", "http://localhost:5173"})

	allowed := &app.RequestContext{}
	allowed.Request.Header.Set("Origin", "http://localhost:5173")
	policy.apply(allowed)
	if got := string(allowed.Response.Header.Peek("Access-Control-Allow-Origin")); got != "http://localhost:5173" {
		t.Fatalf("expected listed origin echoed, got %q", got)
	}
	if got := string(allowed.Response.Header.Peek("Vary")); got != "Origin" {
		t.Fatalf("expected Vary: Origin, got %q", got)
	}

	other := &app.RequestContext{}
	other.Request.Header.Set("Origin", "https://evil.example")
	policy.apply(other)
	if got := other.Response.Header.Peek("Access-Control-Allow-Origin"); len(got) != 0 {
		t.Fatalf("unlisted origin must not be allowed, got %q", got)
	}
	if got := other.Response.Header.Peek("Access-Control-Allow-Methods"); len(got) != 0 {
		t.Fatalf("unlisted origin must not get cors headers, got %q", got)
	}
}

func TestCORSMiddleware_ShortCircuitsPreflight(t *testing.T) {
	ctx := &app.RequestContext{}
	ctx.Request.Header.SetMethod(consts.MethodOptions)

	CORSMiddleware("*")(context.Background(), ctx)

	if got := ctx.Response.StatusCode(); got != consts.StatusNoContent {
		t.Fatalf("expected 204 for preflight, got %d", got)
	}
	if !ctx.IsAborted() {
		t.Fatalf("expected preflight to abort the chain")
	}
}
