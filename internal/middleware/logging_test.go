package middleware

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestRequestLogAndRecover(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	logger := zap.New(core)

	handler := Chain(func(ctx *fasthttp.RequestCtx) {
		panic("boom")
	}, RequestLog(logger), Recover(logger))

	var rc fasthttp.RequestCtx
	rc.Request.SetRequestURI("/tasks")
	rc.Request.Header.SetMethod(http.MethodGet)
	handler(&rc)

	assert.Equal(t, http.StatusInternalServerError, rc.Response.StatusCode())
	assert.Contains(t, string(rc.Response.Body()), `"status":"error"`)

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "handler panic", entries[0].Message)
	assert.Equal(t, "request", entries[1].Message)
	assert.Equal(t, zapcore.ErrorLevel, entries[1].Level)
	assert.Equal(t, int64(http.StatusInternalServerError), entries[1].ContextMap()["status"])
	assert.Equal(t, "/tasks", entries[1].ContextMap()["path"])
}

func TestRequestLogSuccess(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	handler := RequestLog(zap.New(core))(func(ctx *fasthttp.RequestCtx) {
		ctx.SetStatusCode(http.StatusOK)
	})

	var rc fasthttp.RequestCtx
	handler(&rc)

	require.Len(t, logs.All(), 1)
	assert.Equal(t, zapcore.InfoLevel, logs.All()[0].Level)
	assert.NotEmpty(t, rc.Response.Header.Peek("X-Request-ID"))
}
