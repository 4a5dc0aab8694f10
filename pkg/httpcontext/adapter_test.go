package httpcontext

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"

	appLogger "github.com/fastygo/careconnect/pkg/logger"
)

func TestAttachKeepsIncomingRequestID(t *testing.T) {
	var rc fasthttp.RequestCtx
	rc.Request.Header.Set(HeaderRequestID, "abc-123")
	rc.Request.Header.SetUserAgent("careconnect-test")

	ctx, cancel := NewAdapter(time.Second).Attach(&rc)
	defer cancel()

	assert.Equal(t, "abc-123", appLogger.RequestID(ctx))
	assert.Equal(t, "abc-123", string(rc.Response.Header.Peek(HeaderRequestID)))
	assert.Equal(t, "careconnect-test", ctx.Value(KeyUserAgent))

	deadline, ok := ctx.Deadline()
	require.True(t, ok)
	assert.WithinDuration(t, time.Now().Add(time.Second), deadline, 500*time.Millisecond)
}

func TestRequestIDGeneratedOnce(t *testing.T) {
	var rc fasthttp.RequestCtx

	first := RequestID(&rc)
	_, err := uuid.Parse(first)
	require.NoError(t, err)
	assert.Equal(t, first, RequestID(&rc))
}
