package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/careconnect/api/transport"
	"github.com/fastygo/careconnect/domain"
	"github.com/fastygo/careconnect/pkg/httpcontext"
	"github.com/fastygo/careconnect/usecase"
)

// IntentHandler exposes the named intent dispatcher over HTTP.
type IntentHandler struct {
	baseHandler
	dispatcher *usecase.Dispatcher
}

func NewIntentHandler(dispatcher *usecase.Dispatcher, adapter *httpcontext.Adapter, logger *zap.Logger) *IntentHandler {
	return &IntentHandler{
		baseHandler: newBaseHandler(adapter, logger),
		dispatcher:  dispatcher,
	}
}

// @Summary Dispatch a named intent
// @Tags intents
// @Router /api/v1/intents [post]
func (h *IntentHandler) Dispatch(ctx *fasthttp.RequestCtx) {
	var req transport.IntentRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil || strings.TrimSpace(req.Type) == "" {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), domain.ErrInvalidPayload.Message, nil))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	result, err := h.dispatcher.ExecuteCommand(stdCtx, req.Type, req.Payload)
	if err != nil {
		h.respondError(stdCtx, ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, result)
}

// @Summary Run a named query
// @Tags intents
// @Router /api/v1/queries/{name} [get]
func (h *IntentHandler) Query(ctx *fasthttp.RequestCtx) {
	name, _ := ctx.UserValue("name").(string)

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	result, err := h.dispatcher.ExecuteQuery(stdCtx, name)
	if err != nil {
		h.respondError(stdCtx, ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, result)
}
