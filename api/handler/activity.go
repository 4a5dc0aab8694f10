package handler

import (
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/careconnect/api/transport"
	"github.com/fastygo/careconnect/pkg/httpcontext"
	activityUC "github.com/fastygo/careconnect/usecase/activity"
)

type ActivityHandler struct {
	baseHandler
	uc     *activityUC.UseCase
	render transport.Renderer
}

func NewActivityHandler(uc *activityUC.UseCase, render transport.Renderer, adapter *httpcontext.Adapter, logger *zap.Logger) *ActivityHandler {
	return &ActivityHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
		render:      render,
	}
}

// @Summary Dashboard with weather and activity log
// @Tags dashboard
// @Router /dashboard [get]
func (h *ActivityHandler) Dashboard(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	h.uc.Mount(stdCtx)
	h.respondSuccess(ctx, http.StatusOK, h.render.Dashboard(h.uc.Activities(), h.uc.Weather()))
}

// @Summary Log an activity
// @Tags dashboard
// @Router /api/v1/activities [post]
func (h *ActivityHandler) AddActivity(ctx *fasthttp.RequestCtx) {
	req, ok := h.decodeRecordRequest(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	h.uc.Mount(stdCtx)
	records, err := h.uc.AddActivity(stdCtx, req.Description)
	if err != nil {
		h.respondError(stdCtx, ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, h.render.Records(records))
}

// @Summary Toggle activity completion
// @Tags dashboard
// @Router /api/v1/activities/{id}/toggle [post]
func (h *ActivityHandler) ToggleActivity(ctx *fasthttp.RequestCtx) {
	id, ok := h.pathID(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	h.uc.Mount(stdCtx)
	records, err := h.uc.ToggleActivity(stdCtx, id)
	if err != nil {
		h.respondError(stdCtx, ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, h.render.Records(records))
}
