package handler

import (
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/careconnect/api/transport"
	"github.com/fastygo/careconnect/pkg/httpcontext"
	taskUC "github.com/fastygo/careconnect/usecase/task"
)

type TaskHandler struct {
	baseHandler
	uc     *taskUC.UseCase
	render transport.Renderer
}

func NewTaskHandler(uc *taskUC.UseCase, render transport.Renderer, adapter *httpcontext.Adapter, logger *zap.Logger) *TaskHandler {
	return &TaskHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
		render:      render,
	}
}

// @Summary Tasks and suggested tasks
// @Tags tasks
// @Router /tasks [get]
func (h *TaskHandler) Tasks(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	h.uc.Mount(stdCtx)
	h.respondSuccess(ctx, http.StatusOK, h.render.Tasks(h.uc.State()))
}

// @Summary Create task
// @Tags tasks
// @Router /api/v1/tasks [post]
func (h *TaskHandler) AddTask(ctx *fasthttp.RequestCtx) {
	req, ok := h.decodeRecordRequest(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	h.uc.Mount(stdCtx)
	records, err := h.uc.AddTask(stdCtx, req.Description)
	if err != nil {
		h.respondError(stdCtx, ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, h.render.Records(records))
}

// @Summary Toggle task completion
// @Tags tasks
// @Router /api/v1/tasks/{id}/toggle [post]
func (h *TaskHandler) ToggleTask(ctx *fasthttp.RequestCtx) {
	id, ok := h.pathID(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	h.uc.Mount(stdCtx)
	records, err := h.uc.ToggleTask(stdCtx, id)
	if err != nil {
		h.respondError(stdCtx, ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, h.render.Records(records))
}
