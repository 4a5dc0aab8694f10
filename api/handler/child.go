package handler

import (
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/careconnect/pkg/httpcontext"
	childUC "github.com/fastygo/careconnect/usecase/child"
)

type ChildHandler struct {
	baseHandler
	uc *childUC.UseCase
}

func NewChildHandler(uc *childUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *ChildHandler {
	return &ChildHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary Child profile
// @Tags child
// @Router /child [get]
func (h *ChildHandler) Profile(ctx *fasthttp.RequestCtx) {
	h.respondSuccess(ctx, http.StatusOK, h.uc.Profile())
}
